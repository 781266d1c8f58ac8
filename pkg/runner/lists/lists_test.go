package lists

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/store"
)

type dirConfig string

func (d dirConfig) BasePath() string    { return string(d) }
func (d dirConfig) CatalogPath() string { return "" }
func (d dirConfig) Separator() string   { return "" }
func (d dirConfig) Duplicates() string  { return "" }
func (d dirConfig) SortCatalog() bool   { return false }
func (d dirConfig) Order() string       { return "" }
func (d dirConfig) LogLevel() string    { return "" }

func newService(t *testing.T) *app.Service {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(dirConfig(t.TempDir()))
	require.NoError(t, err)
	return &app.Service{
		Catalog: catalog.New([]catalog.Record{
			catalog.NewRecord("A. Dumbledore", "Hogwarts"),
			catalog.NewRecord("V. Krum", "Durmstrang"),
		}),
		Persistence: p,
	}
}

func TestLists(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	var buf bytes.Buffer
	l := &Lists{Service: svc, Out: &buf}
	require.NoError(t, l.Do(ctx))
	assert.Contains(t, buf.String(), "lists - 0 lists")
	assert.Contains(t, buf.String(), "none")

	for _, list := range []string{"SN 2026abc", "GRB 250314A"} {
		_, err := svc.Select(ctx, list, 0)
		require.NoError(t, err)
	}

	buf.Reset()
	require.NoError(t, l.Do(ctx))
	out := buf.String()
	assert.Contains(t, out, "lists - 2 lists")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("GRB 250314A")), bytes.Index(buf.Bytes(), []byte("SN 2026abc")))
	assert.NotEqual(t, -1, bytes.Index(buf.Bytes(), []byte("GRB 250314A")))

	buf.Reset()
	l.JSON = true
	require.NoError(t, l.Do(ctx))
	assert.JSONEq(t, `["GRB 250314A","SN 2026abc"]`, buf.String())
}
