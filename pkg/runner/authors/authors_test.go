package authors

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/catalog"
)

func service() *app.Service {
	return &app.Service{Catalog: catalog.New([]catalog.Record{
		catalog.NewRecord("A. Dumbledore", "Hogwarts"),
		catalog.NewRecord("V. Krum", "Durmstrang"),
		catalog.NewRecord("F. Delacour", "Beauxbatons"),
	})}
}

func TestAuthorsJSON(t *testing.T) {
	var buf bytes.Buffer
	a := &Authors{Query: "RUM", JSON: true, Service: service(), Out: &buf}
	require.NoError(t, a.Do(context.Background()))

	var got []app.Match
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "V. Krum, Durmstrang", got[0].Label)
}

func TestAuthorsPretty(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	a := &Authors{ShowIndex: true, Service: service(), Out: &buf}
	require.NoError(t, a.Do(context.Background()))
	assert.Contains(t, buf.String(), "authors - 3 records")
	assert.Contains(t, buf.String(), "Beauxbatons")
}

func TestAuthorsWithoutCatalog(t *testing.T) {
	a := &Authors{Service: &app.Service{}, Out: &bytes.Buffer{}}
	assert.Error(t, a.Do(context.Background()))
}
