package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/selection"
	"tableflip.dev/celexta/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	counter int
	lists   map[string]map[string]*selection.Selection
}

func newMemoryPersistence() *memoryPersistence {
	return &memoryPersistence{lists: make(map[string]map[string]*selection.Selection)}
}

func (m *memoryPersistence) Lists(_ context.Context, prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for name := range m.lists {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (m *memoryPersistence) List(_ context.Context, list string) []*selection.Selection {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.lists[list]
	out := make([]*selection.Selection, 0, len(items))
	for _, s := range items {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryPersistence) Store(s *selection.Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		m.counter++
		s.ID = fmt.Sprintf("id-%02d", m.counter)
	}
	if m.lists[s.List] == nil {
		m.lists[s.List] = make(map[string]*selection.Selection)
	}
	cp := *s
	m.lists[s.List][s.ID] = &cp
	return nil
}

func (m *memoryPersistence) Delete(s *selection.Selection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists[s.List], s.ID)
	if len(m.lists[s.List]) == 0 {
		delete(m.lists, s.List)
	}
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return make(chan store.Event), nil
}

func newService() *Service {
	return &Service{
		Catalog: catalog.New([]catalog.Record{
			catalog.NewRecord("A. Dumbledore", "Hogwarts"),
			catalog.NewRecord("S. Snape", "Hogwarts"),
			catalog.NewRecord("H. Potter", "Hogwarts"),
			catalog.NewRecord("V. Krum", "Durmstrang"),
		}),
		Persistence: newMemoryPersistence(),
	}
}

func TestSearch(t *testing.T) {
	svc := newService()

	got, err := svc.Search("HOG")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Match{Index: 1, Record: catalog.NewRecord("S. Snape", "Hogwarts"), Label: "S. Snape, Hogwarts"}, got[1])

	got, err = svc.Search("zzz")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = (&Service{}).Search("x")
	assert.Error(t, err)
}

func TestSelectAndUnselect(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	sel, err := svc.Select(ctx, "GRB 250314A", 3)
	require.NoError(t, err)
	assert.Equal(t, catalog.NewRecord("V. Krum", "Durmstrang"), sel.Record)
	assert.NotEmpty(t, sel.ID)

	again, err := svc.Select(ctx, "GRB 250314A", 3)
	assert.ErrorIs(t, err, ErrAlreadySelected)
	assert.Equal(t, sel.ID, again.ID)

	_, err = svc.Select(ctx, "", 0)
	require.NoError(t, err)

	lists, err := svc.Lists(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"GRB 250314A", selection.DefaultList}, lists)

	all, err := svc.Selected(ctx, "GRB 250314A")
	require.NoError(t, err)
	require.Len(t, all, 1)

	removed, err := svc.Unselect(ctx, "GRB 250314A", sel.ID)
	require.NoError(t, err)
	assert.Equal(t, sel.Record, removed.Record)

	_, err = svc.Unselect(ctx, "GRB 250314A", sel.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelectedAll(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	for i, list := range []string{"GRB 250314A", "GRB 250314A", "SN 2026abc", ""} {
		_, err := svc.Select(ctx, list, i)
		require.NoError(t, err)
	}

	all, err := svc.SelectedAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Len(t, all["GRB 250314A"], 2)
	assert.Len(t, all["SN 2026abc"], 1)
	assert.Len(t, all[selection.DefaultList], 1)

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.SelectedAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = (&Service{}).SelectedAll(context.Background())
	assert.Error(t, err)
}

func TestSelectStaleIndex(t *testing.T) {
	svc := newService()
	svc.Catalog.Clear()
	_, err := svc.Select(context.Background(), "authors", 0)
	assert.ErrorIs(t, err, catalog.ErrOutOfRange)
}

func TestSelectRecordIgnoresCatalog(t *testing.T) {
	svc := newService()
	r := catalog.NewRecord("C. Diggory", "Hogwarts")
	sel, err := svc.SelectRecord(context.Background(), "", r)
	require.NoError(t, err)
	assert.Equal(t, selection.DefaultList, sel.List)
	assert.Equal(t, -1, svc.Catalog.IndexOf(r))
}

func TestServiceWithoutPersistence(t *testing.T) {
	svc := &Service{Catalog: catalog.New([]catalog.Record{catalog.NewRecord("a", "b")})}
	ctx := context.Background()
	_, err := svc.Select(ctx, "authors", 0)
	assert.Error(t, err)
	_, err = svc.Selected(ctx, "authors")
	assert.Error(t, err)
	_, err = svc.Lists(ctx)
	assert.Error(t, err)
	_, err = svc.Watch(ctx)
	assert.Error(t, err)
}

type catalogConfig struct {
	catalog    string
	separator  string
	duplicates string
	sort       bool
	order      string
}

func (c catalogConfig) BasePath() string    { return "" }
func (c catalogConfig) CatalogPath() string { return c.catalog }
func (c catalogConfig) Separator() string   { return c.separator }
func (c catalogConfig) Duplicates() string  { return c.duplicates }
func (c catalogConfig) SortCatalog() bool   { return c.sort }
func (c catalogConfig) Order() string       { return c.order }
func (c catalogConfig) LogLevel() string    { return "" }

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.csv")
	require.NoError(t, os.WriteFile(path, []byte("V. Krum,Durmstrang\nA. Dumbledore,Hogwarts\nA. Dumbledore,Hogwarts\n"), 0o644))

	m, err := LoadCatalog(catalogConfig{catalog: path, separator: " @ ", duplicates: "reject", sort: true}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, m.Size())
	label, err := m.LabelAt(0)
	require.NoError(t, err)
	assert.Equal(t, "A. Dumbledore @ Hogwarts", label)

	m, err = LoadCatalog(catalogConfig{}, nil)
	require.NoError(t, err)
	assert.Positive(t, m.Size())
	assert.Equal(t, catalog.DefaultSeparator, m.Separator())

	_, err = LoadCatalog(catalogConfig{duplicates: "sometimes"}, nil)
	assert.Error(t, err)

	_, err = LoadCatalog(catalogConfig{order: "backwards"}, nil)
	assert.Error(t, err)
}

func TestLoadCatalogFoldOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.csv")
	require.NoError(t, os.WriteFile(path, []byte("b. black,Hogwarts\nA. Dumbledore,Hogwarts\na. abbott,Hogwarts\n"), 0o644))

	labels := func(m *catalog.Model) []string {
		var out []string
		for _, r := range m.Records() {
			out = append(out, r.Primary)
		}
		return out
	}

	m, err := LoadCatalog(catalogConfig{catalog: path, sort: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A. Dumbledore", "a. abbott", "b. black"}, labels(m))

	m, err = LoadCatalog(catalogConfig{catalog: path, sort: true, order: "fold"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a. abbott", "A. Dumbledore", "b. black"}, labels(m))

	// The order also applies to later sorts.
	m, err = LoadCatalog(catalogConfig{catalog: path, order: "fold"}, nil)
	require.NoError(t, err)
	m.Sort()
	assert.Equal(t, []string{"a. abbott", "A. Dumbledore", "b. black"}, labels(m))
}
