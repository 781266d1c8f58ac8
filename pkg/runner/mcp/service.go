// Package mcp exposes the catalog selector and the selection lists over the
// Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/selection"
)

// Service serializes access to the app service. Tool handlers run
// concurrently but the catalog must only be touched by one goroutine at a
// time.
type Service struct {
	mu  sync.Mutex
	app *app.Service
}

// ErrMissingQuery is returned when an operation requires a search term.
var ErrMissingQuery = errors.New("query is required")

// SelectionDTO is a transport-friendly projection of a selection.
type SelectionDTO struct {
	ID        string `json:"id"`
	List      string `json:"list"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
	Label     string `json:"label"`
	Created   string `json:"created"`
}

// ListSummary names a selection list and how many records it holds.
type ListSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewService wraps svc for use by the MCP server.
func NewService(svc *app.Service) *Service {
	return &Service{app: svc}
}

// Search returns up to limit catalog matches for query. A limit of zero or
// less returns every match.
func (s *Service) Search(query string, limit int) ([]app.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches, err := s.app.Search(query)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Select adds a record to list. The record is named by its catalog index,
// or, when index is nil, by a query that must match exactly one record.
func (s *Service) Select(ctx context.Context, list string, index *int, query string) (SelectionDTO, bool, error) {
	s.mu.Lock()
	r, err := s.resolve(index, query)
	sep := s.separator()
	s.mu.Unlock()
	if err != nil {
		return SelectionDTO{}, false, err
	}

	sel, err := s.app.SelectRecord(ctx, list, r)
	already := errors.Is(err, app.ErrAlreadySelected)
	if err != nil && !already {
		return SelectionDTO{}, false, err
	}
	return toDTO(sel, sep), already, nil
}

func (s *Service) resolve(index *int, query string) (catalog.Record, error) {
	if s.app.Catalog == nil {
		return catalog.Record{}, errors.New("no catalog loaded")
	}
	if index != nil {
		return s.app.Catalog.At(*index)
	}
	if strings.TrimSpace(query) == "" {
		return catalog.Record{}, ErrMissingQuery
	}
	idx := s.app.Catalog.Matches(query)
	switch len(idx) {
	case 0:
		return catalog.Record{}, errors.New("no record matches " + query)
	case 1:
		return s.app.Catalog.At(idx[0])
	default:
		return catalog.Record{}, errors.New("query matches more than one record, search first and select by index")
	}
}

// Selected returns the selections of list.
func (s *Service) Selected(ctx context.Context, list string) ([]SelectionDTO, error) {
	all, err := s.app.Selected(ctx, list)
	if err != nil {
		return nil, err
	}
	sep := s.lockedSeparator()
	out := make([]SelectionDTO, 0, len(all))
	for _, sel := range all {
		out = append(out, toDTO(sel, sep))
	}
	return out, nil
}

// Unselect removes the selection id from list.
func (s *Service) Unselect(ctx context.Context, list, id string) (SelectionDTO, error) {
	sel, err := s.app.Unselect(ctx, list, id)
	if err != nil {
		return SelectionDTO{}, err
	}
	return toDTO(sel, s.lockedSeparator()), nil
}

// Lists summarizes every selection list.
func (s *Service) Lists(ctx context.Context) ([]ListSummary, error) {
	byList, err := s.app.SelectedAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ListSummary, 0, len(byList))
	for name, all := range byList {
		out = append(out, ListSummary{Name: name, Count: len(all)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Records returns a snapshot of the whole catalog in display order.
func (s *Service) Records() ([]app.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.app.Catalog
	if m == nil {
		return nil, errors.New("no catalog loaded")
	}
	sep := m.Separator()
	out := make([]app.Match, 0, m.Size())
	for i, r := range m.All() {
		out = append(out, app.Match{Index: i, Record: r, Label: r.Label(sep)})
	}
	return out, nil
}

func (s *Service) separator() string {
	if s.app.Catalog == nil {
		return catalog.DefaultSeparator
	}
	return s.app.Catalog.Separator()
}

func (s *Service) lockedSeparator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.separator()
}

func toDTO(sel *selection.Selection, sep string) SelectionDTO {
	if sel == nil {
		return SelectionDTO{}
	}
	return SelectionDTO{
		ID:        sel.ID,
		List:      sel.List,
		Primary:   sel.Record.Primary,
		Secondary: sel.Record.Secondary,
		Label:     sel.Record.Label(sep),
		Created:   sel.Created.String(),
	}
}
