package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/selection"
	"tableflip.dev/celexta/pkg/store"
)

// Service connects the catalog selector with the persisted selection lists.
// It is shared by the CLI and the TUI.
type Service struct {
	Catalog     *catalog.Model
	Persistence store.Persistence
	Log         *slog.Logger
}

var (
	// ErrAlreadySelected is returned when the record is already in the list.
	ErrAlreadySelected = errors.New("app: record already selected")
	// ErrNotFound is returned when no selection has the requested id.
	ErrNotFound = errors.New("app: selection not found")

	errNoPersistence = errors.New("app: no persistence configured")
	errNoCatalog     = errors.New("app: no catalog configured")
)

// Match is one search hit: the current position of the record in the
// catalog, the record itself and its display label.
type Match struct {
	Index  int            `json:"index"`
	Record catalog.Record `json:"record"`
	Label  string         `json:"label"`
}

func (s *Service) logger() *slog.Logger {
	if s.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Log
}

// Search returns the catalog records whose label contains query, in catalog
// order. Indices are only valid until the catalog is next mutated.
func (s *Service) Search(query string) ([]Match, error) {
	if s.Catalog == nil {
		return nil, errNoCatalog
	}
	idx := s.Catalog.Matches(query)
	out := make([]Match, 0, len(idx))
	for _, i := range idx {
		r, err := s.Catalog.At(i)
		if err != nil {
			return nil, err
		}
		label, err := s.Catalog.LabelAt(i)
		if err != nil {
			return nil, err
		}
		out = append(out, Match{Index: i, Record: r, Label: label})
	}
	return out, nil
}

// Select adds the catalog record at index to list. A stale or invalid index
// surfaces catalog.ErrOutOfRange.
func (s *Service) Select(ctx context.Context, list string, index int) (*selection.Selection, error) {
	if s.Catalog == nil {
		return nil, errNoCatalog
	}
	r, err := s.Catalog.At(index)
	if err != nil {
		return nil, err
	}
	return s.SelectRecord(ctx, list, r)
}

// SelectRecord adds r to list unless an equal record is already there, in
// which case the existing selection is returned with ErrAlreadySelected.
// It does not touch the catalog.
func (s *Service) SelectRecord(ctx context.Context, list string, r catalog.Record) (*selection.Selection, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	sel := selection.New(list, r)
	for _, existing := range s.Persistence.List(ctx, sel.List) {
		if existing.Record == r {
			s.logger().Debug("app: record already selected, ignoring", "list", sel.List, "record", r.String())
			return existing, ErrAlreadySelected
		}
	}
	if err := s.Persistence.Store(sel); err != nil {
		return nil, fmt.Errorf("app: select %q: %w", r.String(), err)
	}
	s.logger().Info("app: selected record", "list", sel.List, "record", r.String(), "id", sel.ID)
	return sel, nil
}

// Selected lists the selections of list in the order they were made.
func (s *Service) Selected(ctx context.Context, list string) ([]*selection.Selection, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if list == "" {
		list = selection.DefaultList
	}
	return s.Persistence.List(ctx, list), nil
}

// Unselect removes the selection with id from list.
func (s *Service) Unselect(ctx context.Context, list, id string) (*selection.Selection, error) {
	all, err := s.Selected(ctx, list)
	if err != nil {
		return nil, err
	}
	for _, sel := range all {
		if sel.ID == id {
			if err := s.Persistence.Delete(sel); err != nil {
				return nil, fmt.Errorf("app: unselect %s: %w", id, err)
			}
			s.logger().Info("app: removed selection", "list", sel.List, "id", id)
			return sel, nil
		}
	}
	return nil, ErrNotFound
}

// Lists returns the names of all selection lists.
func (s *Service) Lists(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Lists(ctx, ""), nil
}

// maxListReaders bounds the concurrent list reads of SelectedAll.
const maxListReaders = 4

// SelectedAll loads every selection list, keyed by list name.
func (s *Service) SelectedAll(ctx context.Context) (map[string][]*selection.Selection, error) {
	names, err := s.Lists(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]*selection.Selection, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxListReaders)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.Persistence.List(ctx, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("app: load lists: %w", err)
	}

	out := make(map[string][]*selection.Selection, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}
