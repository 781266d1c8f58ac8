// Package selected provides the runner that prints selection lists.
package selected

import (
	"context"
	"io"
	"sort"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/printers"
	"tableflip.dev/celexta/pkg/selection"
)

// Selected prints one selection list, or every list when All is set.
type Selected struct {
	List    string
	All     bool
	ShowID  bool
	JSON    bool
	Service *app.Service
	Out     io.Writer
}

func (s *Selected) Do(ctx context.Context) error {
	byList, err := s.load(ctx)
	if err != nil {
		return err
	}
	lists := make([]string, 0, len(byList))
	for l := range byList {
		lists = append(lists, l)
	}
	sort.Strings(lists)

	if s.JSON {
		out := printers.Writer(s.Out)
		if !s.All {
			return printers.JSON(out, printers.WithIDs(byList[lists[0]]...))
		}
		withIDs := make(map[string][]interface{}, len(byList))
		for l, all := range byList {
			withIDs[l] = printers.WithIDs(all...)
		}
		return printers.JSON(out, withIDs)
	}

	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}
	for _, l := range lists {
		pp.TitleWithCount(l, len(byList[l]), "selection")
		pp.Selections(byList[l])
	}
	return nil
}

func (s *Selected) load(ctx context.Context) (map[string][]*selection.Selection, error) {
	if s.All {
		return s.Service.SelectedAll(ctx)
	}
	list := s.List
	if list == "" {
		list = selection.DefaultList
	}
	all, err := s.Service.Selected(ctx, list)
	if err != nil {
		return nil, err
	}
	return map[string][]*selection.Selection{list: all}, nil
}
