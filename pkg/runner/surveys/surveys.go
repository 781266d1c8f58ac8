// Package surveys provides the runner that lists survey filter bands.
package surveys

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/printers"
	"tableflip.dev/celexta/pkg/surveys"
)

// Surveys prints the (survey, filter) pairs matching Query, or the filters
// of one survey when Survey is set.
type Surveys struct {
	Query     string
	Survey    string
	Sort      bool
	ShowIndex bool
	JSON      bool
	Out       io.Writer
}

func (s *Surveys) Do(_ context.Context) error {
	if s.Survey != "" {
		return s.filters()
	}
	m := surveys.Catalog()
	if s.Sort {
		m.Sort()
	}
	svc := &app.Service{Catalog: m}
	matches, err := svc.Search(s.Query)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(printers.Writer(s.Out), matches)
	}

	pp := printers.PrettyPrint{ShowIndex: s.ShowIndex, Highlight: s.Query, Out: s.Out}
	pp.TitleWithCount("surveys", len(matches), "filter")
	pp.Matches(matches)
	return nil
}

// filters prints the filters of the survey named by s.Survey, ignoring case.
func (s *Surveys) filters() error {
	var names []string
	for _, sv := range surveys.All() {
		if !strings.EqualFold(sv.Name, strings.TrimSpace(s.Survey)) {
			names = append(names, sv.Name)
			continue
		}
		filters := surveys.Filters(sv.Name)
		if filters == nil {
			filters = []string{}
		}
		if s.JSON {
			return printers.JSON(printers.Writer(s.Out), struct {
				Survey  string   `json:"survey"`
				Filters []string `json:"filters"`
			}{Survey: sv.Name, Filters: filters})
		}
		pp := printers.PrettyPrint{Out: s.Out}
		pp.TitleWithCount(sv.Name, len(filters), "filter")
		pp.Names(filters)
		return nil
	}
	return fmt.Errorf("unknown survey %q, expected one of: %s", s.Survey, strings.Join(names, ", "))
}
