// Package choose provides the runner that adds a catalog record to a
// selection list.
package choose

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/printers"
)

// PromptFunc asks the user to choose one of matches and returns its
// position in matches.
type PromptFunc func(matches []app.Match) (int, error)

// Choose selects a record by catalog index or by a query that narrows the
// catalog to a single record. A non-nil Index wins over Query and is never
// checked here; the catalog reports it when out of range.
type Choose struct {
	List    string
	Query   string
	Index   *int
	JSON    bool
	ShowID  bool
	Prompt  PromptFunc
	Service *app.Service
	Out     io.Writer
}

var (
	errNoMatch   = errors.New("no record matches")
	errAmbiguous = errors.New("query matches more than one record")
)

func (c *Choose) Do(ctx context.Context) error {
	index, err := c.resolve()
	if err != nil {
		return err
	}

	sel, err := c.Service.Select(ctx, c.List, index)
	if err != nil && !errors.Is(err, app.ErrAlreadySelected) {
		return err
	}
	if c.JSON {
		return printers.JSON(printers.Writer(c.Out), printers.WithIDs(sel)[0])
	}

	all, lerr := c.Service.Selected(ctx, sel.List)
	if lerr != nil {
		return lerr
	}
	pp := printers.PrettyPrint{ShowID: c.ShowID, Out: c.Out}
	pp.Title(sel.List)
	pp.Selections(all)
	// Re-selecting is reported but not fatal.
	if err != nil {
		_, _ = fmt.Fprintf(printers.Writer(c.Out), "%s is already in %s\n", sel.Record, sel.List)
	}
	return nil
}

// resolve turns the index or query into a catalog position.
func (c *Choose) resolve() (int, error) {
	if c.Index != nil {
		return *c.Index, nil
	}
	matches, err := c.Service.Search(c.Query)
	if err != nil {
		return -1, err
	}
	switch {
	case len(matches) == 0:
		return -1, fmt.Errorf("%w %q", errNoMatch, c.Query)
	case len(matches) == 1:
		return matches[0].Index, nil
	case c.Prompt != nil:
		i, err := c.Prompt(matches)
		if err != nil {
			return -1, err
		}
		if i < 0 || i >= len(matches) {
			return -1, fmt.Errorf("prompt returned %d of %d matches", i, len(matches))
		}
		return matches[i].Index, nil
	default:
		return -1, fmt.Errorf("%w: %q matches %d records, narrow the query or use --index or --interactive", errAmbiguous, c.Query, len(matches))
	}
}
