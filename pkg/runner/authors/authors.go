// Package authors provides the runner that searches the author catalog.
package authors

import (
	"context"
	"io"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/printers"
)

// Authors prints the catalog records matching Query.
type Authors struct {
	Query     string
	ShowIndex bool
	JSON      bool
	Service   *app.Service
	Out       io.Writer
}

func (a *Authors) Do(_ context.Context) error {
	matches, err := a.Service.Search(a.Query)
	if err != nil {
		return err
	}
	if a.JSON {
		return printers.JSON(printers.Writer(a.Out), matches)
	}

	pp := printers.PrettyPrint{ShowIndex: a.ShowIndex, Highlight: a.Query, Out: a.Out}
	pp.TitleWithCount("authors", len(matches), "record")
	pp.Matches(matches)
	return nil
}

