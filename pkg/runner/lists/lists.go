// Package lists provides the runner that names every selection list.
package lists

import (
	"context"
	"io"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/printers"
)

type Lists struct {
	JSON    bool
	Service *app.Service
	Out     io.Writer
}

func (l *Lists) Do(ctx context.Context) error {
	names, err := l.Service.Lists(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(printers.Writer(l.Out), names)
	}
	pp := printers.PrettyPrint{Out: l.Out}
	pp.TitleWithCount("lists", len(names), "list")
	pp.Names(names)
	return nil
}
