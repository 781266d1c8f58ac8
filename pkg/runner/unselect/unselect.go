// Package unselect provides the runner that removes a selection.
package unselect

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/printers"
)

// Unselect removes the selection ID from List.
type Unselect struct {
	ID      string
	List    string
	ShowID  bool
	Service *app.Service
	Out     io.Writer
}

func (u *Unselect) Do(ctx context.Context) error {
	sel, err := u.Service.Unselect(ctx, u.List, u.ID)
	if err != nil {
		return fmt.Errorf("unselect %s: %w", u.ID, err)
	}
	all, err := u.Service.Selected(ctx, sel.List)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: u.ShowID, Out: u.Out}
	pp.Title(sel.List)
	pp.Selections(all)
	return nil
}
