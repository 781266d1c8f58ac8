// Package selection describes records picked from a catalog into a named
// list, such as the author list of a circular.
package selection

import (
	"time"

	"tableflip.dev/celexta/pkg/catalog"
)

// DefaultList is used when no list name is given.
const DefaultList = "authors"

// Selection is a catalog record chosen into a list.
type Selection struct {
	ID      string         `json:"-"`
	List    string         `json:"list"`
	Record  catalog.Record `json:"record"`
	Created Timestamp      `json:"created"`
}

// New creates a selection of r into list, stamped with the current time.
func New(list string, r catalog.Record) *Selection {
	if list == "" {
		list = DefaultList
	}
	return &Selection{
		List:    list,
		Record:  r,
		Created: Timestamp{Time: time.Now()},
	}
}

// Title returns the name of the list the selection belongs to.
func (s *Selection) Title() string {
	return s.List
}

// Row returns the columns used when printing a selection.
func (s *Selection) Row() (string, string, string) {
	return s.Record.Primary, s.Record.Secondary, s.Created.Local().Format("2006-01-02 15:04")
}

func (s *Selection) String() string {
	return s.Record.String()
}
