// Package catalog holds the selectable record lists that back the author
// and survey dropdowns.
package catalog

import (
	"strings"
)

// DefaultSeparator joins the primary and secondary label of a Record.
const DefaultSeparator = ", "

// Record is one selectable catalog entry, e.g. an author and affiliation.
type Record struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

// NewRecord builds a Record from its two display fields.
func NewRecord(primary, secondary string) Record {
	return Record{Primary: primary, Secondary: secondary}
}

// Compare orders records by (Primary, Secondary) using byte-wise comparison,
// so "Z" sorts before "a".
func (r Record) Compare(o Record) int {
	if c := strings.Compare(r.Primary, o.Primary); c != 0 {
		return c
	}
	return strings.Compare(r.Secondary, o.Secondary)
}

// Less reports whether r sorts before o.
func (r Record) Less(o Record) bool {
	return r.Compare(o) < 0
}

// Label renders the record with sep between the two fields. The separator is
// dropped when either field is empty.
func (r Record) Label(sep string) string {
	switch {
	case r.Primary == "":
		return r.Secondary
	case r.Secondary == "":
		return r.Primary
	default:
		return r.Primary + sep + r.Secondary
	}
}

func (r Record) String() string {
	return r.Label(DefaultSeparator)
}

// CompareFold orders records case-insensitively, falling back to Compare
// for records that only differ in case.
func CompareFold(a, b Record) int {
	if c := strings.Compare(strings.ToLower(a.Primary), strings.ToLower(b.Primary)); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.Secondary), strings.ToLower(b.Secondary)); c != 0 {
		return c
	}
	return a.Compare(b)
}

// Contains reports whether label contains query, ignoring case. It is the
// predicate Matches applies to every label.
func Contains(label, query string) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(query))
}
