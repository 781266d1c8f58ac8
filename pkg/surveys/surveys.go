// Package surveys lists the imaging surveys a finding chart can be drawn
// from, together with the photometric filters each one offers.
package surveys

import (
	"tableflip.dev/celexta/pkg/catalog"
)

// Survey is one imaging survey and its filters.
type Survey struct {
	Name    string
	Filters []string
}

var known = []Survey{
	{Name: "Legacy Survey DR10", Filters: []string{"g", "r", "i", "z"}},
	{Name: "Pan-STARRS DR2", Filters: []string{"g", "r", "i", "z", "y"}},
	{Name: "Gaia DR3"},
}

// All returns the known surveys in display order.
func All() []Survey {
	out := make([]Survey, len(known))
	for i, s := range known {
		out[i] = Survey{Name: s.Name, Filters: append([]string(nil), s.Filters...)}
	}
	return out
}

// Filters returns the filters offered by the named survey, or nil if the
// survey is unknown or has none.
func Filters(name string) []string {
	for _, s := range known {
		if s.Name == name {
			return append([]string(nil), s.Filters...)
		}
	}
	return nil
}

// Catalog builds a selector of (survey, filter) pairs. A survey without
// filters contributes a single record with an empty filter.
func Catalog(opts ...catalog.Option) *catalog.Model {
	var records []catalog.Record
	for _, s := range known {
		if len(s.Filters) == 0 {
			records = append(records, catalog.NewRecord(s.Name, ""))
			continue
		}
		for _, f := range s.Filters {
			records = append(records, catalog.NewRecord(s.Name, f))
		}
	}
	return catalog.New(records, append([]catalog.Option{catalog.WithSeparator(" / ")}, opts...)...)
}
