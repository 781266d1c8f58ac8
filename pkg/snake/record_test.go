package snake

import (
	"testing"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/catalog"
)

func TestSearcher(t *testing.T) {
	matches := []app.Match{
		{Index: 0, Record: catalog.NewRecord("A. Dumbledore", "Hogwarts"), Label: "A. Dumbledore, Hogwarts"},
		{Index: 4, Record: catalog.NewRecord("V. Krum", "Durmstrang"), Label: "V. Krum, Durmstrang"},
	}
	s := Searcher(matches)

	tests := map[string]struct {
		input string
		want  []bool
	}{
		"empty":        {input: "", want: []bool{true, true}},
		"folded":       {input: "HOG", want: []bool{true, false}},
		"across parts": {input: "krum, d", want: []bool{false, true}},
		"padded":       {input: "  krum ", want: []bool{false, true}},
		"none":         {input: "gryffindor", want: []bool{false, false}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			for i, want := range tc.want {
				if got := s(tc.input, i); got != want {
					t.Errorf("item %d: got %v want %v", i, got, want)
				}
			}
		})
	}
}
