package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/selection"
)

func init() {
	color.NoColor = true
}

func TestMatchesWithIndex(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{ShowIndex: true, Out: &buf}
	pp.Matches([]app.Match{
		{Index: 0, Record: catalog.NewRecord("A. Dumbledore", "Hogwarts")},
		{Index: 3, Record: catalog.NewRecord("V. Krum", "Durmstrang")},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "3") || !strings.Contains(lines[1], "Durmstrang") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestMatchesNone(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Matches(nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestSelectionsShowID(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{ShowID: true, Out: &buf}
	s := selection.New("authors", catalog.NewRecord("H. Potter", "Hogwarts"))
	s.ID = "171dff69f8b99dca"
	pp.Selections([]*selection.Selection{s})
	if !strings.HasPrefix(buf.String(), "171dff69f8b99dca") {
		t.Fatalf("expected id column first, got %q", buf.String())
	}
}

func TestTitleWithCount(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.TitleWithCount("authors", 1, "record")
	pp.TitleWithCount("authors", 2, "record")
	want := "authors - 1 record\nauthors - 2 records\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestHighlightWithoutColor(t *testing.T) {
	pp := PrettyPrint{Highlight: "HOG"}
	m := app.Match{Record: catalog.NewRecord("H. Potter", "Hogwarts"), Label: "H. Potter, Hogwarts"}
	if p, s := pp.highlight(m); p != "H. Potter" || s != "Hogwarts" {
		t.Fatalf("expected columns unchanged without color, got %q %q", p, s)
	}
}

func TestHighlight(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()
	h := color.New(color.FgHiGreen, color.Bold)

	potter := catalog.NewRecord("H. Potter", "Hogwarts")
	tests := map[string]struct {
		query        string
		match        app.Match
		primary, sec string
	}{
		"primary": {
			query:   "pot",
			match:   app.Match{Record: potter, Label: "H. Potter, Hogwarts"},
			primary: "H. " + h.Sprint("Pot") + "ter",
			sec:     "Hogwarts",
		},
		"secondary": {
			query:   "WARTS",
			match:   app.Match{Record: potter, Label: "H. Potter, Hogwarts"},
			primary: "H. Potter",
			sec:     "Hog" + h.Sprint("warts"),
		},
		"across the separator": {
			query:   "potter, hog",
			match:   app.Match{Record: potter, Label: "H. Potter, Hogwarts"},
			primary: "H. " + h.Sprint("Potter"),
			sec:     h.Sprint("Hog") + "warts",
		},
		"separator only": {
			query:   ", ",
			match:   app.Match{Record: potter, Label: "H. Potter, Hogwarts"},
			primary: "H. Potter",
			sec:     "Hogwarts",
		},
		"secondary only record": {
			query:   "hog",
			match:   app.Match{Record: catalog.NewRecord("", "Hogwarts"), Label: "Hogwarts"},
			primary: "",
			sec:     h.Sprint("Hog") + "warts",
		},
		"no match": {
			query:   "krum",
			match:   app.Match{Record: potter, Label: "H. Potter, Hogwarts"},
			primary: "H. Potter",
			sec:     "Hogwarts",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			pp := PrettyPrint{Highlight: tc.query}
			p, s := pp.highlight(tc.match)
			if p != tc.primary || s != tc.sec {
				t.Fatalf("got %q %q, want %q %q", p, s, tc.primary, tc.sec)
			}
		})
	}
}

func TestWithIDs(t *testing.T) {
	s := selection.New("authors", catalog.NewRecord("H. Potter", "Hogwarts"))
	s.ID = "abc"
	var buf bytes.Buffer
	if err := JSON(&buf, WithIDs(s)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"id": "abc"`) || !strings.Contains(buf.String(), `"list": "authors"`) {
		t.Fatalf("unexpected json %s", buf.String())
	}
}
