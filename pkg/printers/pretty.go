package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/selection"
)

// PrettyPrint writes colored, column aligned listings.
type PrettyPrint struct {
	ShowIndex bool
	ShowID    bool
	// Highlight marks the matched part of each label.
	Highlight string
	Out       io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	return Writer(pp.Out)
}

// Writer returns w, or the color aware stdout when w is nil.
func Writer(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

// Matches prints catalog search results.
func (pp *PrettyPrint) Matches(matches []app.Match) {
	if len(matches) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, m := range matches {
		primary, secondary := pp.highlight(m)
		if pp.ShowIndex {
			tbl.AddRow(y.Sprint(strconv.Itoa(m.Index)), primary, secondary)
		} else {
			tbl.AddRow(primary, secondary)
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Selections prints the records of a selection list.
func (pp *PrettyPrint) Selections(all []*selection.Selection) {
	if len(all) == 0 {
		pp.none()
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, s := range all {
		primary, secondary, created := s.Row()
		if pp.ShowID {
			tbl.AddRow(y.Sprint(s.ID), primary, secondary, f.Sprint(created))
		} else {
			tbl.AddRow(primary, secondary, f.Sprint(created))
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Names prints one name per line.
func (pp *PrettyPrint) Names(names []string) {
	if len(names) == 0 {
		pp.none()
		return
	}
	for _, n := range names {
		_, _ = fmt.Fprintln(pp.out(), n)
	}
}

// highlight marks the first case-insensitive occurrence of pp.Highlight in
// the rendered label, the text the catalog matched, and returns the primary
// and secondary columns with their covered parts marked. A match spanning
// the separator marks the end of one column and the start of the other.
func (pp *PrettyPrint) highlight(m app.Match) (string, string) {
	p, s := m.Record.Primary, m.Record.Secondary
	label := m.Label
	if pp.Highlight == "" || !strings.HasPrefix(label, p) || !strings.HasSuffix(label, s) {
		return p, s
	}
	lower := strings.ToLower(label)
	if len(lower) != len(label) {
		// Case folding changed byte offsets; leave the label alone.
		return p, s
	}
	q := strings.ToLower(pp.Highlight)
	i := strings.Index(lower, q)
	if i < 0 {
		return p, s
	}
	offset := len(label) - len(s)
	return mark(p, i, i+len(q)), mark(s, i-offset, i+len(q)-offset)
}

// mark wraps s[from:to], clamped to s.
func mark(s string, from, to int) string {
	from, to = max(from, 0), min(to, len(s))
	if from >= to {
		return s
	}
	h := color.New(color.FgHiGreen, color.Bold)
	return s[:from] + h.Sprint(s[from:to]) + s[to:]
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

type selectionJSON struct {
	ID string `json:"id"`
	*selection.Selection
}

// WithIDs exposes the storage id of each selection for JSON output.
func WithIDs(all ...*selection.Selection) []interface{} {
	out := make([]interface{}, 0, len(all))
	for _, s := range all {
		out = append(out, selectionJSON{ID: s.ID, Selection: s})
	}
	return out
}
