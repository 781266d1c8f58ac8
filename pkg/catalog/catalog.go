package catalog

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"sort"
	"strings"
)

// ErrOutOfRange is returned when an index does not address a record in the
// current catalog state. Indices must not be held across mutations.
var ErrOutOfRange = errors.New("catalog: index out of range")

// Model owns an ordered list of records and answers the two queries a
// dropdown needs: what is at row i, and which rows match the typed text.
//
// A Model is meant to be driven from a single UI loop and is not safe for
// concurrent use.
type Model struct {
	entries []entry

	separator string
	policy    DuplicatePolicy
	compare   func(a, b Record) int
	log       *slog.Logger

	listeners []listener
	nextID    int
}

// entry caches the rendered and folded label next to each record so Matches
// does not re-render on every keystroke.
type entry struct {
	record Record
	label  string
	folded string
}

type listener struct {
	id int
	fn func(Change)
}

// New builds a Model from an initial list of records. The slice is copied.
func New(records []Record, opts ...Option) *Model {
	m := &Model{
		separator: DefaultSeparator,
		policy:    AllowDuplicates,
		compare:   Record.Compare,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.entries = make([]entry, 0, len(records))
	for _, r := range records {
		if m.policy == RejectDuplicates && m.IndexOf(r) >= 0 {
			m.log.Debug("catalog: dropping duplicate record", "record", r.String())
			continue
		}
		m.entries = append(m.entries, m.newEntry(r))
	}
	return m
}

func (m *Model) newEntry(r Record) entry {
	label := r.Label(m.separator)
	return entry{record: r, label: label, folded: strings.ToLower(label)}
}

// Size returns the number of records.
func (m *Model) Size() int {
	return len(m.entries)
}

// At returns the record at position i.
func (m *Model) At(i int) (Record, error) {
	if err := m.check(i); err != nil {
		return Record{}, err
	}
	return m.entries[i].record, nil
}

// LabelAt returns the display string for the record at position i.
func (m *Model) LabelAt(i int) (string, error) {
	if err := m.check(i); err != nil {
		return "", err
	}
	return m.entries[i].label, nil
}

func (m *Model) check(i int) error {
	if i < 0 || i >= len(m.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, len(m.entries))
	}
	return nil
}

// Append adds r to the end of the catalog. Existing positions never move.
// It reports whether r was added, which is always true unless the model
// rejects duplicates and an equal record is already present.
func (m *Model) Append(r Record) bool {
	if m.policy == RejectDuplicates && m.IndexOf(r) >= 0 {
		m.log.Debug("catalog: record already present, ignoring", "record", r.String())
		return false
	}
	m.entries = append(m.entries, m.newEntry(r))
	idx := len(m.entries) - 1
	m.log.Debug("catalog: added record", "index", idx, "record", r.String())
	m.notify(Change{Kind: ChangeInserted, Index: idx, Record: r})
	return true
}

// Remove deletes the record at position i and returns it. Later records
// shift down by one.
func (m *Model) Remove(i int) (Record, error) {
	if err := m.check(i); err != nil {
		return Record{}, err
	}
	r := m.entries[i].record
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	m.log.Debug("catalog: removed record", "index", i, "record", r.String())
	m.notify(Change{Kind: ChangeRemoved, Index: i, Record: r})
	return r, nil
}

// Sort orders the records ascending. Equal records keep their relative
// order. All previously obtained indices become stale.
func (m *Model) Sort() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.compare(m.entries[i].record, m.entries[j].record) < 0
	})
	m.notify(Change{Kind: ChangeSorted, Index: -1})
}

// Clear removes every record.
func (m *Model) Clear() {
	if len(m.entries) == 0 {
		return
	}
	m.entries = m.entries[:0]
	m.notify(Change{Kind: ChangeReset, Index: -1})
}

// Matches returns, in ascending order, the positions whose label contains
// query, ignoring case. An empty query matches everything. The result is a
// snapshot and is not updated by later mutations.
func (m *Model) Matches(query string) []int {
	out := make([]int, 0, len(m.entries))
	if query == "" {
		for i := range m.entries {
			out = append(out, i)
		}
		return out
	}
	q := strings.ToLower(query)
	for i, e := range m.entries {
		if strings.Contains(e.folded, q) {
			out = append(out, i)
		}
	}
	return out
}

// IndexOf returns the first position holding a record equal to r, or -1.
func (m *Model) IndexOf(r Record) int {
	for i, e := range m.entries {
		if e.record == r {
			return i
		}
	}
	return -1
}

// Records returns a copy of the current records in display order.
func (m *Model) Records() []Record {
	out := make([]Record, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.record
	}
	return out
}

// All iterates the current records with their positions. Mutating the model
// while iterating is not supported.
func (m *Model) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, e := range m.entries {
			if !yield(i, e.record) {
				return
			}
		}
	}
}

// Separator returns the string used to join record labels.
func (m *Model) Separator() string {
	return m.separator
}

// Subscribe registers fn to be called synchronously after every mutation.
// The returned func removes the subscription.
func (m *Model) Subscribe(fn func(Change)) (cancel func()) {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *Model) notify(c Change) {
	// Copy so a listener may cancel itself while being notified.
	ls := append([]listener(nil), m.listeners...)
	for _, l := range ls {
		l.fn(c)
	}
}
