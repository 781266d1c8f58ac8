package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hogwarts() []Record {
	return []Record{
		NewRecord("A. Dumbledore", "Hogwarts"),
		NewRecord("S. Snape", "Hogwarts"),
		NewRecord("H. Potter", "Hogwarts"),
		NewRecord("V. Krum", "Durmstrang"),
	}
}

func allRecords(t *testing.T, m *Model) []Record {
	t.Helper()
	out := make([]Record, 0, m.Size())
	for i := 0; i < m.Size(); i++ {
		r, err := m.At(i)
		require.NoError(t, err)
		out = append(out, r)
	}
	return out
}

func TestScenario(t *testing.T) {
	m := New(hogwarts())

	assert.Equal(t, []int{0, 1, 2}, m.Matches("hog"))

	m.Sort()
	first, err := m.At(0)
	require.NoError(t, err)
	assert.Equal(t, NewRecord("A. Dumbledore", "Hogwarts"), first)
	last, err := m.At(3)
	require.NoError(t, err)
	assert.Equal(t, NewRecord("V. Krum", "Durmstrang"), last)

	assert.True(t, m.Append(NewRecord("", "")))
	m.Sort()
	first, err = m.At(0)
	require.NoError(t, err)
	assert.Equal(t, NewRecord("", ""), first)
}

func TestAppendPreservesOrder(t *testing.T) {
	m := New(nil)
	assert.Equal(t, 0, m.Size())

	want := make([]Record, 0, 20)
	for i := 0; i < 20; i++ {
		r := NewRecord(fmt.Sprintf("author-%02d", 19-i), "inst")
		want = append(want, r)
		require.True(t, m.Append(r))
		assert.Equal(t, i+1, m.Size())
		got, err := m.At(0)
		require.NoError(t, err)
		assert.Equal(t, want[0], got, "append must not shift earlier positions")
	}
	assert.Equal(t, want, allRecords(t, m))

	m.Clear()
	assert.Equal(t, 0, m.Size())
	m.Append(NewRecord("x", "y"))
	assert.Equal(t, 1, m.Size())
}

func TestAtOutOfRange(t *testing.T) {
	m := New(hogwarts())
	for _, idx := range []int{-1, 4, 100} {
		_, err := m.At(idx)
		assert.ErrorIs(t, err, ErrOutOfRange, "index %d", idx)
		_, err = m.LabelAt(idx)
		assert.ErrorIs(t, err, ErrOutOfRange, "index %d", idx)
	}
}

func TestClear(t *testing.T) {
	m := New(hogwarts())
	m.Clear()
	assert.Equal(t, 0, m.Size())
	_, err := m.At(0)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Empty(t, m.Matches(""))
	assert.NotNil(t, m.Matches(""))

	m.Clear()
	assert.Equal(t, 0, m.Size())
}

func TestSortOrdinalAndIdempotent(t *testing.T) {
	m := New([]Record{
		NewRecord("b", "x"),
		NewRecord("B", "x"),
		NewRecord("a", "z"),
		NewRecord("a", "Z"),
		NewRecord("A", ""),
	})
	m.Sort()
	once := allRecords(t, m)
	assert.Equal(t, []Record{
		NewRecord("A", ""),
		NewRecord("B", "x"),
		NewRecord("a", "Z"),
		NewRecord("a", "z"),
		NewRecord("b", "x"),
	}, once)

	m.Sort()
	assert.Equal(t, once, allRecords(t, m))
}

func TestSortIsStable(t *testing.T) {
	m := New(nil)
	dup := NewRecord("dup", "same")
	m.Append(NewRecord("zed", ""))
	m.Append(dup)
	m.Append(NewRecord("alpha", ""))
	m.Append(dup)

	m.Sort()
	assert.Equal(t, []Record{NewRecord("alpha", ""), dup, dup, NewRecord("zed", "")}, allRecords(t, m))
}

func TestSortRandomNonDecreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	letters := []string{"", "a", "B", "b", "Ab", "ab", "A"}
	records := make([]Record, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, NewRecord(letters[rng.Intn(len(letters))], letters[rng.Intn(len(letters))]))
	}
	m := New(records)
	m.Sort()
	got := allRecords(t, m)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Compare(got[i]), 0, "position %d", i)
	}
}

func TestMatchesIsCaseInsensitiveContains(t *testing.T) {
	m := New(hogwarts())

	tests := []struct {
		query string
		want  []int
	}{
		{query: "", want: []int{0, 1, 2, 3}},
		{query: "HOG", want: []int{0, 1, 2}},
		{query: "warts", want: []int{0, 1, 2}},
		{query: "krum", want: []int{3}},
		{query: "otte", want: []int{2}},
		{query: "dore, hog", want: []int{0}},
		{query: "s.", want: []int{1}},
		{query: "nobody", want: []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Matches(tc.query))
		})
	}
}

func TestMatchesAgreesWithLabels(t *testing.T) {
	m := New(append(hogwarts(), NewRecord("N. Tonks", ""), NewRecord("", "Beauxbatons")))
	for _, q := range []string{"o", "on", "TON", "x", "ba", "s", ", ", "hogwarts"} {
		got := m.Matches(q)
		var want []int
		for i := 0; i < m.Size(); i++ {
			label, err := m.LabelAt(i)
			require.NoError(t, err)
			if strings.Contains(strings.ToLower(label), strings.ToLower(q)) {
				want = append(want, i)
			}
		}
		if want == nil {
			want = []int{}
		}
		assert.Equal(t, want, got, "query %q", q)
	}
}

func TestMatchesIsSnapshot(t *testing.T) {
	m := New(hogwarts())
	got := m.Matches("hog")
	m.Append(NewRecord("R. Hagrid", "Hogwarts"))
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, []int{0, 1, 2, 4}, m.Matches("hog"))
}

func TestLabels(t *testing.T) {
	m := New([]Record{
		NewRecord("A. Dumbledore", "Hogwarts"),
		NewRecord("N. Tonks", ""),
		NewRecord("", "Durmstrang"),
		NewRecord("", ""),
	})
	want := []string{"A. Dumbledore, Hogwarts", "N. Tonks", "Durmstrang", ""}
	for i, w := range want {
		got, err := m.LabelAt(i)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	m = New(hogwarts(), WithSeparator(" | "))
	got, err := m.LabelAt(3)
	require.NoError(t, err)
	assert.Equal(t, "V. Krum | Durmstrang", got)
	assert.Equal(t, []int{}, m.Matches(", "))
}

func TestDuplicatePolicy(t *testing.T) {
	dup := NewRecord("", "")

	allow := New([]Record{dup, dup})
	assert.Equal(t, 2, allow.Size())
	assert.True(t, allow.Append(dup))
	assert.Equal(t, 3, allow.Size())

	reject := New([]Record{dup, dup, NewRecord("x", "")}, WithDuplicatePolicy(RejectDuplicates))
	assert.Equal(t, 2, reject.Size())
	assert.False(t, reject.Append(dup))
	assert.Equal(t, 2, reject.Size())
	assert.True(t, reject.Append(NewRecord("y", "")))
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, AllowDuplicates, p)

	p, err = ParseDuplicatePolicy(" Reject ")
	require.NoError(t, err)
	assert.Equal(t, RejectDuplicates, p)

	_, err = ParseDuplicatePolicy("dedupe")
	assert.Error(t, err)
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, OrderOrdinal, o)

	o, err = ParseOrder(" FOLD")
	require.NoError(t, err)
	assert.Equal(t, OrderFold, o)

	_, err = ParseOrder("reverse")
	assert.Error(t, err)
}

func TestSortWithFoldOrder(t *testing.T) {
	records := []Record{
		NewRecord("b. black", "Hogwarts"),
		NewRecord("A. Dumbledore", "Hogwarts"),
		NewRecord("a. abbott", "Hogwarts"),
		NewRecord("B. Bones", "Hogwarts"),
	}

	ordinal := New(records, WithCompare(OrderOrdinal.Compare()))
	ordinal.Sort()
	assert.Equal(t, []Record{records[1], records[3], records[2], records[0]}, ordinal.Records())

	fold := New(records, WithCompare(OrderFold.Compare()))
	fold.Sort()
	assert.Equal(t, []Record{records[2], records[1], records[0], records[3]}, fold.Records())
}

func TestRemoveAndIndexOf(t *testing.T) {
	m := New(hogwarts())
	assert.Equal(t, 2, m.IndexOf(NewRecord("H. Potter", "Hogwarts")))
	assert.Equal(t, -1, m.IndexOf(NewRecord("H. Potter", "Gryffindor")))

	r, err := m.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, NewRecord("S. Snape", "Hogwarts"), r)
	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 1, m.IndexOf(NewRecord("H. Potter", "Hogwarts")))

	_, err = m.Remove(3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestCompareFold(t *testing.T) {
	m := New([]Record{
		NewRecord("b", ""),
		NewRecord("B", ""),
		NewRecord("a", ""),
	}, WithCompare(CompareFold))
	m.Sort()
	assert.Equal(t, []Record{NewRecord("a", ""), NewRecord("B", ""), NewRecord("b", "")}, allRecords(t, m))
}

func TestSubscribe(t *testing.T) {
	m := New(hogwarts())
	var got []Change
	cancel := m.Subscribe(func(c Change) { got = append(got, c) })

	m.Append(NewRecord("R. Hagrid", "Hogwarts"))
	_, _ = m.Remove(0)
	m.Sort()
	m.Clear()
	m.Clear()

	require.Len(t, got, 4)
	assert.Equal(t, Change{Kind: ChangeInserted, Index: 4, Record: NewRecord("R. Hagrid", "Hogwarts")}, got[0])
	assert.Equal(t, Change{Kind: ChangeRemoved, Index: 0, Record: NewRecord("A. Dumbledore", "Hogwarts")}, got[1])
	assert.Equal(t, ChangeSorted, got[2].Kind)
	assert.Equal(t, ChangeReset, got[3].Kind)

	cancel()
	m.Append(NewRecord("x", ""))
	assert.Len(t, got, 4)
}

func TestSubscribeCancelDuringNotify(t *testing.T) {
	m := New(nil)
	calls := 0
	var cancel func()
	cancel = m.Subscribe(func(Change) {
		calls++
		cancel()
	})
	m.Append(NewRecord("a", ""))
	m.Append(NewRecord("b", ""))
	assert.Equal(t, 1, calls)
}

func TestNewCopiesInput(t *testing.T) {
	in := hogwarts()
	m := New(in)
	in[0] = NewRecord("changed", "")
	r, err := m.At(0)
	require.NoError(t, err)
	assert.Equal(t, "A. Dumbledore", r.Primary)

	out := m.Records()
	out[1] = NewRecord("changed", "")
	r, err = m.At(1)
	require.NoError(t, err)
	assert.Equal(t, "S. Snape", r.Primary)
}

func TestAllStopsEarly(t *testing.T) {
	m := New(hogwarts())
	var seen []int
	for i := range m.All() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestContainsAgreesWithMatches(t *testing.T) {
	m := New([]Record{NewRecord("A. Dumbledore", "Hogwarts"), NewRecord("V. Krum", "Durmstrang")})
	for _, q := range []string{"", "hog", "KRUM", ", d", "zzz"} {
		var want []int
		for i := 0; i < m.Size(); i++ {
			label, err := m.LabelAt(i)
			require.NoError(t, err)
			if Contains(label, q) {
				want = append(want, i)
			}
		}
		got := m.Matches(q)
		if len(want) == 0 {
			assert.Empty(t, got, q)
			continue
		}
		assert.Equal(t, want, got, q)
	}
}
