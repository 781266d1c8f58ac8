package catalog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Option customises a Model at construction.
type Option func(*Model)

// DuplicatePolicy decides whether equal records may coexist in a catalog.
type DuplicatePolicy string

const (
	// AllowDuplicates keeps every appended record, equal or not.
	AllowDuplicates DuplicatePolicy = "allow"
	// RejectDuplicates ignores records equal to one already present.
	RejectDuplicates DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy converts a config value to a DuplicatePolicy. An
// empty value means AllowDuplicates.
func ParseDuplicatePolicy(raw string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return AllowDuplicates, nil
	case AllowDuplicates, RejectDuplicates:
		return p, nil
	default:
		return AllowDuplicates, fmt.Errorf("catalog: unknown duplicate policy %q", raw)
	}
}

// Order names the ordering Sort applies.
type Order string

const (
	// OrderOrdinal compares byte-wise, primary then secondary.
	OrderOrdinal Order = "ordinal"
	// OrderFold ignores case, see CompareFold.
	OrderFold Order = "fold"
)

// ParseOrder converts a config value to an Order. An empty value means
// OrderOrdinal.
func ParseOrder(raw string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(raw))); o {
	case "":
		return OrderOrdinal, nil
	case OrderOrdinal, OrderFold:
		return o, nil
	default:
		return OrderOrdinal, fmt.Errorf("catalog: unknown order %q", raw)
	}
}

// Compare returns the comparison function for o.
func (o Order) Compare() func(a, b Record) int {
	if o == OrderFold {
		return CompareFold
	}
	return Record.Compare
}

// WithDuplicatePolicy sets how equal records are treated.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(m *Model) {
		if p != "" {
			m.policy = p
		}
	}
}

// WithSeparator sets the string placed between primary and secondary labels.
func WithSeparator(sep string) Option {
	return func(m *Model) {
		m.separator = sep
	}
}

// WithCompare replaces the ordering used by Sort.
func WithCompare(cmp func(a, b Record) int) Option {
	return func(m *Model) {
		if cmp != nil {
			m.compare = cmp
		}
	}
}

// WithLogger routes mutation debug logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}
