// Package store persists selection lists on disk.
package store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/celexta/pkg/selection"
)

// Persistence defines the persistence contract for selection lists.
type Persistence interface {
	Lists(ctx context.Context, prefix string) []string
	List(ctx context.Context, list string) []*selection.Selection
	Store(s *selection.Selection) error
	Delete(s *selection.Selection) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option customises Load.
type Option func(*persistence)

// WithLogger routes store diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(p *persistence) {
		if l != nil {
			p.log = l
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

func (p *persistence) read(key string) (*selection.Selection, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	s := &selection.Selection{}
	if err := json.Unmarshal(val, s); err != nil {
		return nil, err
	}
	s.ID = keyToPathTransform(key).FileName
	return s, nil
}

func (p *persistence) List(ctx context.Context, list string) []*selection.Selection {
	lk := toList(list)
	all := make([]*selection.Selection, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); pk.Path[0] == lk {
			s, err := p.read(key)
			if err != nil {
				p.log.Warn("store: skipping unreadable selection", "key", key, "err", err)
				continue
			}
			all = append(all, s)
		}
	}
	sortSelections(all)
	return all
}

func (p *persistence) Lists(ctx context.Context, prefix string) []string {
	seen := make(map[string]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		name := fromList(keyToPathTransform(key).Path[0])
		if prefix == "" || strings.HasPrefix(name, prefix) {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) Store(s *selection.Selection) error {
	key, err := toKey(s)
	if err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", s.ID, err)
	}
	return nil
}

func (p *persistence) Delete(s *selection.Selection) error {
	if s.ID == "" {
		return errors.New("store: selection has no id")
	}
	key, err := toKey(s)
	if err != nil {
		return err
	}
	return p.d.Erase(key)
}

const layoutISO = "2006-01-02"

func sortSelections(all []*selection.Selection) {
	sort.SliceStable(all, func(i, j int) bool {
		lt := all[i].Created.Time
		rt := all[j].Created.Time
		if lt.Equal(rt) {
			return all[i].ID < all[j].ID
		}
		return lt.Before(rt)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `list-date-id`, assigning an id on first store. The date is
// the UTC day, since Created reads back from disk in UTC.
func toKey(s *selection.Selection) (string, error) {
	if strings.TrimSpace(s.List) == "" {
		return "", errors.New("store: selection list name required")
	}
	if s.ID == "" {
		b, err := json.Marshal(s)
		if err != nil {
			return "", err
		}
		id := md5.Sum(b)
		s.ID = fmt.Sprintf("%x", id[:8])
	}
	return fmt.Sprintf("%s-%s-%s", toList(s.List), s.Created.UTC().Format(layoutISO), s.ID), nil
}

// List names are hex encoded so they may contain the '-' key separator and
// '/' without leaking into the directory layout.
func toList(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromList(s string) string {
	list, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromList: %s", err)
	}
	return string(list)
}
