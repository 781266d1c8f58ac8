package app

import (
	"log/slog"

	"tableflip.dev/celexta/pkg/catalog"
	"tableflip.dev/celexta/pkg/reference"
	"tableflip.dev/celexta/pkg/store"
)

// LoadCatalog reads the reference list named by cfg, or the built-in
// author list when none is configured, and builds the selector for it. The
// configured order applies to every later Sort too. The catalog is fully
// populated before it is returned.
func LoadCatalog(cfg store.Config, log *slog.Logger) (*catalog.Model, error) {
	policy, err := catalog.ParseDuplicatePolicy(cfg.Duplicates())
	if err != nil {
		return nil, err
	}
	order, err := catalog.ParseOrder(cfg.Order())
	if err != nil {
		return nil, err
	}

	var records []catalog.Record
	if path := cfg.CatalogPath(); path != "" {
		records, err = reference.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		records = reference.Default()
	}

	opts := []catalog.Option{
		catalog.WithDuplicatePolicy(policy),
		catalog.WithCompare(order.Compare()),
		catalog.WithLogger(log),
	}
	if sep := cfg.Separator(); sep != "" {
		opts = append(opts, catalog.WithSeparator(sep))
	}
	m := catalog.New(records, opts...)
	if cfg.SortCatalog() {
		m.Sort()
	}
	if log != nil {
		log.Debug("app: catalog loaded", "records", m.Size(), "source", cfg.CatalogPath())
	}
	return m, nil
}
