package commands

import (
	"log/slog"
	"os"
	"strings"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/store"
)

// flagConfig layers command line flags over the config file.
type flagConfig struct {
	store.Config
	o *options.CatalogOptions
}

func (c flagConfig) CatalogPath() string {
	if c.o != nil && c.o.Catalog != "" {
		return c.o.Catalog
	}
	return c.Config.CatalogPath()
}

func (c flagConfig) Separator() string {
	if c.o != nil && c.o.Separator != "" {
		return c.o.Separator
	}
	return c.Config.Separator()
}

func (c flagConfig) Duplicates() string {
	if c.o != nil && c.o.Duplicates != "" {
		return c.o.Duplicates
	}
	return c.Config.Duplicates()
}

func (c flagConfig) SortCatalog() bool {
	return (c.o != nil && c.o.Sort) || c.Config.SortCatalog()
}

func (c flagConfig) Order() string {
	if c.o != nil && c.o.Order != "" {
		return c.o.Order
	}
	return c.Config.Order()
}

func (c flagConfig) LogLevel() string {
	if logLevel != "" {
		return logLevel
	}
	return c.Config.LogLevel()
}

func loadConfig(co *options.CatalogOptions) (store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return flagConfig{Config: cfg, o: co}, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// loadService builds the catalog and, when persist is set, opens the store.
func loadService(co *options.CatalogOptions, persist bool) (*app.Service, error) {
	cfg, err := loadConfig(co)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.LogLevel())

	c, err := app.LoadCatalog(cfg, log)
	if err != nil {
		return nil, err
	}
	svc := &app.Service{Catalog: c, Log: log}
	if persist {
		p, err := store.Load(cfg, store.WithLogger(log))
		if err != nil {
			return nil, err
		}
		svc.Persistence = p
	}
	return svc, nil
}

// loadStore opens the selection store without reading a catalog.
func loadStore() (*app.Service, error) {
	cfg, err := loadConfig(nil)
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg.LogLevel())
	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return &app.Service{Persistence: p, Log: log}, nil
}
