package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath      = "~/.celexta.db"
	defaultSeparator = ", "
)

// Config carries the settings shared by the store, the catalog loader and
// the command line.
type Config interface {
	BasePath() string
	CatalogPath() string
	Separator() string
	Duplicates() string
	SortCatalog() bool
	Order() string
	LogLevel() string
}

// LoadConfig reads .celexta.yaml from $CELEXTA_CONFIG_PATH, the working
// directory or $HOME, then applies CELEXTA_* environment overrides. A
// missing config file is not an error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("catalog", "")
	v.SetDefault("separator", defaultSeparator)
	v.SetDefault("duplicates", "allow")
	v.SetDefault("sort", false)
	v.SetDefault("order", "ordinal")
	v.SetDefault("log-level", "warn")

	v.SetConfigName(".celexta")
	v.SetEnvPrefix("CELEXTA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("CELEXTA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	catalogPath, err := homedir.Expand(v.GetString("catalog"))
	if err != nil {
		return nil, fmt.Errorf("store: expand catalog path: %w", err)
	}

	return &fileConfig{
		Path:      base,
		Catalog:   catalogPath,
		Sep:       v.GetString("separator"),
		Duplicate: v.GetString("duplicates"),
		Sort:      v.GetBool("sort"),
		Ordering:  v.GetString("order"),
		Level:     v.GetString("log-level"),
	}, nil
}

type fileConfig struct {
	Path      string `json:"path"`
	Catalog   string `json:"catalog"`
	Sep       string `json:"separator"`
	Duplicate string `json:"duplicates"`
	Sort      bool   `json:"sort"`
	Ordering  string `json:"order"`
	Level     string `json:"log-level"`
}

func (f *fileConfig) BasePath() string    { return f.Path }
func (f *fileConfig) CatalogPath() string { return f.Catalog }
func (f *fileConfig) Separator() string   { return f.Sep }
func (f *fileConfig) Duplicates() string  { return f.Duplicate }
func (f *fileConfig) SortCatalog() bool   { return f.Sort }
func (f *fileConfig) Order() string       { return f.Ordering }
func (f *fileConfig) LogLevel() string    { return f.Level }
