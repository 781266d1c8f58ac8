// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// CatalogOptions override the catalog settings from the config file.
type CatalogOptions struct {
	Catalog    string
	Separator  string
	Duplicates string
	Sort       bool
	Order      string
}

// AddCatalogArgs wires catalog source flags on the provided command.
func AddCatalogArgs(cmd *cobra.Command, o *CatalogOptions) {
	cmd.Flags().StringVar(&o.Catalog, "catalog", "",
		Wrap80("Reference list to load the catalog from (csv, tsv, json, yaml or toml). Defaults to the built-in author list."))
	cmd.Flags().StringVar(&o.Separator, "separator", "",
		"Separator placed between the two parts of a label.")
	cmd.Flags().StringVar(&o.Duplicates, "duplicates", "",
		`Duplicate policy, one of "allow" or "reject".`)
	cmd.Flags().BoolVar(&o.Sort, "sort", false,
		"Sort the catalog before searching.")
	cmd.Flags().StringVar(&o.Order, "order", "",
		`Ordering used by --sort, one of "ordinal" or "fold" (ignore case).`)
}
