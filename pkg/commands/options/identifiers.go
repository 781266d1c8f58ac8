package options

import (
	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID    bool
	ShowIndex bool
	Index     int
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each selection.")
}

func AddShowIndexArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowIndex, "show-index", "k", false,
		"Show the catalog index of each record.")
}

func AddIndexArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().IntVar(&o.Index, "index", 0,
		"Select the record at this catalog index instead of searching.")
}

// IndexArg returns the --index value, or nil when the flag was not given.
// Any given value is passed on as is, so a negative index fails as out of
// range instead of falling back to the query.
func (o *IDOptions) IndexArg(cmd *cobra.Command) *int {
	if f := cmd.Flags().Lookup("index"); f == nil || !f.Changed {
		return nil
	}
	i := o.Index
	return &i
}
