package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/selection"
)

// ListOptions selects the selection list a command works on.
type ListOptions struct {
	List string
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.List, "list", "l", selection.DefaultList,
		"Specify the selection list.")
}
