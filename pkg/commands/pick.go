package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/tui/app"
)

func addPick(topLevel *cobra.Command) {
	co := &options.CatalogOptions{}
	lo := &options.ListOptions{}

	cmd := &cobra.Command{
		Use:     "pick",
		Aliases: []string{"ui"},
		Short:   "open the interactive record picker",
		Long: options.Wrap80(`Open a terminal picker over the catalog. Type to narrow the records,
tab or the arrow keys move between matches, enter adds the highlighted record
to the list and ctrl+s sorts the catalog. The list on the right follows
changes made by other celexta processes.`),
		Example: `
celexta pick
celexta pick --list "GRB 250314A"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("pick needs a terminal, use \"celexta select\" instead")
			}
			svc, err := loadService(co, true)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), svc, lo.List)
		},
	}

	options.AddCatalogArgs(cmd, co)
	options.AddListArgs(cmd, lo)
	_ = cmd.RegisterFlagCompletionFunc("list", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
