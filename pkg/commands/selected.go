package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/runner/selected"
	"tableflip.dev/celexta/pkg/runner/unselect"
)

func addSelected(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}
	all := false

	cmd := &cobra.Command{
		Use:   "selected",
		Short: "show the records in a selection list",
		Example: `
celexta selected
celexta selected --list "GRB 250314A" -k
celexta selected --all --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadStore()
			if err != nil {
				return output.HandleError(err)
			}
			s := selected.Selected{
				List:    lo.List,
				All:     all,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	_ = cmd.RegisterFlagCompletionFunc("list", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().BoolVar(&all, "all", false, "Show every selection list.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addUnselect(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}
	id := ""

	cmd := &cobra.Command{
		Use:     "unselect <selection id>",
		Aliases: []string{"remove", "rm"},
		Short:   "remove a record from a selection list",
		Example: `
celexta selected -k
celexta unselect 171dff69f8b99dca
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a selection id, see \"celexta selected --show-id\"")
			}
			id = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadStore()
			if err != nil {
				return output.HandleError(err)
			}
			u := unselect.Unselect{
				ID:      id,
				List:    lo.List,
				ShowID:  io.ShowID,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(u.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	_ = cmd.RegisterFlagCompletionFunc("list", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
