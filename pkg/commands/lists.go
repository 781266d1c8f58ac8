package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/runner/lists"
)

func addLists(topLevel *cobra.Command) {
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "name every selection list",
		Example: `
celexta lists
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadStore()
			if err != nil {
				return output.HandleError(err)
			}
			l := lists.Lists{
				JSON:    output.JSON,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
