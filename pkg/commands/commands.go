package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/commands/options"
)

var (
	logLevel string
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "celexta",
		Short: options.Wrap80("Search reference catalogs and keep lists of the records you pick, such as the authors of a circular."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level, one of debug, info, warn or error. Overrides the config file.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAuthors(topLevel)
	addSelect(topLevel)
	addSelected(topLevel)
	addUnselect(topLevel)
	addLists(topLevel)
	addSurveys(topLevel)
	addPick(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
