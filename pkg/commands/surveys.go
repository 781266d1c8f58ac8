package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/runner/surveys"
)

func addSurveys(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	output := &options.OutputOptions{}
	sort := false
	survey := ""

	cmd := &cobra.Command{
		Use:   "surveys [query]",
		Short: "search the survey filter bands",
		Example: `
celexta surveys
celexta surveys pan-starrs
celexta surveys --survey "Gaia DR3"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := surveys.Surveys{
				Query:     strings.Join(args, " "),
				Survey:    survey,
				Sort:      sort,
				ShowIndex: io.ShowIndex,
				JSON:      output.JSON,
				Out:       cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&sort, "sort", false, "Sort by survey then filter.")
	cmd.Flags().StringVar(&survey, "survey", "", "List the filters of this survey only.")
	options.AddShowIndexArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
