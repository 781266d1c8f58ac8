package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/app"
	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/runner/choose"
	"tableflip.dev/celexta/pkg/snake"
)

func addSelect(topLevel *cobra.Command) {
	co := &options.CatalogOptions{}
	lo := &options.ListOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "select [query]",
		Aliases: []string{"add"},
		Short:   "add a catalog record to a selection list",
		Long: options.Wrap80(`Add a catalog record to a selection list. The record is named by --index,
or by a query that matches exactly one record. With --interactive a
searchable prompt offers every match. Selecting a record that is already in
the list leaves the list unchanged.`),
		Example: `
celexta select krum
celexta select --index 3 --list "GRB 250314A"
celexta select hog -i
`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return recordCompletions(co, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(co, true)
			if err != nil {
				return output.HandleError(err)
			}
			c := choose.Choose{
				List:    lo.List,
				Query:   strings.Join(args, " "),
				Index:   io.IndexArg(cmd),
				JSON:    output.JSON,
				ShowID:  io.ShowID,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			if i.Interactive {
				c.Prompt = func(matches []app.Match) (int, error) {
					return snake.PromptRecord(cmd, "Record", matches)
				}
			}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddCatalogArgs(cmd, co)
	options.AddListArgs(cmd, lo)
	_ = cmd.RegisterFlagCompletionFunc("list", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return listCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddIndexArgs(cmd, io)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

// recordCompletions offers the quoted labels of the records matching
// toComplete.
func recordCompletions(co *options.CatalogOptions, toComplete string) []string {
	svc, err := loadService(co, false)
	if err != nil {
		return nil
	}
	matches, err := svc.Search(strings.Trim(toComplete, `"'`))
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, strconv.Quote(m.Label))
	}
	return out
}
