package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/runner/authors"
)

func addAuthors(topLevel *cobra.Command) {
	co := &options.CatalogOptions{}
	io := &options.IDOptions{}
	output := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "authors [query]",
		Short: "search the author catalog",
		Long: options.Wrap80(`List the catalog records whose label contains the query, ignoring case.
Without a query the whole catalog is listed. Indices shown with --show-index
can be passed to "celexta select --index".`),
		Example: `
celexta authors
celexta authors hog --show-index
celexta authors --catalog ./consortium.csv --sort
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(co, false)
			if err != nil {
				return output.HandleError(err)
			}
			a := authors.Authors{
				Query:     strings.Join(args, " "),
				ShowIndex: io.ShowIndex,
				JSON:      output.JSON,
				Service:   svc,
				Out:       cmd.OutOrStdout(),
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddCatalogArgs(cmd, co)
	options.AddShowIndexArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
