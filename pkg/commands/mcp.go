package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/celexta/pkg/commands/options"
	"tableflip.dev/celexta/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	co := &options.CatalogOptions{}
	mo := &options.MCPOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "serve the catalog to assistants over the Model Context Protocol",
		Long: options.Wrap80(`Serve the author catalog and the selection lists to an assistant. Tools
search the catalog, add records to a list and remove them again; the catalog
and every list are also readable as resources. Stdio suits assistants that
launch celexta themselves, http suits long running sessions.`),
		Example: `
celexta mcp
celexta mcp --transport http --addr :8765
celexta mcp --catalog ~/grb-authors.csv --sort
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, err := mcp.ParseTransport(mo.Transport)
			if err != nil {
				return err
			}
			svc, err := loadService(co, true)
			if err != nil {
				return err
			}
			r := mcp.Runner{
				Service:   svc,
				Version:   version,
				Transport: transport,
				Addr:      mo.Addr,
				Endpoint:  mo.Endpoint,
				CertFile:  mo.CertFile,
				KeyFile:   mo.KeyFile,
				Listening: func(url string) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "celexta mcp listening on %s\n", url)
				},
				Log: svc.Log,
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddCatalogArgs(cmd, co)
	options.AddMCPArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}
