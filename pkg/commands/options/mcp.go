package options

import (
	"github.com/spf13/cobra"
)

// MCPOptions configure how the MCP server is exposed.
type MCPOptions struct {
	Transport string
	Addr      string
	Endpoint  string
	CertFile  string
	KeyFile   string
}

func AddMCPArgs(cmd *cobra.Command, o *MCPOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "stdio",
		`How clients connect, "stdio" or "http".`)
	cmd.Flags().StringVar(&o.Addr, "addr", "127.0.0.1:8080",
		"Listen address for --transport http. Port 0 picks a free port.")
	cmd.Flags().StringVar(&o.Endpoint, "endpoint", "/mcp",
		"URL path of the http endpoint.")
	cmd.Flags().StringVar(&o.CertFile, "tls-cert", "",
		"Certificate file; serves https together with --tls-key.")
	cmd.Flags().StringVar(&o.KeyFile, "tls-key", "",
		"Private key file for --tls-cert.")
}
