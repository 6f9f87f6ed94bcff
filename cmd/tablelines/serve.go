package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tablelines/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdin/stdout",
		Long: `Run the MCP server over stdin/stdout.

The server speaks JSON-RPC 2.0, one request per line, and exposes the
table_* tools. Configure it in your MCP client as a stdio server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server.Version = Version
			slog.Debug("starting MCP server", "version", Version, "built", BuildTime, "commit", GitCommit)

			srv := server.New(a.config)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
