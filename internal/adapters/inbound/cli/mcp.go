package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/akeso/akeso/internal/adapters/inbound/mcp"
)

func newMCPCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the akeso MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(env))
	return cmd
}

func newMCPServeCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start akeso MCP server (stdio)",
		Long:  "Start the akeso MCP server using stdio transport. Assistants can scan manifests, preview repairs and read the configuration. Nothing is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := env.session()
			if err != nil {
				return err
			}
			s := mcpadapter.NewAkesoMCPServer(sess.workspace, version, sess.logger)
			return server.ServeStdio(s)
		},
	}
}
