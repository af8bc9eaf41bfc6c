package cli

import (
	mcpadapter "github.com/patternscan/patternscan/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the patternscan MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globals) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start patternscan MCP server (stdio)",
		Long:  "Start the patternscan MCP server using stdio transport, exposing pattern detection and the pattern catalog to AI coding assistants.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			svc, err := newPatternService(g.logger)
			if err != nil {
				return err
			}
			s := mcpadapter.NewPatternScanMCPServer(projectPath, version, svc)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
