package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/patternscan/patternscan/internal/application"
)

// NewPatternScanMCPServer creates an MCP server exposing pattern detection
// and the pattern catalog. Relative paths in tool arguments are resolved
// against projectPath.
func NewPatternScanMCPServer(projectPath, version string, svc *application.PatternService) *server.MCPServer {
	s := server.NewMCPServer(
		"patternscan",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, svc)
	registerResources(s, projectPath, svc)

	return s
}
