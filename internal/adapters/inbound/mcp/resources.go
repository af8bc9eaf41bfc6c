package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/patternscan/patternscan/internal/adapters/outbound/report"
	"github.com/patternscan/patternscan/internal/application"
)

const (
	catalogURI = "patternscan://catalog"
	reportURI  = "patternscan://report"
)

func registerResources(s *server.MCPServer, projectPath string, svc *application.PatternService) {
	s.AddResource(
		mcplib.NewResource(
			catalogURI,
			"Pattern Catalog",
			mcplib.WithResourceDescription("Built-in pattern definitions for every supported language"),
			mcplib.WithMIMEType("application/json"),
		),
		handleCatalogResource(svc),
	)

	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Pattern Report",
			mcplib.WithResourceDescription("Design patterns detected in the project, using its .patternscan.yaml settings"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath, svc),
	)
}

func handleCatalogResource(svc *application.PatternService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(catalogEntries(svc, ""), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling catalog: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{URI: catalogURI, MIMEType: "application/json", Text: string(data)},
		}, nil
	}
}

func handleReportResource(projectPath string, svc *application.PatternService) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		rep, err := svc.AnalyzeProject(projectPath, application.Overrides{})
		if err != nil {
			return nil, fmt.Errorf("detection failed: %w", err)
		}
		data, err := report.JSON(rep)
		if err != nil {
			return nil, fmt.Errorf("marshaling report: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{URI: reportURI, MIMEType: "application/json", Text: string(data)},
		}, nil
	}
}
