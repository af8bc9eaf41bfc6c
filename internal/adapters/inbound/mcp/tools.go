package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/patternscan/patternscan/internal/adapters/outbound/report"
	"github.com/patternscan/patternscan/internal/application"
	"github.com/patternscan/patternscan/internal/domain"
)

func registerTools(s *server.MCPServer, projectPath string, svc *application.PatternService) {
	s.AddTool(
		mcplib.NewTool("patternscan_detect",
			mcplib.WithDescription("Detect design patterns in a project and return the analysis report"),
			mcplib.WithString("path", mcplib.Description("Directory to analyze, relative to the server's project (default: the project root)")),
			mcplib.WithString("patterns", mcplib.Description("Comma-separated pattern names to restrict detection to, e.g. factory,singleton")),
			mcplib.WithString("format", mcplib.Description("Output format: json, markdown or mermaid (default: json)")),
			mcplib.WithString("confidence_mode", mcplib.Description("Confidence mode: file or cumulative")),
			mcplib.WithNumber("max_files", mcplib.Description("Maximum files analyzed per language (0 = unlimited)")),
		),
		handleDetect(projectPath, svc),
	)

	s.AddTool(
		mcplib.NewTool("patternscan_list_patterns",
			mcplib.WithDescription("List the built-in pattern definitions with their categories and indicators"),
			mcplib.WithString("language", mcplib.Description("Only list one language: go or python")),
		),
		handleListPatterns(svc),
	)
}

func handleDetect(projectPath string, svc *application.PatternService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		target := resolvePath(projectPath, request.GetString("path", ""))

		ov := application.Overrides{
			ConfidenceMode: domain.ConfidenceMode(request.GetString("confidence_mode", "")),
		}
		if p := request.GetString("patterns", ""); p != "" {
			ov.Patterns = strings.Split(p, ",")
		}
		if _, ok := request.GetArguments()["max_files"]; ok {
			n := request.GetInt("max_files", 0)
			ov.MaxFilesPerLanguage = &n
		}

		rep, err := svc.AnalyzeProject(target, ov)
		if err != nil {
			return errorResult(fmt.Sprintf("detection failed: %v", err)), nil
		}

		switch format := request.GetString("format", "json"); format {
		case "json":
			data, err := report.JSON(rep)
			if err != nil {
				return nil, fmt.Errorf("encoding report: %w", err)
			}
			return textResult(string(data)), nil
		case "markdown", "md":
			return textResult(report.Markdown(rep)), nil
		case "mermaid":
			return textResult(report.Mermaid(rep)), nil
		default:
			return errorResult(fmt.Sprintf("unknown format %q (valid: json, markdown, mermaid)", format)), nil
		}
	}
}

// catalogEntry is the wire form of one language's definitions.
type catalogEntry struct {
	Language    domain.LanguageID          `json:"language"`
	Extensions  []string                   `json:"extensions"`
	Definitions []domain.PatternDefinition `json:"patterns"`
}

func catalogEntries(svc *application.PatternService, language string) []catalogEntry {
	var out []catalogEntry
	for _, l := range svc.Registry().Languages() {
		if language != "" && string(l.ID) != language {
			continue
		}
		out = append(out, catalogEntry{
			Language:    l.ID,
			Extensions:  l.Extensions,
			Definitions: l.Catalog.Definitions(),
		})
	}
	return out
}

func handleListPatterns(svc *application.PatternService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		language := request.GetString("language", "")
		entries := catalogEntries(svc, language)
		if len(entries) == 0 {
			return errorResult(fmt.Sprintf("unsupported language %q (valid: go, python)", language)), nil
		}
		return jsonResult(entries)
	}
}

func resolvePath(projectPath, p string) string {
	if p == "" {
		return projectPath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectPath, p)
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return textResult(string(data)), nil
}

func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
