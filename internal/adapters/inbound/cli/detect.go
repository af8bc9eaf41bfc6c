package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/patternscan/patternscan/internal/adapters/outbound/report"
	"github.com/patternscan/patternscan/internal/adapters/outbound/tui"
	"github.com/patternscan/patternscan/internal/application"
	"github.com/patternscan/patternscan/internal/domain"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatMermaid  = "mermaid"
)

func newDetectCmd(g *globals) *cobra.Command {
	var (
		patterns       []string
		format         string
		output         string
		verbose        bool
		maxFiles       int
		confidenceMode string
	)

	cmd := &cobra.Command{
		Use:   "detect [path]",
		Short: "Detect design patterns in a project",
		Long: "Scan a project's Go and Python sources for design patterns.\n\n" +
			"Settings come from .patternscan.yaml in the project root and PATTERNSCAN_* environment\n" +
			"variables; flags override both.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			switch format {
			case formatText, formatMarkdown, formatJSON, formatMermaid:
			default:
				return fmt.Errorf("unknown format %q (valid: text, markdown, json, mermaid)", format)
			}
			// A file gets a document, not terminal output.
			if output != "" && format == formatText {
				format = formatMarkdown
			}

			ov := application.Overrides{
				Patterns:       patterns,
				ConfidenceMode: domain.ConfidenceMode(confidenceMode),
			}
			if cmd.Flags().Changed("max-files") {
				ov.MaxFilesPerLanguage = &maxFiles
			}

			svc, err := newPatternService(g.logger)
			if err != nil {
				return err
			}
			rep, err := svc.AnalyzeProject(absPath, ov)
			if err != nil {
				return fmt.Errorf("detection failed: %w", err)
			}

			var doc []byte
			switch format {
			case formatText:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderAnalysis(rep, verbose))
				return nil
			case formatMarkdown:
				doc = []byte(report.Markdown(rep))
			case formatMermaid:
				doc = []byte(report.Mermaid(rep))
			case formatJSON:
				if doc, err = report.JSON(rep); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(doc)
				return err
			}
			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderAnalysis(rep, verbose))
			fmt.Fprintf(cmd.OutOrStdout(), "  Report written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&patterns, "patterns", nil, "Only detect these patterns (comma-separated, e.g. factory,singleton,observer)")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, markdown, json, mermaid")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List the top matches with code snippets")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "Maximum files analyzed per language (0 = unlimited)")
	cmd.Flags().StringVar(&confidenceMode, "confidence-mode", "", "Confidence mode: file or cumulative")

	return cmd
}
