package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patternscan/patternscan/internal/adapters/outbound/config"
	"github.com/patternscan/patternscan/internal/adapters/outbound/gitinfo"
	"github.com/patternscan/patternscan/internal/adapters/outbound/parser"
	"github.com/patternscan/patternscan/internal/adapters/outbound/scanner"
	"github.com/patternscan/patternscan/internal/application"
	"github.com/patternscan/patternscan/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

// globals holds state shared by every subcommand once flags are parsed.
type globals struct {
	logLevel  string
	logFormat string
	logger    *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "patternscan",
		Short: "Detect design patterns in Go and Python code",
		Long: "patternscan scans a source tree for creational, structural, behavioral, architectural " +
			"and concurrency patterns and reports each finding with a confidence score.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Config{Level: g.logLevel, Format: g.logFormat}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
	}

	defaults := logging.DefaultConfig()
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", defaults.Level, "Log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", defaults.Format, "Log format: console or json")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDetectCmd(g))
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// newPatternService wires the filesystem, parsers, config and git adapters.
func newPatternService(logger *zap.Logger) (*application.PatternService, error) {
	registry, err := application.NewLanguageRegistry(parser.NewGoParser(), parser.NewPythonParser())
	if err != nil {
		return nil, err
	}
	fs := scanner.New()
	return application.NewPatternService(fs, fs, config.New(), gitinfo.New(), registry, logger), nil
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
