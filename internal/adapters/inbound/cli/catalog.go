package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patternscan/patternscan/internal/adapters/outbound/tui"
	"github.com/patternscan/patternscan/internal/domain"
	"github.com/patternscan/patternscan/internal/domain/catalog"
)

func newCatalogCmd() *cobra.Command {
	var (
		language   string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the built-in pattern definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs := catalog.Languages()
			if language != "" {
				langs = []domain.LanguageID{domain.LanguageID(language)}
			}

			sections := make([]tui.CatalogSection, 0, len(langs))
			for _, l := range langs {
				c, err := catalog.Builtin(l)
				if err != nil {
					return err
				}
				sections = append(sections, tui.CatalogSection{Language: l, Definitions: c.Definitions()})
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sections)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCatalog(sections))
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "Only list one language: go or python")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the catalog as JSON")

	return cmd
}
