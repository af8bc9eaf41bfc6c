package tui

import (
	"fmt"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
)

// CatalogSection is one language's pattern definitions.
type CatalogSection struct {
	Language    domain.LanguageID          `json:"language"`
	Definitions []domain.PatternDefinition `json:"patterns"`
}

// RenderCatalog lists the pattern definitions of each section as a table.
func RenderCatalog(sections []CatalogSection) string {
	var b strings.Builder

	total := 0
	for _, s := range sections {
		total += len(s.Definitions)
	}
	title := headerStyle.Render("Pattern Catalog")
	stats := dimStyle.Render(fmt.Sprintf("%d languages  ·  %d patterns", len(sections), total))
	b.WriteString(boxStyle.Render(title + "\n\n" + stats))
	b.WriteString("\n\n")

	for _, s := range sections {
		b.WriteString("  " + titleStyle.Render(strings.ToUpper(string(s.Language))) + "\n")

		hdrLine := fmt.Sprintf("  %-24s %-14s %s", "Pattern", "Category", "Indicators")
		b.WriteString(titleStyle.Render(hdrLine) + "\n")
		b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 68)) + "\n")

		for _, def := range s.Definitions {
			ids := make([]string, len(def.Indicators))
			for i, ind := range def.Indicators {
				ids[i] = ind.ID
			}
			line := fmt.Sprintf("  %s %s %s",
				catNameStyle.Render(truncateOrPad(def.ID, 24)),
				dimStyle.Render(truncateOrPad(def.Category.Title(), 14)),
				faintStyle.Render(strings.Join(ids, ", ")))
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func truncateOrPad(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return padRight(s, width)
}
