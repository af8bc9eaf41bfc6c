// Package report renders analysis reports as Markdown, JSON and Mermaid.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
)

// Markdown renders rep in the layout of the classic pattern analysis report:
// overview, category distribution, matches grouped by consecutive category,
// then recommendations.
func Markdown(rep *domain.Report) string {
	var b strings.Builder
	res := rep.AnalysisResult

	b.WriteString("# Design Pattern Analysis Report\n\n")
	b.WriteString("## Overview\n\n")
	if rep.Project != "" {
		fmt.Fprintf(&b, "- **Project**: %s\n", rep.Project)
	}
	if rep.Commit != "" {
		fmt.Fprintf(&b, "- **Commit**: %s\n", shortCommit(rep.Commit))
	}
	fmt.Fprintf(&b, "- **Total patterns**: %d\n", res.TotalPatterns)
	fmt.Fprintf(&b, "- **Pattern types**: %d\n\n", len(res.PatternsByType))

	if len(res.PatternsByType) > 0 {
		b.WriteString("## Pattern Type Distribution\n\n")
		for _, c := range orderedCategories(res.PatternsByType) {
			fmt.Fprintf(&b, "- **%s**: %d\n", c.Title(), res.PatternsByType[c])
		}
		b.WriteString("\n")
	}

	if len(res.Matches) > 0 {
		b.WriteString("## Detected Patterns\n\n")
		var current domain.Category
		for _, m := range res.Matches {
			if m.Category != current {
				current = m.Category
				fmt.Fprintf(&b, "### %s Patterns\n\n", current.Title())
			}
			fmt.Fprintf(&b, "#### %s\n\n", m.Name)
			fmt.Fprintf(&b, "- **Description**: %s\n", m.Description)
			fmt.Fprintf(&b, "- **File**: %s\n", m.FilePath)
			fmt.Fprintf(&b, "- **Line**: %d\n", m.Line)
			fmt.Fprintf(&b, "- **Confidence**: %.2f\n", m.Confidence)
			fmt.Fprintf(&b, "- **Indicators**: %s\n\n", strings.Join(m.Indicators, ", "))
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", m.Language, m.Snippet)
		}
	}

	if len(res.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for _, r := range res.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
		b.WriteString("\n")
	}

	if len(res.Skipped) > 0 {
		b.WriteString("## Skipped Files\n\n")
		for _, s := range res.Skipped {
			fmt.Fprintf(&b, "- `%s`: %s\n", s.Path, s.Reason)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// orderedCategories returns the categories of counts in canonical order,
// followed by any unknown ones sorted by name.
func orderedCategories(counts map[domain.Category]int) []domain.Category {
	var out []domain.Category
	for _, c := range domain.Categories {
		if counts[c] > 0 {
			out = append(out, c)
		}
	}
	var extra []domain.Category
	for c, n := range counts {
		if n > 0 && !c.Valid() {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func shortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
