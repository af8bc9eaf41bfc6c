package report

import (
	"fmt"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
)

// Mermaid renders two diagrams as fenced Markdown blocks: a pie chart of
// matches per category and a flowchart from each category to the patterns
// found in it.
func Mermaid(rep *domain.Report) string {
	res := rep.AnalysisResult
	var b strings.Builder

	title := "Detected patterns"
	if rep.Project != "" {
		title += " in " + rep.Project
	}

	b.WriteString("```mermaid\n")
	fmt.Fprintf(&b, "pie title %s\n", escapeLabel(title))
	for _, c := range orderedCategories(res.PatternsByType) {
		fmt.Fprintf(&b, "    %q : %d\n", c.Title(), res.PatternsByType[c])
	}
	b.WriteString("```\n\n")

	b.WriteString("```mermaid\n")
	b.WriteString("flowchart LR\n")
	fmt.Fprintf(&b, "    root[\"%s\"]\n", escapeLabel(title))

	byCategory := make(map[domain.Category][]string)
	counts := make(map[string]int)
	for _, m := range res.Matches {
		key := string(m.Category) + "/" + m.Name
		if counts[key] == 0 {
			byCategory[m.Category] = append(byCategory[m.Category], m.Name)
		}
		counts[key]++
	}

	for _, c := range orderedCategories(res.PatternsByType) {
		catID := nodeID(string(c))
		fmt.Fprintf(&b, "    root --> %s[\"%s (%d)\"]\n", catID, escapeLabel(c.Title()), res.PatternsByType[c])
		for _, name := range byCategory[c] {
			fmt.Fprintf(&b, "    %s --> %s[\"%s (%d)\"]\n",
				catID, nodeID(string(c)+"_"+name), escapeLabel(name), counts[string(c)+"/"+name])
		}
	}
	b.WriteString("```\n")

	return b.String()
}

// nodeID maps s to a Mermaid-safe identifier.
func nodeID(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
