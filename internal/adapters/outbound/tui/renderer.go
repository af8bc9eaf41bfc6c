package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/patternscan/patternscan/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// TopMatches is how many matches the verbose view lists.
const TopMatches = 10

// RenderAnalysis formats an analysis report for the terminal. In verbose
// mode the highest-confidence matches are listed with highlighted snippets.
func RenderAnalysis(rep *domain.Report, verbose bool) string {
	var b strings.Builder
	res := rep.AnalysisResult

	// ── Header ──
	title := headerStyle.Render("patternscan")
	subtitle := dimStyle.Render("Design Pattern Analysis")
	total := lipgloss.NewStyle().
		Bold(true).
		Foreground(totalColor(res.TotalPatterns)).
		Render(fmt.Sprintf("%d patterns", res.TotalPatterns))
	cats := dimStyle.Render(fmt.Sprintf("  ·  %d categories", len(res.PatternsByType)))

	body := title + "\n" + subtitle + "\n\n" + total + cats
	if where := projectLine(rep); where != "" {
		body += "\n" + dimStyle.Render(where)
	}
	b.WriteString(boxStyle.Render(body))
	b.WriteString("\n\n")

	// ── Categories ──
	for _, c := range domain.Categories {
		n := res.PatternsByType[c]
		if n == 0 {
			continue
		}
		share := n * 100 / max(res.TotalPatterns, 1)
		name := catNameStyle.Render(padRight(c.Title(), 20))
		fmt.Fprintf(&b, "  %s %s  %s\n", name, coloredBar(share, 20), dimStyle.Render(fmt.Sprintf("%d", n)))
	}
	if res.TotalPatterns == 0 {
		b.WriteString("  " + dimStyle.Render("No patterns detected.") + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Recommendations ──
	if len(res.Recommendations) > 0 {
		b.WriteString("  " + titleStyle.Render("Recommendations") + "\n\n")
		for _, r := range res.Recommendations {
			fmt.Fprintf(&b, "    %s %s\n", passStyle.Render("›"), r)
		}
		b.WriteString("\n")
	}

	// ── Top matches ──
	if verbose && len(res.Matches) > 0 {
		b.WriteString("  " + titleStyle.Render("Top Matches") + "\n\n")
		for _, m := range res.Matches[:min(TopMatches, len(res.Matches))] {
			renderMatch(&b, m)
		}
	}

	if len(res.Skipped) > 0 {
		b.WriteString("  " + warnStyle.Render(fmt.Sprintf("%d files skipped", len(res.Skipped))) + "\n")
		if verbose {
			for _, s := range res.Skipped {
				fmt.Fprintf(&b, "    %s %s\n", fileStyle.Render(shortenPath(s.Path)), dimStyle.Render(s.Reason))
			}
		}
	}

	b.WriteString("\n")
	return b.String()
}

func renderMatch(b *strings.Builder, m domain.PatternMatch) {
	conf := lipgloss.NewStyle().Foreground(confidenceColor(m.Confidence)).Render(fmt.Sprintf("%.2f", m.Confidence))
	loc := fileStyle.Render(fmt.Sprintf("%s:%d", shortenPath(m.FilePath), m.Line))
	fmt.Fprintf(b, "    %s %s  %s\n", titleStyle.Render(m.Name), conf, loc)

	if m.Snippet != "" {
		for _, line := range strings.Split(Highlight(m.FilePath, m.Snippet), "\n") {
			b.WriteString("      " + faintStyle.Render("│") + " " + line + "\n")
		}
	}
	b.WriteString("\n")
}

func projectLine(rep *domain.Report) string {
	where := rep.Project
	if rep.Commit != "" {
		hash := rep.Commit
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if rep.Branch != "" {
			hash = rep.Branch + "@" + hash
		}
		where = strings.TrimSpace(where + "  " + hash)
	}
	return where
}

func coloredBar(pct, width int) string {
	filled := max(0, min(pct*width/100, width))
	empty := width - filled

	filledStr := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func confidenceColor(c float64) lipgloss.Color {
	switch {
	case c > domain.HighConfidence:
		return success
	case c >= 0.5:
		return lipgloss.Color("#A3E635") // lime
	default:
		return warning
	}
}

func totalColor(n int) lipgloss.Color {
	if n == 0 {
		return danger
	}
	return success
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
