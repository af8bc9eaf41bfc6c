package report_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/patternscan/patternscan/internal/adapters/outbound/report"
	"github.com/patternscan/patternscan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Project: "shop",
		Commit:  "0123456789abcdef0123456789abcdef01234567",
		Branch:  "main",
		AnalysisResult: &domain.AnalysisResult{
			TotalPatterns: 3,
			PatternsByType: map[domain.Category]int{
				domain.CategoryConcurrency: 1,
				domain.CategoryCreational:  2,
			},
			Matches: []domain.PatternMatch{
				{Name: "Worker Pool Pattern", Category: domain.CategoryConcurrency, Description: "workers", Language: domain.LanguageGo,
					FilePath: "pool.go", Line: 6, Confidence: 1.0, Snippet: "go func() {", Indicators: []string{"goroutine"}},
				{Name: "Factory Pattern", Category: domain.CategoryCreational, Description: "factory", Language: domain.LanguageGo,
					FilePath: "widget.go", Line: 1, Confidence: 0.5, Snippet: "func NewWidget()", Indicators: []string{"new-constructor"}},
				{Name: "Factory Pattern", Category: domain.CategoryCreational, Description: "factory", Language: domain.LanguagePython,
					FilePath: "shapes.py", Line: 9, Confidence: 0.5, Snippet: "def create_shape():", Indicators: []string{"create-function"}},
			},
			Recommendations: []string{"Creational patterns found: object construction stays flexible."},
			Skipped:         []domain.SkippedFile{{Path: "big.go", Reason: "file exceeds size limit"}},
		},
	}
}

func TestMarkdown_Layout(t *testing.T) {
	out := report.Markdown(sampleReport())

	assert.True(t, strings.HasPrefix(out, "# Design Pattern Analysis Report\n"))
	assert.Contains(t, out, "- **Project**: shop\n")
	assert.Contains(t, out, "- **Commit**: 0123456789ab\n")
	assert.Contains(t, out, "- **Total patterns**: 3\n")
	assert.Contains(t, out, "- **Pattern types**: 2\n")
	assert.Contains(t, out, "- **Confidence**: 0.50\n")
	assert.Contains(t, out, "```python\ndef create_shape():\n```")
	assert.Contains(t, out, "## Recommendations")
	assert.Contains(t, out, "- `big.go`: file exceeds size limit")

	// Distribution uses canonical category order.
	assert.Less(t, strings.Index(out, "- **Creational**: 2"), strings.Index(out, "- **Concurrency**: 1"))

	// One heading per run of consecutive categories.
	assert.Equal(t, 1, strings.Count(out, "### Creational Patterns"))
	assert.Less(t, strings.Index(out, "### Concurrency Patterns"), strings.Index(out, "### Creational Patterns"))
}

func TestMarkdown_Empty(t *testing.T) {
	out := report.Markdown(&domain.Report{AnalysisResult: &domain.AnalysisResult{
		PatternsByType:  map[domain.Category]int{},
		Recommendations: []string{"none"},
	}})
	assert.Contains(t, out, "- **Total patterns**: 0")
	assert.NotContains(t, out, "## Detected Patterns")
	assert.NotContains(t, out, "## Pattern Type Distribution")
	assert.NotContains(t, out, "**Project**")
}

func TestJSON_FieldNames(t *testing.T) {
	data, err := report.JSON(sampleReport())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"project", "commit", "total_patterns", "patterns_by_type", "matches", "recommendations", "skipped_files"} {
		assert.Contains(t, doc, key)
	}
	assert.EqualValues(t, 3, doc["total_patterns"])
	assert.Equal(t, map[string]any{"creational": 2.0, "concurrency-pattern": 1.0}, doc["patterns_by_type"])

	matches := doc["matches"].([]any)
	require.Len(t, matches, 3)
	first := matches[0].(map[string]any)
	assert.Equal(t, "pool.go", first["file_path"])
	assert.EqualValues(t, 6, first["line_number"])
	assert.Equal(t, "concurrency-pattern", first["type"])
}

func TestMermaid_Diagrams(t *testing.T) {
	out := report.Mermaid(sampleReport())

	assert.Equal(t, 2, strings.Count(out, "```mermaid\n"))
	assert.Contains(t, out, "pie title Detected patterns in shop\n")
	assert.Contains(t, out, `    "Creational" : 2`)
	assert.Contains(t, out, `    "Concurrency" : 1`)
	assert.Contains(t, out, "flowchart LR\n")
	assert.Contains(t, out, `root --> creational["Creational (2)"]`)
	assert.Contains(t, out, `creational --> creational_factory_pattern["Factory Pattern (2)"]`)
	assert.Contains(t, out, `root --> concurrency_pattern["Concurrency (1)"]`)
}
