package domain

import (
	"fmt"
	"regexp"
)

// Category groups patterns by the kind of design problem they address.
type Category string

const (
	CategoryCreational    Category = "creational"
	CategoryStructural    Category = "structural"
	CategoryBehavioral    Category = "behavioral"
	CategoryArchitectural Category = "architectural"
	CategoryConcurrency   Category = "concurrency-pattern"
)

// Categories lists every category in canonical order. Reports and
// recommendation rules iterate in this order.
var Categories = []Category{
	CategoryCreational,
	CategoryStructural,
	CategoryBehavioral,
	CategoryArchitectural,
	CategoryConcurrency,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns a human-readable category name.
func (c Category) Title() string {
	switch c {
	case CategoryCreational:
		return "Creational"
	case CategoryStructural:
		return "Structural"
	case CategoryBehavioral:
		return "Behavioral"
	case CategoryArchitectural:
		return "Architectural"
	case CategoryConcurrency:
		return "Concurrency"
	default:
		return string(c)
	}
}

// LanguageID identifies a supported language family.
type LanguageID string

const (
	LanguageGo     LanguageID = "go"
	LanguagePython LanguageID = "python"
)

// Indicator is a textual rule whose presence in source is evidence for the
// pattern that owns it. Indicators are immutable once constructed.
type Indicator struct {
	ID   string `json:"id"`
	Expr string `json:"regex"`
	re   *regexp.Regexp
}

// NewRegexIndicator compiles expr into an Indicator.
func NewRegexIndicator(id, expr string) (Indicator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Indicator{}, fmt.Errorf("indicator %q: %w", id, err)
	}
	return Indicator{ID: id, Expr: expr, re: re}, nil
}

// FindAll returns the start offset of every non-overlapping occurrence of the
// indicator in src.
func (i Indicator) FindAll(src []byte) []int {
	if i.re == nil {
		return nil
	}
	locs := i.re.FindAllIndex(src, -1)
	offsets := make([]int, 0, len(locs))
	for _, loc := range locs {
		offsets = append(offsets, loc[0])
	}
	return offsets
}

// PatternDefinition describes one detectable pattern.
type PatternDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    Category    `json:"type"`
	Description string      `json:"description"`
	Indicators  []Indicator `json:"indicators"`
}

// PatternMatch is a single finding. Matches are never mutated after they are
// emitted.
type PatternMatch struct {
	PatternID   string     `json:"pattern_id"`
	Name        string     `json:"name"`
	Category    Category   `json:"type"`
	Description string     `json:"description"`
	Language    LanguageID `json:"language"`
	FilePath    string     `json:"file_path"`
	Line        int        `json:"line_number"`
	Confidence  float64    `json:"confidence"`
	Snippet     string     `json:"code_snippet"`
	Indicators  []string   `json:"indicators"`
}

// SkippedFile records a file the analysis could not process.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// AnalysisResult is the outcome of one analysis run.
type AnalysisResult struct {
	TotalPatterns   int              `json:"total_patterns"`
	PatternsByType  map[Category]int `json:"patterns_by_type"`
	Matches         []PatternMatch   `json:"matches"`
	Recommendations []string         `json:"recommendations"`
	Skipped         []SkippedFile    `json:"skipped_files,omitempty"`
}

// HighConfidence is the confidence above which a match counts as a strong
// implementation of its pattern.
const HighConfidence = 0.8

// Report is an analysis result together with the project it describes.
type Report struct {
	Project string `json:"project"`
	Commit  string `json:"commit,omitempty"`
	Branch  string `json:"branch,omitempty"`
	*AnalysisResult
}
