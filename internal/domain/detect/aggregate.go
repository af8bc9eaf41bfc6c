package detect

import "github.com/patternscan/patternscan/internal/domain"

// highConfidenceShare is the share of high-confidence matches above which the
// detected patterns are considered well implemented.
const highConfidenceShare = 0.7

var categoryMessages = map[domain.Category]string{
	domain.CategoryCreational:    "Creational patterns found: object construction stays flexible.",
	domain.CategoryStructural:    "Structural patterns found: components collaborate through clear seams.",
	domain.CategoryBehavioral:    "Behavioral patterns found: algorithms and responsibilities are separated.",
	domain.CategoryArchitectural: "Architectural patterns found: the system has a recognizable overall design.",
	domain.CategoryConcurrency:   "Concurrency patterns found: concurrent work is organized deliberately.",
}

const (
	msgNoPatterns     = "No design patterns detected; consider introducing some to improve code quality."
	msgFewPatterns    = "Few design patterns detected; more could improve maintainability."
	msgSomePatterns   = "A moderate number of design patterns detected; keep them consistent across the codebase."
	msgManyPatterns   = "Many design patterns detected; watch out for over-engineering."
	msgHighQuality    = "Most detected patterns are high-confidence implementations."
	msgImproveQuality = "Many detected patterns are partial; consider completing their implementations."
)

// Summarize builds the analysis result for an already deduplicated, sorted
// match list.
func Summarize(matches []domain.PatternMatch) *domain.AnalysisResult {
	byType := make(map[domain.Category]int)
	for _, m := range matches {
		byType[m.Category]++
	}
	if matches == nil {
		matches = []domain.PatternMatch{}
	}
	return &domain.AnalysisResult{
		TotalPatterns:   len(matches),
		PatternsByType:  byType,
		Matches:         matches,
		Recommendations: Recommend(matches, byType),
	}
}

// Recommend evaluates the fixed rule table: category presence, total count
// bucket, then the share of high-confidence matches.
func Recommend(matches []domain.PatternMatch, byType map[domain.Category]int) []string {
	var recs []string

	for _, c := range domain.Categories {
		if byType[c] > 0 {
			recs = append(recs, categoryMessages[c])
		}
	}

	total := len(matches)
	switch {
	case total == 0:
		recs = append(recs, msgNoPatterns)
	case total < 5:
		recs = append(recs, msgFewPatterns)
	case total <= 20:
		recs = append(recs, msgSomePatterns)
	default:
		recs = append(recs, msgManyPatterns)
	}

	high := 0
	for _, m := range matches {
		if m.Confidence > domain.HighConfidence {
			high++
		}
	}
	if float64(high)/float64(max(total, 1)) > highConfidenceShare {
		recs = append(recs, msgHighQuality)
	} else {
		recs = append(recs, msgImproveQuality)
	}

	return recs
}
