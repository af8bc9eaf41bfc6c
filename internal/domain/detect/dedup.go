package detect

import (
	"cmp"
	"slices"

	"github.com/patternscan/patternscan/internal/domain"
)

type matchKey struct {
	name string
	file string
	line int
}

// Deduplicate keeps the first match for every (pattern name, file, line) and
// orders the survivors by confidence, highest first. Ties keep their relative
// order, so Deduplicate(Deduplicate(m)) equals Deduplicate(m).
func Deduplicate(matches []domain.PatternMatch) []domain.PatternMatch {
	seen := make(map[matchKey]bool, len(matches))
	unique := make([]domain.PatternMatch, 0, len(matches))
	for _, m := range matches {
		k := matchKey{name: m.Name, file: m.FilePath, line: m.Line}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, m)
	}
	slices.SortStableFunc(unique, func(a, b domain.PatternMatch) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return unique
}
