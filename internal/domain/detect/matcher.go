// Package detect implements the pattern-detection core: indicator matching,
// structural augmentation, deduplication and aggregation.
package detect

import (
	"slices"
	"sort"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
)

// AcceptanceThreshold is the minimum share of a pattern's indicators a file
// must exhibit before an occurrence is reported.
const AcceptanceThreshold = 0.3

// excerptRadius is the number of lines shown on each side of a match.
const excerptRadius = 2

// Matcher scans file text against pattern definitions.
type Matcher struct {
	mode domain.ConfidenceMode
}

// NewMatcher returns a Matcher using the given confidence mode. An empty mode
// means domain.ConfidenceFile.
func NewMatcher(mode domain.ConfidenceMode) *Matcher {
	if mode == "" {
		mode = domain.ConfidenceFile
	}
	return &Matcher{mode: mode}
}

type occurrence struct {
	offset    int
	indicator int
}

// Source is one decoded file ready for matching. It caches line offsets so
// the file is split once regardless of how many patterns are matched.
type Source struct {
	Path     string
	Language domain.LanguageID
	Content  []byte

	newlines []int
	lines    []string
}

// NewSource prepares content for matching.
func NewSource(path string, lang domain.LanguageID, content []byte) *Source {
	s := &Source{Path: path, Language: lang, Content: content}
	for i, b := range content {
		if b == '\n' {
			s.newlines = append(s.newlines, i)
		}
	}
	s.lines = strings.Split(string(content), "\n")
	return s
}

// Line returns the 1-based line of a byte offset: the number of line breaks
// before it plus one.
func (s *Source) Line(offset int) int {
	return sort.SearchInts(s.newlines, offset) + 1
}

// Excerpt returns the lines within excerptRadius of line.
func (s *Source) Excerpt(line int) string {
	idx := line - 1
	start := max(0, idx-excerptRadius)
	end := min(len(s.lines), idx+excerptRadius+1)
	if start >= end {
		return ""
	}
	out := make([]string, 0, end-start)
	for _, l := range s.lines[start:end] {
		out = append(out, strings.TrimRight(l, "\r"))
	}
	return strings.Join(out, "\n")
}

// Match returns the matches of def in src.
func (m *Matcher) Match(src *Source, def domain.PatternDefinition) []domain.PatternMatch {
	if len(src.Content) == 0 || len(def.Indicators) == 0 {
		return nil
	}

	var occs []occurrence
	for i, ind := range def.Indicators {
		for _, off := range ind.FindAll(src.Content) {
			occs = append(occs, occurrence{offset: off, indicator: i})
		}
	}
	if len(occs) == 0 {
		return nil
	}
	slices.SortStableFunc(occs, func(a, b occurrence) int {
		return a.offset - b.offset
	})

	total := float64(len(def.Indicators))
	seen := make([]bool, len(def.Indicators))

	if m.mode == domain.ConfidenceCumulative {
		var out []domain.PatternMatch
		distinct := 0
		for _, o := range occs {
			if !seen[o.indicator] {
				seen[o.indicator] = true
				distinct++
			}
			conf := float64(distinct) / total
			if conf < AcceptanceThreshold {
				continue
			}
			out = append(out, newMatch(src, def, o.offset, conf, indicatorIDs(def, seen)))
		}
		return out
	}

	distinct := 0
	for _, o := range occs {
		if !seen[o.indicator] {
			seen[o.indicator] = true
			distinct++
		}
	}
	conf := float64(distinct) / total
	if conf < AcceptanceThreshold {
		return nil
	}
	ids := indicatorIDs(def, seen)
	out := make([]domain.PatternMatch, 0, len(occs))
	for _, o := range occs {
		out = append(out, newMatch(src, def, o.offset, conf, ids))
	}
	return out
}

func newMatch(src *Source, def domain.PatternDefinition, offset int, conf float64, ids []string) domain.PatternMatch {
	line := src.Line(offset)
	return domain.PatternMatch{
		PatternID:   def.ID,
		Name:        def.Name,
		Category:    def.Category,
		Description: def.Description,
		Language:    src.Language,
		FilePath:    src.Path,
		Line:        line,
		Confidence:  conf,
		Snippet:     src.Excerpt(line),
		Indicators:  ids,
	}
}

// indicatorIDs lists the seen indicators in definition order. Each call
// returns a fresh slice.
func indicatorIDs(def domain.PatternDefinition, seen []bool) []string {
	var ids []string
	for i, ok := range seen {
		if ok {
			ids = append(ids, def.Indicators[i].ID)
		}
	}
	return ids
}
