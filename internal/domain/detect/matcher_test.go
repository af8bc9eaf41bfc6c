package detect_test

import (
	"testing"

	"github.com/patternscan/patternscan/internal/domain"
	"github.com/patternscan/patternscan/internal/domain/catalog"
	"github.com/patternscan/patternscan/internal/domain/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goDefinition(t *testing.T, id string) domain.PatternDefinition {
	t.Helper()
	c, err := catalog.Builtin(domain.LanguageGo)
	require.NoError(t, err)
	def, ok := c.Lookup(id)
	require.True(t, ok, "pattern %s", id)
	return def
}

func testDefinition(t *testing.T, exprs map[string]string, order ...string) domain.PatternDefinition {
	t.Helper()
	def := domain.PatternDefinition{ID: "probe", Name: "Probe", Category: domain.CategoryBehavioral}
	for _, id := range order {
		ind, err := domain.NewRegexIndicator(id, exprs[id])
		require.NoError(t, err)
		def.Indicators = append(def.Indicators, ind)
	}
	return def
}

func TestMatcher_FactoryScenario(t *testing.T) {
	src := detect.NewSource("widget.go", domain.LanguageGo, []byte("func NewWidget() *Widget { return &Widget{} }"))

	matches := detect.NewMatcher(domain.ConfidenceFile).Match(src, goDefinition(t, "factory"))
	require.NotEmpty(t, matches)

	unique := detect.Deduplicate(matches)
	require.Len(t, unique, 1)
	m := unique[0]
	assert.InDelta(t, 0.5, m.Confidence, 1e-9)
	assert.Equal(t, domain.CategoryCreational, m.Category)
	assert.Equal(t, 1, m.Line)
	assert.Equal(t, []string{"new-constructor", "address-of-struct-literal-return"}, m.Indicators)
	assert.Equal(t, "widget.go", m.FilePath)
	assert.Equal(t, domain.LanguageGo, m.Language)
}

func TestMatcher_FactoryScenario_Cumulative(t *testing.T) {
	src := detect.NewSource("widget.go", domain.LanguageGo, []byte("func NewWidget() *Widget { return &Widget{} }"))

	matches := detect.NewMatcher(domain.ConfidenceCumulative).Match(src, goDefinition(t, "factory"))
	// The constructor alone is 1/4 < 0.3; only the return occurrence is kept.
	require.Len(t, matches, 1)
	assert.InDelta(t, 0.5, matches[0].Confidence, 1e-9)
}

func TestMatcher_EmptyFile(t *testing.T) {
	src := detect.NewSource("empty.go", domain.LanguageGo, nil)
	c, err := catalog.Builtin(domain.LanguageGo)
	require.NoError(t, err)

	m := detect.NewMatcher("")
	for _, def := range c.Definitions() {
		assert.Empty(t, m.Match(src, def), def.ID)
	}
}

func TestMatcher_BelowThreshold(t *testing.T) {
	src := detect.NewSource("a.go", domain.LanguageGo, []byte("package a\n\nfunc NewThing() {}\n"))
	matches := detect.NewMatcher(domain.ConfidenceFile).Match(src, goDefinition(t, "factory"))
	assert.Empty(t, matches, "one of four indicators is below the threshold")
}

func TestMatcher_LineNumbersAndExcerpt(t *testing.T) {
	content := "line1\nline2\nline3\nalpha\nline5\nline6\nline7\nbeta\n"
	def := testDefinition(t, map[string]string{"a": "alpha", "b": "beta"}, "a", "b")
	src := detect.NewSource("f.go", domain.LanguageGo, []byte(content))

	matches := detect.NewMatcher(domain.ConfidenceFile).Match(src, def)
	require.Len(t, matches, 2)

	assert.Equal(t, 4, matches[0].Line)
	assert.Equal(t, "line2\nline3\nalpha\nline5\nline6", matches[0].Snippet)
	assert.Equal(t, 8, matches[1].Line)
	assert.Equal(t, "line6\nline7\nbeta\n", matches[1].Snippet)
}

func TestMatcher_ExcerptClampsAtFileStart(t *testing.T) {
	def := testDefinition(t, map[string]string{"a": "alpha"}, "a")
	src := detect.NewSource("f.go", domain.LanguageGo, []byte("alpha\nb\nc\nd\n"))

	matches := detect.NewMatcher(domain.ConfidenceFile).Match(src, def)
	require.Len(t, matches, 1)
	assert.Equal(t, "alpha\nb\nc", matches[0].Snippet)
}

func TestMatcher_FileModeIsOrderIndependent(t *testing.T) {
	exprs := map[string]string{"a": "alpha", "b": "beta", "c": "gamma"}
	def := testDefinition(t, exprs, "a", "b", "c")
	src := detect.NewSource("f.go", domain.LanguageGo, []byte("alpha\nbeta\ngamma\nalpha\n"))

	matches := detect.NewMatcher(domain.ConfidenceFile).Match(src, def)
	require.Len(t, matches, 4)
	for _, m := range matches {
		assert.InDelta(t, 1.0, m.Confidence, 1e-9)
		assert.Equal(t, []string{"a", "b", "c"}, m.Indicators)
	}
}

func TestMatcher_CumulativeIsNonDecreasing(t *testing.T) {
	exprs := map[string]string{"a": "alpha", "b": "beta", "c": "gamma"}
	def := testDefinition(t, exprs, "a", "b", "c")
	// Textual order is gamma, alpha, beta even though indicators are declared a, b, c.
	src := detect.NewSource("f.go", domain.LanguageGo, []byte("gamma\nalpha\nbeta\ngamma\n"))

	matches := detect.NewMatcher(domain.ConfidenceCumulative).Match(src, def)
	require.Len(t, matches, 4)

	assert.Equal(t, 1, matches[0].Line)
	assert.InDelta(t, 1.0/3, matches[0].Confidence, 1e-9)
	assert.Equal(t, []string{"c"}, matches[0].Indicators)

	assert.InDelta(t, 2.0/3, matches[1].Confidence, 1e-9)
	assert.Equal(t, []string{"a", "c"}, matches[1].Indicators)

	assert.InDelta(t, 1.0, matches[2].Confidence, 1e-9)
	assert.InDelta(t, 1.0, matches[3].Confidence, 1e-9)

	prev := 0.0
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Confidence, prev)
		prev = m.Confidence
	}
}

func TestMatcher_ConfidenceBoundsAndIndicatorSubset(t *testing.T) {
	content := []byte(`package pool

import "sync"

func Run(jobs []int) {
	workChan := make(chan int, 10)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range workChan {
				_ = job
			}
		}()
	}
	wg.Wait()
}
`)
	c, err := catalog.Builtin(domain.LanguageGo)
	require.NoError(t, err)
	src := detect.NewSource("pool.go", domain.LanguageGo, content)

	for _, mode := range []domain.ConfidenceMode{domain.ConfidenceFile, domain.ConfidenceCumulative} {
		m := detect.NewMatcher(mode)
		for _, def := range c.Definitions() {
			defined := make(map[string]bool)
			for _, ind := range def.Indicators {
				defined[ind.ID] = true
			}
			for _, match := range m.Match(src, def) {
				assert.GreaterOrEqual(t, match.Confidence, detect.AcceptanceThreshold)
				assert.LessOrEqual(t, match.Confidence, 1.0)
				require.NotEmpty(t, match.Indicators)
				for _, id := range match.Indicators {
					assert.True(t, defined[id], "%s: indicator %s not defined", def.ID, id)
				}
			}
		}
	}

	pool := detect.NewMatcher(domain.ConfidenceFile).Match(src, goDefinition(t, "worker_pool"))
	require.NotEmpty(t, pool)
	assert.InDelta(t, 1.0, pool[0].Confidence, 1e-9)
}

func TestSource_Line(t *testing.T) {
	src := detect.NewSource("f", domain.LanguageGo, []byte("a\nb\nc"))
	assert.Equal(t, 1, src.Line(0))
	assert.Equal(t, 1, src.Line(1), "the newline itself belongs to the line it ends")
	assert.Equal(t, 2, src.Line(2))
	assert.Equal(t, 3, src.Line(4))
}
