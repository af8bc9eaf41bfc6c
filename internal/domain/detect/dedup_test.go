package detect_test

import (
	"testing"

	"github.com/patternscan/patternscan/internal/domain"
	"github.com/patternscan/patternscan/internal/domain/detect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(name, file string, line int, conf float64) domain.PatternMatch {
	return domain.PatternMatch{Name: name, FilePath: file, Line: line, Confidence: conf, Category: domain.CategoryBehavioral}
}

func TestDeduplicate_KeepsFirstSeen(t *testing.T) {
	in := []domain.PatternMatch{
		match("Factory", "a.go", 1, 0.5),
		match("Factory", "a.go", 1, 0.75),
		match("Factory", "a.go", 2, 0.75),
		match("Builder", "a.go", 1, 0.5),
	}
	out := detect.Deduplicate(in)
	require.Len(t, out, 3)

	assert.Equal(t, 2, out[0].Line, "highest confidence first")
	assert.Equal(t, "Factory", out[1].Name)
	assert.InDelta(t, 0.5, out[1].Confidence, 1e-9, "first-seen duplicate survives")
	assert.Equal(t, "Builder", out[2].Name, "ties keep relative order")
}

func TestDeduplicate_Idempotent(t *testing.T) {
	in := []domain.PatternMatch{
		match("Observer", "b.go", 3, 0.5),
		match("Factory", "a.go", 1, 0.5),
		match("Observer", "b.go", 3, 1.0),
		match("Pipeline", "c.go", 9, 1.0),
		match("Factory", "a.go", 1, 0.25),
	}
	once := detect.Deduplicate(in)
	twice := detect.Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicate_UniqueKeys(t *testing.T) {
	var in []domain.PatternMatch
	for i := 0; i < 50; i++ {
		in = append(in, match("Factory", "a.go", i%7, float64(i%4)/4))
	}
	out := detect.Deduplicate(in)

	seen := make(map[string]bool)
	for _, m := range out {
		key := m.Name + "|" + m.FilePath + "|" + string(rune('0'+m.Line))
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
	assert.Len(t, out, 7)
}

func TestDeduplicate_Empty(t *testing.T) {
	assert.Empty(t, detect.Deduplicate(nil))
}
