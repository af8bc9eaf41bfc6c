package detect

import (
	"testing"

	"github.com/patternscan/patternscan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categorized(c domain.Category, conf float64) domain.PatternMatch {
	return domain.PatternMatch{Name: string(c), FilePath: "a.go", Line: 1, Confidence: conf, Category: c}
}

func TestRecommend_CategoryMessagesInCanonicalOrder(t *testing.T) {
	res := Summarize([]domain.PatternMatch{
		categorized(domain.CategoryConcurrency, 1.0),
		categorized(domain.CategoryCreational, 0.9),
	})
	require.GreaterOrEqual(t, len(res.Recommendations), 2)
	assert.Equal(t, categoryMessages[domain.CategoryCreational], res.Recommendations[0])
	assert.Equal(t, categoryMessages[domain.CategoryConcurrency], res.Recommendations[1])
}

func TestRecommend_PresenceMessageForEveryCategory(t *testing.T) {
	require.Len(t, categoryMessages, len(domain.Categories))
	for _, c := range domain.Categories {
		msg := categoryMessages[c]
		require.NotEmpty(t, msg, "category %s", c)
		res := Summarize([]domain.PatternMatch{categorized(c, 0.5)})
		assert.Contains(t, res.Recommendations, msg, "category %s", c)
	}
}
