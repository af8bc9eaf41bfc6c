package catalog_test

import (
	"errors"
	"testing"

	"github.com/patternscan/patternscan/internal/domain"
	"github.com/patternscan/patternscan/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_GoCatalog(t *testing.T) {
	c, err := catalog.Builtin(domain.LanguageGo)
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageGo, c.Language())
	assert.Equal(t, 15, c.Len())

	factory, ok := c.Lookup("factory")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryCreational, factory.Category)
	require.Len(t, factory.Indicators, 4)
	assert.Equal(t, "new-constructor", factory.Indicators[0].ID)
	assert.Equal(t, "address-of-struct-literal-return", factory.Indicators[3].ID)
}

func TestBuiltin_PythonCatalog(t *testing.T) {
	c, err := catalog.Builtin(domain.LanguagePython)
	require.NoError(t, err)

	assert.Equal(t, 8, c.Len())
	assert.True(t, c.Has("singleton"))
	assert.False(t, c.Has("worker_pool"), "python has no worker pool definition")
}

func TestBuiltin_EveryDefinitionIsWellFormed(t *testing.T) {
	for _, lang := range catalog.Languages() {
		c, err := catalog.Builtin(lang)
		require.NoError(t, err, "language %s", lang)

		for _, def := range c.Definitions() {
			assert.NotEmpty(t, def.Indicators, "%s/%s", lang, def.ID)
			assert.True(t, def.Category.Valid(), "%s/%s", lang, def.ID)
			assert.NotEmpty(t, def.Description, "%s/%s", lang, def.ID)
		}
	}
}

func TestBuiltin_UnknownLanguage(t *testing.T) {
	_, err := catalog.Builtin("cobol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCatalog))
}

func TestParse_RejectsMalformedCatalogs(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		reason string
	}{
		{
			name:   "empty indicators",
			yaml:   "patterns:\n  - id: a\n    category: creational\n    indicators: []\n",
			reason: "indicator list is empty",
		},
		{
			name:   "missing category",
			yaml:   "patterns:\n  - id: a\n    indicators:\n      - {id: x, regex: 'x'}\n",
			reason: "missing category",
		},
		{
			name:   "unknown category",
			yaml:   "patterns:\n  - id: a\n    category: magical\n    indicators:\n      - {id: x, regex: 'x'}\n",
			reason: "unknown category",
		},
		{
			name: "duplicate pattern",
			yaml: "patterns:\n" +
				"  - id: a\n    category: creational\n    indicators:\n      - {id: x, regex: 'x'}\n" +
				"  - id: a\n    category: behavioral\n    indicators:\n      - {id: y, regex: 'y'}\n",
			reason: "duplicate pattern id",
		},
		{
			name:   "duplicate indicator",
			yaml:   "patterns:\n  - id: a\n    category: creational\n    indicators:\n      - {id: x, regex: 'x'}\n      - {id: x, regex: 'y'}\n",
			reason: "duplicate indicator id",
		},
		{
			name:   "bad regex",
			yaml:   "patterns:\n  - id: a\n    category: creational\n    indicators:\n      - {id: x, regex: '(unclosed'}\n",
			reason: "indicator \"x\"",
		},
		{
			name:   "no patterns",
			yaml:   "language: go\n",
			reason: "no patterns defined",
		},
		{
			name:   "language mismatch",
			yaml:   "language: python\npatterns:\n  - id: a\n    category: creational\n    indicators:\n      - {id: x, regex: 'x'}\n",
			reason: "declares language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Parse(domain.LanguageGo, []byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidCatalog))
			assert.Contains(t, err.Error(), tt.reason)

			var ce *domain.CatalogError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, domain.LanguageGo, ce.Language)
		})
	}
}

func TestSelect_PreservesCatalogOrder(t *testing.T) {
	c, err := catalog.Builtin(domain.LanguageGo)
	require.NoError(t, err)

	defs := c.Select(map[string]bool{"mvc": true, "factory": true, "pipeline": true})
	require.Len(t, defs, 3)
	assert.Equal(t, "factory", defs[0].ID)
	assert.Equal(t, "pipeline", defs[1].ID)
	assert.Equal(t, "mvc", defs[2].ID)
}

func TestDefinitions_ReturnsIndependentCopies(t *testing.T) {
	c, err := catalog.Builtin(domain.LanguageGo)
	require.NoError(t, err)

	defs := c.Definitions()
	defs[0].Indicators[0] = domain.Indicator{ID: "tampered"}

	again, ok := c.Lookup(defs[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "tampered", again.Indicators[0].ID)
}
