// Package catalog holds the static, per-language pattern definitions.
//
// Catalogs are parsed from embedded YAML once at startup. A malformed catalog
// is a fatal configuration error; every later computation depends on it.
package catalog

import (
	"embed"
	"fmt"

	"github.com/patternscan/patternscan/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var builtinFS embed.FS

var builtinFiles = map[domain.LanguageID]string{
	domain.LanguageGo:     "data/go.yaml",
	domain.LanguagePython: "data/python.yaml",
}

// Catalog is an immutable, ordered set of pattern definitions for one
// language family.
type Catalog struct {
	language domain.LanguageID
	order    []string
	defs     map[string]domain.PatternDefinition
}

type fileSpec struct {
	Language string        `yaml:"language"`
	Patterns []patternSpec `yaml:"patterns"`
}

type patternSpec struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Category    string          `yaml:"category"`
	Description string          `yaml:"description"`
	Indicators  []indicatorSpec `yaml:"indicators"`
}

type indicatorSpec struct {
	ID    string `yaml:"id"`
	Regex string `yaml:"regex"`
}

// Builtin parses the embedded catalog for lang.
func Builtin(lang domain.LanguageID) (*Catalog, error) {
	name, ok := builtinFiles[lang]
	if !ok {
		return nil, &domain.CatalogError{Language: lang, Reason: "no builtin catalog"}
	}
	data, err := builtinFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Parse(lang, data)
}

// Languages returns the languages that ship a builtin catalog, in a fixed order.
func Languages() []domain.LanguageID {
	return []domain.LanguageID{domain.LanguageGo, domain.LanguagePython}
}

// Parse validates a YAML catalog and builds an immutable Catalog from it.
func Parse(lang domain.LanguageID, data []byte) (*Catalog, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, &domain.CatalogError{Language: lang, Reason: fmt.Sprintf("parsing yaml: %v", err)}
	}
	if spec.Language != "" && domain.LanguageID(spec.Language) != lang {
		return nil, &domain.CatalogError{Language: lang, Reason: fmt.Sprintf("file declares language %q", spec.Language)}
	}
	if len(spec.Patterns) == 0 {
		return nil, &domain.CatalogError{Language: lang, Reason: "no patterns defined"}
	}

	c := &Catalog{
		language: lang,
		defs:     make(map[string]domain.PatternDefinition, len(spec.Patterns)),
	}
	for _, p := range spec.Patterns {
		def, err := buildDefinition(lang, p)
		if err != nil {
			return nil, err
		}
		if _, dup := c.defs[def.ID]; dup {
			return nil, &domain.CatalogError{Language: lang, Pattern: def.ID, Reason: "duplicate pattern id"}
		}
		c.defs[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return c, nil
}

func buildDefinition(lang domain.LanguageID, p patternSpec) (domain.PatternDefinition, error) {
	fail := func(reason string) (domain.PatternDefinition, error) {
		return domain.PatternDefinition{}, &domain.CatalogError{Language: lang, Pattern: p.ID, Reason: reason}
	}

	if p.ID == "" {
		return fail("missing id")
	}
	if p.Category == "" {
		return fail("missing category")
	}
	cat := domain.Category(p.Category)
	if !cat.Valid() {
		return fail(fmt.Sprintf("unknown category %q", p.Category))
	}
	if len(p.Indicators) == 0 {
		return fail("indicator list is empty")
	}

	def := domain.PatternDefinition{
		ID:          p.ID,
		Name:        p.Name,
		Category:    cat,
		Description: p.Description,
		Indicators:  make([]domain.Indicator, 0, len(p.Indicators)),
	}
	if def.Name == "" {
		def.Name = p.ID
	}

	seen := make(map[string]bool, len(p.Indicators))
	for _, is := range p.Indicators {
		if is.ID == "" {
			return fail("indicator with empty id")
		}
		if seen[is.ID] {
			return fail(fmt.Sprintf("duplicate indicator id %q", is.ID))
		}
		seen[is.ID] = true
		if is.Regex == "" {
			return fail(fmt.Sprintf("indicator %q has no regex", is.ID))
		}
		ind, err := domain.NewRegexIndicator(is.ID, is.Regex)
		if err != nil {
			return fail(err.Error())
		}
		def.Indicators = append(def.Indicators, ind)
	}
	return def, nil
}

// Language returns the language this catalog describes.
func (c *Catalog) Language() domain.LanguageID { return c.language }

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.order) }

// Definitions returns every definition in catalog order.
func (c *Catalog) Definitions() []domain.PatternDefinition {
	return c.Select(nil)
}

// Lookup returns the definition with the given id.
func (c *Catalog) Lookup(id string) (domain.PatternDefinition, bool) {
	def, ok := c.defs[id]
	if !ok {
		return domain.PatternDefinition{}, false
	}
	return copyDefinition(def), true
}

// Has reports whether the catalog defines id.
func (c *Catalog) Has(id string) bool {
	_, ok := c.defs[id]
	return ok
}

// Select returns the definitions whose id is in filter, in catalog order.
// A nil or empty filter selects everything.
func (c *Catalog) Select(filter map[string]bool) []domain.PatternDefinition {
	defs := make([]domain.PatternDefinition, 0, len(c.order))
	for _, id := range c.order {
		if len(filter) > 0 && !filter[id] {
			continue
		}
		defs = append(defs, copyDefinition(c.defs[id]))
	}
	return defs
}

// copyDefinition returns def backed by its own indicator slice.
func copyDefinition(def domain.PatternDefinition) domain.PatternDefinition {
	def.Indicators = append([]domain.Indicator(nil), def.Indicators...)
	return def
}
