package detect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
	"github.com/patternscan/patternscan/internal/domain/catalog"
)

// Language is one supported language family. Parser is nil for languages
// without structural augmentation.
type Language struct {
	ID         domain.LanguageID
	Extensions []string
	Catalog    *catalog.Catalog
	Parser     domain.SyntaxParser

	// DecorationDescription is used as the description of decoration-based
	// matches in this language.
	DecorationDescription string
}

// Registry selects a Language by file extension. It is built once at
// startup and read-only afterwards.
type Registry struct {
	langs []*Language
	byExt map[string]*Language
}

// NewRegistry validates and indexes langs. Two languages claiming the same
// extension, or a language without a catalog, is a configuration error.
func NewRegistry(langs ...Language) (*Registry, error) {
	r := &Registry{byExt: make(map[string]*Language)}
	for i := range langs {
		l := langs[i]
		if l.Catalog == nil {
			return nil, &domain.CatalogError{Language: l.ID, Reason: "language has no catalog"}
		}
		if len(l.Extensions) == 0 {
			return nil, fmt.Errorf("language %s: no file extensions", l.ID)
		}
		for _, ext := range l.Extensions {
			ext = strings.ToLower(ext)
			if other, dup := r.byExt[ext]; dup {
				return nil, fmt.Errorf("extension %s claimed by both %s and %s", ext, other.ID, l.ID)
			}
			r.byExt[ext] = &l
		}
		r.langs = append(r.langs, &l)
	}
	return r, nil
}

// ForPath returns the language for path, chosen by extension.
func (r *Registry) ForPath(path string) (*Language, bool) {
	l, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// Languages returns the registered languages in registration order.
func (r *Registry) Languages() []*Language {
	return append([]*Language(nil), r.langs...)
}

// Knows reports whether any catalog or structural rule defines pattern id.
func (r *Registry) Knows(id string) bool {
	if id == DecorationPatternID || id == RolesPatternID {
		return true
	}
	for _, l := range r.langs {
		if l.Catalog.Has(id) {
			return true
		}
	}
	return false
}
