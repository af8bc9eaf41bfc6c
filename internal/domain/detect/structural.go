package detect

import (
	"fmt"
	"strings"

	"github.com/patternscan/patternscan/internal/domain"
)

const (
	// DecorationPatternID is the id of the decoration-based structural match.
	DecorationPatternID = "decorator"
	// RolesPatternID is the id of the multi-role architectural match.
	RolesPatternID = "mvc"

	decorationConfidence = 0.9
)

// DefaultRoles are the role substrings searched for in type names.
var DefaultRoles = [3]string{"Model", "View", "Controller"}

// Augmenter derives structural matches from parsed syntax facts.
type Augmenter struct {
	roles [3]string
}

// NewAugmenter returns an Augmenter looking for DefaultRoles.
func NewAugmenter() *Augmenter {
	return &Augmenter{roles: DefaultRoles}
}

// Augment returns at most one decoration-based match and at most one
// multi-role match for the file. decorationDesc describes what a decoration
// is in the file's language.
func (a *Augmenter) Augment(path string, lang domain.LanguageID, decorationDesc string, nodes []domain.SyntaxNode) []domain.PatternMatch {
	var (
		decorations []string
		seenDeco    = make(map[string]bool)
		declCount   int
		roleFound   [3]bool
	)

	for _, n := range nodes {
		switch n.Kind {
		case domain.NodeDeclaration:
			declCount++
		case domain.NodeDecoration:
			if n.Name != "" && !seenDeco[n.Name] {
				seenDeco[n.Name] = true
				decorations = append(decorations, n.Name)
			}
		case domain.NodeTypeDecl:
			if i := a.roleOf(n.Name); i >= 0 {
				roleFound[i] = true
			}
		}
	}

	var out []domain.PatternMatch
	if len(decorations) > 0 {
		out = append(out, domain.PatternMatch{
			PatternID:   DecorationPatternID,
			Name:        "Decorator Pattern",
			Category:    domain.CategoryStructural,
			Description: decorationDesc,
			Language:    lang,
			FilePath:    path,
			Line:        1,
			Confidence:  decorationConfidence,
			Snippet:     fmt.Sprintf("decorations found on %d declarations: %s", declCount, strings.Join(decorations, ", ")),
			Indicators:  decorations,
		})
	}

	var roles []string
	for i, ok := range roleFound {
		if ok {
			roles = append(roles, a.roles[i])
		}
	}
	if len(roles) >= 2 {
		out = append(out, domain.PatternMatch{
			PatternID:   RolesPatternID,
			Name:        "MVC Pattern",
			Category:    domain.CategoryArchitectural,
			Description: "Model-View-Controller architecture",
			Language:    lang,
			FilePath:    path,
			Line:        1,
			Confidence:  float64(len(roles)) / float64(len(a.roles)),
			Snippet:     "roles found: " + strings.Join(roles, ", "),
			Indicators:  roles,
		})
	}
	return out
}

// roleOf returns the index of the first role contained in name, or -1.
func (a *Augmenter) roleOf(name string) int {
	for i, r := range a.roles {
		if strings.Contains(name, r) {
			return i
		}
	}
	return -1
}
