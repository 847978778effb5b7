package pricing

import (
	"strings"

	"github.com/headlinebreaks/breakmeter/internal/profile"
)

// Placeholder tokens that checklists use for blank cells. Any label
// normalizing to one of these is unresolvable and dropped downstream.
var placeholderTokens = map[string]struct{}{
	"":     {},
	"n/a":  {},
	"na":   {},
	"none": {},
	"tbd":  {},
	"-":    {},
	"--":   {},
	"nan":  {},
}

// Normalizer maps raw entity labels to canonical names. Aliases fold legacy
// franchise names into their modern successor; a closed universe rejects
// anything outside the profile's canonical list.
type Normalizer struct {
	aliases  map[string]string
	universe map[string]string // lowercased canonical -> canonical
	closed   bool
}

// NewNormalizer builds a normalizer from the active profile.
func NewNormalizer(p *profile.Profile) *Normalizer {
	n := &Normalizer{
		aliases:  make(map[string]string, len(p.Aliases)),
		universe: make(map[string]string, len(p.Universe)),
		closed:   p.ClosedUniverse,
	}
	for raw, canonical := range p.Aliases {
		n.aliases[strings.ToLower(cleanLabel(raw))] = canonical
	}
	for _, canonical := range p.Universe {
		n.universe[strings.ToLower(canonical)] = canonical
	}
	return n
}

// Normalize returns the canonical name for label. ok is false when the label
// is a placeholder, or when the profile's universe is closed and the label
// (after alias substitution) is not a member.
func (n *Normalizer) Normalize(label string) (string, bool) {
	cleaned := cleanLabel(label)
	lower := strings.ToLower(cleaned)
	if _, placeholder := placeholderTokens[lower]; placeholder {
		return "", false
	}
	if canonical, ok := n.aliases[lower]; ok {
		cleaned = canonical
		lower = strings.ToLower(canonical)
	}
	if canonical, ok := n.universe[lower]; ok {
		return canonical, true
	}
	if n.closed {
		return "", false
	}
	return cleaned, true
}

// cleanLabel trims the label and collapses internal whitespace runs.
func cleanLabel(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
