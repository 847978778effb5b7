package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/headlinebreaks/breakmeter/internal/profile"
)

// Tagger scans row text for the profile's keyword vocabulary and emits a
// fixed-order signal vector. Patterns compile once per engine.
type Tagger struct {
	names    []string
	patterns [][]*regexp.Regexp
}

// NewTagger compiles the profile's category patterns. Patterns match
// case-insensitively against the row's concatenated free text.
func NewTagger(p *profile.Profile) (*Tagger, error) {
	t := &Tagger{
		names:    p.CategoryNames(),
		patterns: make([][]*regexp.Regexp, len(p.Categories)),
	}
	for i, cat := range p.Categories {
		compiled := make([]*regexp.Regexp, 0, len(cat.Patterns))
		for _, pat := range cat.Patterns {
			re, err := regexp.Compile("(?i)" + pat)
			if err != nil {
				return nil, fmt.Errorf("category %q pattern %q: %w", cat.Name, pat, err)
			}
			compiled = append(compiled, re)
		}
		t.patterns[i] = compiled
	}
	return t, nil
}

// Tag returns the signal vector for one row's text. Categories are not
// mutually exclusive; a single row may set several flags at once.
func (t *Tagger) Tag(text string) SignalVector {
	v := make(SignalVector, len(t.patterns))
	for i, pats := range t.patterns {
		for _, re := range pats {
			if re.MatchString(text) {
				v[i] = true
				break
			}
		}
	}
	return v
}

// RowText concatenates the free-text fields the tagger scans.
func RowText(r Row) string {
	return strings.TrimSpace(r.Player + " " + r.Card)
}
