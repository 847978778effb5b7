package pricing

import (
	"testing"

	"github.com/headlinebreaks/breakmeter/internal/profile"
	"github.com/stretchr/testify/assert"
)

func closedProfile() *profile.Profile {
	return &profile.Profile{
		Key:            "test",
		Mode:           profile.ModeTeam,
		ClosedUniverse: true,
		BaseWeight:     1.0,
		Categories: []profile.SignalCategory{
			{Name: "rookie", Patterns: []string{`\brookie\b`}, Weight: 3.0},
		},
		Aliases: map[string]string{
			"montreal expos": "Washington Nationals",
		},
		Universe: []string{"Washington Nationals", "New York Yankees"},
	}
}

func TestNormalizeClosedUniverse(t *testing.T) {
	n := NewNormalizer(closedProfile())

	tests := []struct {
		name     string
		label    string
		expected string
		resolved bool
	}{
		{
			name:     "canonical name passes through",
			label:    "New York Yankees",
			expected: "New York Yankees",
			resolved: true,
		},
		{
			name:     "matching is case-insensitive",
			label:    "new york YANKEES",
			expected: "New York Yankees",
			resolved: true,
		},
		{
			name:     "whitespace is trimmed and collapsed",
			label:    "  New   York Yankees ",
			expected: "New York Yankees",
			resolved: true,
		},
		{
			name:     "alias folds into canonical successor",
			label:    "Montreal Expos",
			expected: "Washington Nationals",
			resolved: true,
		},
		{
			name:     "unknown team is unresolvable",
			label:    "Hartford Whalers",
			resolved: false,
		},
		{
			name:     "empty label is unresolvable",
			label:    "",
			resolved: false,
		},
		{
			name:     "whitespace-only label is unresolvable",
			label:    "   ",
			resolved: false,
		},
		{
			name:     "placeholder token is unresolvable",
			label:    "N/A",
			resolved: false,
		},
		{
			name:     "dash placeholder is unresolvable",
			label:    "-",
			resolved: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Normalize(tt.label)
			assert.Equal(t, tt.resolved, ok)
			if tt.resolved {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestNormalizeOpenUniverse(t *testing.T) {
	p := closedProfile()
	p.ClosedUniverse = false
	p.Universe = nil
	n := NewNormalizer(p)

	got, ok := n.Normalize("  Mike   Trout ")
	assert.True(t, ok)
	assert.Equal(t, "Mike Trout", got)

	// Placeholders stay unresolvable even without a closed universe.
	_, ok = n.Normalize("tbd")
	assert.False(t, ok)

	// Aliases still apply before pass-through.
	got, ok = n.Normalize("Montreal Expos")
	assert.True(t, ok)
	assert.Equal(t, "Washington Nationals", got)
}
