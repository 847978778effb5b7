package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects the aggregation key for a break: team slots or player slots.
type Mode string

const (
	ModeTeam   Mode = "pyt" // Pick Your Team
	ModePlayer Mode = "pyp" // Pick Your Player
)

// SignalCategory is one keyword category in a profile's vocabulary.
// Patterns are case-insensitive regular expressions; a category fires
// when any of its patterns matches the row text.
type SignalCategory struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Weight   float64  `yaml:"weight"`
}

// ComboRule gives a category combination a combined weight that supersedes
// the individual weights of its members when all of them fire on one row.
type ComboRule struct {
	Categories []string `yaml:"categories"`
	Weight     float64  `yaml:"weight"`
}

// TierBand labels a fraction of the ranked entity universe. Bands are
// consumed in order; the last band absorbs whatever ranks remain.
type TierBand struct {
	Label    string  `yaml:"label"`
	Fraction float64 `yaml:"fraction"`
}

// Profile bundles everything sport-specific: the signal vocabulary and
// weights, the alias table, the canonical universe, and market bias.
type Profile struct {
	Key            string             `yaml:"key"`
	DisplayName    string             `yaml:"display_name"`
	Mode           Mode               `yaml:"mode"`
	ClosedUniverse bool               `yaml:"closed_universe"`
	BaseWeight     float64            `yaml:"base_weight"`
	Categories     []SignalCategory   `yaml:"categories"`
	Combos         []ComboRule        `yaml:"combos"`
	Aliases        map[string]string  `yaml:"aliases"`
	Universe       []string           `yaml:"universe"`
	MarketFactors  map[string]float64 `yaml:"market_factors"`
	TierBands      []TierBand         `yaml:"tier_bands"`
}

// ErrUnknownProfile is returned by Get for keys with no registered profile.
type ErrUnknownProfile struct {
	Key string
}

func (e *ErrUnknownProfile) Error() string {
	return fmt.Sprintf("unknown product profile %q", e.Key)
}

var registry = map[string]*Profile{}

func register(p *Profile) {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("invalid built-in profile %q: %v", p.Key, err))
	}
	registry[p.Key] = p
}

// Get returns the profile registered under key.
func Get(key string) (*Profile, error) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, &ErrUnknownProfile{Key: key}
	}
	return p, nil
}

// Keys returns all registered profile keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks internal consistency: every combo references declared
// categories, weights are non-negative, and closed universes are non-empty.
func (p *Profile) Validate() error {
	if p.Key == "" {
		return fmt.Errorf("profile key is required")
	}
	if p.Mode != ModeTeam && p.Mode != ModePlayer {
		return fmt.Errorf("profile %q: mode must be %q or %q", p.Key, ModeTeam, ModePlayer)
	}
	if p.BaseWeight < 0 {
		return fmt.Errorf("profile %q: base weight cannot be negative", p.Key)
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("profile %q: at least one signal category is required", p.Key)
	}
	names := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		if c.Name == "" {
			return fmt.Errorf("profile %q: category name is required", p.Key)
		}
		if names[c.Name] {
			return fmt.Errorf("profile %q: duplicate category %q", p.Key, c.Name)
		}
		if c.Weight < 0 {
			return fmt.Errorf("profile %q: category %q weight cannot be negative", p.Key, c.Name)
		}
		if len(c.Patterns) == 0 {
			return fmt.Errorf("profile %q: category %q has no patterns", p.Key, c.Name)
		}
		names[c.Name] = true
	}
	for _, combo := range p.Combos {
		if len(combo.Categories) < 2 {
			return fmt.Errorf("profile %q: combo rules need at least two categories", p.Key)
		}
		for _, name := range combo.Categories {
			if !names[name] {
				return fmt.Errorf("profile %q: combo references unknown category %q", p.Key, name)
			}
		}
		if combo.Weight < 0 {
			return fmt.Errorf("profile %q: combo weight cannot be negative", p.Key)
		}
	}
	if p.ClosedUniverse && len(p.Universe) == 0 {
		return fmt.Errorf("profile %q: closed universe requires a canonical entity list", p.Key)
	}
	for raw, canonical := range p.Aliases {
		if strings.TrimSpace(raw) == "" || strings.TrimSpace(canonical) == "" {
			return fmt.Errorf("profile %q: alias entries cannot be blank", p.Key)
		}
	}
	for _, band := range p.TierBands {
		if band.Label == "" {
			return fmt.Errorf("profile %q: tier band label is required", p.Key)
		}
		if band.Fraction < 0 || band.Fraction > 1 {
			return fmt.Errorf("profile %q: tier band %q fraction out of range", p.Key, band.Label)
		}
	}
	return nil
}

// CategoryNames returns the fixed signal vector order for this profile.
func (p *Profile) CategoryNames() []string {
	names := make([]string, len(p.Categories))
	for i, c := range p.Categories {
		names[i] = c.Name
	}
	return names
}
