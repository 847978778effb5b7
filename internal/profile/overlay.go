package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay holds optional per-profile overrides loaded from a YAML file.
// Only the fields present in the file replace the built-in values; a zero
// base weight or an empty slice leaves the built-in value untouched.
type Overlay struct {
	BaseWeight float64            `yaml:"base_weight"`
	Categories []SignalCategory   `yaml:"categories"`
	Combos     []ComboRule        `yaml:"combos"`
	Aliases    map[string]string  `yaml:"aliases"`
	Market     map[string]float64 `yaml:"market_factors"`
	TierBands  []TierBand         `yaml:"tier_bands"`
}

// LoadOverlay reads a YAML file mapping profile keys to overlays and applies
// each overlay to the matching registered profile. Unknown keys fail so a
// typo in the file cannot silently leave a profile unmodified.
func LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile overlay: %w", err)
	}

	overlays := map[string]Overlay{}
	if err := yaml.Unmarshal(data, &overlays); err != nil {
		return fmt.Errorf("parse profile overlay: %w", err)
	}

	for key, ov := range overlays {
		p, ok := registry[key]
		if !ok {
			return &ErrUnknownProfile{Key: key}
		}
		merged := *p
		if ov.BaseWeight > 0 {
			merged.BaseWeight = ov.BaseWeight
		}
		if len(ov.Categories) > 0 {
			merged.Categories = ov.Categories
		}
		if len(ov.Combos) > 0 {
			merged.Combos = ov.Combos
		}
		if len(ov.Aliases) > 0 {
			merged.Aliases = ov.Aliases
		}
		if len(ov.Market) > 0 {
			merged.MarketFactors = ov.Market
		}
		if len(ov.TierBands) > 0 {
			merged.TierBands = ov.TierBands
		}
		if err := merged.Validate(); err != nil {
			return fmt.Errorf("profile overlay %q: %w", key, err)
		}
		registry[key] = &merged
	}
	return nil
}
