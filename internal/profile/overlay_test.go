package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// snapshotRegistry restores the global registry after an overlay test so
// later tests see the built-in profiles.
func snapshotRegistry(t *testing.T) {
	t.Helper()
	saved := make(map[string]*Profile, len(registry))
	for k, v := range registry {
		saved[k] = v
	}
	t.Cleanup(func() { registry = saved })
}

func TestLoadOverlay(t *testing.T) {
	snapshotRegistry(t)

	path := writeOverlay(t, `
mlb:
  base_weight: 2.5
  aliases:
    brooklyn dodgers: Los Angeles Dodgers
`)

	require.NoError(t, LoadOverlay(path))

	p, err := Get("mlb")
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.BaseWeight)
	assert.Equal(t, "Los Angeles Dodgers", p.Aliases["brooklyn dodgers"])
	// Fields absent from the overlay keep their built-in values.
	assert.Len(t, p.Universe, 30)
	assert.NotEmpty(t, p.Combos)

	// Other profiles are untouched.
	nba, err := Get("nba")
	require.NoError(t, err)
	assert.Equal(t, 1.0, nba.BaseWeight)
}

func TestLoadOverlayUnknownProfile(t *testing.T) {
	snapshotRegistry(t)

	path := writeOverlay(t, `
nhl:
  base_weight: 2.0
`)

	err := LoadOverlay(path)
	require.Error(t, err)
	var unknown *ErrUnknownProfile
	assert.ErrorAs(t, err, &unknown)
}

func TestLoadOverlayInvalidResult(t *testing.T) {
	snapshotRegistry(t)

	// A combo referencing a category the overlay removed must be rejected.
	path := writeOverlay(t, `
mlb:
  categories:
    - name: rookie
      patterns: ["\\brookie\\b"]
      weight: 3.0
`)

	err := LoadOverlay(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	// The registry keeps the built-in profile on failure.
	p, getErr := Get("mlb")
	require.NoError(t, getErr)
	assert.Len(t, p.Categories, 8)
}

func TestLoadOverlayMissingFile(t *testing.T) {
	err := LoadOverlay(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read profile overlay")
}

func TestLoadOverlayBadYAML(t *testing.T) {
	path := writeOverlay(t, "mlb: [not a mapping")
	err := LoadOverlay(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse profile overlay")
}
