package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Gallery.PerPage)
	assert.Equal(t, 300*time.Millisecond, cfg.Gallery.Debounce())
	assert.Equal(t, 500*time.Millisecond, cfg.Countries.Debounce())
	assert.Equal(t, 10, cfg.Countries.MaxMatches)
	assert.Equal(t, 150*time.Millisecond, cfg.Download.ReleaseDelay())
	assert.Equal(t, "gallery", cfg.UI.StartTab)
}

func TestLoadFromPathReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[gallery]
api_key = "secret"
per_page = 40

[countries]
base_url = "http://localhost:9999"
max_matches = 5

[ui]
start_tab = "countries"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := NewConfigService("").LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Gallery.APIKey)
	assert.Equal(t, 40, cfg.Gallery.PerPage)
	assert.Equal(t, "http://localhost:9999", cfg.Countries.BaseURL)
	assert.Equal(t, 5, cfg.Countries.MaxMatches)
	assert.Equal(t, "countries", cfg.UI.StartTab)
	// untouched keys keep their defaults
	assert.Equal(t, "https://pixabay.com/api/", cfg.Gallery.BaseURL)
	assert.Equal(t, 300, cfg.Gallery.DebounceMS)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := NewConfigService("").LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LOOKOUT_GALLERY_API_KEY", "from-env")
	t.Setenv("LOOKOUT_COUNTRIES_MAX_MATCHES", "3")

	cfg, err := NewConfigService(filepath.Join(t.TempDir(), "absent.toml")).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Gallery.APIKey)
	assert.Equal(t, 3, cfg.Countries.MaxMatches)
}

func TestNormalizeReplacesInvalidValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gallery.PerPage = -1
	cfg.Countries.MaxMatches = 0
	cfg.Download.ReleaseDelayMS = 0
	cfg.UI.StartTab = "bogus"

	cfg.normalize()

	assert.Equal(t, 12, cfg.Gallery.PerPage)
	assert.Equal(t, 10, cfg.Countries.MaxMatches)
	assert.Equal(t, 150, cfg.Download.ReleaseDelayMS)
	assert.Equal(t, "gallery", cfg.UI.StartTab)
}

func TestValidateRejectsNonHTTPBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Countries.BaseURL = "ftp://example.com"
	require.Error(t, cfg.Validate())
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.Gallery.APIKey = "k"
	cfg.Countries.MaxMatches = 7
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, "k", loaded.Gallery.APIKey)
	assert.Equal(t, 7, loaded.Countries.MaxMatches)
	assert.Equal(t, cfg.Countries.Fields, loaded.Countries.Fields)
}

func TestDurationAccessors(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 300*time.Millisecond, cfg.Gallery.Debounce())
	assert.Equal(t, 300*time.Millisecond, cfg.Gallery.ScrollDelay())
	assert.Equal(t, 15*time.Second, cfg.Gallery.Timeout())
	assert.Equal(t, 500*time.Millisecond, cfg.Countries.Debounce())
	assert.Equal(t, 10*time.Second, cfg.Countries.Timeout())
	assert.Equal(t, 150*time.Millisecond, cfg.Download.ReleaseDelay())
	assert.Equal(t, 3*time.Second, cfg.UI.ToastTTL())
}
