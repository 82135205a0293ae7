package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"lookout/internal/eventbus"
)

// EnvPrefix is the prefix of environment overrides, e.g. LOOKOUT_GALLERY_API_KEY
const EnvPrefix = "LOOKOUT"

// Config represents the application configuration
type Config struct {
	Version   int             `toml:"version" mapstructure:"version"`
	Gallery   GalleryConfig   `toml:"gallery" mapstructure:"gallery"`
	Countries CountriesConfig `toml:"countries" mapstructure:"countries"`
	Download  DownloadConfig  `toml:"download" mapstructure:"download"`
	UI        UISettings      `toml:"ui" mapstructure:"ui"`
}

// GalleryConfig configures the image search widget
type GalleryConfig struct {
	BaseURL           string `toml:"base_url" mapstructure:"base_url"`
	APIKey            string `toml:"api_key" mapstructure:"api_key"`
	PerPage           int    `toml:"per_page" mapstructure:"per_page"`
	ImageType         string `toml:"image_type" mapstructure:"image_type"`
	Orientation       string `toml:"orientation" mapstructure:"orientation"`
	SafeSearch        bool   `toml:"safe_search" mapstructure:"safe_search"`
	DebounceMS        int    `toml:"debounce_ms" mapstructure:"debounce_ms"`
	ScrollDelayMS     int    `toml:"scroll_delay_ms" mapstructure:"scroll_delay_ms"`
	RequestsPerMinute int    `toml:"requests_per_minute" mapstructure:"requests_per_minute"`
	TimeoutSeconds    int    `toml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// CountriesConfig configures the country autocomplete widget
type CountriesConfig struct {
	BaseURL           string   `toml:"base_url" mapstructure:"base_url"`
	Fields            []string `toml:"fields" mapstructure:"fields"`
	MaxMatches        int      `toml:"max_matches" mapstructure:"max_matches"`
	DebounceMS        int      `toml:"debounce_ms" mapstructure:"debounce_ms"`
	RequestsPerMinute int      `toml:"requests_per_minute" mapstructure:"requests_per_minute"`
	TimeoutSeconds    int      `toml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// DownloadConfig configures image downloads
type DownloadConfig struct {
	Dir            string `toml:"dir" mapstructure:"dir"`
	ReleaseDelayMS int    `toml:"release_delay_ms" mapstructure:"release_delay_ms"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	StartTab   string `toml:"start_tab" mapstructure:"start_tab"`
	ToastTTLMS int    `toml:"toast_ttl_ms" mapstructure:"toast_ttl_ms"`
	AltScreen  bool   `toml:"alt_screen" mapstructure:"alt_screen"`
}

func (g GalleryConfig) Debounce() time.Duration {
	return ms(g.DebounceMS)
}

func (g GalleryConfig) ScrollDelay() time.Duration {
	return ms(g.ScrollDelayMS)
}

func (g GalleryConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func (c CountriesConfig) Debounce() time.Duration {
	return ms(c.DebounceMS)
}

func (c CountriesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (d DownloadConfig) ReleaseDelay() time.Duration {
	return ms(d.ReleaseDelayMS)
}

func (u UISettings) ToastTTL() time.Duration {
	return ms(u.ToastTTLMS)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path, or for the default
// location under the user config directory when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath returns ~/.config/lookout/config.toml (or the platform equivalent)
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "lookout", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service path. A missing file is not
// an error: defaults plus environment overrides are returned.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return load("")
	}
	return load(cs.filePath)
}

// Save saves the configuration to the service path
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return load(path)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// load reads path (if not empty) through viper on top of the defaults and
// applies LOOKOUT_* environment overrides
func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)

	v.SetDefault("gallery.base_url", d.Gallery.BaseURL)
	v.SetDefault("gallery.api_key", d.Gallery.APIKey)
	v.SetDefault("gallery.per_page", d.Gallery.PerPage)
	v.SetDefault("gallery.image_type", d.Gallery.ImageType)
	v.SetDefault("gallery.orientation", d.Gallery.Orientation)
	v.SetDefault("gallery.safe_search", d.Gallery.SafeSearch)
	v.SetDefault("gallery.debounce_ms", d.Gallery.DebounceMS)
	v.SetDefault("gallery.scroll_delay_ms", d.Gallery.ScrollDelayMS)
	v.SetDefault("gallery.requests_per_minute", d.Gallery.RequestsPerMinute)
	v.SetDefault("gallery.timeout_seconds", d.Gallery.TimeoutSeconds)

	v.SetDefault("countries.base_url", d.Countries.BaseURL)
	v.SetDefault("countries.fields", d.Countries.Fields)
	v.SetDefault("countries.max_matches", d.Countries.MaxMatches)
	v.SetDefault("countries.debounce_ms", d.Countries.DebounceMS)
	v.SetDefault("countries.requests_per_minute", d.Countries.RequestsPerMinute)
	v.SetDefault("countries.timeout_seconds", d.Countries.TimeoutSeconds)

	v.SetDefault("download.dir", d.Download.Dir)
	v.SetDefault("download.release_delay_ms", d.Download.ReleaseDelayMS)

	v.SetDefault("ui.start_tab", d.UI.StartTab)
	v.SetDefault("ui.toast_ttl_ms", d.UI.ToastTTLMS)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()

	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.Gallery.PerPage <= 0 || c.Gallery.PerPage > 200 {
		c.Gallery.PerPage = d.Gallery.PerPage
	}
	if c.Gallery.DebounceMS <= 0 {
		c.Gallery.DebounceMS = d.Gallery.DebounceMS
	}
	if c.Gallery.ScrollDelayMS < 0 {
		c.Gallery.ScrollDelayMS = d.Gallery.ScrollDelayMS
	}
	if c.Gallery.RequestsPerMinute <= 0 {
		c.Gallery.RequestsPerMinute = d.Gallery.RequestsPerMinute
	}
	if c.Gallery.TimeoutSeconds <= 0 {
		c.Gallery.TimeoutSeconds = d.Gallery.TimeoutSeconds
	}
	if c.Countries.MaxMatches <= 0 {
		c.Countries.MaxMatches = d.Countries.MaxMatches
	}
	if c.Countries.DebounceMS <= 0 {
		c.Countries.DebounceMS = d.Countries.DebounceMS
	}
	if c.Countries.RequestsPerMinute <= 0 {
		c.Countries.RequestsPerMinute = d.Countries.RequestsPerMinute
	}
	if c.Countries.TimeoutSeconds <= 0 {
		c.Countries.TimeoutSeconds = d.Countries.TimeoutSeconds
	}
	if c.Download.Dir == "" {
		c.Download.Dir = d.Download.Dir
	}
	if c.Download.ReleaseDelayMS <= 0 {
		c.Download.ReleaseDelayMS = d.Download.ReleaseDelayMS
	}
	if c.UI.ToastTTLMS <= 0 {
		c.UI.ToastTTLMS = d.UI.ToastTTLMS
	}
	switch c.UI.StartTab {
	case "gallery", "countries":
	default:
		c.UI.StartTab = d.UI.StartTab
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"gallery.base_url":   c.Gallery.BaseURL,
		"countries.base_url": c.Countries.BaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid %s: %q is not an http(s) URL", name, raw)
		}
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	downloadDir := "."
	if homeDir, err := os.UserHomeDir(); err == nil {
		downloadDir = filepath.Join(homeDir, "Downloads")
	}

	return &Config{
		Version: 1,
		Gallery: GalleryConfig{
			BaseURL:           "https://pixabay.com/api/",
			PerPage:           12,
			ImageType:         "photo",
			Orientation:       "horizontal",
			SafeSearch:        true,
			DebounceMS:        300,
			ScrollDelayMS:     300,
			RequestsPerMinute: 100,
			TimeoutSeconds:    15,
		},
		Countries: CountriesConfig{
			BaseURL:           "https://restcountries.com/v3.1",
			Fields:            []string{"name", "capital", "flag", "flags", "languages", "population", "region"},
			MaxMatches:        10,
			DebounceMS:        500,
			RequestsPerMinute: 120,
			TimeoutSeconds:    10,
		},
		Download: DownloadConfig{
			Dir:            downloadDir,
			ReleaseDelayMS: 150,
		},
		UI: UISettings{
			StartTab:   "gallery",
			ToastTTLMS: 3000,
			AltScreen:  true,
		},
	}
}
