package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Popup backends.
const (
	BackendChromium = "chromium"
	BackendSystem   = "system"
)

// Defaults applied by SetDefaults.
const (
	DefaultVersion         = "1.0"
	DefaultPageSize        = 50
	DefaultStaggerMs       = 300
	DefaultTickerInterval  = 100
	DefaultServerAddr      = "127.0.0.1:7777"
	DefaultPopupBackend    = BackendChromium
	DefaultWatchDebounceMs = 100
)

// CatalogConfig selects and trims the platform catalog.
type CatalogConfig struct {
	File     string   `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty" jsonschema:"description=Path to a YAML or TOML catalog that replaces the built-in one"`
	PageSize int      `yaml:"page_size,omitempty" toml:"page_size,omitempty" json:"page_size,omitempty" jsonschema:"description=Items per sidebar page (default: 50),minimum=1"`
	Hidden   []string `yaml:"hidden,omitempty" toml:"hidden,omitempty" json:"hidden,omitempty" jsonschema:"description=Glob patterns of catalog ids to hide"`
}

// LaunchConfig controls how the workspace is opened.
type LaunchConfig struct {
	StaggerMs    int    `yaml:"stagger_ms,omitempty" toml:"stagger_ms,omitempty" json:"stagger_ms,omitempty" jsonschema:"description=Delay between consecutive window opens in milliseconds (default: 300),minimum=1"`
	PopupBackend string `yaml:"popup_backend,omitempty" toml:"popup_backend,omitempty" json:"popup_backend,omitempty" jsonschema:"description=Window host used for popups,enum=chromium,enum=system"`
	AssumeYes    bool   `yaml:"assume_yes,omitempty" toml:"assume_yes,omitempty" json:"assume_yes,omitempty" jsonschema:"description=Skip launch confirmations"`
}

// ScreenConfig is the usable display area. Zero dimensions mean unknown.
type ScreenConfig struct {
	Width           int `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty" jsonschema:"description=Work-area width in pixels,minimum=0"`
	Height          int `yaml:"height,omitempty" toml:"height,omitempty" json:"height,omitempty" jsonschema:"description=Work-area height in pixels,minimum=0"`
	WatchDebounceMs int `yaml:"watch_debounce_ms,omitempty" toml:"watch_debounce_ms,omitempty" json:"watch_debounce_ms,omitempty" jsonschema:"description=Debounce window for config reloads in milliseconds (default: 100),minimum=0"`
}

// TickerConfig controls the market status line.
type TickerConfig struct {
	Enabled         *bool    `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty" jsonschema:"description=Show the quote ticker (default: true)"`
	IntervalSeconds int      `yaml:"interval_seconds,omitempty" toml:"interval_seconds,omitempty" json:"interval_seconds,omitempty" jsonschema:"description=Seconds between quote refreshes (default: 100),minimum=1"`
	Symbols         []string `yaml:"symbols,omitempty" toml:"symbols,omitempty" json:"symbols,omitempty" jsonschema:"description=Ticker symbols to show"`
}

// ServerConfig controls deck serve.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty" toml:"addr,omitempty" json:"addr,omitempty" jsonschema:"description=Listen address for the websocket server (default: 127.0.0.1:7777)"`
}

// Config represents deck.yml.
type Config struct {
	Version string        `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Configuration version (e.g. 1.0)"`
	Catalog CatalogConfig `yaml:"catalog,omitempty" toml:"catalog,omitempty" json:"catalog,omitempty" jsonschema:"description=Platform catalog settings"`
	Launch  LaunchConfig  `yaml:"launch,omitempty" toml:"launch,omitempty" json:"launch,omitempty" jsonschema:"description=Workspace launch settings"`
	Screen  ScreenConfig  `yaml:"screen,omitempty" toml:"screen,omitempty" json:"screen,omitempty" jsonschema:"description=Display work area used to tile popups"`
	Ticker  TickerConfig  `yaml:"ticker,omitempty" toml:"ticker,omitempty" json:"ticker,omitempty" jsonschema:"description=Quote ticker settings"`
	Server  ServerConfig  `yaml:"server,omitempty" toml:"server,omitempty" json:"server,omitempty" jsonschema:"description=Websocket server settings"`

	// Extensions captures all other top-level keys (e.g. logging).
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Catalog.PageSize == 0 {
		c.Catalog.PageSize = DefaultPageSize
	}
	if c.Launch.StaggerMs == 0 {
		c.Launch.StaggerMs = DefaultStaggerMs
	}
	if c.Launch.PopupBackend == "" {
		c.Launch.PopupBackend = DefaultPopupBackend
	}
	if c.Screen.WatchDebounceMs == 0 {
		c.Screen.WatchDebounceMs = DefaultWatchDebounceMs
	}
	if c.Ticker.Enabled == nil {
		enabled := true
		c.Ticker.Enabled = &enabled
	}
	if c.Ticker.IntervalSeconds == 0 {
		c.Ticker.IntervalSeconds = DefaultTickerInterval
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
}

// Stagger is the launch stagger as a duration.
func (c *Config) Stagger() time.Duration {
	return time.Duration(c.Launch.StaggerMs) * time.Millisecond
}

// TickerInterval is the ticker refresh period as a duration.
func (c *Config) TickerInterval() time.Duration {
	return time.Duration(c.Ticker.IntervalSeconds) * time.Second
}

// WatchDebounce is the config reload debounce window.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Screen.WatchDebounceMs) * time.Millisecond
}

// TickerEnabled reports whether the ticker should run.
func (c *Config) TickerEnabled() bool {
	return c.Ticker.Enabled == nil || *c.Ticker.Enabled
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded deck.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// A missing key leaves target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration value.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceGlobal   ConfigSource = "global"
	SourceProject  ConfigSource = "project"
	SourceOverride ConfigSource = "override"
)

// OverrideSource holds a raw configuration from an override file and its path.
type OverrideSource struct {
	Path   string
	Config *Config
}

// LayeredConfig holds the raw configuration from each source file,
// as well as the final merged configuration, for analysis purposes.
type LayeredConfig struct {
	Default   *Config                 // Config with only default values applied.
	Global    *Config                 // Raw config from the global file.
	Project   *Config                 // Raw config from the project file.
	Overrides []OverrideSource        // Raw configs from override files, in order of application.
	Final     *Config                 // The fully merged and validated config.
	FilePaths map[ConfigSource]string // Maps sources to their file paths.
}
