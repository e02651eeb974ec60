package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Duration is a time.Duration that unmarshals from strings like "2s" or "500ms"
// in both YAML and TOML.
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// BackendConfig describes how to reach the MediaPulse backend.
type BackendConfig struct {
	URL      string   `yaml:"url" toml:"url" jsonschema:"required,description=Base URL of the MediaPulse backend (e.g. http://localhost:8000)"`
	Timeout  Duration `yaml:"timeout,omitempty" toml:"timeout,omitempty" jsonschema:"description=HTTP timeout for individual requests,type=string"`
	Password string   `yaml:"password,omitempty" toml:"password,omitempty" jsonschema:"description=Dashboard password when the backend has auth enabled (supports ${ENV} expansion)"`
	Insecure bool     `yaml:"insecure,omitempty" toml:"insecure,omitempty" jsonschema:"description=Skip TLS certificate verification"`
}

// ScanConfig controls the scan lifecycle poller.
type ScanConfig struct {
	// PollInterval is the cadence of scan status polling while a scan runs.
	PollInterval Duration `yaml:"poll_interval,omitempty" toml:"poll_interval,omitempty" jsonschema:"description=Interval between scan status polls,type=string"`
}

// DashboardConfig controls dashboard loading behavior.
type DashboardConfig struct {
	// PageSize is the number of items fetched per page for press/social/activity lists.
	PageSize int `yaml:"page_size,omitempty" toml:"page_size,omitempty" jsonschema:"description=Items per page for paginated lists"`
	// FetchTimeout bounds each resource fetch in a load batch. A fetch that
	// exceeds it resolves to its typed fallback instead of stalling the batch.
	FetchTimeout Duration `yaml:"fetch_timeout,omitempty" toml:"fetch_timeout,omitempty" jsonschema:"description=Per-resource timeout inside a dashboard load batch,type=string"`
	// DefaultRange is the date range preset applied on a fresh load.
	DefaultRange string `yaml:"default_range,omitempty" toml:"default_range,omitempty" jsonschema:"description=Initial date range preset: all, 7, 30 or 90"`
}

// Config is the root pulse.yml structure.
type Config struct {
	Name    string `yaml:"name,omitempty" toml:"name,omitempty" jsonschema:"description=Name of the configuration"`
	Version string `yaml:"version" toml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`

	Backend   BackendConfig   `yaml:"backend" toml:"backend" jsonschema:"required,description=Backend connection settings"`
	Scan      ScanConfig      `yaml:"scan,omitempty" toml:"scan,omitempty" jsonschema:"description=Scan poller settings"`
	Dashboard DashboardConfig `yaml:"dashboard,omitempty" toml:"dashboard,omitempty" jsonschema:"description=Dashboard loader settings"`

	// Extensions captures all other top-level keys for extensibility
	// (logging, tui, ...).
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// Defaults applied by SetDefaults.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultHTTPTimeout  = 15 * time.Second
	DefaultFetchTimeout = 10 * time.Second
	DefaultPageSize     = 50
	DefaultRangePreset  = "all"
)

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = Duration(DefaultHTTPTimeout)
	}
	if c.Scan.PollInterval <= 0 {
		c.Scan.PollInterval = Duration(DefaultPollInterval)
	}
	if c.Dashboard.PageSize <= 0 {
		c.Dashboard.PageSize = DefaultPageSize
	}
	if c.Dashboard.FetchTimeout <= 0 {
		c.Dashboard.FetchTimeout = Duration(DefaultFetchTimeout)
	}
	if c.Dashboard.DefaultRange == "" {
		c.Dashboard.DefaultRange = DefaultRangePreset
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded pulse.yml into the provided target struct. The target must be a pointer.
// This provides a type-safe way for extensions to access their
// custom configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     target,
		TagName:    "yaml",
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
