package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/mediapulse/pulse/errors"
)

var validRangePresets = map[string]bool{
	"all":    true,
	"custom": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New(errors.ErrCodeConfigValidation, "backend.url is required")
	}

	parsed, err := url.Parse(c.Backend.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("backend.url must be an absolute URL, got %q", c.Backend.URL)).
			WithDetail("url", c.Backend.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("backend.url scheme must be http or https, got %q", parsed.Scheme)).
			WithDetail("url", c.Backend.URL)
	}

	if !validRangePreset(c.Dashboard.DefaultRange) {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("dashboard.default_range must be 'all' or a day count, got %q", c.Dashboard.DefaultRange)).
			WithDetail("default_range", c.Dashboard.DefaultRange)
	}

	return nil
}

func validRangePreset(preset string) bool {
	if preset == "" || validRangePresets[preset] {
		return true
	}
	days, err := strconv.Atoi(preset)
	return err == nil && days > 0
}
