package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mediapulse/pulse/errors"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a pulse configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parseConfig(data, path)
	if err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromBytes parses YAML config content, applying defaults and validation.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg, err := parseConfig(data, "pulse.yml")
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault finds and loads the configuration with hierarchical merging:
// 1. Global config (~/.config/mediapulse/pulse.yml) - base layer
// 2. Project config (pulse.yml) - overrides global
// 3. Local override (pulse.override.yml) - overrides all
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	logger.WithField("path", projectPath).Debug("Loading project configuration")

	var finalConfig *Config

	// 1. Global config, if any (optional, never fatal)
	if globalPath := getXDGConfigPath(); globalPath != "" {
		if _, statErr := os.Stat(globalPath); statErr == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			globalData, readErr := os.ReadFile(globalPath)
			if readErr == nil {
				globalConfig, parseErr := parseConfig(globalData, globalPath)
				if parseErr == nil {
					finalConfig = globalConfig
				} else {
					logger.WithError(parseErr).Warn("Failed to parse global configuration, continuing without it")
				}
			} else {
				logger.WithError(readErr).Warn("Failed to read global configuration, continuing without it")
			}
		}
	}

	// 2. Project config (required)
	projectData, err := os.ReadFile(projectPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read project config").
			WithDetail("path", projectPath)
	}
	projectConfig, err := parseConfig(projectData, projectPath)
	if err != nil {
		return nil, err
	}
	if finalConfig == nil {
		finalConfig = projectConfig
	} else {
		finalConfig = mergeConfigs(finalConfig, projectConfig)
	}

	// 3. Override files next to the project config
	finalConfig, err = applyOverrides(finalConfig, filepath.Dir(projectPath), logger)
	if err != nil {
		return nil, err
	}

	finalConfig.SetDefaults()
	if err := finalConfig.Validate(); err != nil {
		return nil, err
	}

	return finalConfig, nil
}

// parseConfig decodes YAML or TOML config content based on the file extension,
// after ${ENV} expansion.
func parseConfig(data []byte, path string) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML config").
				WithDetail("path", path)
		}
		return &cfg, nil
	}

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
			WithDetail("path", path)
	}
	return &cfg, nil
}

// applyOverrides merges pulse.override.yml variants over the given config.
func applyOverrides(base *Config, dir string, logger *logrus.Logger) (*Config, error) {
	overrides := []string{
		filepath.Join(dir, "pulse.override.yml"),
		filepath.Join(dir, "pulse.override.yaml"),
		filepath.Join(dir, ".pulse.override.yml"),
		filepath.Join(dir, ".pulse.override.yaml"),
	}

	result := base
	for _, overrideFile := range overrides {
		if _, err := os.Stat(overrideFile); err != nil {
			continue
		}
		logger.WithField("path", overrideFile).Debug("Applying configuration override")

		data, err := os.ReadFile(overrideFile)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read override").
				WithDetail("path", overrideFile)
		}
		override, err := parseConfig(data, overrideFile)
		if err != nil {
			return nil, err
		}
		result = mergeConfigs(result, override)
	}

	return result, nil
}

// FindConfigFile searches for a pulse config file starting at startDir and
// walking up to the filesystem root, then falling back to the XDG config dir.
func FindConfigFile(startDir string) (string, error) {
	configNames := []string{
		"pulse.yml",
		"pulse.yaml",
		"pulse.toml",
		".pulse.yml",
		".pulse.yaml",
	}

	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if xdgConfigPath := getXDGConfigPath(); xdgConfigPath != "" {
		if info, err := os.Stat(xdgConfigPath); err == nil && !info.IsDir() {
			return xdgConfigPath, nil
		}
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// getXDGConfigPath returns the XDG config path for MediaPulse
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mediapulse", "pulse.yml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "mediapulse", "pulse.yml")
	}

	return ""
}
