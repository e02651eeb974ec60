package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the base JSON Schema for the pulse configuration.
// It reflects the Config struct from types.go but excludes the 'Extensions'
// field, which stays open for tool-specific sections.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Extension sections (logging, tui, ...) are free-form.
		AllowAdditionalProperties: true,
		// Expand struct references instead of using $ref for a cleaner schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	type BaseConfig struct {
		Name      string          `yaml:"name,omitempty" jsonschema:"description=Name of the configuration"`
		Version   string          `yaml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
		Backend   BackendConfig   `yaml:"backend" jsonschema:"required,description=Backend connection settings"`
		Scan      ScanConfig      `yaml:"scan,omitempty" jsonschema:"description=Scan poller settings"`
		Dashboard DashboardConfig `yaml:"dashboard,omitempty" jsonschema:"description=Dashboard loader settings"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "MediaPulse Console Configuration"
	schema.Description = "Schema for pulse.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
