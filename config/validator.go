package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mediapulse/pulse/errors"
	"github.com/mediapulse/pulse/schema"
)

// SchemaValidator validates configuration against the embedded JSON Schema.
// This is a wrapper around schema.Validator for callers that already work in
// terms of config values.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator creates a new schema validator, loading the embedded schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{validator: validator}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}

// ValidateFile validates a config file on disk against the embedded schema.
// The raw document is validated (pre-expansion struct decoding would lose the
// original key layout).
func (v *SchemaValidator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ConfigNotFound(path)
		}
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config").
			WithDetail("path", path)
	}

	if err := v.validator.Validate(raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "config does not match schema").
			WithDetail("path", path)
	}
	return nil
}
