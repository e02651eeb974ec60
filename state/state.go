package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State represents the local console state as a generic map of key-value
// pairs. Arbitrary data can be stored here between sessions.
type State map[string]interface{}

// Well-known state keys.
const (
	KeyLastSubject = "dashboard.last_subject"
	KeyLastRange   = "dashboard.last_range"
	KeyAuthToken   = "auth.token"
)

// stateFilePath returns the path to the state file.
// The state file lives in ~/.mediapulse/state.yml so that the last selected
// subject and session token survive across working directories.
func stateFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".mediapulse", "state.yml"), nil
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func Load() (State, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func Save(state State) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	// Restrict permissions because the file may contain a session token.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Get retrieves a value from the state by key.
// Returns the value and true if found, nil and false otherwise.
func Get(key string) (interface{}, bool, error) {
	state, err := Load()
	if err != nil {
		return nil, false, err
	}

	val, ok := state[key]
	return val, ok, nil
}

// GetString is a convenience function to get a string value from state.
// Returns empty string if the key doesn't exist or the value is not a string.
func GetString(key string) (string, error) {
	val, ok, err := Get(key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", nil
	}

	return str, nil
}

// GetInt is a convenience function to get an integer value from state.
// Returns 0 if the key doesn't exist or the value is not an integer.
func GetInt(key string) (int, error) {
	val, ok, err := Get(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	switch n := val.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, nil
}

// Set sets a value in the state.
func Set(key string, value interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}

	state[key] = value
	return Save(state)
}

// Delete removes a key from the state.
func Delete(key string) error {
	state, err := Load()
	if err != nil {
		return err
	}

	delete(state, key)
	return Save(state)
}

// LastSubject returns the id of the subject the dashboard showed last, or 0
// if no subject has been recorded yet.
func LastSubject() (int, error) {
	return GetInt(KeyLastSubject)
}

// SetLastSubject records the id of the currently selected subject.
func SetLastSubject(id int) error {
	return Set(KeyLastSubject, id)
}

// AuthToken returns the saved session token, or empty string if not logged in.
func AuthToken() (string, error) {
	return GetString(KeyAuthToken)
}

// SetAuthToken stores the session token returned by the backend after login.
func SetAuthToken(token string) error {
	return Set(KeyAuthToken, token)
}

// ClearAuthToken removes the saved session token.
func ClearAuthToken() error {
	return Delete(KeyAuthToken)
}
