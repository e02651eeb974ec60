package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestExtensions verifies that custom extensions in pulse.yml are properly loaded
func TestExtensions(t *testing.T) {
	yamlContent := []byte(`
version: "1.0"
backend:
  url: http://localhost:8000

# Extension fields consumed by the logging package
logging:
  level: debug
  report_caller: true

# Extension fields consumed by the TUI
tui:
  theme: terminal
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify extensions were captured
	if cfg.Extensions == nil {
		t.Fatal("Extensions map should not be nil")
	}

	if _, ok := cfg.Extensions["logging"]; !ok {
		t.Fatal("Expected 'logging' extension to be present")
	}

	type LogConfig struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}

	var logCfg LogConfig
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}

	if logCfg.Level != "debug" {
		t.Errorf("Expected level to be 'debug', got '%s'", logCfg.Level)
	}
	if !logCfg.ReportCaller {
		t.Error("Expected report_caller to be true")
	}

	type TUIConfig struct {
		Theme string `yaml:"theme"`
	}

	var tuiCfg TUIConfig
	if err := cfg.UnmarshalExtension("tui", &tuiCfg); err != nil {
		t.Fatalf("Failed to unmarshal tui extension: %v", err)
	}
	if tuiCfg.Theme != "terminal" {
		t.Errorf("Expected theme to be 'terminal', got '%s'", tuiCfg.Theme)
	}

	// Missing keys leave the target zero-valued
	var missing TUIConfig
	if err := cfg.UnmarshalExtension("nope", &missing); err != nil {
		t.Fatalf("UnmarshalExtension for missing key should not fail: %v", err)
	}
	if missing.Theme != "" {
		t.Error("Missing extension should leave target zero-valued")
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
backend:
  url: http://localhost:8000
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Scan.PollInterval.Std() != 2*time.Second {
		t.Errorf("Expected default poll interval of 2s, got %v", cfg.Scan.PollInterval.Std())
	}
	if cfg.Backend.Timeout.Std() != 15*time.Second {
		t.Errorf("Expected default HTTP timeout of 15s, got %v", cfg.Backend.Timeout.Std())
	}
	if cfg.Dashboard.PageSize != 50 {
		t.Errorf("Expected default page size of 50, got %d", cfg.Dashboard.PageSize)
	}
	if cfg.Dashboard.FetchTimeout.Std() != 10*time.Second {
		t.Errorf("Expected default fetch timeout of 10s, got %v", cfg.Dashboard.FetchTimeout.Std())
	}
	if cfg.Dashboard.DefaultRange != "all" {
		t.Errorf("Expected default range 'all', got %q", cfg.Dashboard.DefaultRange)
	}
}

func TestDurationParsing(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
backend:
  url: http://localhost:8000
  timeout: 30s
scan:
  poll_interval: 500ms
dashboard:
  fetch_timeout: 5s
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Backend.Timeout.Std() != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.Backend.Timeout.Std())
	}
	if cfg.Scan.PollInterval.Std() != 500*time.Millisecond {
		t.Errorf("Expected 500ms poll interval, got %v", cfg.Scan.PollInterval.Std())
	}
	if cfg.Dashboard.FetchTimeout.Std() != 5*time.Second {
		t.Errorf("Expected 5s fetch timeout, got %v", cfg.Dashboard.FetchTimeout.Std())
	}
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("PULSE_TEST_PASSWORD", "hunter2")

	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
backend:
  url: http://localhost:8000
  password: ${PULSE_TEST_PASSWORD}
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Backend.Password != "hunter2" {
		t.Errorf("Expected expanded password, got %q", cfg.Backend.Password)
	}

	// Default values: ${VAR:-default}
	cfg, err = LoadFromBytes([]byte(`
version: "1.0"
backend:
  url: ${PULSE_TEST_MISSING_URL:-http://fallback:9000}
`))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Backend.URL != "http://fallback:9000" {
		t.Errorf("Expected fallback URL, got %q", cfg.Backend.URL)
	}
}

func TestValidation(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name:    "missing backend url",
			yaml:    "version: \"1.0\"\n",
			wantErr: true,
		},
		{
			name:    "relative url",
			yaml:    "version: \"1.0\"\nbackend:\n  url: /api\n",
			wantErr: true,
		},
		{
			name:    "bad scheme",
			yaml:    "version: \"1.0\"\nbackend:\n  url: ftp://host\n",
			wantErr: true,
		},
		{
			name:    "bad range preset",
			yaml:    "version: \"1.0\"\nbackend:\n  url: http://host\ndashboard:\n  default_range: lately\n",
			wantErr: true,
		},
		{
			name:    "numeric range preset",
			yaml:    "version: \"1.0\"\nbackend:\n  url: http://host\ndashboard:\n  default_range: \"7\"\n",
			wantErr: false,
		},
		{
			name:    "valid",
			yaml:    "version: \"1.0\"\nbackend:\n  url: https://pulse.example.com\n",
			wantErr: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tc.yaml))
			if tc.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(root, "pulse.yml")
	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\nbackend:\n  url: http://localhost:8000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("FindConfigFile failed: %v", err)
	}
	if found != configPath {
		t.Errorf("Expected %s, got %s", configPath, found)
	}
}

func TestLoadTOMLConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulse.toml")
	content := `
version = "1.0"

[backend]
url = "http://localhost:8000"
timeout = "20s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("Unexpected backend URL: %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout.Std() != 20*time.Second {
		t.Errorf("Expected 20s timeout, got %v", cfg.Backend.Timeout.Std())
	}
}
