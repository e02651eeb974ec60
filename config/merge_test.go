package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConfigs(t *testing.T) {
	base := &Config{
		Version: "1.0",
		Backend: BackendConfig{
			URL:     "http://localhost:8000",
			Timeout: Duration(15 * time.Second),
		},
		Scan: ScanConfig{
			PollInterval: Duration(2 * time.Second),
		},
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{
				"level": "info",
			},
		},
	}

	override := &Config{
		Backend: BackendConfig{
			URL: "https://pulse.example.com",
		},
		Scan: ScanConfig{
			PollInterval: Duration(5 * time.Second),
		},
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{
				"report_caller": true,
			},
		},
	}

	merged := mergeConfigs(base, override)

	assert.Equal(t, "1.0", merged.Version, "unset override fields keep base values")
	assert.Equal(t, "https://pulse.example.com", merged.Backend.URL)
	assert.Equal(t, Duration(15*time.Second), merged.Backend.Timeout, "timeout not overridden")
	assert.Equal(t, Duration(5*time.Second), merged.Scan.PollInterval)

	// Extension maps with the same key are merged, not replaced
	logExt, ok := merged.Extensions["logging"].(map[string]interface{})
	require.True(t, ok, "logging extension should remain a map")
	assert.Equal(t, "info", logExt["level"])
	assert.Equal(t, true, logExt["report_caller"])
}

func TestMergeDashboard(t *testing.T) {
	base := DashboardConfig{
		PageSize:     50,
		FetchTimeout: Duration(10 * time.Second),
		DefaultRange: "all",
	}
	override := DashboardConfig{
		PageSize:     25,
		DefaultRange: "7",
	}

	merged := mergeDashboard(base, override)
	assert.Equal(t, 25, merged.PageSize)
	assert.Equal(t, Duration(10*time.Second), merged.FetchTimeout)
	assert.Equal(t, "7", merged.DefaultRange)
}
