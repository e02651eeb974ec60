package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediapulse/pulse/version"
)

func TestSetVersionTemplate(t *testing.T) {
	info := version.Info{
		Version:   "1.2.3",
		Commit:    "abc1234",
		Branch:    "main",
		BuildDate: "2026-08-29T10:00:00Z",
		Platform:  "linux/amd64",
	}

	cmd := &cobra.Command{Use: "pulse"}
	SetVersionTemplate(cmd, info)
	assert.Equal(t, "1.2.3", cmd.Version)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "pulse 1.2.3")
	assert.Contains(t, out.String(), "abc1234")
	assert.Contains(t, out.String(), "main")
}
