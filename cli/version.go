package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediapulse/pulse/version"
)

// SetVersionTemplate wires build info into cobra's --version flag so
// `pulse --version` reports the same build as `pulse version`.
func SetVersionTemplate(cmd *cobra.Command, info version.Info) {
	cmd.Version = info.Version
	cmd.SetVersionTemplate(fmt.Sprintf(`{{.Name}} {{.Version}}
  Commit:    %s
  Branch:    %s
  Built:     %s
  Platform:  %s
`, info.Commit, info.Branch, info.BuildDate, info.Platform))
}
