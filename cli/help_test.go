package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestPrintErrorIncludesHelpHint(t *testing.T) {
	cmd := &cobra.Command{Use: "pulse"}
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)

	PrintError(cmd, errors.New("unknown flag: --bogus"))

	assert.Contains(t, errOut.String(), "unknown flag: --bogus")
	assert.Contains(t, errOut.String(), "pulse --help")
}

func TestParseDescriptionSplitsExamples(t *testing.T) {
	long := "Does a thing.\n\nExamples:\n  # comment\n  pulse thing --flag\n"
	desc, examples := parseDescription(long)
	assert.Equal(t, "Does a thing.", desc)
	assert.Contains(t, examples, "pulse thing --flag")

	desc, examples = parseDescription("No examples here.")
	assert.Equal(t, "No examples here.", desc)
	assert.Empty(t, examples)
}
