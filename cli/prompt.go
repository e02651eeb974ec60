package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/mediapulse/pulse/errors"
)

// ReadPassword prompts for the dashboard password without echoing it. On
// non-interactive stdin (pipes, CI) it falls back to reading a single line.
func ReadPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if isatty.IsTerminal(os.Stdin.Fd()) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read password")
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question on stderr and reads the answer from stdin.
// Anything other than y/yes counts as no.
func Confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
