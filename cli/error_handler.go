package cli

import (
	"fmt"
	"os"

	"github.com/mediapulse/pulse/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration not found. Create a pulse.yml or run 'pulse config schema' to see the format.\n")
		return err

	case errors.ErrCodeBackendUnreachable:
		if pulseErr, ok := err.(*errors.PulseError); ok {
			fmt.Fprintf(os.Stderr, "❌ Cannot reach the MediaPulse backend at %v\n", pulseErr.Details["base_url"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Cannot reach the MediaPulse backend\n")
		}
		fmt.Fprintf(os.Stderr, "Check that the server is running and backend.url in pulse.yml is correct.\n")
		return err

	case errors.ErrCodeAuthRequired, errors.ErrCodeAuthFailed:
		fmt.Fprintf(os.Stderr, "❌ Authentication failed. Set backend.password in pulse.yml or run 'pulse login'.\n")
		return err

	case errors.ErrCodeScanRejected, errors.ErrCodeScanAlreadyRunning:
		fmt.Fprintf(os.Stderr, "❌ A scan is already in progress. Wait for it to finish or watch it with 'pulse scan --wait'.\n")
		return err

	case errors.ErrCodeSubjectNotFound:
		if pulseErr, ok := err.(*errors.PulseError); ok {
			fmt.Fprintf(os.Stderr, "❌ Subject %v not found\n", pulseErr.Details["subject_id"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ Subject not found\n")
		}
		fmt.Fprintf(os.Stderr, "Run 'pulse players' to list tracked subjects.\n")
		return err

	case errors.ErrCodeExportFailed:
		fmt.Fprintf(os.Stderr, "❌ Export failed: %v\n", err)
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if pulseErr, ok := err.(*errors.PulseError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", pulseErr.ToJSON())
			}
		}
		return err
	}
}
