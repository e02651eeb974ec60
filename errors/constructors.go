package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PulseError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PulseError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// BackendUnreachable creates a backend unreachable error
func BackendUnreachable(baseURL string, cause error) *PulseError {
	return Wrap(cause, ErrCodeBackendUnreachable, fmt.Sprintf("backend %s is unreachable", baseURL)).
		WithDetail("base_url", baseURL)
}

// BackendStatus creates an unexpected HTTP status error. The body is the raw
// response text, surfaced verbatim to the user.
func BackendStatus(status int, body string) *PulseError {
	return New(ErrCodeBackendStatus, body).
		WithDetail("status", status)
}

// ResponseInvalid creates an undecodable response error
func ResponseInvalid(path string, cause error) *PulseError {
	return Wrap(cause, ErrCodeResponseInvalid, fmt.Sprintf("invalid response from %s", path)).
		WithDetail("path", path)
}

// AuthRequired creates an authentication required error
func AuthRequired() *PulseError {
	return New(ErrCodeAuthRequired, "backend requires authentication")
}

// AuthFailed creates an authentication failed error
func AuthFailed() *PulseError {
	return New(ErrCodeAuthFailed, "authentication failed: wrong password")
}

// ScanRejected creates a scan rejected error. The reason is the backend's
// error string, surfaced verbatim.
func ScanRejected(reason string) *PulseError {
	return New(ErrCodeScanRejected, reason)
}

// ScanAlreadyRunning creates a scan already in progress error
func ScanAlreadyRunning() *PulseError {
	return New(ErrCodeScanAlreadyRunning, "a scan is already in progress")
}

// SubjectNotFound creates a subject not found error
func SubjectNotFound(id int64) *PulseError {
	return New(ErrCodeSubjectNotFound, fmt.Sprintf("subject %d not found", id)).
		WithDetail("subject_id", id)
}

// ExportFailed creates an export failed error
func ExportFailed(kind string, cause error) *PulseError {
	return Wrap(cause, ErrCodeExportFailed, fmt.Sprintf("%s export failed", kind)).
		WithDetail("type", kind)
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *PulseError {
	return New(ErrCodeInvalidInput, reason)
}
