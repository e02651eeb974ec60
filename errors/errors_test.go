package errors

import (
	"fmt"
	"testing"
)

func TestPulseError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeSubjectNotFound, "subject not found")
	if err.Code != ErrCodeSubjectNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeSubjectNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeBackendUnreachable, "backend unreachable")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeBackendUnreachable) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeSubjectNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("subject_id", 42).WithDetail("name", "Doe")
	if detailed.Details["subject_id"] != 42 {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test SubjectNotFound
	err := SubjectNotFound(7)
	if err.Code != ErrCodeSubjectNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeSubjectNotFound, err.Code)
	}
	if err.Details["subject_id"] != int64(7) {
		t.Error("SubjectNotFound should include subject_id detail")
	}

	// Test BackendStatus surfaces the server body verbatim
	err = BackendStatus(400, "Ya hay un escaneo en curso")
	if err.Code != ErrCodeBackendStatus {
		t.Errorf("expected code %s, got %s", ErrCodeBackendStatus, err.Code)
	}
	if err.Message != "Ya hay un escaneo en curso" {
		t.Errorf("BackendStatus should keep the server message verbatim, got %q", err.Message)
	}
	if err.Details["status"] != 400 {
		t.Error("BackendStatus should include status detail")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
	if GetCode(ScanRejected("busy")) != ErrCodeScanRejected {
		t.Error("GetCode should return the error's code")
	}
	wrapped := fmt.Errorf("outer: %w", AuthFailed())
	if GetCode(wrapped) != ErrCodeAuthFailed {
		t.Error("GetCode should unwrap to find the code")
	}
}
