package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateOperations(t *testing.T) {
	// Redirect the state file into a temp home directory
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	t.Run("Load empty state", func(t *testing.T) {
		state, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if state == nil {
			t.Fatal("Load() returned nil state")
		}
		if len(state) != 0 {
			t.Errorf("Load() returned non-empty state: %v", state)
		}
	})

	t.Run("Set and Get string value", func(t *testing.T) {
		key := "test.key"
		value := "test-value"

		if err := Set(key, value); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := GetString(key)
		if err != nil {
			t.Fatalf("GetString() error = %v", err)
		}
		if got != value {
			t.Errorf("GetString() = %v, want %v", got, value)
		}
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, ok, err := Get("non.existent")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() returned ok=true for missing key")
		}
	})

	t.Run("Delete key", func(t *testing.T) {
		if err := Set("to.delete", "x"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := Delete("to.delete"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		_, ok, err := Get("to.delete")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("key still present after Delete()")
		}
	})

	t.Run("State file permissions", func(t *testing.T) {
		if err := Set("any", "value"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		info, err := os.Stat(filepath.Join(tmpDir, ".mediapulse", "state.yml"))
		if err != nil {
			t.Fatalf("stat state file: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("state file mode = %v, want 0600", info.Mode().Perm())
		}
	})
}

func TestSubjectAndTokenHelpers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	id, err := LastSubject()
	if err != nil {
		t.Fatalf("LastSubject() error = %v", err)
	}
	if id != 0 {
		t.Errorf("LastSubject() = %d, want 0 for fresh state", id)
	}

	if err := SetLastSubject(42); err != nil {
		t.Fatalf("SetLastSubject() error = %v", err)
	}
	id, err = LastSubject()
	if err != nil {
		t.Fatalf("LastSubject() error = %v", err)
	}
	if id != 42 {
		t.Errorf("LastSubject() = %d, want 42", id)
	}

	if err := SetAuthToken("tok-123"); err != nil {
		t.Fatalf("SetAuthToken() error = %v", err)
	}
	tok, err := AuthToken()
	if err != nil {
		t.Fatalf("AuthToken() error = %v", err)
	}
	if tok != "tok-123" {
		t.Errorf("AuthToken() = %q, want %q", tok, "tok-123")
	}

	if err := ClearAuthToken(); err != nil {
		t.Fatalf("ClearAuthToken() error = %v", err)
	}
	tok, err = AuthToken()
	if err != nil {
		t.Fatalf("AuthToken() error = %v", err)
	}
	if tok != "" {
		t.Errorf("AuthToken() = %q after clear, want empty", tok)
	}
}
