package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnsurePyenvInit_AppendsExactSnippet verifies the snippet lands
// byte-for-byte after existing content, including its leading and trailing
// newlines.
func TestEnsurePyenvInit_AppendsExactSnippet(t *testing.T) {
	profile := filepath.Join(t.TempDir(), ".zshrc")
	existing := "export PATH=/usr/local/bin:$PATH\n"
	if err := os.WriteFile(profile, []byte(existing), 0644); err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	added, err := EnsurePyenvInit(profile)
	if err != nil {
		t.Fatalf("EnsurePyenvInit() failed: %v", err)
	}
	if !added {
		t.Error("expected added=true on first append")
	}

	data, err := os.ReadFile(profile)
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}

	want := existing +
		"\nif command -v pyenv 1>/dev/null 2>&1; then\n" +
		"  eval \"$(pyenv init --path)\"\n" +
		"  eval \"$(pyenv init -)\"\n" +
		"fi\n"
	if string(data) != want {
		t.Errorf("profile content = %q, want %q", data, want)
	}
}

func TestEnsurePyenvInit_CreatesMissingFile(t *testing.T) {
	profile := filepath.Join(t.TempDir(), ".profile")

	added, err := EnsurePyenvInit(profile)
	if err != nil {
		t.Fatalf("EnsurePyenvInit() failed: %v", err)
	}
	if !added {
		t.Error("expected added=true for a new file")
	}

	data, err := os.ReadFile(profile)
	if err != nil {
		t.Fatalf("failed to read profile: %v", err)
	}
	if string(data) != PyenvInitSnippet {
		t.Errorf("new profile content = %q, want the bare snippet", data)
	}
}

// TestEnsurePyenvInit_AlreadyPresent verifies a rerun does not duplicate
// the block.
func TestEnsurePyenvInit_AlreadyPresent(t *testing.T) {
	profile := filepath.Join(t.TempDir(), ".zshrc")

	if _, err := EnsurePyenvInit(profile); err != nil {
		t.Fatalf("first EnsurePyenvInit() failed: %v", err)
	}
	added, err := EnsurePyenvInit(profile)
	if err != nil {
		t.Fatalf("second EnsurePyenvInit() failed: %v", err)
	}
	if added {
		t.Error("expected added=false on rerun")
	}

	data, _ := os.ReadFile(profile)
	if got := strings.Count(string(data), "pyenv init --path"); got != 1 {
		t.Errorf("snippet appears %d times, want 1", got)
	}
}

func TestEnsurePyenvInit_UnwritablePath(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "missing-dir", ".zshrc")

	if _, err := EnsurePyenvInit(profile); err == nil {
		t.Error("EnsurePyenvInit() should fail when the parent directory does not exist")
	}
}

func TestDefaultProfilePath(t *testing.T) {
	t.Setenv("HOME", "/Users/test")

	tests := []struct {
		shell string
		want  string
	}{
		{"/bin/zsh", "/Users/test/.zshrc"},
		{"/bin/bash", "/Users/test/.bash_profile"},
		{"/bin/sh", "/Users/test/.profile"},
		{"", "/Users/test/.profile"},
	}

	for _, tt := range tests {
		t.Setenv("SHELL", tt.shell)
		got, err := DefaultProfilePath()
		if err != nil {
			t.Fatalf("DefaultProfilePath() failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("DefaultProfilePath() with SHELL=%q = %q, want %q", tt.shell, got, tt.want)
		}
	}
}
