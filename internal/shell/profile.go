// Package shell writes the pyenv initialization block into the user's shell
// profile.
package shell

import (
	"fmt"
	"os"
	"strings"
)

// PyenvInitSnippet is the block appended to the shell profile so pyenv's
// shims take precedence over any remaining Brew-managed Python. The exact
// bytes matter: a leading blank line separates it from existing content.
const PyenvInitSnippet = "\nif command -v pyenv 1>/dev/null 2>&1; then\n" +
	"  eval \"$(pyenv init --path)\"\n" +
	"  eval \"$(pyenv init -)\"\n" +
	"fi\n"

// EnsurePyenvInit appends PyenvInitSnippet to the profile at profilePath,
// creating the file if needed. Returns added=false without modifying the
// file when the snippet is already present, so re-running the migration
// does not stack duplicate blocks.
func EnsurePyenvInit(profilePath string) (added bool, err error) {
	existing, readErr := os.ReadFile(profilePath)
	if readErr == nil && strings.Contains(string(existing), "pyenv init --path") {
		return false, nil
	}

	f, err := os.OpenFile(profilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return false, fmt.Errorf("cannot open profile %s: %w", profilePath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(PyenvInitSnippet); err != nil {
		return false, fmt.Errorf("cannot write to profile %s: %w", profilePath, err)
	}

	return true, nil
}

// DefaultProfilePath picks the profile file for the user's shell: ~/.zshrc
// for zsh, ~/.bash_profile for bash, ~/.profile otherwise.
func DefaultProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}

	switch shellName() {
	case "zsh":
		return home + "/.zshrc", nil
	case "bash":
		return home + "/.bash_profile", nil
	default:
		return home + "/.profile", nil
	}
}

func shellName() string {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return ""
	}
	if i := strings.LastIndexByte(shellPath, '/'); i >= 0 {
		return shellPath[i+1:]
	}
	return shellPath
}
