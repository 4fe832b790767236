// Package pyenv wraps the pyenv version manager.
package pyenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/ridgeline-systems/pymigrate/internal/execx"
)

// Client issues pyenv commands through a Runner.
type Client struct {
	runner execx.Runner
}

// NewClient returns a Client that executes pyenv via runner.
func NewClient(runner execx.Runner) *Client {
	return &Client{runner: runner}
}

// Root returns the pyenv root directory: $PYENV_ROOT when set, otherwise
// ~/.pyenv.
func Root() (string, error) {
	if root := os.Getenv("PYENV_ROOT"); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".pyenv"), nil
}

// Install installs a Python version with -s, so an already-installed
// version is a no-op. The version must be a bare version string such as
// "3.9" — malformed input is rejected before any command runs.
func (c *Client) Install(ctx context.Context, version string) error {
	if _, err := goversion.NewVersion(version); err != nil {
		return fmt.Errorf("invalid python version %q: %w", version, err)
	}
	if _, err := c.runner.Run(ctx, []string{"pyenv", "install", "-s", version}); err != nil {
		return fmt.Errorf("pyenv install %s failed: %w", version, err)
	}
	return nil
}

// Rehash regenerates pyenv's shim executables. Run once after all symlinks
// are in place.
func (c *Client) Rehash(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, []string{"pyenv", "rehash"}); err != nil {
		return fmt.Errorf("pyenv rehash failed: %w", err)
	}
	return nil
}

// StripVersionPrefix converts a runtime identifier like "python@3.9" to the
// bare version pyenv expects. Identifiers without the prefix pass through
// unchanged.
func StripVersionPrefix(identifier string) string {
	return strings.TrimPrefix(identifier, "python@")
}
