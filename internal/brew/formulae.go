// Package brew wraps the Homebrew command line tool. All invocations go
// through an execx.Runner so the workflow can be exercised against fakes.
package brew

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ridgeline-systems/pymigrate/internal/execx"
)

// ErrNoFormula is returned when brew info yields no formula records for a
// queried name (e.g. the name refers to a cask or was removed from the tap).
var ErrNoFormula = errors.New("no formula record in brew info output")

// brewInfoOutput represents the structure of `brew info --json=v2` output.
type brewInfoOutput struct {
	Formulae []brewFormulaInfo `json:"formulae"`
}

// brewFormulaInfo represents a single formula record in JSON output.
type brewFormulaInfo struct {
	Name     string `json:"name"`
	Versions struct {
		Stable string `json:"stable"`
	} `json:"versions"`
	Dependencies []string `json:"dependencies"`
}

// Client issues brew commands through a Runner.
type Client struct {
	runner execx.Runner
}

// NewClient returns a Client that executes brew via runner.
func NewClient(runner execx.Runner) *Client {
	return &Client{runner: runner}
}

// ListFormulaNames returns the names of all installed formulae, one per
// `brew list --formula` output line, blank lines dropped.
func (c *Client) ListFormulaNames(ctx context.Context) ([]string, error) {
	result, err := c.runner.Run(ctx, []string{"brew", "list", "--formula"})
	if err != nil {
		return nil, fmt.Errorf("brew list failed: %w", err)
	}

	var names []string
	for _, line := range strings.Split(result.Text(), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// FormulaInfo fetches metadata for a single formula via brew info. Brew can
// report multiple matches per name; the first formula record wins. Zero
// records is an error (ErrNoFormula) rather than a silent skip.
func (c *Client) FormulaInfo(ctx context.Context, name string) (*Formula, error) {
	result, err := c.runner.Run(ctx, []string{"brew", "info", name, "--json=v2"})
	if err != nil {
		return nil, fmt.Errorf("brew info failed for %s: %w", name, err)
	}

	var info brewInfoOutput
	if err := result.JSON(&info); err != nil {
		return nil, fmt.Errorf("malformed brew info output for %s: %w", name, err)
	}

	if len(info.Formulae) == 0 {
		return nil, fmt.Errorf("brew info %s: %w", name, ErrNoFormula)
	}

	record := info.Formulae[0]
	return &Formula{
		Name:         record.Name,
		Versions:     Versions{Stable: record.Versions.Stable},
		Dependencies: record.Dependencies,
	}, nil
}

// Prefix returns the Homebrew installation prefix (brew --prefix).
func (c *Client) Prefix(ctx context.Context) (string, error) {
	result, err := c.runner.Run(ctx, []string{"brew", "--prefix"})
	if err != nil {
		return "", fmt.Errorf("brew --prefix failed: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}

// Reinstall reinstalls a formula so its link targets resolve against the
// migrated Python. The error carries stderr context; callers in the
// migration loop tolerate it.
func (c *Client) Reinstall(ctx context.Context, name string) error {
	if _, err := c.runner.Run(ctx, []string{"brew", "reinstall", name}); err != nil {
		return fmt.Errorf("brew reinstall %s failed: %w", name, err)
	}
	return nil
}

// Uninstall removes a formula without dependency checks. Used for the old
// python@ formulae after their dependents have been relinked.
func (c *Client) Uninstall(ctx context.Context, name string) error {
	if _, err := c.runner.Run(ctx, []string{"brew", "uninstall", "--ignore-dependencies", name}); err != nil {
		return fmt.Errorf("brew uninstall %s failed: %w", name, err)
	}
	return nil
}
