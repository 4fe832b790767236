// Package output provides terminal output utilities for pymigrate:
// plan rendering for the dry-run command and a progress bar for the
// reinstall loop. Tables use ASCII characters and ANSI color codes.
package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/mattn/go-isatty"

	"github.com/ridgeline-systems/pymigrate/internal/brew"
)

// ANSI color codes for plan display.
const (
	colorReset = "\033[0m"
	ColorCyan  = "\033[36m"
	ColorGray  = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// RenderMigrationPlan renders the dry-run view: the Python-dependent
// formulae, the runtime versions to install, and the symlink commands that
// would run. Package rows keep workflow order; the version summary line is
// sorted numerically for readability.
func RenderMigrationPlan(packages []*brew.PythonPackage, versions []string, symlinkCommands []string) string {
	var sb strings.Builder

	if len(packages) == 0 {
		sb.WriteString("No Brew-managed Python dependencies found; nothing to migrate.\n")
		return sb.String()
	}

	header := fmt.Sprintf("%-24s %-12s %s", "Package", "Version", "Python Dependencies")
	sb.WriteString(Colorize(header, ColorCyan))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	for _, pkg := range packages {
		sb.WriteString(fmt.Sprintf("%-24s %-12s %s\n",
			pkg.Name, pkg.Version, strings.Join(pythonDeps(pkg), ", ")))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Python versions to install with pyenv: %s\n",
		strings.Join(sortedBareVersions(versions), ", ")))

	if len(symlinkCommands) > 0 {
		sb.WriteString("\nSymlink commands:\n")
		for _, command := range symlinkCommands {
			sb.WriteString("  " + Colorize(command, ColorGray) + "\n")
		}
	}

	return sb.String()
}

func pythonDeps(pkg *brew.PythonPackage) []string {
	var deps []string
	for _, dep := range pkg.Dependencies {
		if strings.HasPrefix(dep, brew.PythonDepPrefix) {
			deps = append(deps, dep)
		}
	}
	return deps
}

// sortedBareVersions strips the python@ prefix and sorts numerically, so
// "3.10" lands after "3.9" rather than between "3.1" and "3.2".
func sortedBareVersions(identifiers []string) []string {
	bare := make([]string, 0, len(identifiers))
	for _, id := range identifiers {
		bare = append(bare, strings.TrimPrefix(id, brew.PythonDepPrefix))
	}

	sort.SliceStable(bare, func(i, j int) bool {
		vi, erri := goversion.NewVersion(bare[i])
		vj, errj := goversion.NewVersion(bare[j])
		if erri != nil || errj != nil {
			return bare[i] < bare[j]
		}
		return vi.LessThan(vj)
	})
	return bare
}

// Colorize wraps s in the given ANSI color when color output is enabled.
func Colorize(s, color string) string {
	if !IsColorEnabled() {
		return s
	}
	return color + s + colorReset
}
