// Package app wires the pymigrate CLI commands.
package app

import (
	"github.com/spf13/cobra"
)

var (
	cachePath string
	verbose   bool

	// RootCmd is the root command for pymigrate.
	RootCmd = &cobra.Command{
		Use:   "pymigrate",
		Short: "Migrate Brew-managed Python installations to pyenv",
		Long: `pymigrate moves a workstation's Python runtimes from Homebrew to pyenv
and relinks the Brew formulae that depend on them.

The migration runs as a fixed sequence:
  1. Inspect installed formulae and find the ones depending on python@ versions
  2. Install the matching Python versions with pyenv (skipping existing ones)
  3. Symlink the Brew Python directories into pyenv's versions directory
  4. Reinstall the dependent formulae so their links resolve
  5. Add pyenv initialization to your shell profile
  6. Uninstall the old Brew-managed Pythons

There is no rollback: already-completed steps are not undone when a later
step fails. All steps tolerate re-running.

Examples:
  # Preview what would be migrated
  pymigrate plan

  # Run the migration
  pymigrate migrate

  # Check that brew and pyenv are usable
  pymigrate doctor`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "formula cache database path (default: ~/.pymigrate/pymigrate.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (echo external commands, debug logs)")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
