package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/pymigrate/internal/execx"
	"github.com/ridgeline-systems/pymigrate/internal/migrate"
	"github.com/ridgeline-systems/pymigrate/internal/output"
	"github.com/ridgeline-systems/pymigrate/internal/pyenv"
	"github.com/ridgeline-systems/pymigrate/internal/shell"
)

var (
	migrateProfilePath string
	migratePyenvRoot   string
	migrateCacheDays   int
	migrateNoCache     bool

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate Brew-managed Pythons to pyenv and relink dependents",
		Long: `Run the full migration workflow.

Installed formulae are inspected for python@ dependencies, the matching
Python versions are installed with pyenv, the Brew installations are
symlinked into pyenv's versions directory, dependent formulae are
reinstalled, the shell profile gains pyenv initialization, and the old
Brew Pythons are removed.

Formula metadata is cached between runs; use --no-cache to force fresh
brew info queries.`,
		Example: `  # Run the migration
  pymigrate migrate

  # Target a specific profile file
  pymigrate migrate --profile ~/.zshrc

  # Ignore cached formula metadata
  pymigrate migrate --no-cache`,
		RunE: runMigrate,
	}
)

func init() {
	migrateCmd.Flags().StringVar(&migrateProfilePath, "profile", "", "shell profile to update (default: detected from $SHELL)")
	migrateCmd.Flags().StringVar(&migratePyenvRoot, "pyenv-root", "", "pyenv root directory (default: $PYENV_ROOT or ~/.pyenv)")
	migrateCmd.Flags().IntVar(&migrateCacheDays, "cache-days", 7, "formula cache expiry in days")
	migrateCmd.Flags().BoolVar(&migrateNoCache, "no-cache", false, "bypass the formula metadata cache")

	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	opts, closeCache, err := buildMigrateOptions()
	if err != nil {
		return err
	}
	defer closeCache()

	logger := newLogger()
	runner := &execx.ExecRunner{Verbose: verbose}

	// The bar is created on first callback, once the package count is known.
	var bar *output.ProgressBar
	opts.ReinstallProgress = func(done, total int) {
		if bar == nil {
			bar = output.NewProgress(total, "Reinstalling packages")
		}
		bar.Update(done)
		if done == total {
			bar.Finish()
		}
	}

	return migrate.New(runner, logger, opts).Run(cmd.Context())
}

// buildMigrateOptions resolves flags and environment into workflow options.
// The returned closer releases the cache store (a no-op with --no-cache).
func buildMigrateOptions() (migrate.Options, func(), error) {
	opts := migrate.Options{CacheDays: migrateCacheDays}
	closeCache := func() {}

	opts.ProfilePath = migrateProfilePath
	if opts.ProfilePath == "" {
		path, err := shell.DefaultProfilePath()
		if err != nil {
			return opts, closeCache, err
		}
		opts.ProfilePath = path
	}

	opts.PyenvRoot = migratePyenvRoot
	if opts.PyenvRoot == "" {
		root, err := pyenv.Root()
		if err != nil {
			return opts, closeCache, err
		}
		opts.PyenvRoot = root
	}

	if !migrateNoCache {
		db, err := openCache()
		if err != nil {
			return opts, closeCache, fmt.Errorf("formula cache unavailable: %w", err)
		}
		opts.Cache = db
		closeCache = func() { db.Close() }
	}

	return opts, closeCache, nil
}
