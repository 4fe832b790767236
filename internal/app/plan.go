package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridgeline-systems/pymigrate/internal/execx"
	"github.com/ridgeline-systems/pymigrate/internal/migrate"
	"github.com/ridgeline-systems/pymigrate/internal/output"
	"github.com/ridgeline-systems/pymigrate/internal/pyenv"
)

var (
	planCacheDays int
	planNoCache   bool

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "Preview the migration without changing anything",
		Long: `Run the read-only stages of the workflow: inspect installed formulae,
classify the Python-dependent ones, and show the versions and symlink
commands a migration would use. Nothing is installed, linked, or removed.`,
		Example: `  # Show the migration plan
  pymigrate plan

  # Plan against fresh brew info data
  pymigrate plan --no-cache`,
		RunE: runPlan,
	}
)

func init() {
	planCmd.Flags().IntVar(&planCacheDays, "cache-days", 7, "formula cache expiry in days")
	planCmd.Flags().BoolVar(&planNoCache, "no-cache", false, "bypass the formula metadata cache")

	RootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	pyenvRoot, err := pyenv.Root()
	if err != nil {
		return err
	}

	opts := migrate.Options{
		PyenvRoot: pyenvRoot,
		CacheDays: planCacheDays,
	}
	if !planNoCache {
		db, err := openCache()
		if err != nil {
			return fmt.Errorf("formula cache unavailable: %w", err)
		}
		defer db.Close()
		opts.Cache = db
	}

	runner := &execx.ExecRunner{Verbose: verbose}
	m := migrate.New(runner, newLogger(), opts)

	plan, err := m.BuildPlan(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Print(output.RenderMigrationPlan(plan.Packages, plan.Versions, plan.SymlinkCommands))
	return nil
}
