// Package migrate sequences the Brew-to-pyenv Python migration workflow.
//
// The workflow is a linear pipeline: fetch formula metadata, classify
// Python-dependent formulae, extract the Brew Python versions in use,
// install pyenv equivalents, symlink the Brew installations into pyenv and
// reinstall dependents, then update the shell profile and remove the old
// Brew Pythons. Only the install stage runs concurrently; every other stage
// depends on side effects of the previous one and runs sequentially.
package migrate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ridgeline-systems/pymigrate/internal/brew"
	"github.com/ridgeline-systems/pymigrate/internal/cache"
	"github.com/ridgeline-systems/pymigrate/internal/execx"
	"github.com/ridgeline-systems/pymigrate/internal/pyenv"
	"github.com/ridgeline-systems/pymigrate/internal/shell"
	"github.com/ridgeline-systems/pymigrate/internal/store"
)

// FormulaCache is the subset of the store consulted during the fetch stage.
type FormulaCache interface {
	GetFormula(name string) (*brew.Formula, time.Time, error)
	PutFormula(formula *brew.Formula, fetchedAt time.Time) error
}

// Options configures a Migrator.
type Options struct {
	// PyenvRoot is the pyenv root directory symlinks are created under.
	PyenvRoot string

	// ProfilePath is the shell profile file the pyenv init block is
	// appended to.
	ProfilePath string

	// Cache holds previously fetched formula metadata. Nil disables
	// caching and every formula is fetched from brew.
	Cache FormulaCache

	// CacheDays is the cache expiry threshold; entries at least this many
	// days old are refetched.
	CacheDays int

	// ReinstallProgress, when set, is called after each dependent formula
	// is processed during the reinstall stage.
	ReinstallProgress func(done, total int)
}

// Migrator runs the migration workflow against brew and pyenv.
type Migrator struct {
	brew   *brew.Client
	pyenv  *pyenv.Client
	runner execx.Runner
	logger zerolog.Logger
	opts   Options
}

// New returns a Migrator issuing commands through runner and reporting
// progress through logger.
func New(runner execx.Runner, logger zerolog.Logger, opts Options) *Migrator {
	return &Migrator{
		brew:   brew.NewClient(runner),
		pyenv:  pyenv.NewClient(runner),
		runner: runner,
		logger: logger,
		opts:   opts,
	}
}

// Plan is the read-only result of the workflow's pure stages.
type Plan struct {
	Formulae        []*brew.Formula
	Packages        []*brew.PythonPackage
	Versions        []string
	SymlinkCommands []string
}

// BuildPlan runs the side-effect-free stages: fetch, classify, extract, and
// symlink command generation. Used by the plan command and as the first half
// of Run.
func (m *Migrator) BuildPlan(ctx context.Context) (*Plan, error) {
	formulae, err := m.fetchFormulae(ctx)
	if err != nil {
		return nil, err
	}

	packages := brew.IdentifyPythonPackages(formulae)
	versions := brew.ExtractPythonVersions(packages)

	pythonDirs, err := m.discoverPythonDirs(ctx, versions)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Formulae:        formulae,
		Packages:        packages,
		Versions:        versions,
		SymlinkCommands: pyenv.GenerateSymlinkCommands(pythonDirs, m.opts.PyenvRoot),
	}, nil
}

// Run executes the full workflow. Stage failures in fetch, install, or the
// profile update halt the run; individual reinstall and uninstall failures
// are logged and tolerated so one broken formula cannot strand the rest of
// the migration.
func (m *Migrator) Run(ctx context.Context) error {
	plan, err := m.BuildPlan(ctx)
	if err != nil {
		return err
	}

	if len(plan.Versions) == 0 {
		m.logger.Info().Msg("No Brew-managed Python dependencies found.")
	}

	if err := m.installVersions(ctx, plan.Versions); err != nil {
		return err
	}

	if err := m.symlinkAndReinstall(ctx, plan); err != nil {
		return err
	}

	return m.updateProfileAndRemoveOld(ctx, plan.Versions)
}

// fetchFormulae lists installed formulae and collects one metadata record
// per name, in list order. Fresh cache entries short-circuit the brew info
// call; any fetch or parse failure aborts the stage.
func (m *Migrator) fetchFormulae(ctx context.Context) ([]*brew.Formula, error) {
	names, err := m.brew.ListFormulaNames(ctx)
	if err != nil {
		return nil, err
	}

	formulae := make([]*brew.Formula, 0, len(names))
	for _, name := range names {
		if cached := m.cachedFormula(name); cached != nil {
			formulae = append(formulae, cached)
			continue
		}

		formula, err := m.brew.FormulaInfo(ctx, name)
		if err != nil {
			return nil, err
		}
		if m.opts.Cache != nil {
			if err := m.opts.Cache.PutFormula(formula, time.Now()); err != nil {
				m.logger.Warn().Err(err).Str("formula", name).Msg("failed to cache formula metadata")
			}
		}
		formulae = append(formulae, formula)
	}

	return formulae, nil
}

func (m *Migrator) cachedFormula(name string) *brew.Formula {
	if m.opts.Cache == nil {
		return nil
	}
	formula, fetchedAt, err := m.opts.Cache.GetFormula(name)
	if err != nil || !cache.IsCacheValid(fetchedAt, m.opts.CacheDays) {
		return nil
	}
	return formula
}

// discoverPythonDirs resolves each python@ version to its installed Cellar
// directories, e.g. /usr/local/Cellar/python@3.9/3.9.0. Versions with no
// Cellar directory contribute nothing; brew may know about a dependency
// that was never poured.
func (m *Migrator) discoverPythonDirs(ctx context.Context, versions []string) ([]string, error) {
	if len(versions) == 0 {
		return nil, nil
	}

	prefix, err := m.brew.Prefix(ctx)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, version := range versions {
		matches, err := filepath.Glob(filepath.Join(prefix, "Cellar", version, "*"))
		if err != nil {
			return nil, fmt.Errorf("bad cellar pattern for %s: %w", version, err)
		}
		dirs = append(dirs, matches...)
	}
	return dirs, nil
}

// installVersions installs the pyenv equivalent of every Brew Python
// concurrently. Installs target independent directories, so they do not
// need ordering; the stage waits for all of them and fails if any failed.
// Already-completed installs are not rolled back.
func (m *Migrator) installVersions(ctx context.Context, versions []string) error {
	if len(versions) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, identifier := range versions {
		version := pyenv.StripVersionPrefix(identifier)
		g.Go(func() error {
			return m.pyenv.Install(ctx, version)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("one or more pyenv installs failed: %w", err)
	}

	m.logger.Info().Msgf("Installed %d Python version(s) with pyenv.", len(versions))
	return nil
}

// symlinkAndReinstall links the Brew Python directories into pyenv's
// versions directory, rehashes once, then reinstalls each dependent formula
// so its links resolve against the migrated runtime. Symlinks run strictly
// in order; a reinstall failure is tolerated and does not stop the loop.
func (m *Migrator) symlinkAndReinstall(ctx context.Context, plan *Plan) error {
	for _, command := range plan.SymlinkCommands {
		argv, err := shellquote.Split(command)
		if err != nil {
			return fmt.Errorf("bad symlink command %q: %w", command, err)
		}
		m.logger.Info().Msgf("Running: %s", command)
		if _, err := m.runner.Run(ctx, argv); err != nil {
			return fmt.Errorf("symlink failed: %w", err)
		}
	}

	if len(plan.SymlinkCommands) > 0 {
		if err := m.pyenv.Rehash(ctx); err != nil {
			return err
		}
	}

	for i, pkg := range plan.Packages {
		if err := m.brew.Reinstall(ctx, pkg.Name); err != nil {
			// Tolerated: the formula may already link against the new
			// runtime or be broken independently of the migration.
			m.logger.Warn().Err(err).Str("package", pkg.Name).Msg("reinstall failed; continuing")
		} else {
			m.logger.Info().Msgf("Reinstalled Brew package: %s", pkg.Name)
		}
		if m.opts.ReinstallProgress != nil {
			m.opts.ReinstallProgress(i+1, len(plan.Packages))
		}
	}

	return nil
}

// updateProfileAndRemoveOld appends the pyenv init block to the shell
// profile, then uninstalls the old Brew Pythons. Profile failure halts;
// uninstall failures are tolerated since the formula may already be gone.
func (m *Migrator) updateProfileAndRemoveOld(ctx context.Context, versions []string) error {
	if _, err := shell.EnsurePyenvInit(m.opts.ProfilePath); err != nil {
		return err
	}
	m.logger.Info().Msg("Updated .zshrc to prioritize pyenv over Brew-managed Python.")

	for _, identifier := range versions {
		if err := m.brew.Uninstall(ctx, identifier); err != nil {
			m.logger.Warn().Err(err).Str("formula", identifier).Msg("uninstall failed; continuing")
			continue
		}
		m.logger.Info().Msgf("Uninstalled Brew-managed Python: %s", identifier)
	}

	return nil
}

// Ensure Store satisfies FormulaCache.
var _ FormulaCache = (*store.Store)(nil)
