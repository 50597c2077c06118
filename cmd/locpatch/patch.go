package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sclocal/locpatch/internal/cache"
	"github.com/sclocal/locpatch/internal/config"
	"github.com/sclocal/locpatch/internal/detect"
	"github.com/sclocal/locpatch/internal/gamecfg"
	"github.com/sclocal/locpatch/internal/lines"
	"github.com/sclocal/locpatch/internal/merge"
	"github.com/sclocal/locpatch/internal/overrides"
)

// PatchOptions are the inputs of the update workflow.
type PatchOptions struct {
	ConfigPath    string
	OverridesPath string
	CacheDir      string
	Env           string
}

// Patch runs the full update workflow: determine the current build
// version, extract and cache its table if unseen, diff it against the
// previous cached version with the overrides cross-referenced, and - when
// autoWrite is configured - merge the overrides into the game directory
// and converge user.cfg on the configured language.
//
// Conflicts and orphaned overrides found by the diff are reported but do
// not fail the run; extraction failures abort before anything is written.
func (prog *Program) Patch(ctx context.Context, opts PatchOptions) error {
	cfg, err := config.Load(prog.fs, opts.ConfigPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg = config.Default()
		fmt.Fprintf(prog.stderr, "no config at %s, starting from defaults\n", opts.ConfigPath)
	}

	env, err := prog.resolveEnv(cfg, opts.Env)
	if err != nil {
		return err
	}

	install, err := prog.resolveInstall(cfg)
	if err != nil {
		return err
	}
	cfg.GameInstallPath = install

	version, ok := detect.BuildVersionFromLog(prog.fs, install, env)
	if !ok {
		return fmt.Errorf("could not determine build version from %s", filepath.Join(install, env, "Game.log"))
	}

	store := cache.NewStore(prog.fs, opts.CacheDir)

	previous, err := store.Previous(env, version)
	if err != nil {
		return fmt.Errorf("failed to inspect snapshot cache: %w", err)
	}

	cached, err := store.Has(version, env)
	if err != nil {
		return fmt.Errorf("failed to inspect snapshot cache: %w", err)
	}

	if !cached {
		if _, err := prog.extractSnapshot(ctx, cfg, opts.CacheDir, env, version); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(prog.stderr, "build %s already cached\n", version)
	}

	currentData, err := store.Load(version, env)
	if err != nil {
		return fmt.Errorf("failed to load current snapshot: %w", err)
	}

	var ovTable *lines.Table
	ovText, err := prog.readTextFile(opts.OverridesPath)
	switch {
	case err == nil:
		ovTable, _ = overrides.Parse(ovText)
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(prog.stderr, "no override file at %s\n", opts.OverridesPath)
	default:
		return fmt.Errorf("failed to read override file: %w", err)
	}

	prog.reportUpstreamChanges(store, previous, currentData, ovTable)

	if cfg.AutoWrite {
		if err := prog.writeToGame(cfg, install, env, string(currentData), ovTable); err != nil {
			return err
		}
	}

	cfg.LastBuildVersion = version
	if err := cfg.Save(prog.fs, opts.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// reportUpstreamChanges diffs the previous cached snapshot against the
// current one, when a previous version exists. Reruns on an already
// cached build still diff against the version before it, so an edited
// override file gets a fresh conflict report.
func (prog *Program) reportUpstreamChanges(store *cache.Store, previous *cache.Snapshot, currentData []byte, ovTable *lines.Table) {
	if previous == nil {
		fmt.Fprintln(prog.stderr, "no earlier snapshot to compare against")

		return
	}

	oldData, err := store.Read(*previous)
	if err != nil {
		fmt.Fprintf(prog.stderr, "skipping diff, failed to read previous snapshot: %v\n", err)

		return
	}

	fmt.Fprintf(prog.stderr, "comparing against build %s\n", previous.Version)

	res, err := diffTables(string(oldData), string(currentData), ovTable)
	if err != nil {
		fmt.Fprintf(prog.stderr, "skipping diff: %v\n", err)

		return
	}

	prog.writeDiffReport(res)
}

// writeToGame merges the overrides into the current table and writes the
// result into the game's localization directory, then converges user.cfg
// on the configured language.
func (prog *Program) writeToGame(cfg *config.Config, install string, env string, currentText string, ovTable *lines.Table) error {
	if ovTable == nil {
		ovTable = lines.NewTable()
	}

	res := merge.Apply(currentText, ovTable)

	target := filepath.Join(install, env, "data", "Localization", cfg.Language, "global.ini")

	if err := prog.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create localization directory: %w", err)
	}

	if err := afero.WriteFile(prog.fs, target, lines.Serialize(res.Lines), baseFilePerms); err != nil {
		return fmt.Errorf("failed to write merged table: %w", err)
	}

	fmt.Fprintf(prog.stderr, "merged %d override(s) into %s\n", res.Applied, target)

	status, err := gamecfg.EnsureLanguage(prog.fs, filepath.Join(install, env, "user.cfg"), cfg.Language)
	if err != nil {
		return fmt.Errorf("failed to converge user.cfg: %w", err)
	}

	fmt.Fprintf(prog.stderr, "user.cfg: %s\n", status)

	return nil
}
