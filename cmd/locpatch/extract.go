package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sclocal/locpatch/internal/cache"
	"github.com/sclocal/locpatch/internal/config"
	"github.com/sclocal/locpatch/internal/detect"
	"github.com/sclocal/locpatch/internal/extract"
)

// Extract unpacks the current global.ini out of the game's Data.p4k and
// stores it as a cached snapshot named after the build version and
// environment.
//
// The environment defaults to the first configured one; the build version
// is scraped from the environment's Game.log unless given explicitly. A
// non-zero exit of the unpacking utility aborts the operation, no
// snapshot is stored.
func (prog *Program) Extract(ctx context.Context, configPath string, cacheDir string, env string, version string) error {
	cfg, err := config.Load(prog.fs, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, err := prog.extractSnapshot(ctx, cfg, cacheDir, env, version); err != nil {
		return err
	}

	return nil
}

// extractSnapshot is the shared extraction step of the extract and patch
// commands. It returns the stored snapshot's version label.
func (prog *Program) extractSnapshot(ctx context.Context, cfg *config.Config, cacheDir string, env string, version string) (string, error) {
	env, err := prog.resolveEnv(cfg, env)
	if err != nil {
		return "", err
	}

	install, err := prog.resolveInstall(cfg)
	if err != nil {
		return "", err
	}

	if version == "" {
		scraped, ok := detect.BuildVersionFromLog(prog.fs, install, env)
		if !ok {
			return "", fmt.Errorf("could not determine build version from %s; pass --version", filepath.Join(install, env, "Game.log"))
		}
		version = scraped
	}

	if cfg.Unp4kPath == "" {
		return "", fmt.Errorf("no unp4k path configured; run settings --set unp4kPath=<path>")
	}

	workDir, err := afero.TempDir(prog.fs, "", "locpatch-")
	if err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}
	defer func() { _ = prog.fs.RemoveAll(workDir) }()

	p4kPath := filepath.Join(install, env, "Data.p4k")

	fmt.Fprintf(prog.stderr, "unpacking %s (build %s)...\n", p4kPath, version)

	if err := extract.Unpack(ctx, prog.runner, workDir, cfg.Unp4kPath, p4kPath, "*global.ini"); err != nil {
		return "", fmt.Errorf("failure during extraction: %w", err)
	}

	extracted := filepath.Join(workDir, "Data", "Localization", cfg.Language, "global.ini")

	data, err := afero.ReadFile(prog.fs, extracted)
	if err != nil {
		return "", fmt.Errorf("failed to read extracted table: %w", err)
	}

	store := cache.NewStore(prog.fs, cacheDir)

	path, err := store.Put(version, env, data)
	if err != nil {
		return "", fmt.Errorf("failed to cache snapshot: %w", err)
	}

	fmt.Fprintf(prog.stderr, "cached snapshot %s\n", path)

	return version, nil
}

// resolveEnv picks the environment to operate on: the explicit flag value
// or the first configured environment.
func (prog *Program) resolveEnv(cfg *config.Config, env string) (string, error) {
	if env != "" {
		return env, nil
	}

	if len(cfg.Environments) == 0 {
		return "", fmt.Errorf("no environments configured; run settings --set environments=LIVE")
	}

	return cfg.Environments[0], nil
}

// resolveInstall returns the configured install path, probing well-known
// locations when unset.
func (prog *Program) resolveInstall(cfg *config.Config) (string, error) {
	if cfg.GameInstallPath != "" {
		return cfg.GameInstallPath, nil
	}

	if path, ok := detect.InstallPath(prog.fs, detect.DefaultInstallCandidates(), cfg.Environments); ok {
		fmt.Fprintf(prog.stderr, "detected game install at %s\n", path)

		return path, nil
	}

	return "", fmt.Errorf("no game install path configured; run settings --set gameInstallPath=<path>")
}
