package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sclocal/locpatch/internal/config"
)

// Settings shows the current configuration and applies any field=value
// changes given via --set, creating the config file when absent.
func (prog *Program) Settings(configPath string, sets []string) error {
	cfg, err := config.Load(prog.fs, configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg = config.Default()
	}

	for _, s := range sets {
		field, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("invalid --set argument %q, expected field=value", s)
		}

		if err := cfg.Set(field, value); err != nil {
			return fmt.Errorf("failed to apply setting: %w", err)
		}
	}

	if len(sets) > 0 {
		if err := cfg.Save(prog.fs, configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(prog.stderr, "saved %s\n", configPath)
	}

	fmt.Fprintf(prog.stdout, "gameInstallPath  = %s\n", cfg.GameInstallPath)
	fmt.Fprintf(prog.stdout, "environments     = %s\n", strings.Join(cfg.Environments, ","))
	fmt.Fprintf(prog.stdout, "language         = %s\n", cfg.Language)
	fmt.Fprintf(prog.stdout, "unp4kPath        = %s\n", cfg.Unp4kPath)
	fmt.Fprintf(prog.stdout, "lastBuildVersion = %s\n", cfg.LastBuildVersion)
	fmt.Fprintf(prog.stdout, "autoWrite        = %t\n", cfg.AutoWrite)
	fmt.Fprintf(prog.stdout, "createdAt        = %s\n", cfg.CreatedAt)

	return nil
}
