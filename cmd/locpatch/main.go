/*
locpatch customizes a game's localization strings across patches.

It merges user-authored text replacements (an override file in the same flat
key=value format as the game's global.ini, optionally annotated with the
upstream value each override was captured from) into the vendor string table,
caches extracted tables per build version, and diffs versions to detect when
a game patch adds, removes or changes keys - flagging changes that collide
with the user's customizations. It supports these commands:

	merge    - apply the override file onto a base table and write the result
	diff     - compare two table versions and cross-reference the overrides
	extract  - unpack the current global.ini from the game and cache it
	patch    - full update workflow: detect build, extract, diff, optionally write
	add      - append keys from a base table to the override file
	list     - list the keys of a table file, sorted or in file order
	archive  - pack all cached snapshots into a tar.gz
	settings - show or change the tool configuration

All commands print their primary results (key listings, diff lines, orphaned
overrides) to standard output (stdout). Any encountered errors and operational
messages are printed to standard error (stderr). Soft findings such as
conflicts or orphaned overrides are reported but never fail the run.

Exit Codes:

	0 - Success
	1 - General failure (missing input files, I/O errors, etc.)
*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lanrat/extsort"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sclocal/locpatch/internal/extract"
)

const (
	baseFilePerms = 0o644

	keyStreamBuffer = 1000

	exitTimeout     = 10 * time.Second
	exitCodeSuccess = 0
	exitCodeFailure = 1

	defaultConfigFile    = "locpatch.json"
	defaultOverridesFile = "target_strings.ini"
	defaultCacheDir      = "cache"
)

var (
	// Version is automatically populated by the build process (Makefile).
	Version string

	//nolint:mnd
	gzipConfigDefault = GzipConfig{
		BlockSize:        1 << 20,               // Approximate size of blocks
		BlockCount:       runtime.GOMAXPROCS(0), // Amount of blocks processing in parallel
		CompressionLevel: 6,                     // Target level for compression
	}

	//nolint:mnd
	extSortConfigDefault = extsort.Config{
		ChunkSize:          100_000,                       // Records per chunk (default: 1M)
		NumWorkers:         min(4, runtime.GOMAXPROCS(0)), // Parallel sorting/merging workers (default: 2)
		ChanBuffSize:       1,                             // Channel buffer size (default: 1)
		SortedChanBuffSize: 1000,                          // Output channel buffer (default: 1000)
		TempFilesDir:       "",                            // Temporary files directory (default: intelligent selection)
	}
)

// Program is the primary structure of the application.
type Program struct {
	fs     afero.Fs
	runner extract.Runner

	stdout io.Writer
	stderr io.Writer

	gzipConfig    *GzipConfig
	extSortConfig *extsort.Config
}

// NewProgram returns a pointer to a new [Program].
func NewProgram(fs afero.Fs, stdout io.Writer, stderr io.Writer, runner extract.Runner, gzipConfig *GzipConfig, extsortConfig *extsort.Config) *Program {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	if runner == nil {
		runner = extract.ExecRunner{Stdout: stderr, Stderr: stderr}
	}

	if gzipConfig == nil {
		cfg := gzipConfigDefault
		gzipConfig = &cfg
	}

	if extsortConfig == nil {
		cfg := extSortConfigDefault
		extsortConfig = &cfg
	}

	return &Program{
		fs:            fs,
		runner:        runner,
		stdout:        stdout,
		stderr:        stderr,
		gzipConfig:    gzipConfig,
		extSortConfig: extsortConfig,
	}
}

//nolint:funlen
func newRootCmd(ctx context.Context, fs afero.Fs, stdout io.Writer, stderr io.Writer, runner extract.Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "locpatch",
		Short:             rootHelpShort,
		Long:              rootHelpLong,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	mergeCmd := &cobra.Command{
		Use:     "merge <base.ini> <overrides.ini> <output.ini>",
		Short:   mergeHelpShort,
		Long:    mergeHelpLong,
		Example: mergeExample,
		Args:    cobra.ExactArgs(3), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, nil, nil)

			return prog.Merge(ctx, args[0], args[1], args[2])
		},
	}

	var diffOverrides string
	var diffExcludes []string
	diffCmd := &cobra.Command{
		Use:     "diff <old.ini> <new.ini>",
		Short:   diffHelpShort,
		Long:    diffHelpLong,
		Example: diffExample,
		Args:    cobra.ExactArgs(2), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, nil, nil)
			_, err := prog.Diff(ctx, args[0], args[1], diffOverrides, diffExcludes)

			return err
		},
	}
	diffCmd.Flags().StringVar(&diffOverrides, "overrides", "", "override file to cross-reference for conflicts")
	diffCmd.Flags().StringArrayVar(&diffExcludes, "exclude", nil, "key glob to exclude; can be repeated multiple times")

	var extractConfig, extractEnv, extractVersion string
	extractCmd := &cobra.Command{
		Use:     "extract",
		Short:   extractHelpShort,
		Long:    extractHelpLong,
		Example: extractExample,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, nil, nil)

			return prog.Extract(ctx, extractConfig, defaultCacheDir, extractEnv, extractVersion)
		},
	}
	extractCmd.Flags().StringVar(&extractConfig, "config", defaultConfigFile, "path of the configuration file")
	extractCmd.Flags().StringVar(&extractEnv, "env", "", "game environment to extract from (default: first configured)")
	extractCmd.Flags().StringVar(&extractVersion, "version", "", "build version label (default: scraped from Game.log)")

	patchOpts := PatchOptions{}
	patchCmd := &cobra.Command{
		Use:     "patch",
		Short:   patchHelpShort,
		Long:    patchHelpLong,
		Example: patchExample,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, nil, nil)

			return prog.Patch(ctx, patchOpts)
		},
	}
	patchCmd.Flags().StringVar(&patchOpts.ConfigPath, "config", defaultConfigFile, "path of the configuration file")
	patchCmd.Flags().StringVar(&patchOpts.OverridesPath, "overrides", defaultOverridesFile, "path of the override file")
	patchCmd.Flags().StringVar(&patchOpts.CacheDir, "cache", defaultCacheDir, "directory holding cached snapshots")
	patchCmd.Flags().StringVar(&patchOpts.Env, "env", "", "game environment to update (default: first configured)")

	addCmd := &cobra.Command{
		Use:     "add <base.ini> <overrides.ini> <key>...",
		Short:   addHelpShort,
		Long:    addHelpLong,
		Example: addExample,
		Args:    cobra.MinimumNArgs(3), //nolint:mnd
		RunE: func(_ *cobra.Command, args []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, nil, nil)

			return prog.Add(ctx, args[0], args[1], args[2:])
		},
	}

	listSort := true
	var listExcludes []string
	listSorterConfig := extSortConfigDefault
	listCmd := &cobra.Command{
		Use:     "list <table.ini>",
		Short:   listHelpShort,
		Long:    listHelpLong,
		Example: listExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, nil, &listSorterConfig)

			return prog.List(ctx, args[0], listSort, listExcludes)
		},
	}
	listCmd.Flags().BoolVar(&listSort, "sort", true, "sort the output list; for better comparability")
	listCmd.Flags().StringArrayVar(&listExcludes, "exclude", nil, "key glob to exclude; can be repeated multiple times")
	listCmd.Flags().StringVar(&listSorterConfig.TempFilesDir, "tmpdir", extSortConfigDefault.TempFilesDir, "on-disk location for intermediate files")
	listCmd.Flags().IntVar(&listSorterConfig.NumWorkers, "workers", extSortConfigDefault.NumWorkers, "workers for concurrent operations")
	listCmd.Flags().IntVar(&listSorterConfig.ChunkSize, "chunksize", extSortConfigDefault.ChunkSize, "max records per worker before spilling to disk")

	var archiveCache string
	archiveCompressorConfig := gzipConfigDefault
	archiveCmd := &cobra.Command{
		Use:     "archive <output.tar.gz>",
		Short:   archiveHelpShort,
		Long:    archiveHelpLong,
		Example: archiveExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, &archiveCompressorConfig, nil)

			return prog.Archive(ctx, archiveCache, args[0])
		},
	}
	archiveCmd.Flags().StringVar(&archiveCache, "cache", defaultCacheDir, "directory holding cached snapshots")
	archiveCmd.Flags().IntVar(&archiveCompressorConfig.BlockSize, "blocksize", gzipConfigDefault.BlockSize, "block size for compressing")
	archiveCmd.Flags().IntVar(&archiveCompressorConfig.BlockCount, "blockcount", gzipConfigDefault.BlockCount, "blocks to compress in parallel")

	var settingsConfig string
	var settingsSets []string
	settingsCmd := &cobra.Command{
		Use:     "settings",
		Short:   settingsHelpShort,
		Long:    settingsHelpLong,
		Example: settingsExample,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			prog := NewProgram(fs, stdout, stderr, runner, nil, nil)

			return prog.Settings(settingsConfig, settingsSets)
		},
	}
	settingsCmd.Flags().StringVar(&settingsConfig, "config", defaultConfigFile, "path of the configuration file")
	settingsCmd.Flags().StringArrayVar(&settingsSets, "set", nil, "field=value to change; can be repeated multiple times")

	rootCmd.AddCommand(mergeCmd, diffCmd, extractCmd, patchCmd, addCmd, listCmd, archiveCmd, settingsCmd)

	return rootCmd
}

func main() {
	var exitCode int

	defer func() {
		os.Exit(exitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		rootCmd := newRootCmd(ctx, afero.NewOsFs(), os.Stdout, os.Stderr, nil)
		errChan <- rootCmd.Execute()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			exitCode = exitCodeFailure
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			exitCode = exitCodeSuccess
		}

	case <-sigChan:
		fmt.Fprintln(os.Stderr, "interrupting...")
		cancel()

		select {
		case <-errChan:
			exitCode = exitCodeFailure
			fmt.Fprintln(os.Stderr, "interrupted (exited)")
		case <-time.After(exitTimeout):
			exitCode = exitCodeFailure
			fmt.Fprintln(os.Stderr, "interrupted (killed)")
		}
	}
}
