package main

import (
	"archive/tar"
	"context"
	"fmt"
	"path/filepath"

	pgzip "github.com/klauspost/pgzip"

	"github.com/sclocal/locpatch/internal/cache"
)

// Archive packs every cached snapshot into a single tar.gz at output.
//
// Snapshots are written with their real content and modification time, so
// an unpacked archive is directly usable as a cache directory again. The
// ctx parameter controls early cancellation; on failure the partial
// output file is removed.
func (prog *Program) Archive(ctx context.Context, cacheDir string, output string) error {
	var archiveDone bool

	store := cache.NewStore(prog.fs, cacheDir)

	snaps, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snaps) == 0 {
		return fmt.Errorf("no snapshots cached under %s", cacheDir)
	}

	out, err := prog.fs.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer func() {
		if !archiveDone {
			_ = prog.fs.Remove(output)
		}
	}()
	defer out.Close()

	gw, err := pgzip.NewWriterLevel(out, prog.gzipConfig.CompressionLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize gzip writer: %w", err)
	}
	defer gw.Close()

	if err := gw.SetConcurrency(prog.gzipConfig.BlockSize, prog.gzipConfig.BlockCount); err != nil {
		return fmt.Errorf("failed to set gzip writer settings: %w", err)
	}

	tw := tar.NewWriter(gw)
	defer tw.Close()

	for _, snap := range snaps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("failure during archiving: %w", err)
		}

		data, err := store.Read(snap)
		if err != nil {
			return fmt.Errorf("failure during archiving: %w", err)
		}

		name := filepath.Base(snap.Path)
		if err := writeTarFile(tw, name, snap.ModTime, data); err != nil {
			return fmt.Errorf("failure during archiving: %w", err)
		}

		fmt.Fprintln(prog.stdout, name)
	}

	archiveDone = true

	return nil
}
