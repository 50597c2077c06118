package main

import (
	"archive/tar"
	"context"
	"fmt"
	"time"

	"github.com/lanrat/extsort"
	"github.com/spf13/afero"

	"github.com/sclocal/locpatch/internal/diff"
	"github.com/sclocal/locpatch/internal/lines"
)

// GzipConfig is the configuration for concurrent gzip operations.
type GzipConfig struct {
	BlockSize        int // Approximate size of blocks (pgzip operations)
	BlockCount       int // Amount of blocks processing in parallel (pgzip operations)
	CompressionLevel int // Target level for compression (0: none to 9: highest)
}

// readTextFile reads path into a string, leaving any byte-order mark for
// the line-level layers to strip.
func (prog *Program) readTextFile(path string) (string, error) {
	data, err := afero.ReadFile(prog.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return string(data), nil
}

// diffTables parses two table texts and classifies their keys against
// the override set.
func diffTables(oldText string, newText string, ov *lines.Table) (*diff.Result, error) {
	res, err := diff.Compare(lines.Parse(oldText), lines.Parse(newText), ov, nil)
	if err != nil {
		return nil, fmt.Errorf("failure during diff: %w", err)
	}

	return res, nil
}

// tableKeyStream streams the key of every key/value line of the table
// file at path, in file order, skipping keys matching the excludes globs.
func (prog *Program) tableKeyStream(ctx context.Context, path string, sort bool, excludes []string) (<-chan string, <-chan error, error) {
	if err := diff.ValidateExcludes(excludes); err != nil {
		return nil, nil, err
	}

	text, err := prog.readTextFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read table: %w", err)
	}

	keys := make(chan string, keyStreamBuffer)
	errs := make(chan error, 1)

	go func() {
		defer close(keys)
		defer close(errs)

		for _, raw := range lines.Split(text) {
			if err := ctx.Err(); err != nil {
				errs <- fmt.Errorf("failed to stream keys: %w", err)

				return
			}

			line := lines.Classify(raw)
			if line.Kind != lines.KindKeyValue {
				continue
			}

			if diff.KeyExcluded(line.Key, excludes) {
				continue
			}

			keys <- line.Key
		}
	}()

	if !sort {
		return keys, errs, nil
	}

	sortedKeys, sortedErrs := extsortStrings(ctx, keys, errs, prog.extSortConfig)

	return sortedKeys, sortedErrs, nil
}

// writeTarFile writes one real file entry, content included, to tw.
func writeTarFile(tw *tar.Writer, name string, modTime time.Time, data []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     int64(baseFilePerms),
		Size:     int64(len(data)),
		ModTime:  modTime,
		Typeflag: tar.TypeReg,
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write tar header: %w", err)
	}

	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("failed to write tar content: %w", err)
	}

	return nil
}

// extsortStrings wraps [extsort.Strings] for internal use.
//
// It merges two possible error sources into a single channel:
//  1. Runtime sorting errors - any errors raised while sorting proceeds.
//  2. extErrs (optional) - errors from non-sorting work such as key streaming.
//
// Do note that only the first error observed from these sources is sent downstream.
func extsortStrings(ctx context.Context, input chan string, extErrs <-chan error, config *extsort.Config) (<-chan string, <-chan error) {
	sorter, sorterOut, sorterErrs := extsort.Strings(input, config)

	if sorter != nil {
		go sorter.Sort(ctx)
	}

	mergedErrs := make(chan error, 1)
	go func() {
		defer close(mergedErrs)

		for extErrs != nil || sorterErrs != nil {
			select {
			case err, ok := <-extErrs:
				if ok && err != nil {
					mergedErrs <- err

					return
				}
				extErrs = nil // channel closed, disable case.

			case err, ok := <-sorterErrs:
				if ok && err != nil {
					mergedErrs <- err

					return
				}
				sorterErrs = nil // channel closed, disable case.
			}
		}
	}()

	return sorterOut, mergedErrs
}
