package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/sclocal/locpatch/internal/lines"
	"github.com/sclocal/locpatch/internal/overrides"
)

// Add appends the given keys to the override file, seeding each override
// with the key's current value from the base table and recording that
// value as the override's original via a "; @original=" comment.
//
// Keys absent from the base table fail the command before anything is
// written; keys already present in the override file are skipped with a
// note.
func (prog *Program) Add(ctx context.Context, basePath string, overridesPath string, keys []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to add keys: %w", err)
	}

	baseText, err := prog.readTextFile(basePath)
	if err != nil {
		return fmt.Errorf("failed to read base table: %w", err)
	}
	baseTable := lines.Parse(baseText)

	existing := lines.NewTable()
	if ovText, err := prog.readTextFile(overridesPath); err == nil {
		existing, _ = overrides.Parse(ovText)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read override file: %w", err)
	}

	var entries []overrides.Entry
	for _, key := range keys {
		value, ok := baseTable.Get(key)
		if !ok {
			return fmt.Errorf("key %q does not exist in the base table", key)
		}

		if existing.Has(key) {
			fmt.Fprintf(prog.stderr, "skipping %s: already overridden\n", key)

			continue
		}

		entries = append(entries, overrides.Entry{Key: key, Value: value})
	}

	if err := overrides.Append(prog.fs, overridesPath, entries); err != nil {
		return fmt.Errorf("failed to append overrides: %w", err)
	}

	for _, e := range entries {
		fmt.Fprintln(prog.stdout, e.Key)
	}

	fmt.Fprintf(prog.stderr, "added %d key(s) to %s\n", len(entries), overridesPath)

	return nil
}
