package main

import (
	"context"
	"fmt"
)

// List writes to standard output the keys of a table file.
//
// The input parameter specifies the path to the table. If sort is true,
// the keys are written in sorted order; otherwise, they are written in
// file order. Keys matching any of the excludes globs are skipped. The
// ctx parameter controls early cancellation.
func (prog *Program) List(ctx context.Context, input string, sort bool, excludes []string) error {
	keys, errs, err := prog.tableKeyStream(ctx, input, sort, excludes)
	if err != nil {
		return fmt.Errorf("failure during listing: %w", err)
	}

	for key := range keys {
		fmt.Fprintln(prog.stdout, key)
	}

	for err := range errs {
		if err != nil {
			return fmt.Errorf("failure during listing: %w", err)
		}
	}

	return nil
}
