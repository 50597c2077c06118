package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/sclocal/locpatch/internal/lines"
	"github.com/sclocal/locpatch/internal/merge"
	"github.com/sclocal/locpatch/internal/overrides"
)

// Merge applies the override file at overridesPath onto the base table at
// basePath and writes the merged text to outputPath.
//
// The merge is line-preserving: untouched base lines, comments and
// unparseable text survive at their exact positions, and the output is
// written with the UTF-8 byte-order mark the game requires. Override keys
// absent from the base table are reported to standard output as orphans;
// they do not fail the run.
//
// Both input files are read before anything is written, so a missing
// input leaves no partial output behind.
func (prog *Program) Merge(ctx context.Context, basePath string, overridesPath string, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to merge: %w", err)
	}

	baseText, err := prog.readTextFile(basePath)
	if err != nil {
		return fmt.Errorf("failed to read base table: %w", err)
	}

	ovText, err := prog.readTextFile(overridesPath)
	if err != nil {
		return fmt.Errorf("failed to read override file: %w", err)
	}

	ovTable, _ := overrides.Parse(ovText)
	res := merge.Apply(baseText, ovTable)

	if err := afero.WriteFile(prog.fs, outputPath, lines.Serialize(res.Lines), baseFilePerms); err != nil {
		return fmt.Errorf("failed to write merged output: %w", err)
	}

	fmt.Fprintf(prog.stderr, "merged %d of %d override(s) into %s\n", res.Applied, ovTable.Len(), outputPath)

	for _, key := range res.Orphans {
		fmt.Fprintf(prog.stdout, "??? %s\n", key)
	}

	if len(res.Orphans) > 0 {
		fmt.Fprintf(prog.stderr, "%d override(s) are orphaned (no matching key in the base table)\n", len(res.Orphans))
	}

	return nil
}
