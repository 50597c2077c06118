package main

import (
	"context"
	"fmt"

	"github.com/sclocal/locpatch/internal/diff"
	"github.com/sclocal/locpatch/internal/lines"
	"github.com/sclocal/locpatch/internal/overrides"
)

// Diff compares two versions of a base table and reports every key that
// was added, removed or changed between them.
//
// When overridesPath is non-empty, the override file is cross-referenced:
// changed keys the user holds an override for are flagged as conflicts,
// removed keys with an override as orphaned customizations. Keys matching
// any of the excludes globs are dropped from consideration on both sides.
//
// The report goes to standard output, one line per key, in the source
// tables' insertion order:
//
//	+++ key   added upstream
//	--- key   removed upstream
//	~~~ key   changed upstream
//	!!! key   changed upstream while overridden (conflict)
//	??? key   removed upstream while overridden (orphaned)
//
// Conflicts and orphans are soft findings; they never fail the run.
func (prog *Program) Diff(ctx context.Context, oldPath string, newPath string, overridesPath string, excludes []string) (*diff.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to diff: %w", err)
	}

	oldText, err := prog.readTextFile(oldPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read old table: %w", err)
	}

	newText, err := prog.readTextFile(newPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read new table: %w", err)
	}

	var ovTable *lines.Table
	if overridesPath != "" {
		ovText, err := prog.readTextFile(overridesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read override file: %w", err)
		}

		ovTable, _ = overrides.Parse(ovText)
	}

	res, err := diff.Compare(lines.Parse(oldText), lines.Parse(newText), ovTable, excludes)
	if err != nil {
		return nil, fmt.Errorf("failure during diff: %w", err)
	}

	prog.writeDiffReport(res)

	return res, nil
}

// writeDiffReport prints the per-key report to stdout and a summary to
// stderr, conflict markers taking precedence over plain change markers.
func (prog *Program) writeDiffReport(res *diff.Result) {
	conflicted := make(map[string]struct{}, len(res.Conflicts))
	for _, c := range res.Conflicts {
		conflicted[c.Key] = struct{}{}
	}

	orphaned := make(map[string]struct{}, len(res.RemovedWithOverride))
	for _, o := range res.RemovedWithOverride {
		orphaned[o.Key] = struct{}{}
	}

	for _, e := range res.Added {
		fmt.Fprintf(prog.stdout, "+++ %s\n", e.Key)
	}

	for _, c := range res.Changed {
		if _, ok := conflicted[c.Key]; ok {
			fmt.Fprintf(prog.stdout, "!!! %s\n", c.Key)
		} else {
			fmt.Fprintf(prog.stdout, "~~~ %s\n", c.Key)
		}
	}

	for _, e := range res.Removed {
		if _, ok := orphaned[e.Key]; ok {
			fmt.Fprintf(prog.stdout, "??? %s\n", e.Key)
		} else {
			fmt.Fprintf(prog.stdout, "--- %s\n", e.Key)
		}
	}

	fmt.Fprintf(prog.stderr, "%d added, %d removed, %d changed, %d conflict(s), %d orphaned override(s)\n",
		len(res.Added), len(res.Removed), len(res.Changed), len(res.Conflicts), len(res.RemovedWithOverride))
}
