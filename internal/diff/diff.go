// Package diff classifies the keys of two versions of a localization
// table and cross-references them against the user's override set.
//
// Compare is a pure function; its result sets iterate in the source
// table's insertion order so repeated runs over identical input produce
// identical reports. No sorting by key name is performed.
package diff

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sclocal/locpatch/internal/lines"
)

// Entry is a key with its value in the table it was found in.
type Entry struct {
	Key   string
	Value string
}

// Change is a key present in both tables with differing values.
type Change struct {
	Key string
	Old string
	New string
}

// Conflict is a changed key the user also holds an override for: the
// upstream value moved underneath the customization.
type Conflict struct {
	Key      string
	Old      string
	New      string
	Override string
}

// Orphaned is a removed key the user holds an override for.
type Orphaned struct {
	Key      string
	Override string
}

// Result holds the classification of every key across two table versions.
// Conflicts is a subset of Changed, RemovedWithOverride a subset of
// Removed; any key is in at most one of Added, Removed and Changed.
type Result struct {
	Added               []Entry    // in new-table insertion order
	Removed             []Entry    // in old-table insertion order
	Changed             []Change   // in new-table insertion order
	Conflicts           []Conflict // in new-table insertion order
	RemovedWithOverride []Orphaned // in old-table insertion order
}

// HasDifferences reports whether any key was added, removed or changed.
func (r *Result) HasDifferences() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Changed) > 0
}

// HasConflicts reports whether any customized key was changed or removed
// upstream.
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0 || len(r.RemovedWithOverride) > 0
}

// Compare classifies every key of oldTable and newTable. Overrides may be
// nil when no override file is in play. Keys matching any of the excludes
// glob patterns are dropped from consideration on both sides.
func Compare(oldTable, newTable *lines.Table, ov *lines.Table, excludes []string) (*Result, error) {
	if err := ValidateExcludes(excludes); err != nil {
		return nil, err
	}

	res := &Result{}

	for _, key := range newTable.Keys() {
		if KeyExcluded(key, excludes) {
			continue
		}

		newValue, _ := newTable.Get(key)

		oldValue, ok := oldTable.Get(key)
		if !ok {
			res.Added = append(res.Added, Entry{Key: key, Value: newValue})

			continue
		}

		if oldValue != newValue {
			res.Changed = append(res.Changed, Change{Key: key, Old: oldValue, New: newValue})

			if overrideValue, held := overrideFor(ov, key); held {
				res.Conflicts = append(res.Conflicts, Conflict{
					Key:      key,
					Old:      oldValue,
					New:      newValue,
					Override: overrideValue,
				})
			}
		}
	}

	for _, key := range oldTable.Keys() {
		if KeyExcluded(key, excludes) {
			continue
		}

		if newTable.Has(key) {
			continue
		}

		oldValue, _ := oldTable.Get(key)
		res.Removed = append(res.Removed, Entry{Key: key, Value: oldValue})

		if overrideValue, held := overrideFor(ov, key); held {
			res.RemovedWithOverride = append(res.RemovedWithOverride, Orphaned{
				Key:      key,
				Override: overrideValue,
			})
		}
	}

	return res, nil
}

func overrideFor(ov *lines.Table, key string) (string, bool) {
	if ov == nil {
		return "", false
	}

	return ov.Get(key)
}

// ValidateExcludes checks every excludes glob pattern for validity.
func ValidateExcludes(excludes []string) error {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %q", pattern)
		}
	}

	return nil
}

// KeyExcluded reports whether key matches any of the excludes glob
// patterns.
func KeyExcluded(key string, excludes []string) bool {
	for _, pattern := range excludes {
		if matched, err := doublestar.Match(pattern, key); err == nil && matched {
			return true
		}
	}

	return false
}
