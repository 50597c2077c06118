// Package overrides reads and appends the user's override file: the same
// key=value grammar as the base table, plus an optional "; @original=<value>"
// metadata comment recording the upstream value an override was captured
// from. The metadata comment binds to the key/value line immediately
// following it; any intervening blank line or other comment discards the
// binding. This is strict on purpose, so edits cannot silently re-attribute
// metadata to a different key, but it also means a blank line a user adds
// between comment and key drops the recorded original without warning.
package overrides

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/sclocal/locpatch/internal/lines"
)

// Entry is one key/value pair to append to an override file.
type Entry struct {
	Key   string
	Value string
}

// Parse reads override text into the override table and the map of
// recorded original values. Duplicate keys are last-write-wins, matching
// base-table semantics.
func Parse(text string) (*lines.Table, map[string]string) {
	table := lines.NewTable()
	originals := make(map[string]string)

	pendingOriginal := ""
	pendingSet := false

	for _, raw := range lines.Split(text) {
		line := lines.Classify(raw)

		switch line.Kind {
		case lines.KindOriginalMeta:
			pendingOriginal = line.Value
			pendingSet = true

		case lines.KindKeyValue:
			table.Set(line.Key, line.Value)
			if pendingSet {
				originals[line.Key] = pendingOriginal
				pendingOriginal = ""
				pendingSet = false
			}

		default:
			pendingOriginal = ""
			pendingSet = false
		}
	}

	return table, originals
}

// Append adds entries to the override file at path, creating it if absent.
// Each entry is written as a "; @original=<value>" comment followed by its
// "<key>=<value>" line, separated from prior content by one blank line.
// The file is written without a byte-order mark, since users hand-edit it.
func Append(fs afero.Fs, path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	existing, err := afero.ReadFile(fs, path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read override file: %w", err)
	}

	// Hand-edited files may lack a trailing terminator; close the last
	// line first so the separator stays one blank line.
	var block string
	switch {
	case len(existing) == 0:
	case strings.HasSuffix(string(existing), "\n"):
		block = lines.EOL
	default:
		block = lines.EOL + lines.EOL
	}

	for _, e := range entries {
		block += "; @original=" + e.Value + lines.EOL
		block += e.Key + "=" + e.Value + lines.EOL
	}

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open override file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("failed to append to override file: %w", err)
	}

	return nil
}
