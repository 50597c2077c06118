// Package gamecfg converges the game's companion configuration file
// (user.cfg) on a single correct "g_language = <language>" line.
package gamecfg

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/sclocal/locpatch/internal/lines"
)

// languageKey is the setting the game reads to pick its string table.
const languageKey = "g_language"

// Status is the outcome of an [EnsureLanguage] call.
type Status int

const (
	// StatusOK means the file already held exactly one correct line;
	// nothing was written.
	StatusOK Status = iota

	// StatusCreated means the file was absent and has been created.
	StatusCreated

	// StatusUpdated means the file existed and its language line was
	// corrected, deduplicated or appended.
	StatusUpdated

	// StatusError means the operation failed; see the returned error.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCreated:
		return "created"
	case StatusUpdated:
		return "updated"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// EnsureLanguage makes sure the file at path contains exactly one
// "g_language = <language>" line: creating the file if absent, correcting
// a wrong line, dropping duplicates, appending if missing, and leaving an
// already-correct file untouched. The operation is idempotent; a second
// call returns [StatusOK] without writing.
func EnsureLanguage(fs afero.Fs, path, language string) (Status, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return StatusError, fmt.Errorf("failed to stat companion config: %w", err)
	}

	correct := languageKey + " = " + language

	if !exists {
		if err := afero.WriteFile(fs, path, []byte(correct+lines.EOL), 0o644); err != nil {
			return StatusError, fmt.Errorf("failed to create companion config: %w", err)
		}

		return StatusCreated, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return StatusError, fmt.Errorf("failed to read companion config: %w", err)
	}

	var out []string
	var found, changed bool

	for _, raw := range lines.Split(string(data)) {
		key, value, ok := splitSetting(raw)
		if !ok || key != languageKey {
			out = append(out, raw)

			continue
		}

		if found {
			// Duplicate language line, drop it.
			changed = true

			continue
		}

		found = true

		if value == language {
			out = append(out, raw)
		} else {
			out = append(out, correct)
			changed = true
		}
	}

	if !found {
		out = append(out, correct)
		changed = true
	}

	if !changed {
		return StatusOK, nil
	}

	content := strings.Join(out, lines.EOL) + lines.EOL
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		return StatusError, fmt.Errorf("failed to write companion config: %w", err)
	}

	return StatusUpdated, nil
}

// splitSetting splits a "key = value" line, trimming both sides.
func splitSetting(raw string) (key, value string, ok bool) {
	idx := strings.Index(raw, "=")
	if idx < 0 {
		return "", "", false
	}

	return strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:]), true
}
