// Package merge applies user overrides onto a base localization table.
//
// The merge is a line-preserving transform of the base text, not a rewrite
// from the parsed mapping: untouched lines, comments, blank lines and
// unparseable text survive at their exact positions, and a substituted
// line keeps its original key spelling and spacing up to the "=".
package merge

import (
	"github.com/sclocal/locpatch/internal/lines"
)

// Result is the outcome of applying overrides onto a base text.
type Result struct {
	// Lines is the merged output in base-text order.
	Lines []string

	// Applied is the number of override substitutions performed.
	Applied int

	// Merged holds every override key that matched a base line.
	Merged map[string]struct{}

	// Orphans holds override keys absent from the base table, in
	// override insertion order. These are candidates for keys renamed
	// or removed upstream.
	Orphans []string
}

// Apply walks baseText line by line, substituting the value of any
// key/value line whose key has an override. All other lines are emitted
// unchanged. Apply is a pure function of its inputs.
func Apply(baseText string, ov *lines.Table) *Result {
	res := &Result{Merged: make(map[string]struct{})}

	for _, raw := range lines.Split(baseText) {
		line := lines.Classify(raw)

		if line.Kind == lines.KindKeyValue {
			if value, ok := ov.Get(line.Key); ok {
				res.Lines = append(res.Lines, line.Prefix+value)
				res.Merged[line.Key] = struct{}{}
				res.Applied++

				continue
			}
		}

		res.Lines = append(res.Lines, raw)
	}

	for _, key := range ov.Keys() {
		if _, ok := res.Merged[key]; !ok {
			res.Orphans = append(res.Orphans, key)
		}
	}

	return res
}
