// Package lines implements the line-level model shared by localization
// tables and override files: a single-pass classifier that tags every
// input line, an ordered key/value table, and serialization with the
// byte-order mark the game client requires on its localization files.
//
// The grammar is deliberately narrow. A key/value line is anything whose
// first "=" splits it into a non-empty trimmed key and a raw value; the
// value keeps any further "=" characters and is never trimmed. Comment
// lines start with ";" after optional leading whitespace. Everything else
// is opaque text that must survive a round trip verbatim.
package lines

import "strings"

// Kind tags a classified input line.
type Kind int

const (
	// KindKeyValue is a "key=value" line.
	KindKeyValue Kind = iota

	// KindOriginalMeta is a "; @original=<value>" metadata comment.
	KindOriginalMeta

	// KindComment is any other ";" comment.
	KindComment

	// KindBlank is an empty or whitespace-only line.
	KindBlank

	// KindOpaque is any other line, passed through verbatim.
	KindOpaque
)

// originalMetaPrefix introduces the metadata comment recording the
// upstream value an override was captured from.
const originalMetaPrefix = "@original="

// Line is a single classified line. Raw always holds the verbatim text.
type Line struct {
	Kind Kind
	Raw  string

	// Key is the trimmed key of a KindKeyValue line.
	Key string

	// Value is the untrimmed remainder after the first "=" for
	// KindKeyValue, or the metadata value for KindOriginalMeta.
	Value string

	// Prefix is the raw text up to and including the first "=" of a
	// KindKeyValue line, preserving the original key spacing.
	Prefix string
}

// Classify tags a single raw line.
func Classify(raw string) Line {
	if strings.TrimSpace(raw) == "" {
		return Line{Kind: KindBlank, Raw: raw}
	}

	if leftTrimmed := strings.TrimLeft(raw, " \t"); strings.HasPrefix(leftTrimmed, ";") {
		rest := strings.TrimLeft(leftTrimmed[1:], " \t")
		if value, ok := strings.CutPrefix(rest, originalMetaPrefix); ok {
			return Line{Kind: KindOriginalMeta, Raw: raw, Value: value}
		}

		return Line{Kind: KindComment, Raw: raw}
	}

	if idx := strings.Index(raw, "="); idx >= 0 {
		key := strings.TrimSpace(raw[:idx])
		if key != "" {
			return Line{
				Kind:   KindKeyValue,
				Raw:    raw,
				Key:    key,
				Value:  raw[idx+1:],
				Prefix: raw[:idx+1],
			}
		}
	}

	return Line{Kind: KindOpaque, Raw: raw}
}

// Split breaks text into lines, accepting both CRLF and LF terminators.
// A single trailing terminator does not produce a final empty line.
func Split(text string) []string {
	text = TrimBOM(text)
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")

	raw := strings.Split(text, "\n")
	for i, l := range raw {
		raw[i] = strings.TrimSuffix(l, "\r")
	}

	return raw
}

// Parse extracts the key/value mapping of text. Lines that are not
// key/value lines are skipped; duplicate keys are last-write-wins.
func Parse(text string) *Table {
	table := NewTable()

	for _, raw := range Split(text) {
		if line := Classify(raw); line.Kind == KindKeyValue {
			table.Set(line.Key, line.Value)
		}
	}

	return table
}

// Serialize joins ls with the platform line terminator and prepends the
// UTF-8 byte-order mark. The game client refuses localization files
// without the mark, so every merged output carries it.
func Serialize(ls []string) []byte {
	return []byte(BOM + strings.Join(ls, EOL))
}

// TrimBOM strips a leading UTF-8 byte-order mark, if present.
func TrimBOM(text string) string {
	return strings.TrimPrefix(text, BOM)
}
