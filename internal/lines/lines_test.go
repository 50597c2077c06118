package lines

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Expectation: The classifier should tag each line according to the table's expectations.
func Test_Classify_Table(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Line
	}{
		{
			name:     "Plain key value",
			raw:      "ui_hello=Hello",
			expected: Line{Kind: KindKeyValue, Raw: "ui_hello=Hello", Key: "ui_hello", Value: "Hello", Prefix: "ui_hello="},
		},
		{
			name:     "Value keeps further equals signs",
			raw:      "formula=a=b=c",
			expected: Line{Kind: KindKeyValue, Raw: "formula=a=b=c", Key: "formula", Value: "a=b=c", Prefix: "formula="},
		},
		{
			name:     "Key is trimmed but prefix is not",
			raw:      "  spaced =value",
			expected: Line{Kind: KindKeyValue, Raw: "  spaced =value", Key: "spaced", Value: "value", Prefix: "  spaced ="},
		},
		{
			name:     "Value is not trimmed",
			raw:      "k=  padded  ",
			expected: Line{Kind: KindKeyValue, Raw: "k=  padded  ", Key: "k", Value: "  padded  ", Prefix: "k="},
		},
		{
			name:     "Original metadata comment",
			raw:      "; @original=Old Value",
			expected: Line{Kind: KindOriginalMeta, Raw: "; @original=Old Value", Value: "Old Value"},
		},
		{
			name:     "Original metadata without space after semicolon",
			raw:      ";@original=X",
			expected: Line{Kind: KindOriginalMeta, Raw: ";@original=X", Value: "X"},
		},
		{
			name:     "Original metadata with leading whitespace",
			raw:      "  ; @original=Y",
			expected: Line{Kind: KindOriginalMeta, Raw: "  ; @original=Y", Value: "Y"},
		},
		{
			name:     "Ordinary comment",
			raw:      "; just a note",
			expected: Line{Kind: KindComment, Raw: "; just a note"},
		},
		{
			name:     "Comment containing an equals sign stays a comment",
			raw:      "; disabled=1",
			expected: Line{Kind: KindComment, Raw: "; disabled=1"},
		},
		{
			name:     "Blank line",
			raw:      "",
			expected: Line{Kind: KindBlank, Raw: ""},
		},
		{
			name:     "Whitespace-only line",
			raw:      "   \t",
			expected: Line{Kind: KindBlank, Raw: "   \t"},
		},
		{
			name:     "Opaque line without equals",
			raw:      "not a key value line",
			expected: Line{Kind: KindOpaque, Raw: "not a key value line"},
		},
		{
			name:     "Line with empty key is opaque",
			raw:      "=value",
			expected: Line{Kind: KindOpaque, Raw: "=value"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, Classify(tt.raw))
		})
	}
}

// Expectation: Parsing should keep insertion order and apply last-write-wins for duplicates.
func Test_Parse_OrderAndDuplicates_Success(t *testing.T) {
	table := Parse("a=1\nb=2\na=3\nc=4")

	require.Equal(t, []string{"a", "b", "c"}, table.Keys())

	v, ok := table.Get("a")
	require.True(t, ok)
	require.Equal(t, "3", v)
}

// Expectation: Lines without an equals sign should be skipped for key extraction.
func Test_Parse_SkipsNonKeyLines_Success(t *testing.T) {
	table := Parse("a=1\n\nsome opaque text\n; comment\nb=2")

	require.Equal(t, []string{"a", "b"}, table.Keys())
	require.Equal(t, 2, table.Len())
}

// Expectation: A leading byte-order mark should be stripped before parsing.
func Test_Parse_StripsBOM_Success(t *testing.T) {
	table := Parse(BOM + "a=1")

	require.True(t, table.Has("a"))
	require.False(t, table.Has(BOM+"a"))
}

// Expectation: Splitting should accept CRLF terminators and drop one trailing terminator.
func Test_Split_Terminators_Success(t *testing.T) {
	require.Equal(t, []string{"a=1", "b=2"}, Split("a=1\r\nb=2\r\n"))
	require.Equal(t, []string{"a=1", "b=2"}, Split("a=1\nb=2"))
	require.Equal(t, []string{"a=1", "", "b=2"}, Split("a=1\n\nb=2"))
}

// Expectation: Serializing should prepend the byte-order mark and use the platform terminator.
func Test_Serialize_BOMAndTerminator_Success(t *testing.T) {
	out := Serialize([]string{"a=1", "b=2"})

	require.True(t, strings.HasPrefix(string(out), BOM))
	require.Equal(t, BOM+"a=1"+EOL+"b=2", string(out))
}

// Expectation: Well-formed key/value text should survive a split/serialize round trip.
func Test_RoundTrip_WellFormed_Success(t *testing.T) {
	text := BOM + "a=1" + EOL + "b=2" + EOL + "c=3"

	require.Equal(t, text, string(Serialize(Split(text))))
}

// Expectation: The table should keep first-insertion positions when values are overwritten.
func Test_Table_SetKeepsPosition_Success(t *testing.T) {
	table := NewTable()
	table.Set("x", "1")
	table.Set("y", "2")
	table.Set("x", "3")

	require.Equal(t, []string{"x", "y"}, table.Keys())

	v, ok := table.Get("x")
	require.True(t, ok)
	require.Equal(t, "3", v)
}

// Expectation: The returned key slice should be a copy, not an alias of internal state.
func Test_Table_KeysCopy_Success(t *testing.T) {
	table := NewTable()
	table.Set("a", "1")

	keys := table.Keys()
	keys[0] = "mutated"

	require.Equal(t, []string{"a"}, table.Keys())
}
