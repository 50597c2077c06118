package overrides

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/sclocal/locpatch/internal/lines"
)

// Expectation: A metadata comment directly above a key line should bind to that key.
func Test_Parse_OriginalBinds_Success(t *testing.T) {
	table, originals := Parse("; @original=Foo\nkey1=Bar")

	v, ok := table.Get("key1")
	require.True(t, ok)
	require.Equal(t, "Bar", v)
	require.Equal(t, map[string]string{"key1": "Foo"}, originals)
}

// Expectation: A blank line between metadata comment and key line should discard the binding.
func Test_Parse_BlankLineDiscardsOriginal_Success(t *testing.T) {
	table, originals := Parse("; @original=Foo\n\nkey1=Bar")

	require.True(t, table.Has("key1"))
	require.Empty(t, originals)
}

// Expectation: An unrelated comment between metadata comment and key line should discard the binding.
func Test_Parse_CommentDiscardsOriginal_Success(t *testing.T) {
	_, originals := Parse("; @original=Foo\n; a note\nkey1=Bar")

	require.Empty(t, originals)
}

// Expectation: An opaque line between metadata comment and key line should discard the binding.
func Test_Parse_OpaqueDiscardsOriginal_Success(t *testing.T) {
	_, originals := Parse("; @original=Foo\nstray text\nkey1=Bar")

	require.Empty(t, originals)
}

// Expectation: A metadata comment at end of input should bind to nothing.
func Test_Parse_TrailingOriginalUnbound_Success(t *testing.T) {
	table, originals := Parse("key1=Bar\n; @original=Foo")

	require.True(t, table.Has("key1"))
	require.Empty(t, originals)
}

// Expectation: A later metadata comment should replace an earlier unconsumed one.
func Test_Parse_LatestOriginalWins_Success(t *testing.T) {
	_, originals := Parse("; @original=First\n; @original=Second\nkey1=Bar")

	require.Equal(t, map[string]string{"key1": "Second"}, originals)
}

// Expectation: An empty recorded original should still bind, distinct from no binding.
func Test_Parse_EmptyOriginal_Success(t *testing.T) {
	_, originals := Parse("; @original=\nkey1=Bar")

	require.Equal(t, map[string]string{"key1": ""}, originals)
}

// Expectation: Duplicate override keys should be last-write-wins, including their originals.
func Test_Parse_DuplicateKeys_LastWriteWins(t *testing.T) {
	table, originals := Parse("; @original=A\nk=1\n; @original=B\nk=2")

	v, ok := table.Get("k")
	require.True(t, ok)
	require.Equal(t, "2", v)
	require.Equal(t, []string{"k"}, table.Keys())
	require.Equal(t, map[string]string{"k": "B"}, originals)
}

// Expectation: Appending to a fresh file should create it without a byte-order mark.
func Test_Append_CreatesFile_Success(t *testing.T) {
	fs := afero.NewMemMapFs()

	err := Append(fs, "/target_strings.ini", []Entry{{Key: "k1", Value: "V1"}})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/target_strings.ini")
	require.NoError(t, err)
	require.Equal(t, "; @original=V1"+lines.EOL+"k1=V1"+lines.EOL, string(data))
}

// Expectation: Appending to existing content should separate the new block with one blank line.
func Test_Append_SeparatesFromPriorContent_Success(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/t.ini", []byte("old=1"+lines.EOL), 0o644))
	require.NoError(t, Append(fs, "/t.ini", []Entry{{Key: "k1", Value: "V1"}, {Key: "k2", Value: "V2"}}))

	data, err := afero.ReadFile(fs, "/t.ini")
	require.NoError(t, err)

	expected := "old=1" + lines.EOL + lines.EOL +
		"; @original=V1" + lines.EOL + "k1=V1" + lines.EOL +
		"; @original=V2" + lines.EOL + "k2=V2" + lines.EOL
	require.Equal(t, expected, string(data))
}

// Expectation: Appending to content without a trailing terminator should still leave one blank line.
func Test_Append_NoTrailingTerminator_Success(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/t.ini", []byte("old=1"), 0o644))
	require.NoError(t, Append(fs, "/t.ini", []Entry{{Key: "k1", Value: "V1"}}))

	data, err := afero.ReadFile(fs, "/t.ini")
	require.NoError(t, err)

	expected := "old=1" + lines.EOL + lines.EOL +
		"; @original=V1" + lines.EOL + "k1=V1" + lines.EOL
	require.Equal(t, expected, string(data))

	table, originals := Parse(string(data))
	require.Equal(t, []string{"old", "k1"}, table.Keys())
	require.Equal(t, map[string]string{"k1": "V1"}, originals)
}

// Expectation: Appended entries should round-trip through Parse with their originals bound.
func Test_Append_ParseRoundTrip_Success(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, Append(fs, "/t.ini", []Entry{{Key: "k1", Value: "V1"}}))

	data, err := afero.ReadFile(fs, "/t.ini")
	require.NoError(t, err)

	table, originals := Parse(string(data))
	v, ok := table.Get("k1")
	require.True(t, ok)
	require.Equal(t, "V1", v)
	require.Equal(t, "V1", originals["k1"])
}

// Expectation: Appending no entries should not create a file.
func Test_Append_NoEntries_NoFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, Append(fs, "/t.ini", nil))

	_, err := fs.Stat("/t.ini")
	require.Error(t, err)
}
