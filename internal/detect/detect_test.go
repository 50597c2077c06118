package detect

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Expectation: The branch line should be scraped out of surrounding log noise.
func Test_BuildVersion_Success(t *testing.T) {
	logText := "<2025-08-20> Loading...\n<2025-08-20> Branch: sc-alpha-4.2-live-9912345, config...\ndone\n"

	version, ok := BuildVersion(logText)
	require.True(t, ok)
	require.Equal(t, "sc-alpha-4.2-live-9912345", version)
}

// Expectation: A log without a branch line should report no version.
func Test_BuildVersion_Missing_Failure(t *testing.T) {
	_, ok := BuildVersion("nothing useful in here")
	require.False(t, ok)
}

// Expectation: The version should be read from the environment's Game.log under the install root.
func Test_BuildVersionFromLog_Success(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/sc/LIVE/Game.log", []byte("Branch: sc-alpha-4.0\n"), 0o644))

	version, ok := BuildVersionFromLog(fs, "/sc", "LIVE")
	require.True(t, ok)
	require.Equal(t, "sc-alpha-4.0", version)
}

// Expectation: A missing log file should report no version instead of an error.
func Test_BuildVersionFromLog_MissingLog_Failure(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, ok := BuildVersionFromLog(fs, "/sc", "LIVE")
	require.False(t, ok)
}

// Expectation: The first candidate containing an environment's Data.p4k should win.
func Test_InstallPath_Success(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, afero.WriteFile(fs, "/drive2/sc/PTU/Data.p4k", []byte("x"), 0o644))

	path, ok := InstallPath(fs, []string{"/drive1/sc", "/drive2/sc"}, []string{"LIVE", "PTU"})
	require.True(t, ok)
	require.Equal(t, "/drive2/sc", path)
}

// Expectation: No candidate holding a Data.p4k should report no install path.
func Test_InstallPath_NotFound_Failure(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, ok := InstallPath(fs, DefaultInstallCandidates(), []string{"LIVE"})
	require.False(t, ok)
}
