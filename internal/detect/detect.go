// Package detect locates a game installation and scrapes its build
// version out of the Game.log file.
package detect

import (
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
)

// branchPattern matches the branch line the game writes near the top of
// Game.log, e.g. "Branch: sc-alpha-4.0-live-9309613".
var branchPattern = regexp.MustCompile(`Branch:\s*([^\s,;]+)`)

// BuildVersion scrapes the build version label from Game.log text.
func BuildVersion(logText string) (string, bool) {
	m := branchPattern.FindStringSubmatch(logText)
	if m == nil {
		return "", false
	}

	return m[1], true
}

// BuildVersionFromLog reads the Game.log of one environment under the
// install root and scrapes its build version. A missing or unparseable
// log yields ok=false, not an error; the caller falls back to asking the
// user for a version label.
func BuildVersionFromLog(fs afero.Fs, installPath, env string) (string, bool) {
	data, err := afero.ReadFile(fs, filepath.Join(installPath, env, "Game.log"))
	if err != nil {
		return "", false
	}

	return BuildVersion(string(data))
}

// DefaultInstallCandidates returns the well-known launcher install roots
// to probe, most common first.
func DefaultInstallCandidates() []string {
	return []string{
		`C:\Program Files\Roberts Space Industries\StarCitizen`,
		`D:\Program Files\Roberts Space Industries\StarCitizen`,
		`C:\Games\StarCitizen`,
	}
}

// InstallPath probes candidates for a directory that holds a Data.p4k
// under any of the given environment subdirectories, returning the first
// match.
func InstallPath(fs afero.Fs, candidates, envs []string) (string, bool) {
	for _, root := range candidates {
		for _, env := range envs {
			if ok, err := afero.Exists(fs, filepath.Join(root, env, "Data.p4k")); err == nil && ok {
				return root, true
			}
		}
	}

	return "", false
}
