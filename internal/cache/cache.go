// Package cache stores immutable snapshots of extracted localization
// tables, named "<versionLabel>-<environmentLabel>.ini". Snapshots are
// written once by extraction and read-only afterwards; their bytes are
// kept exactly as extracted.
package cache

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Snapshot describes one cached table version.
type Snapshot struct {
	Version string
	Env     string
	Path    string
	ModTime time.Time
}

// Store is a snapshot cache rooted at a single directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a [Store] rooted at dir.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// SanitizeVersion replaces every character outside [A-Za-z0-9_.-] with an
// underscore so a build version label is safe to use in a filename.
func SanitizeVersion(version string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, version)
}

func (s *Store) snapshotPath(version, env string) string {
	return filepath.Join(s.dir, SanitizeVersion(version)+"-"+env+".ini")
}

// Put stores data as the snapshot for (version, env), creating the cache
// directory if needed, and returns the written path.
func (s *Store) Put(version, env string, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := s.snapshotPath(version, env)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return path, nil
}

// Has reports whether a snapshot for (version, env) exists.
func (s *Store) Has(version, env string) (bool, error) {
	exists, err := afero.Exists(s.fs, s.snapshotPath(version, env))
	if err != nil {
		return false, fmt.Errorf("failed to stat snapshot: %w", err)
	}

	return exists, nil
}

// Load reads the snapshot for (version, env).
func (s *Store) Load(version, env string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.snapshotPath(version, env))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return data, nil
}

// Read reads the snapshot behind a previously listed [Snapshot].
func (s *Store) Read(snap Snapshot) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, snap.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return data, nil
}

// List returns all cached snapshots, newest first. Ties on modification
// time are broken by name for deterministic ordering. An absent cache
// directory yields an empty list, not an error.
func (s *Store) List() ([]Snapshot, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if exists, statErr := afero.DirExists(s.fs, s.dir); statErr == nil && !exists {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var snaps []Snapshot
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".ini") {
			continue
		}

		base := strings.TrimSuffix(info.Name(), ".ini")

		// The environment label never contains a dash; the version
		// label may, so split on the last one.
		sep := strings.LastIndex(base, "-")
		if sep <= 0 || sep == len(base)-1 {
			continue
		}

		snaps = append(snaps, Snapshot{
			Version: base[:sep],
			Env:     base[sep+1:],
			Path:    filepath.Join(s.dir, info.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(snaps, func(i, j int) bool {
		if !snaps[i].ModTime.Equal(snaps[j].ModTime) {
			return snaps[i].ModTime.After(snaps[j].ModTime)
		}

		return snaps[i].Path > snaps[j].Path
	})

	return snaps, nil
}

// ListEnv returns the snapshots of one environment, newest first.
func (s *Store) ListEnv(env string) ([]Snapshot, error) {
	snaps, err := s.List()
	if err != nil {
		return nil, err
	}

	var filtered []Snapshot
	for _, snap := range snaps {
		if snap.Env == env {
			filtered = append(filtered, snap)
		}
	}

	return filtered, nil
}

// Latest returns the newest snapshot of env, or nil when none exists.
func (s *Store) Latest(env string) (*Snapshot, error) {
	snaps, err := s.ListEnv(env)
	if err != nil {
		return nil, err
	}

	if len(snaps) == 0 {
		return nil, nil
	}

	return &snaps[0], nil
}

// Previous returns the newest snapshot of env whose version differs from
// version, or nil when none exists. This is the comparison base for a
// build that may already be cached itself.
func (s *Store) Previous(env, version string) (*Snapshot, error) {
	snaps, err := s.ListEnv(env)
	if err != nil {
		return nil, err
	}

	sanitized := SanitizeVersion(version)
	for i := range snaps {
		if snaps[i].Version != sanitized {
			return &snaps[i], nil
		}
	}

	return nil, nil
}
