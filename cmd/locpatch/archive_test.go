package main

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/sclocal/locpatch/internal/cache"
)

// Expectation: The archive should contain every cached snapshot with its real content.
func Test_Program_Archive_Success(t *testing.T) {
	fs := afero.NewMemMapFs()

	store := cache.NewStore(fs, "/cache")
	_, err := store.Put("4.0", "LIVE", []byte("a=1"))
	require.NoError(t, err)
	_, err = store.Put("4.1", "LIVE", []byte("a=2"))
	require.NoError(t, err)

	prog := NewProgram(fs, io.Discard, io.Discard, nil, nil, nil)
	require.NoError(t, prog.Archive(context.Background(), "/cache", "/snapshots.tar.gz"))

	f, err := fs.Open("/snapshots.tar.gz")
	require.NoError(t, err)

	gzr, err := gzip.NewReader(f)
	require.NoError(t, err)

	contents := map[string]string{}
	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		contents[hdr.Name] = string(data)
	}

	require.Equal(t, map[string]string{
		"4.0-LIVE.ini": "a=1",
		"4.1-LIVE.ini": "a=2",
	}, contents)
}

// Expectation: An empty snapshot cache should fail the operation and leave no output file.
func Test_Program_Archive_EmptyCache_Error(t *testing.T) {
	fs := afero.NewMemMapFs()

	prog := NewProgram(fs, io.Discard, io.Discard, nil, nil, nil)
	require.Error(t, prog.Archive(context.Background(), "/cache", "/snapshots.tar.gz"))

	_, err := fs.Stat("/snapshots.tar.gz")
	require.ErrorIs(t, err, os.ErrNotExist)
}

// Expectation: A context cancellation should be respected and the output file removed.
func Test_Program_Archive_CtxCancel_Error(t *testing.T) {
	fs := afero.NewMemMapFs()

	store := cache.NewStore(fs, "/cache")
	_, err := store.Put("4.0", "LIVE", []byte("a=1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prog := NewProgram(fs, io.Discard, io.Discard, nil, nil, nil)
	require.ErrorIs(t, prog.Archive(ctx, "/cache", "/snapshots.tar.gz"), context.Canceled)

	_, statErr := fs.Stat("/snapshots.tar.gz")
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

// Expectation: An invalid compressor configuration should fail and leave no output file.
func Test_Program_Archive_InvalidConfig_Error(t *testing.T) {
	fs := afero.NewMemMapFs()

	store := cache.NewStore(fs, "/cache")
	_, err := store.Put("4.0", "LIVE", []byte("a=1"))
	require.NoError(t, err)

	cfg := gzipConfigDefault
	cfg.CompressionLevel = -17

	prog := NewProgram(fs, io.Discard, io.Discard, nil, &cfg, nil)
	require.Error(t, prog.Archive(context.Background(), "/cache", "/snapshots.tar.gz"))

	_, statErr := fs.Stat("/snapshots.tar.gz")
	require.ErrorIs(t, statErr, os.ErrNotExist)
}
