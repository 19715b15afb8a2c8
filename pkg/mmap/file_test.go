//go:build unix

package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.xt")
	require.NoError(t, os.WriteFile(path, []byte("#data\n#code\n"), 0o600))

	bytes, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "#data\n#code\n", string(bytes))
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	bytes, err := ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, bytes)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xt"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadDirectory(t *testing.T) {
	_, err := ReadFile(t.TempDir())
	require.Error(t, err)
}
