package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPathInfo(t *testing.T) {
	full, dir, err := GetPathInfo("testdata/../prog.txt")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(full))
	assert.Equal(t, "prog.txt", filepath.Base(full))
	assert.Equal(t, filepath.Dir(full), dir)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "a.txt")
	err := WriteFile(path, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "1 a")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 a\n", string(data))

	err = WriteFile(path, func(w io.Writer) error { return fmt.Errorf("boom") })
	assert.ErrorContains(t, err, "boom")
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stale.txt")
	require.NoError(t, RemoveIfExists(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, RemoveIfExists(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
