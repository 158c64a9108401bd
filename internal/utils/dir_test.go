package utils_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruppe-adler/flowplot/internal/utils"
)

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "grid.asc")
	require.NoError(t, os.WriteFile(file, []byte("ncols 1\n"), 0o644))

	info, err := utils.StatFile(file)
	require.NoError(t, err)
	assert.Equal(t, "grid.asc", info.Name())

	_, err = utils.StatFile(filepath.Join(dir, "missing.asc"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = utils.StatFile(dir)
	assert.ErrorIs(t, err, utils.ErrIsDirectory)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
}

func TestIsDirectory(t *testing.T) {
	dir := t.TempDir()

	assert.True(t, utils.IsDirectory(dir))
	assert.False(t, utils.IsDirectory(filepath.Join(dir, "missing")))
}
