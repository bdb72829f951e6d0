package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	require.NoError(t, os.MkdirAll(baseDir, 0o755))
	require.NoError(t, os.MkdirAll(otherDir, 0o755))

	target := filepath.Join(otherDir, "file.py")
	got, err := RelativePath(target, baseDir)
	require.NoError(t, err)
	assert.Equal(t, normalizePath(target), got)
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	baseDir := t.TempDir()
	target := filepath.Join(baseDir, "nested", "file.py")

	got, err := RelativePath(target, baseDir)
	require.NoError(t, err)
	assert.Equal(t, "nested/file.py", got)
}

func TestBOMLen(t *testing.T) {
	assert.Equal(t, uint32(3), BOMLen([]byte{0xEF, 0xBB, 0xBF, 'x'}))
	assert.Equal(t, uint32(0), BOMLen([]byte("x")))
	assert.Equal(t, uint32(0), BOMLen(nil))
}
