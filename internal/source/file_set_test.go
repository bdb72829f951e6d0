package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.py", []byte("hello world"), 0)
	require.Equal(t, FileID(0), id1)

	latest, ok := fs.GetLatest("test.py")
	require.True(t, ok)
	require.Equal(t, id1, latest)

	// тот же путь - новый FileID, старая версия остаётся доступной
	id2 := fs.Add("test.py", []byte("hello universe"), 0)
	require.Equal(t, FileID(1), id2)

	latest, ok = fs.GetLatest("./test.py")
	require.True(t, ok)
	assert.Equal(t, id2, latest)
	assert.Equal(t, "hello world", string(fs.Get(id1).Content))
	assert.Equal(t, "hello universe", string(fs.Get(id2).Content))
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.py", []byte("a\nb\n")))

	assert.Equal(t, []uint32{1, 3}, file.LineIdx)
	assert.NotZero(t, file.Flags&FileVirtual)
	assert.Equal(t, uint32(2), file.LineCount())
}

func TestLoadKeepsCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.py")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1\r\ny = 2\r\n")...)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	fs := NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	file := fs.Get(id)
	assert.Equal(t, raw, file.Content, "content must stay byte-identical")
	assert.NotZero(t, file.Flags&FileHadBOM)
	assert.NotZero(t, file.Flags&FileHadCRLF)
	assert.Equal(t, "\r\n", file.Newline())
	assert.Equal(t, "y = 2", file.GetLine(2))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewFileSet().Load(filepath.Join(t.TempDir(), "nope.py"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLineBounds(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("b.py", []byte("ab\ncd\nef")))

	tests := []struct {
		line       uint32
		start, end uint32
		text       string
	}{
		{1, 0, 3, "ab"},
		{2, 3, 6, "cd"},
		{3, 6, 8, "ef"},
		{4, 8, 8, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.start, file.LineStart(tt.line), "LineStart(%d)", tt.line)
		assert.Equal(t, tt.end, file.LineEnd(tt.line), "LineEnd(%d)", tt.line)
		assert.Equal(t, tt.text, file.GetLine(tt.line), "GetLine(%d)", tt.line)
	}
	assert.Equal(t, "\n", file.Newline())
}
