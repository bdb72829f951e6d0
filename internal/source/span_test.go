package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}

	assert.Equal(t, Span{File: 1, Start: 2, End: 8}, a.Cover(b))
	assert.Equal(t, uint32(4), a.Len())
	assert.False(t, a.Empty())
	assert.True(t, At(1, 5).Empty())

	// разные файлы не склеиваются
	other := Span{File: 2, Start: 0, End: 100}
	assert.Equal(t, a, a.Cover(other))
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.py", []byte("def f():\n    pass\n"))

	start, end := fs.Resolve(Span{File: id, Start: 13, End: 17})
	assert.Equal(t, LineCol{Line: 2, Col: 5}, start)
	assert.Equal(t, LineCol{Line: 2, Col: 9}, end)

	// offset of the '\n' itself stays on the line it terminates
	assert.Equal(t, LineCol{Line: 1, Col: 9}, fs.Get(id).Position(8))
}
