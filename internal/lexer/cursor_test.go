package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docweave/internal/source"
	"docweave/internal/token"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte{'a', '\n', 'b'} {
		require.False(t, cursor.EOF())
		assert.Equal(t, want, cursor.Peek())
		assert.Equal(t, want, cursor.Bump())
	}
	assert.True(t, cursor.EOF())
	assert.Equal(t, byte(0), cursor.Peek())
	assert.Equal(t, byte(0), cursor.Bump())
}

func TestPeekAhead(t *testing.T) {
	cursor := NewCursor(createFile("abc"))

	b0, b1, ok := cursor.Peek2()
	require.True(t, ok)
	assert.Equal(t, []byte{'a', 'b'}, []byte{b0, b1})

	c0, c1, c2, ok := cursor.Peek3()
	require.True(t, ok)
	assert.Equal(t, []byte{'a', 'b', 'c'}, []byte{c0, c1, c2})

	cursor.Bump()
	_, _, _, ok = cursor.Peek3()
	assert.False(t, ok)
}

func TestMarkResetSpan(t *testing.T) {
	cursor := NewCursor(createFile("hello world"))
	m := cursor.Mark()
	for range 5 {
		cursor.Bump()
	}
	sp := cursor.SpanFrom(m)
	assert.Equal(t, uint32(0), sp.Start)
	assert.Equal(t, uint32(5), sp.End)

	cursor.Reset(m)
	assert.Equal(t, uint32(0), cursor.Off)
}

func TestEatNewline(t *testing.T) {
	cursor := NewCursor(createFile("\r\n\r\nx"))
	assert.True(t, cursor.AtNewline())
	assert.True(t, cursor.EatNewline())
	assert.Equal(t, uint32(2), cursor.Off)
	assert.True(t, cursor.EatNewline())
	assert.Equal(t, uint32(4), cursor.Off)
	assert.False(t, cursor.EatNewline())
	assert.False(t, cursor.AtNewline())
	assert.True(t, cursor.Eat('x'))
	assert.False(t, cursor.Eat('x'))
}

func TestStringPrefixFlags(t *testing.T) {
	tests := []struct {
		prefix string
		flags  token.StringFlags
		ok     bool
	}{
		{"r", token.StrRaw, true},
		{"R", token.StrRaw, true},
		{"u", 0, true},
		{"b", token.StrBytes, true},
		{"rb", token.StrRaw | token.StrBytes, true},
		{"Br", token.StrRaw | token.StrBytes, true},
		{"f", token.StrFormat, true},
		{"fR", token.StrFormat | token.StrRaw, true},
		{"bf", 0, false},
		{"ur", 0, false},
		{"rr", 0, false},
		{"x", 0, false},
		{"rbf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			flags, ok := stringPrefixFlags(tt.prefix)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.flags, flags)
			}
		})
	}
}
