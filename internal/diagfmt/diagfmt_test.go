package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"docweave/internal/diag"
	"docweave/internal/driver"
	"docweave/internal/parser"
	"docweave/internal/source"
)

func virtual(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("mod.py", []byte(src)))
}

func TestErrorParse(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, &driver.ParseError{Path: "mod.py", Line: 4, Col: 12, Code: diag.SynExpectColon, Msg: "expected ':'"}, Options{})
	assert.Equal(t, "error[ParseError]: mod.py:4:12: expected ':' (SYN2006)\n", buf.String())
}

func TestErrorOtherKinds(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, &driver.DestinationConflictError{Path: "in.py"}, Options{})
	assert.True(t, strings.HasPrefix(buf.String(), "error[DestinationConflictError]: in.py: "))

	buf.Reset()
	Error(&buf, errors.New("boom"), Options{})
	assert.Equal(t, "error[Error]: boom\n", buf.String())

	buf.Reset()
	Error(&buf, nil, Options{})
	assert.Empty(t, buf.String())
}

func TestErrorColor(t *testing.T) {
	var buf bytes.Buffer
	Error(&buf, &driver.PathError{Path: "x", Reason: "missing"}, Options{Color: true})
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestPrettyCaret(t *testing.T) {
	file := virtual("def f(:\n    pass\n")
	res := parser.Scan(file, parser.Options{})
	require.True(t, res.Bag.HasErrors())

	var buf bytes.Buffer
	Pretty(&buf, res.Bag, file, diag.SevError, Options{})
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "mod.py:1:"))
	assert.Contains(t, lines[0], ": error SYN")
	assert.Equal(t, "    def f(:", lines[1])
	assert.Contains(t, lines[2], "^")
}

func TestCaret(t *testing.T) {
	assert.Equal(t, "    ^~", caret("abcdefg", 5, 2))
	assert.Equal(t, "^", caret("", 1, 0))
	assert.Equal(t, "     ^", caret("\tx = 1", 3, 1))
}

func TestDeclarationsFormats(t *testing.T) {
	file := virtual("class A:\n    def run(self, *args, **kw) -> int:\n        return 1\n")
	res := parser.Scan(file, parser.Options{})
	require.False(t, res.Bag.HasErrors())

	var buf bytes.Buffer
	require.NoError(t, Declarations(&buf, "mod.py", res.Decls, ListTable, Options{}))
	out := buf.String()
	assert.Contains(t, out, "A.run")
	assert.Contains(t, out, "self, *args, **kw")
	assert.Contains(t, out, "2 missing")

	buf.Reset()
	require.NoError(t, Declarations(&buf, "mod.py", res.Decls, ListJSON, Options{}))
	var doc DeclarationsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 2, doc.Count)
	assert.Equal(t, "A.run", doc.Declarations[1].QualName)

	buf.Reset()
	require.NoError(t, Declarations(&buf, "mod.py", res.Decls, ListYAML, Options{}))
	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &generic))
	assert.Equal(t, 2, generic["undocumented"])
	assert.Contains(t, buf.String(), "kind: method")
}

func TestParseListFormat(t *testing.T) {
	f, err := ParseListFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, ListYAML, f)
	_, err = ParseListFormat("csv")
	assert.Error(t, err)
}

func TestDiffUnified(t *testing.T) {
	oldText := "def add(a):\n    return a\n"
	newText := "def add(a):\n    \"\"\"Processes add.\"\"\"\n    return a\n"

	var buf bytes.Buffer
	changed, err := Diff(&buf, []byte(oldText), []byte(newText), "mod.py", Options{})
	require.NoError(t, err)
	assert.True(t, changed)
	want := "--- a/mod.py\n+++ b/mod.py\n@@ -1,2 +1,3 @@\n def add(a):\n+    \"\"\"Processes add.\"\"\"\n     return a\n"
	assert.Equal(t, want, buf.String())
}

func TestDiffSplitsDistantHunks(t *testing.T) {
	var oldB, newB strings.Builder
	for i := 0; i < 20; i++ {
		oldB.WriteString("x\n")
		newB.WriteString("x\n")
		if i == 1 || i == 15 {
			newB.WriteString("y\n")
		}
	}
	var buf bytes.Buffer
	changed, err := Diff(&buf, []byte(oldB.String()), []byte(newB.String()), "m.py", Options{Context: 2})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, strings.Count(buf.String(), "@@ -"))
}

func TestDiffNoChanges(t *testing.T) {
	var buf bytes.Buffer
	changed, err := Diff(&buf, []byte("a\n"), []byte("a\n"), "m.py", Options{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, buf.String())
}
