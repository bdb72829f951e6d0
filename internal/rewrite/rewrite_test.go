package rewrite

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docweave/internal/ast"
	"docweave/internal/docgen"
	"docweave/internal/parser"
	"docweave/internal/source"
)

func loadVirtual(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("mod.py", []byte(src)))
}

// document прогоняет полный цикл scan -> plan -> apply.
func document(t *testing.T, src string, opts docgen.Options) string {
	t.Helper()
	file := loadVirtual(src)
	res := parser.Scan(file, parser.Options{})
	require.False(t, res.Bag.HasErrors())
	plan, err := BuildPlan(file, res.Decls, docgen.New(opts))
	require.NoError(t, err)
	out, err := Apply(file.Content, plan)
	if err != nil {
		require.ErrorIs(t, err, ErrNoChanges)
	}
	return string(out)
}

func TestDocument_AddExample(t *testing.T) {
	got := document(t, "def add(a, b=0):\n    return a + b\n", docgen.Options{})
	want := `def add(a, b=0):
    """Processes add.

    Args:
        a (Any): Description of a.
        b (Any, optional): Description of b. Defaults to 0.

    Returns:
        Any: Description of return value.
    """
    return a + b
`
	assert.Equal(t, want, got)
}

func TestDocument_DocumentedZeroParamIsUntouched(t *testing.T) {
	src := "def ping():\n    \"\"\"Ping.\"\"\"\n    pass\n"
	assert.Equal(t, src, document(t, src, docgen.Options{}))
}

func TestDocument_NestedAndPreserved(t *testing.T) {
	src := `# header comment
import os

class Shape:
    def __init__(self, sides: int):
        self.sides = sides  # keep me

    @staticmethod
    def unit():   # trailing
        return Shape(1)


def main():
    """Entry."""
    def inner(x):
        raise ValueError(x)
    inner(1)
`
	want := `# header comment
import os

class Shape:
    """Represents Shape."""
    def __init__(self, sides: int):
        """Initializes Shape.

        Args:
            sides (int): Description of sides.
        """
        self.sides = sides  # keep me

    @staticmethod
    def unit():   # trailing
        """Processes unit.

        Returns:
            Any: Description of return value.
        """
        return Shape(1)


def main():
    """Entry."""
    def inner(x):
        """Processes inner.

        Args:
            x (Any): Description of x.

        Raises:
            ValueError: If an error condition occurs.
        """
        raise ValueError(x)
    inner(1)
`
	assert.Equal(t, want, document(t, src, docgen.Options{}))
}

func TestDocument_Idempotent(t *testing.T) {
	srcs := []string{
		"def add(a, b=0):\n    return a + b\n",
		"class A:\n\tdef m(self, *a, **k):\n\t\tpass\n",
		"def f(x):\r\n    if x:\r\n        return x\r\n",
		"def g(): return 1\n",
	}
	for _, style := range []docgen.Style{docgen.StyleGoogle, docgen.StyleNumpy, docgen.StyleSphinx} {
		for _, src := range srcs {
			opts := docgen.Options{Style: style}
			once := document(t, src, opts)
			twice := document(t, once, opts)
			assert.Equal(t, once, twice, "style %s, source %q", style, src)
		}
	}
}

func TestDocument_PreservesOriginalBytes(t *testing.T) {
	src := "\xEF\xBB\xBFdef f(a):\r\n    return a\r\n\r\nx = 1   \r\n"
	out := document(t, src, docgen.Options{})
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBFdef f(a):\r\n    \"\"\"Processes f."))
	assert.True(t, strings.HasSuffix(out, "    return a\r\n\r\nx = 1   \r\n"))
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n")
}

func TestBuildPlan_SkipsInlineAndCountsDocumented(t *testing.T) {
	file := loadVirtual("def f(): pass\ndef g():\n    'doc'\ndef h():\n    pass\n")
	res := parser.Scan(file, parser.Options{})
	plan, err := BuildPlan(file, res.Decls, docgen.New(docgen.Options{}))
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Documented)
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, "f", plan.Skipped[0].QualName)
	require.Len(t, plan.Insertions, 1)
	assert.Equal(t, "h", plan.Insertions[0].QualName)
	assert.Equal(t, uint32(4), plan.Insertions[0].Line)
}

func TestBuildPlan_ConflictAtSameOffset(t *testing.T) {
	file := loadVirtual("def a():\n    pass\n")
	decls := []ast.Declaration{
		{Name: "a", QualName: "a", InsertOffset: 9, HeaderEnd: 1},
		{Name: "b", QualName: "b", InsertOffset: 9, HeaderEnd: 1},
	}
	_, err := BuildPlan(file, decls, docgen.New(docgen.Options{}))
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "a", conflict.First)
	assert.Equal(t, "b", conflict.Second)
}

func TestBuildPlan_OffsetPastEnd(t *testing.T) {
	file := loadVirtual("x\n")
	_, err := BuildPlan(file, []ast.Declaration{{QualName: "z", InsertOffset: 99}}, docgen.New(docgen.Options{}))
	assert.Error(t, err)
}

func TestApply_DescendingOrderAndNoMutation(t *testing.T) {
	content := []byte("0123456789")
	orig := string(content)
	plan := &Plan{Insertions: []Insertion{
		{QualName: "a", Offset: 2, Text: "A"},
		{QualName: "b", Offset: 5, Text: "B"},
		{QualName: "c", Offset: 10, Text: "C"},
		{QualName: "d", Offset: 0, Text: "D"},
	}}
	out, err := Apply(content, plan)
	require.NoError(t, err)
	assert.Equal(t, "D01A234B56789C", string(out))
	assert.Equal(t, orig, string(content))
}

func TestApply_Errors(t *testing.T) {
	_, err := Apply([]byte("abc"), &Plan{Insertions: []Insertion{{Offset: 1, Text: "x"}, {Offset: 1, Text: "y"}}})
	var conflict *ConflictError
	assert.True(t, errors.As(err, &conflict))

	_, err = Apply([]byte("abc"), &Plan{Insertions: []Insertion{{Offset: 4, Text: "x"}}})
	assert.Error(t, err)

	out, err := Apply([]byte("abc"), &Plan{})
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Equal(t, "abc", string(out))

	out, err = Apply([]byte("abc"), nil)
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Equal(t, "abc", string(out))
}
