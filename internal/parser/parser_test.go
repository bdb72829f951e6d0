package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docweave/internal/ast"
	"docweave/internal/diag"
)

func TestScan_SimpleFunction(t *testing.T) {
	src := "def add(a, b=0):\n    return a + b\n"
	decls := scanClean(t, src)
	require.Len(t, decls, 1)

	d := decls[0]
	assert.Equal(t, "add", d.Name)
	assert.Equal(t, "add", d.QualName)
	assert.Equal(t, ast.DeclFunction, d.Kind)
	assert.Equal(t, 0, d.Depth)
	assert.Equal(t, uint32(1), d.HeaderStart)
	assert.Equal(t, uint32(1), d.HeaderEnd)
	assert.Equal(t, []ast.Param{{Name: "a"}, {Name: "b", Default: "0"}}, d.Params)
	assert.False(t, d.HasDocumentation)
	assert.True(t, d.Returns)
	assert.Equal(t, "    ", d.BodyIndent)
	assert.Equal(t, uint32(len("def add(a, b=0):\n")), d.InsertOffset)
}

func TestScan_NestedScopes(t *testing.T) {
	src := `import os


class Shape:
    """A shape."""

    def __init__(self, sides):
        self.sides = sides

    @property
    def area(self) -> float:
        def helper():
            return 1
        return 0.0


async def main():
    pass
`
	decls := scanClean(t, src)
	assert.Equal(t, []string{"Shape", "Shape.__init__", "Shape.area", "Shape.area.helper", "main"}, qualNames(decls))

	kinds := []ast.DeclKind{ast.DeclClass, ast.DeclMethod, ast.DeclMethod, ast.DeclFunction, ast.DeclFunction}
	depths := []int{0, 1, 1, 2, 0}
	for i, d := range decls {
		assert.Equal(t, kinds[i], d.Kind, d.QualName)
		assert.Equal(t, depths[i], d.Depth, d.QualName)
	}

	shape := decls[0]
	assert.True(t, shape.HasDocumentation)
	assert.Equal(t, uint32(4), shape.HeaderStart)

	area := decls[2]
	assert.Equal(t, []string{"property"}, area.Decorators)
	assert.Equal(t, "float", area.ReturnAnnotation)
	assert.Equal(t, uint32(11), area.HeaderStart)
	assert.True(t, area.Returns)

	helper := decls[3]
	assert.True(t, helper.Returns)
	assert.Equal(t, "        ", decls[2].BodyIndent)
	assert.Equal(t, "            ", helper.BodyIndent)

	main := decls[4]
	assert.True(t, main.Async)
	assert.False(t, main.Returns)
}

func TestScan_NestedReturnDoesNotLeak(t *testing.T) {
	src := "def outer():\n    def inner():\n        return 42\n    inner()\n"
	decls := scanClean(t, src)
	require.Len(t, decls, 2)
	assert.False(t, decls[0].Returns)
	assert.True(t, decls[1].Returns)
}

func TestScan_TrivialReturns(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"return", false},
		{"return None", false},
		{"return None or x", true},
		{"return (None)", false},
		{"return ((None))", false},
		{"return (None), 1", true},
		{"return ()", true},
		{"return (None)(x)", true},
		{"x = 1; return x", true},
		{"if x:\n        return []", true},
		{"return; x = 2", false},
		{"yield 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			decls := scanClean(t, "def f(x):\n    "+tt.body+"\n")
			require.Len(t, decls, 1)
			assert.Equal(t, tt.want, decls[0].Returns)
		})
	}
}

func TestScan_Raises(t *testing.T) {
	src := `def f(x):
    if x:
        raise ValueError("bad")
    try:
        pass
    except KeyError:
        raise
    raise errors.NotFound from None
    raise ValueError
    raise make_error()
    raise exc
`
	decls := scanClean(t, src)
	require.Len(t, decls, 1)
	assert.Equal(t, []string{"ValueError", "errors.NotFound", "make_error", "exc"}, decls[0].Raises)
}

func TestScan_RaiseOfExpressionIsIgnored(t *testing.T) {
	decls := scanClean(t, "def f():\n    raise errs[0]\n    raise a or b\n")
	require.Len(t, decls, 1)
	assert.Empty(t, decls[0].Raises)
}

func TestScan_Parameters(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []ast.Param
	}{
		{"empty", "def f():", nil},
		{"trailing comma", "def f(a,):", []ast.Param{{Name: "a"}}},
		{"annotated", "def f(a: int, b: str = 'x'):", []ast.Param{
			{Name: "a", Annotation: "int"},
			{Name: "b", Annotation: "str", Default: "'x'"},
		}},
		{"generic annotation", "def f(m: dict[str, list[int]] = {}):", []ast.Param{
			{Name: "m", Annotation: "dict[str, list[int]]", Default: "{}"},
		}},
		{"variadics", "def f(*args: int, **kwargs):", []ast.Param{
			{Name: "args", Annotation: "int", Variadic: ast.VariadicArgs},
			{Name: "kwargs", Variadic: ast.VariadicKwargs},
		}},
		{"separators", "def f(a, /, b, *, c=1):", []ast.Param{
			{Name: "a"}, {Name: "b"}, {Name: "c", Default: "1"},
		}},
		{"call default", "def f(cb=lambda x, y: x + y, n=max(1, 2)):", []ast.Param{
			{Name: "cb", Default: "lambda x, y: x + y"},
			{Name: "n", Default: "max(1, 2)"},
		}},
		{"multiline", "def f(\n    a: int,\n    b: tuple[\n        int, int\n    ] = (1,\n         2),\n):", []ast.Param{
			{Name: "a", Annotation: "int"},
			{Name: "b", Annotation: "tuple[ int, int ]", Default: "(1, 2)"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := scanClean(t, tt.header+"\n    pass\n")
			require.Len(t, decls, 1)
			assert.Equal(t, tt.want, decls[0].Params)
		})
	}
}

func TestScan_MultilineHeaderRange(t *testing.T) {
	src := "def f(\n    a,\n    b,\n) -> dict[\n    str, int\n]:\n    return {}\n"
	decls := scanClean(t, src)
	require.Len(t, decls, 1)
	d := decls[0]
	assert.Equal(t, uint32(1), d.HeaderStart)
	assert.Equal(t, uint32(6), d.HeaderEnd)
	assert.Equal(t, "dict[ str, int ]", d.ReturnAnnotation)
	assert.Equal(t, uint32(len("def f(\n    a,\n    b,\n) -> dict[\n    str, int\n]:\n")), d.InsertOffset)
}

func TestScan_ClassHeaders(t *testing.T) {
	src := "class A(Base, metaclass=Meta):\n    pass\nclass B[T]:\n    x: T\nclass C():\n    ...\n"
	decls := scanClean(t, src)
	assert.Equal(t, []string{"A", "B", "C"}, qualNames(decls))
	for _, d := range decls {
		assert.Equal(t, ast.DeclClass, d.Kind)
		assert.Empty(t, d.Params)
	}
}

func TestScan_Docstrings(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		documented bool
		blank      bool
	}{
		{"triple", `"""Doc."""`, true, false},
		{"single", `'doc'`, true, false},
		{"raw", `r"""\d"""`, true, false},
		{"unicode", `u"doc"`, true, false},
		{"concatenated", `"a" "b"`, true, false},
		{"parenthesized", `("a"` + "\n        " + `"b")`, true, false},
		{"semicolon", `"doc"; x = 1`, true, false},
		{"blank", `"""   """`, true, true},
		{"fstring", `f"doc {x}"`, false, false},
		{"bytes", `b"doc"`, false, false},
		{"expression", `"doc".strip()`, false, false},
		{"assignment", `x = "doc"`, false, false},
		{"pass", `pass`, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scanSource(t, "def f():\n    "+tt.body+"\n", Options{})
			require.False(t, res.Bag.HasErrors(), diagnosticsSummary(res.Bag))
			require.Len(t, res.Decls, 1)
			assert.Equal(t, tt.documented, res.Decls[0].HasDocumentation)
			assert.Equal(t, tt.blank, res.Decls[0].BlankDocumentation)
			if tt.blank {
				assert.Equal(t, []diag.Code{diag.DocBlankExisting}, codesOf(res.Bag))
			}
		})
	}
}

func TestScan_DocstringAfterComment(t *testing.T) {
	decls := scanClean(t, "def f():\n    # comment\n\n    \"\"\"Doc.\"\"\"\n")
	require.Len(t, decls, 1)
	assert.True(t, decls[0].HasDocumentation)
}

func TestScan_InlineBody(t *testing.T) {
	decls := scanClean(t, "def f(): return 1\nclass E(Exception): pass\ndef g(): \"doc\"\n")
	require.Len(t, decls, 3)
	assert.True(t, decls[0].Inline)
	assert.True(t, decls[0].Returns)
	assert.False(t, decls[0].NeedsDocumentation())
	assert.True(t, decls[1].Inline)
	assert.True(t, decls[2].HasDocumentation)
}

func TestScan_DeclarationsInCompoundBlocks(t *testing.T) {
	src := `if TYPE_CHECKING:
    def a():
        pass
else:
    try:
        class B:
            def m(self):
                pass
    except ImportError:
        pass
with ctx() as c:
    def d(): ...
`
	decls := scanClean(t, src)
	assert.Equal(t, []string{"a", "B", "B.m", "d"}, qualNames(decls))
	assert.Equal(t, []int{1, 2, 3, 1}, []int{decls[0].Depth, decls[1].Depth, decls[2].Depth, decls[3].Depth})
	assert.Equal(t, ast.DeclMethod, decls[2].Kind)
}

func TestScan_MethodKindThroughConditional(t *testing.T) {
	src := "class A:\n    if flag:\n        def m(self):\n            pass\n"
	decls := scanClean(t, src)
	require.Len(t, decls, 2)
	assert.Equal(t, ast.DeclMethod, decls[1].Kind)
	assert.Equal(t, 2, decls[1].Depth)
}

func TestScan_DecoratorsWithArguments(t *testing.T) {
	src := "@app.route(\n    '/x',\n    methods=['GET'],\n)\n@cache\ndef view():\n    pass\n"
	decls := scanClean(t, src)
	require.Len(t, decls, 1)
	assert.Equal(t, []string{"app.route( '/x', methods=['GET'], )", "cache"}, decls[0].Decorators)
	assert.Equal(t, uint32(6), decls[0].HeaderStart)
}

func TestScan_HeaderRangesDoNotOverlap(t *testing.T) {
	src := "class A:\n    def f(self,\n          x):\n        pass\n    def g(self): pass\n"
	decls := scanClean(t, src)
	require.Len(t, decls, 3)
	for i := 1; i < len(decls); i++ {
		assert.Greater(t, decls[i].HeaderStart, decls[i-1].HeaderEnd)
	}
}

func TestScan_CRLFAndBOM(t *testing.T) {
	src := "\xEF\xBB\xBFdef f(a):\r\n    return a\r\n"
	decls := scanClean(t, src)
	require.Len(t, decls, 1)
	assert.Equal(t, uint32(len("\xEF\xBB\xBFdef f(a):\r\n")), decls[0].InsertOffset)
	assert.Equal(t, "    ", decls[0].BodyIndent)
}

func TestScan_TabIndentedBody(t *testing.T) {
	decls := scanClean(t, "class A:\n\tdef f(self):\n\t\tpass\n")
	require.Len(t, decls, 2)
	assert.Equal(t, "\t", decls[0].BodyIndent)
	assert.Equal(t, "\t\t", decls[1].BodyIndent)
}

func TestScan_SkipOptions(t *testing.T) {
	src := "def _p():\n    pass\ndef __repr__():\n    pass\ndef __init__():\n    pass\ndef pub():\n    pass\n"

	all := scanSource(t, src, Options{}).Decls
	assert.Len(t, all, 4)

	noPrivate := scanSource(t, src, Options{SkipPrivate: true}).Decls
	assert.Equal(t, []string{"__repr__", "__init__", "pub"}, qualNames(noPrivate))

	noDunder := scanSource(t, src, Options{SkipDunder: true}).Decls
	assert.Equal(t, []string{"_p", "__init__", "pub"}, qualNames(noDunder))
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		line uint32
	}{
		{"missing block", "def f():\nx = 1\n", diag.SynExpectIndentedBlock, 2},
		{"missing block at eof", "def f():", diag.SynExpectIndentedBlock, 1},
		{"unexpected indent", "x = 1\n    y = 2\n", diag.SynUnexpectedIndent, 2},
		{"missing name", "def (a):\n    pass\n", diag.SynExpectName, 1},
		{"missing paren", "def f:\n    pass\n", diag.SynExpectLParen, 1},
		{"missing colon", "def f()\n    pass\n", diag.SynExpectColon, 1},
		{"bad parameter", "def f(1):\n    pass\n", diag.SynBadParameter, 1},
		{"empty parameter", "def f(a,,b):\n    pass\n", diag.SynBadParameter, 1},
		{"stray decorator", "@dec\nx = 1\n", diag.SynDecoratorTarget, 2},
		{"compound without block", "if x:\ny\n", diag.SynExpectIndentedBlock, 2},
		{"lexical", "def f():\n    s = 'oops\n", diag.LexUnterminatedString, 2},
		{"unclosed params", "def f(a,\n", diag.LexUnclosedBracket, 1},
		{"bad dedent", "def f():\n        a\n    b\n", diag.LexBadDedent, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scanSource(t, tt.src, Options{})
			require.True(t, res.Bag.HasErrors(), "expected errors for %q", tt.src)
			first, ok := res.Bag.FirstError()
			require.True(t, ok)
			assert.Equal(t, tt.code, first.Code, diagnosticsSummary(res.Bag))

			fsLine := lineOf(tt.src, first.Primary.Start)
			assert.Equal(t, tt.line, fsLine, diagnosticsSummary(res.Bag))
		})
	}
}

func TestScan_RecoversAfterBrokenHeader(t *testing.T) {
	res := scanSource(t, "def f(1):\n    pass\n\ndef g():\n    pass\n", Options{})
	assert.Equal(t, []string{"g"}, qualNames(res.Decls))
	assert.Equal(t, []diag.Code{diag.SynBadParameter}, codesOf(res.Bag))
}

func TestScan_EmptyAndDeclarationFree(t *testing.T) {
	assert.Empty(t, scanClean(t, ""))
	assert.Empty(t, scanClean(t, "# just a comment\n\nx = {'a': 1,\n     'b': 2}\nprint(x)\n"))
}

func TestResultUndocumented(t *testing.T) {
	res := scanSource(t, "def a():\n    'doc'\ndef b():\n    pass\n", Options{})
	assert.Equal(t, []string{"b"}, qualNames(res.Undocumented()))
}

func lineOf(src string, off uint32) uint32 {
	line := uint32(1)
	for i := uint32(0); i < off && int(i) < len(src); i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}
