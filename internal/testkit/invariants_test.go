package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docweave/internal/ast"
	"docweave/internal/parser"
	"docweave/internal/source"
)

func scan(t *testing.T, src string) ([]ast.Declaration, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("m.py", []byte(src)))
	res := parser.Scan(file, parser.Options{})
	require.False(t, res.Bag.HasErrors())
	return res.Decls, file
}

func TestCheckDeclInvariantsOnScan(t *testing.T) {
	decls, file := scan(t, "class A:\n    def f(self,\n          x):\n        def g():\n            pass\n        return g\n\ndef h(): pass\n")
	require.Len(t, decls, 4)
	assert.NoError(t, CheckDeclInvariants(decls, file))
}

func TestCheckDeclInvariantsDetectsViolations(t *testing.T) {
	decls, file := scan(t, "def a():\n    pass\ndef b():\n    pass\n")

	swapped := []ast.Declaration{decls[1], decls[0]}
	assert.Error(t, CheckDeclInvariants(swapped, file))

	bad := []ast.Declaration{decls[0].Clone()}
	bad[0].InsertOffset++
	assert.Error(t, CheckDeclInvariants(bad, file))

	orphan := []ast.Declaration{decls[0].Clone()}
	orphan[0].Kind = ast.DeclMethod
	orphan[0].Depth = 1
	assert.Error(t, CheckDeclInvariants(orphan, file))
}

func TestCheckPreserved(t *testing.T) {
	orig := []byte("def f():\n    pass\n")
	assert.NoError(t, CheckPreserved(orig, []byte("def f():\n    \"\"\"Doc.\"\"\"\n    pass\n")))
	assert.NoError(t, CheckPreserved(orig, orig))
	assert.Error(t, CheckPreserved(orig, []byte("def f():\n    return\n")))
}
