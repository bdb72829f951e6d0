package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"docweave/internal/ast"
	"docweave/internal/diag"
	"docweave/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func scanSource(t *testing.T, src string, opts Options) Result {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(src)))
	res := Scan(file, opts)
	require.NotNil(t, res.Bag)
	return res
}

// scanClean сканирует исходник и требует отсутствия ошибок.
func scanClean(t *testing.T, src string) []ast.Declaration {
	t.Helper()
	res := scanSource(t, src, Options{})
	require.False(t, res.Bag.HasErrors(), "diagnostics: %s", diagnosticsSummary(res.Bag))
	return res.Decls
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func qualNames(decls []ast.Declaration) []string {
	out := make([]string, len(decls))
	for i, d := range decls {
		out[i] = d.QualName
	}
	return out
}
