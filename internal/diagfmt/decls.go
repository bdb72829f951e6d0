package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"docweave/internal/ast"
)

// ListFormat selects how declarations are listed.
type ListFormat string

const (
	ListTable ListFormat = "table"
	ListJSON  ListFormat = "json"
	ListYAML  ListFormat = "yaml"
)

// ParseListFormat accepts table, json and yaml.
func ParseListFormat(s string) (ListFormat, error) {
	switch f := ListFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", ListTable:
		return ListTable, nil
	case ListJSON, ListYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected table|json|yaml)", s)
}

// DeclarationsOutput is the json/yaml document for a scanned file.
type DeclarationsOutput struct {
	File         string            `json:"file" yaml:"file"`
	Count        int               `json:"count" yaml:"count"`
	Undocumented int               `json:"undocumented" yaml:"undocumented"`
	Declarations []ast.Declaration `json:"declarations" yaml:"declarations"`
}

// Declarations writes decls of path in the given format.
func Declarations(w io.Writer, path string, decls []ast.Declaration, format ListFormat, opts Options) error {
	out := DeclarationsOutput{
		File:         opts.formatPath(path),
		Count:        len(decls),
		Declarations: decls,
	}
	for i := range decls {
		if !decls[i].HasDocumentation {
			out.Undocumented++
		}
	}
	if out.Declarations == nil {
		out.Declarations = []ast.Declaration{}
	}

	switch format {
	case ListJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case ListYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return declarationsTable(w, out)
	}
}

func declarationsTable(w io.Writer, out DeclarationsOutput) error {
	if out.Count == 0 {
		_, err := fmt.Fprintf(w, "%s: no declarations\n", out.File)
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(out.File)
	t.AppendHeader(table.Row{"Line", "Kind", "Name", "Params", "Returns", "Raises", "Doc"})

	for i := range out.Declarations {
		d := &out.Declarations[i]
		t.AppendRow(table.Row{
			d.HeaderStart,
			d.Kind.String(),
			strings.Repeat("  ", d.Depth) + d.QualName,
			paramList(d),
			returnsCell(d),
			strings.Join(d.Raises, ", "),
			docCell(d),
		})
	}
	t.AppendFooter(table.Row{"", "", "total " + strconv.Itoa(out.Count), "", "", "", strconv.Itoa(out.Undocumented) + " missing"})
	t.Render()
	return nil
}

func paramList(d *ast.Declaration) string {
	names := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		names = append(names, p.DisplayName())
	}
	return strings.Join(names, ", ")
}

func returnsCell(d *ast.Declaration) string {
	switch {
	case d.ReturnAnnotation != "":
		return d.ReturnAnnotation
	case d.Returns:
		return "yes"
	}
	return ""
}

func docCell(d *ast.Declaration) string {
	switch {
	case d.BlankDocumentation:
		return "blank"
	case d.HasDocumentation:
		return "yes"
	case d.Inline:
		return "inline"
	}
	return "no"
}
