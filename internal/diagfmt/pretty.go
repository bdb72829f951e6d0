package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"docweave/internal/diag"
	"docweave/internal/source"
)

var (
	colorError   = []color.Attribute{color.FgRed, color.Bold}
	colorWarning = []color.Attribute{color.FgYellow, color.Bold}
	colorInfo    = []color.Attribute{color.FgCyan}
	colorPath    = []color.Attribute{color.Bold}
	colorAdd     = color.FgGreen
)

func severityColor(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevError:
		return colorError
	case diag.SevWarning:
		return colorWarning
	}
	return colorInfo
}

// Pretty форматирует диагностики файла в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	    <строка исходника>
//	    ^~~~
//
// minSev отсекает менее важные диагностики.
func Pretty(w io.Writer, bag *diag.Bag, file *source.File, minSev diag.Severity, opts Options) {
	if bag == nil || file == nil {
		return
	}
	bag.Sort()
	for _, d := range bag.Items() {
		if d.Severity < minSev {
			continue
		}
		pos := file.Position(d.Primary.Start)
		loc := fmt.Sprintf("%s:%d:%d", opts.formatPath(file.Path), pos.Line, pos.Col)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			opts.paint(colorPath...).Sprint(loc),
			opts.paint(severityColor(d.Severity)...).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message)

		line := strings.TrimRight(file.GetLine(pos.Line), "\r\n")
		if line == "" {
			continue
		}
		fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", "    "))
		fmt.Fprintf(w, "    %s\n", opts.paint(severityColor(d.Severity)...).Sprint(caret(line, pos.Col, d.Primary.Len())))
		for _, n := range d.Notes {
			np := file.Position(n.Span.Start)
			fmt.Fprintf(w, "    note: %d:%d: %s\n", np.Line, np.Col, n.Msg)
		}
	}
}

// caret строит подчёркивание ^~~ под колонкой col (байтовой, 1-based).
func caret(line string, col, length uint32) string {
	start := int(col) - 1
	if start < 0 {
		start = 0
	}
	if start > len(line) {
		start = len(line)
	}
	// ширина префикса в колонках терминала, а не в байтах
	pad := runewidth.StringWidth(strings.ReplaceAll(line[:start], "\t", "    "))
	n := int(length)
	if n < 1 {
		n = 1
	}
	if rest := len(line) - start; n > rest && rest > 0 {
		n = rest
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", n-1)
}
