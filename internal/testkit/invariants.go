// Package testkit holds invariant checks shared by unit and fuzz tests.
package testkit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"docweave/internal/ast"
	"docweave/internal/source"
)

// CheckDeclInvariants runs the scanner invariants on decls of sf:
// 1) header lines are within the file and HeaderStart <= HeaderEnd
// 2) declarations come in lexical order and header ranges do not overlap
// 3) block bodies insert right after the header's last line
// 4) a method sits exactly one level below some enclosing class
func CheckDeclInvariants(decls []ast.Declaration, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lines := sf.LineCount()
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i := range decls {
		d := &decls[i]
		if d.HeaderStart == 0 || d.HeaderEnd < d.HeaderStart || d.HeaderEnd > lines {
			return fmt.Errorf("%s: bad header range %d-%d (file has %d lines)", d.QualName, d.HeaderStart, d.HeaderEnd, lines)
		}
		if d.HeaderStart <= prevEnd {
			return fmt.Errorf("%s: header %d-%d overlaps previous header ending at %d", d.QualName, d.HeaderStart, d.HeaderEnd, prevEnd)
		}
		prevEnd = d.HeaderEnd

		if !d.Inline {
			if want := sf.LineEnd(d.HeaderEnd); d.InsertOffset != want {
				return fmt.Errorf("%s: insert offset %d, want %d (end of line %d)", d.QualName, d.InsertOffset, want, d.HeaderEnd)
			}
			if d.InsertOffset > size {
				return fmt.Errorf("%s: insert offset %d beyond content (%d bytes)", d.QualName, d.InsertOffset, size)
			}
		}

		if d.IsMethod() && !hasClassAt(decls[:i], d.Depth-1) {
			return fmt.Errorf("%s: method at depth %d without an enclosing class", d.QualName, d.Depth)
		}
	}
	return nil
}

// hasClassAt ищет ближайший открытый класс на глубине depth среди предыдущих.
func hasClassAt(prev []ast.Declaration, depth int) bool {
	for i := len(prev) - 1; i >= 0; i-- {
		if prev[i].Depth < depth {
			return false
		}
		if prev[i].Depth == depth {
			return prev[i].IsClass()
		}
	}
	return false
}

// CheckPreserved verifies that output is original with whole lines inserted:
// removing the inserted lines gives back the original bytes.
func CheckPreserved(original, output []byte) error {
	if bytes.Equal(original, output) {
		return nil
	}
	origLines := bytes.SplitAfter(original, []byte{'\n'})
	outLines := bytes.SplitAfter(output, []byte{'\n'})

	j := 0
	for _, line := range outLines {
		if j < len(origLines) && bytes.Equal(line, origLines[j]) {
			j++
		}
	}
	if j != len(origLines) {
		return fmt.Errorf("original line %d (%q) not preserved in output", j+1, origLines[j])
	}
	return nil
}
