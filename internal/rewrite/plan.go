package rewrite

import (
	"errors"
	"fmt"

	"docweave/internal/ast"
	"docweave/internal/docgen"
	"docweave/internal/source"
)

// ErrNoChanges is returned when a plan holds no insertions.
var ErrNoChanges = errors.New("no documentation blocks to insert")

// Insertion places Text at byte Offset of the unmodified source.
type Insertion struct {
	QualName string
	Line     uint32 // header line the block goes under
	Offset   uint32
	Text     string
}

// Skipped records an undocumented declaration that receives no block.
type Skipped struct {
	QualName string
	Line     uint32
	Reason   string
}

// Plan is the ordered set of insertions for one file. Offsets refer to the
// original content; insertions are kept in lexical order.
type Plan struct {
	Insertions []Insertion
	Skipped    []Skipped
	Documented int // declarations that already had documentation
}

func (p *Plan) Empty() bool { return p == nil || len(p.Insertions) == 0 }

// ConflictError reports two insertions targeting the same offset.
type ConflictError struct {
	Offset uint32
	Line   uint32
	First  string
	Second string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting insertions at line %d (offset %d): %s and %s", e.Line, e.Offset, e.First, e.Second)
}

// BuildPlan selects the undocumented declarations with a block body and
// synthesizes their blocks. Inline bodies are listed in Plan.Skipped.
func BuildPlan(file *source.File, decls []ast.Declaration, gen *docgen.Generator) (*Plan, error) {
	plan := &Plan{}
	nl := file.Newline()
	seen := make(map[uint32]string, len(decls))
	size := len(file.Content)

	for i := range decls {
		d := &decls[i]
		switch {
		case d.HasDocumentation:
			plan.Documented++
			continue
		case d.Inline:
			plan.Skipped = append(plan.Skipped, Skipped{
				QualName: d.QualName,
				Line:     d.HeaderStart,
				Reason:   "body is on the header line",
			})
			continue
		}

		if int(d.InsertOffset) > size {
			return nil, fmt.Errorf("rewrite: insertion offset %d for %s is past end of file (%d bytes)", d.InsertOffset, d.QualName, size)
		}
		if prev, ok := seen[d.InsertOffset]; ok {
			return nil, &ConflictError{Offset: d.InsertOffset, Line: d.HeaderEnd, First: prev, Second: d.QualName}
		}
		seen[d.InsertOffset] = d.QualName

		block := gen.Synthesize(d)
		plan.Insertions = append(plan.Insertions, Insertion{
			QualName: d.QualName,
			Line:     block.Line,
			Offset:   block.Offset,
			Text:     gen.Text(block, nl),
		})
	}
	return plan, nil
}
