package rewrite

import (
	"fmt"
	"sort"
)

// Apply returns a new buffer with every insertion of plan applied. Content
// is never modified. Insertions are applied from the highest offset down,
// so offsets of the ones still pending stay valid.
// An empty plan yields a copy of content and ErrNoChanges.
func Apply(content []byte, plan *Plan) ([]byte, error) {
	if plan.Empty() {
		return append([]byte(nil), content...), ErrNoChanges
	}

	ordered := append([]Insertion(nil), plan.Insertions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Offset > ordered[j].Offset
	})

	grow := 0
	for i, ins := range ordered {
		if int(ins.Offset) > len(content) {
			return nil, fmt.Errorf("rewrite: insertion for %s at offset %d is out of range (%d bytes)", ins.QualName, ins.Offset, len(content))
		}
		if i > 0 && ordered[i-1].Offset == ins.Offset {
			return nil, &ConflictError{Offset: ins.Offset, Line: ins.Line, First: ordered[i-1].QualName, Second: ins.QualName}
		}
		grow += len(ins.Text)
	}

	working := make([]byte, len(content), len(content)+grow)
	copy(working, content)
	for _, ins := range ordered {
		at := int(ins.Offset)
		suffix := append([]byte(nil), working[at:]...)
		working = append(append(working[:at], ins.Text...), suffix...)
	}
	return working, nil
}
