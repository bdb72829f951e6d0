package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffLine is one line of a line-level diff.
type diffLine struct {
	op   diffmatchpatch.Operation
	text string // с терминатором, если он был
}

// lineDiff diffs oldText against newText line by line.
func lineDiff(oldText, newText string) []diffLine {
	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(rOld, rNew, false))

	var out []diffLine
	for _, d := range diffs {
		for _, r := range d.Text {
			idx := int(r)
			if idx >= 0 && idx < len(lineArray) {
				out = append(out, diffLine{op: d.Type, text: lineArray[idx]})
			}
		}
	}
	return out
}

// hunk is a contiguous slice [from, to) of diff lines with both starting line numbers.
type hunk struct {
	from, to           int
	oldStart, newStart int
	oldLen, newLen     int
}

func buildHunks(lines []diffLine, ctx int) []hunk {
	// номера строк до каждой позиции
	oldNo := make([]int, len(lines)+1)
	newNo := make([]int, len(lines)+1)
	for i, l := range lines {
		oldNo[i+1], newNo[i+1] = oldNo[i], newNo[i]
		if l.op != diffmatchpatch.DiffInsert {
			oldNo[i+1]++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newNo[i+1]++
		}
	}

	var hunks []hunk
	for i := 0; i < len(lines); i++ {
		if lines[i].op == diffmatchpatch.DiffEqual {
			continue
		}
		from := max(i-ctx, 0)
		// расширяем, пока следующее изменение ближе 2*ctx
		end := i
		for j := i; j < len(lines); j++ {
			if lines[j].op != diffmatchpatch.DiffEqual {
				end = j
				continue
			}
			if j-end > 2*ctx {
				break
			}
		}
		to := min(end+ctx+1, len(lines))
		if n := len(hunks); n > 0 && hunks[n-1].to >= from {
			hunks[n-1].to = to
		} else {
			hunks = append(hunks, hunk{from: from, to: to})
		}
		i = end
	}
	for k := range hunks {
		h := &hunks[k]
		h.oldStart, h.newStart = oldNo[h.from]+1, newNo[h.from]+1
		h.oldLen, h.newLen = oldNo[h.to]-oldNo[h.from], newNo[h.to]-newNo[h.from]
	}
	return hunks
}

// Diff writes a unified diff of the rewrite of path and reports whether the
// texts differ.
func Diff(w io.Writer, oldText, newText []byte, path string, opts Options) (bool, error) {
	if string(oldText) == string(newText) {
		return false, nil
	}
	lines := lineDiff(string(oldText), string(newText))
	hunks := buildHunks(lines, opts.context())

	name := opts.formatPath(path)
	bold := opts.paint(colorPath...)
	cyan := opts.paint(colorInfo...)
	red := opts.paint(colorError[0])
	green := opts.paint(colorAdd)

	var sb strings.Builder
	sb.WriteString(bold.Sprintf("--- a/%s", name) + "\n")
	sb.WriteString(bold.Sprintf("+++ b/%s", name) + "\n")
	for _, h := range hunks {
		sb.WriteString(cyan.Sprintf("@@ -%s +%s @@", hunkRange(h.oldStart, h.oldLen), hunkRange(h.newStart, h.newLen)) + "\n")
		for _, l := range lines[h.from:h.to] {
			text, missingNL := strings.TrimSuffix(l.text, "\n"), !strings.HasSuffix(l.text, "\n")
			text = strings.TrimSuffix(text, "\r")
			switch l.op {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(red.Sprint("-"+text) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(green.Sprint("+"+text) + "\n")
			default:
				sb.WriteString(" " + text + "\n")
			}
			if missingNL {
				sb.WriteString("\\ No newline at end of file\n")
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return true, err
}

func hunkRange(start, n int) string {
	if n == 0 {
		// пустой диапазон указывает на строку перед вставкой
		return fmt.Sprintf("%d,0", start-1)
	}
	if n == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, n)
}
