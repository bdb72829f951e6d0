package lexer

import (
	"docweave/internal/diag"
	"docweave/internal/token"
)

const tabSize = 8

// handleLineStart поглощает пустые строки и строки-комментарии, затем меряет
// отступ первой строки с кодом и ставит в очередь Indent/Dedent.
func (lx *Lexer) handleLineStart() {
	for {
		start := lx.cursor.Mark()
		width := uint32(0)
		for {
			switch lx.cursor.Peek() {
			case ' ':
				width++
			case '\t':
				width = (width/tabSize + 1) * tabSize
			case '\f':
				width = 0
			default:
				goto measured
			}
			lx.cursor.Bump()
		}
	measured:
		if lx.cursor.Off > uint32(start) {
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})
		}

		if lx.cursor.EOF() {
			// хвост файла: отступ не важен, finish() закроет блоки
			return
		}
		if lx.cursor.Peek() == '#' {
			lx.scanCommentIntoHold()
		}
		if lx.cursor.AtNewline() {
			lx.scanNewlineIntoHold()
			continue
		}
		if lx.cursor.EOF() {
			return
		}

		lx.atLineStart = false
		lx.applyIndent(width)
		return
	}
}

func (lx *Lexer) applyIndent(width uint32) {
	here := lx.EmptySpan()
	top := lx.indents[len(lx.indents)-1]
	switch {
	case width > top:
		lx.indents = append(lx.indents, width)
		lx.enqueue(token.Indent, here)
	case width < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.enqueue(token.Dedent, here)
		}
		if lx.indents[len(lx.indents)-1] != width {
			lx.errLex(diag.LexBadDedent, here, "unindent does not match any outer indentation level")
			// считаем строку принадлежащей ближайшему внешнему уровню
		}
	}
}
