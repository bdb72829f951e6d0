package lexer

import (
	"docweave/internal/diag"
	"docweave/internal/token"
)

// collectInlineTrivia собирает подряд идущие trivia внутри логической строки.
// - ' ', '\t', '\f' коалесцируются в один TriviaSpace
// - #... до конца строки -> TriviaComment (перевод строки не съедаем)
// - '\' + перевод строки -> TriviaContinuation
// - внутри скобок переводы строк -> TriviaNewline
func (lx *Lexer) collectInlineTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\f':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})

		case b == '#':
			lx.scanCommentIntoHold()

		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EatNewline() {
				if lx.cursor.EOF() {
					lx.errLex(diag.LexBadContinuation, lx.cursor.SpanFrom(start), "unexpected end of file after line continuation")
				} else {
					lx.errLex(diag.LexBadContinuation, lx.cursor.SpanFrom(start), "unexpected character after line continuation character")
				}
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaContinuation, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})

		case (b == '\n' || b == '\r') && len(lx.parens) > 0:
			lx.scanNewlineIntoHold()

		default:
			// нет больше trivia
			return
		}
	}
}

func (lx *Lexer) scanCommentIntoHold() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && !lx.cursor.AtNewline() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaComment, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})
}

func (lx *Lexer) scanNewlineIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.EatNewline()
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})
}
