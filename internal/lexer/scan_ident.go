package lexer

import (
	"docweave/internal/diag"
	"docweave/internal/token"
)

// scanIdentKeywordOrString читает идентификатор; если сразу за ним кавычка и
// идентификатор является строковым префиксом, читает строковый литерал.
func (lx *Lexer) scanIdentKeywordOrString() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "invalid character in identifier")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	lx.bumpRune()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])

	if q := lx.cursor.Peek(); q == '"' || q == '\'' {
		if flags, ok := stringPrefixFlags(text); ok {
			return lx.scanString(start, flags)
		}
	}

	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Name, Span: sp, Text: text}
}
