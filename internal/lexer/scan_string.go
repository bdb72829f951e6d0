package lexer

import (
	"docweave/internal/diag"
	"docweave/internal/token"
)

// scanString читает строковый литерал; start указывает на начало префикса,
// курсор стоит на открывающей кавычке.
func (lx *Lexer) scanString(start Mark, flags token.StringFlags) token.Token {
	q, triple := lx.openQuote()
	if triple {
		flags |= token.StrTriple
	}

	closed := lx.scanStringBody(q, triple, flags&token.StrFormat != 0)
	sp := lx.cursor.SpanFrom(start)
	if !closed {
		if triple {
			lx.errLex(diag.LexUnterminatedTriple, sp, "unterminated triple-quoted string literal")
		} else {
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
		}
	}
	return token.Token{
		Kind: token.String,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Str:  flags,
	}
}

// openQuote съедает открывающую кавычку (одну или три).
func (lx *Lexer) openQuote() (q byte, triple bool) {
	q = lx.cursor.Bump()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == q && b1 == q {
		lx.cursor.Off += 2
		return q, true
	}
	return q, false
}

// scanStringBody читает тело до закрывающей кавычки включительно.
// Возвращает false, если строка не закрыта (EOF или перевод строки в
// однострочном литерале); перевод строки при этом не съедается.
func (lx *Lexer) scanStringBody(q byte, triple, format bool) bool {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			// даже в raw-строке бэкслэш "прячет" следующую кавычку
			lx.cursor.Bump()
			if !lx.cursor.EatNewline() {
				lx.cursor.Bump()
			}
		case b == q:
			if !triple {
				lx.cursor.Bump()
				return true
			}
			if lx.try3(q, q, q) {
				return true
			}
			lx.cursor.Bump()
		case b == '\n' || b == '\r':
			if !triple {
				return false
			}
			lx.cursor.EatNewline()
		case format && b == '{':
			lx.cursor.Bump()
			if lx.cursor.Eat('{') {
				continue
			}
			if !lx.scanReplacementField(triple) {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// scanReplacementField читает выражение внутри {...} f-строки, включая
// вложенные строковые литералы и format spec с вложенными полями.
func (lx *Lexer) scanReplacementField(triple bool) bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '{' || b == '(' || b == '[':
			depth++
			lx.cursor.Bump()
		case b == '}' || b == ')' || b == ']':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case b == '"' || b == '\'':
			if !lx.scanNestedString(0) {
				return false
			}
		case isIdentStartByte(b):
			identStart := lx.cursor.Off
			for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			if nq := lx.cursor.Peek(); nq == '"' || nq == '\'' {
				if flags, ok := stringPrefixFlags(string(lx.file.Content[identStart:lx.cursor.Off])); ok {
					if !lx.scanNestedString(flags) {
						return false
					}
				}
			}
		case b == '\n' || b == '\r':
			if !triple {
				return false
			}
			lx.cursor.EatNewline()
		case b == '\\':
			lx.cursor.Bump()
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) scanNestedString(flags token.StringFlags) bool {
	q, triple := lx.openQuote()
	return lx.scanStringBody(q, triple, flags&token.StrFormat != 0)
}
