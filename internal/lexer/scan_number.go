package lexer

import "docweave/internal/token"

// scanNumber читает числовой литерал целиком: целые, float, hex/oct/bin,
// подчёркивания, экспоненту со знаком и мнимый суффикс j. Проверка
// формы числа не нужна, значение литерала нигде не используется.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	radix := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 | 0x20 {
		case 'x', 'o', 'b':
			radix = true
			lx.cursor.Off += 2
		}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) || b == '.':
			lx.cursor.Bump()
			if !radix && (b == 'e' || b == 'E') {
				if s := lx.cursor.Peek(); s == '+' || s == '-' {
					lx.cursor.Bump()
				}
			}
		default:
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
