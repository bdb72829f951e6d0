package lexer

import (
	"docweave/internal/diag"
	"docweave/internal/token"
)

// scanOperatorOrPunct читает операторы и пунктуацию жадно: 3, потом 2, потом 1 байт.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := lx.matchOperator()
	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}

	switch {
	case kind == token.Invalid:
		lx.errLex(diag.LexUnknownChar, sp, "invalid character '"+tok.Text+"'")
	case kind.IsOpen():
		lx.parens = append(lx.parens, tok)
	case kind.IsClose():
		lx.closeBracket(tok)
	}
	return tok
}

func (lx *Lexer) matchOperator() token.Kind {
	// 3 байта
	switch {
	case lx.try3('.', '.', '.'):
		return token.Ellipsis
	case lx.try3('*', '*', '='), lx.try3('/', '/', '='),
		lx.try3('>', '>', '='), lx.try3('<', '<', '='):
		return token.Op
	}

	// 2 байта
	switch {
	case lx.try2('-', '>'):
		return token.Arrow
	case lx.try2(':', '='):
		return token.Walrus
	case lx.try2('*', '*'):
		return token.DoubleStar
	case lx.try2('/', '/'), lx.try2('=', '='), lx.try2('!', '='),
		lx.try2('<', '='), lx.try2('>', '='), lx.try2('<', '<'), lx.try2('>', '>'):
		return token.Op
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b1 == '=' {
		switch b0 {
		case '+', '-', '*', '/', '%', '&', '|', '^', '@':
			lx.cursor.Off += 2
			return token.Op
		}
	}

	// 1 байт
	b := lx.cursor.Peek()
	if b >= utf8RuneSelf {
		lx.bumpRune()
		return token.Invalid
	}
	lx.cursor.Bump()
	switch b {
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '[':
		return token.LBracket
	case ']':
		return token.RBracket
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	case ':':
		return token.Colon
	case ',':
		return token.Comma
	case ';':
		return token.Semicolon
	case '.':
		return token.Dot
	case '=':
		return token.Assign
	case '*':
		return token.Star
	case '/':
		return token.Slash
	case '@':
		return token.At
	case '+', '-', '%', '&', '|', '^', '~', '<', '>', '!':
		return token.Op
	}
	return token.Invalid
}

func (lx *Lexer) closeBracket(tok token.Token) {
	if len(lx.parens) == 0 {
		lx.errLex(diag.LexUnmatchedBracket, tok.Span, "unmatched '"+tok.Text+"'")
		return
	}
	open := lx.parens[len(lx.parens)-1]
	lx.parens = lx.parens[:len(lx.parens)-1]
	if open.Kind.Closer() != tok.Kind {
		lx.errLex(diag.LexUnmatchedBracket, tok.Span, "closing parenthesis '"+tok.Text+"' does not match opening parenthesis '"+open.Text+"'")
	}
}
