package parser

import (
	"slices"

	"docweave/internal/token"
)

// peek возвращает текущий токен, не потребляя его.
func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

// peekAt смотрит на i токенов вперёд.
func (p *Parser) peekAt(i int) token.Token {
	for len(p.buf) <= i {
		tok := p.lx.Next()
		p.buf = append(p.buf, tok)
		if tok.Kind == token.EOF {
			// дальше EOF ничего нет, дублируем его
			for len(p.buf) <= i {
				p.buf = append(p.buf, tok)
			}
		}
	}
	return p.buf[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.buf = p.buf[1:]
	if tok.Kind != token.Invalid && !tok.Span.Empty() {
		p.lastSpan = tok.Span
	}
	return tok
}

// atLineEnd - конец простого оператора.
func (p *Parser) atLineEnd() bool {
	return p.atOr(token.Newline, token.EOF)
}
