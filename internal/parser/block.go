package parser

import (
	"docweave/internal/diag"
	"docweave/internal/token"
)

// parseStatements разбирает последовательность операторов одного блока.
// inBlock - блок открыт Indent и закрывается парным Dedent.
func (p *Parser) parseStatements(inBlock bool) {
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.Dedent:
			p.advance()
			if inBlock {
				return
			}
		case token.Indent:
			p.err(diag.SynUnexpectedIndent, "unexpected indent")
			p.advance()
			p.parseBlock()
		case token.Newline:
			p.advance()
		default:
			p.parseStatement()
		}
	}
}

// parseBlock разбирает тело после Indent на уровень глубже.
func (p *Parser) parseBlock() {
	p.depth++
	p.parseStatements(true)
	p.depth--
}

func (p *Parser) parseStatement() {
	switch p.peek().Kind {
	case token.At:
		p.parseDecorated()
	case token.KwDef, token.KwClass:
		p.parseDef(nil)
	case token.KwAsync:
		if p.peekAt(1).Kind == token.KwDef {
			p.parseDef(nil)
			return
		}
		p.parseSimpleLine()
	default:
		p.parseSimpleLine()
	}
}

// parseSimpleLine проходит одну логическую строку: простые операторы через
// ';' или заголовок составного оператора (if/for/while/try/with/...).
// return и raise на нулевой глубине скобок приписываются текущему объявлению.
func (p *Parser) parseSimpleLine() {
	depth := 0
	colon := false
	for !p.atLineEnd() {
		tok := p.peek()
		if depth == 0 {
			switch tok.Kind {
			case token.KwReturn:
				p.parseReturn()
				colon = false
				continue
			case token.KwRaise:
				p.parseRaise()
				colon = false
				continue
			}
		}
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose() && depth > 0:
			depth--
		}
		colon = depth == 0 && tok.Kind == token.Colon
		p.advance()
	}
	if !p.at(token.Newline) {
		return
	}
	p.advance()
	if !colon {
		return
	}
	if !p.at(token.Indent) {
		p.err(diag.SynExpectIndentedBlock, "expected an indented block")
		return
	}
	p.advance()
	p.parseBlock()
}

// skipStatement съедает токены до ';' или конца строки на нулевой глубине.
func (p *Parser) skipStatement() {
	depth := 0
	for !p.atLineEnd() {
		tok := p.peek()
		if depth == 0 && tok.Kind == token.Semicolon {
			return
		}
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose() && depth > 0:
			depth--
		}
		p.advance()
	}
}

// parseReturn отмечает объявление, если return возвращает что-то кроме None.
// Скобки вокруг None тоже тривиальны: `return (None)`.
func (p *Parser) parseReturn() {
	p.advance() // return
	var kinds []token.Kind
	depth := 0
	for !p.atLineEnd() {
		tok := p.peek()
		if depth == 0 && tok.Kind == token.Semicolon {
			break
		}
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose() && depth > 0:
			depth--
		}
		kinds = append(kinds, tok.Kind)
		p.advance()
	}
	if trivialReturn(kinds) {
		return
	}
	if d := p.current(); d != nil {
		d.Returns = true
	}
}

// trivialReturn: пусто, None или None в любом числе парных круглых скобок.
// `()` - пустой кортеж, это значение.
func trivialReturn(kinds []token.Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for len(kinds) >= 3 && kinds[0] == token.LParen && kinds[len(kinds)-1] == token.RParen {
		kinds = kinds[1 : len(kinds)-1]
	}
	return len(kinds) == 1 && kinds[0] == token.KwNone
}

// parseRaise записывает имя исключения из `raise Name[.Name]*[(...)] [from ...]`.
// Голый raise (повторный выброс) игнорируется.
func (p *Parser) parseRaise() {
	p.advance() // raise
	if !p.at(token.Name) {
		p.skipStatement()
		return
	}
	name := p.advance().Text
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Name {
		p.advance()
		name += "." + p.advance().Text
	}
	switch p.peek().Kind {
	case token.Newline, token.EOF, token.Semicolon, token.LParen, token.KwFrom:
		if d := p.current(); d != nil {
			d.AddRaise(name)
		}
	}
	p.skipStatement()
}

// recoverHeader пропускает сломанный заголовок вместе с его блоком, чтобы
// не порождать каскад ошибок об отступах.
func (p *Parser) recoverHeader() {
	p.skipLine()
	if p.at(token.Indent) {
		p.advance()
		p.parseBlock()
	}
}
