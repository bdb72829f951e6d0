package parser

import (
	"fmt"

	"docweave/internal/ast"
	"docweave/internal/diag"
	"docweave/internal/token"
)

// parseParams разбирает список параметров после '(' и съедает ')'.
// Разделители '/' и одиночная '*' параметрами не считаются.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	for {
		switch p.peek().Kind {
		case token.RParen:
			p.advance()
			return params, true
		case token.EOF, token.Newline:
			p.err(diag.SynUnexpectedToken, "unterminated parameter list")
			return nil, false
		}

		seg := p.collectSegment()
		param, keep, ok := p.paramFromSegment(seg)
		if !ok {
			return nil, false
		}
		if keep {
			params = append(params, param)
		}
		if p.at(token.Comma) {
			p.advance()
		}
	}
}

// collectSegment собирает токены одного параметра до ',' или ')' на нулевой глубине.
func (p *Parser) collectSegment() []token.Token {
	var seg []token.Token
	depth := 0
	lambdas := 0 // lambda без своего ':' - запятые принадлежат её параметрам
	for !p.atLineEnd() {
		tok := p.peek()
		if depth == 0 && tok.Kind == token.RParen {
			break
		}
		if depth == 0 && tok.Kind == token.Comma && lambdas == 0 {
			break
		}
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		case depth == 0 && tok.Kind == token.KwLambda:
			lambdas++
		case depth == 0 && tok.Kind == token.Colon && lambdas > 0:
			lambdas--
		}
		seg = append(seg, p.advance())
	}
	return seg
}

// paramFromSegment разбирает `[*|**]name[: annotation][= default]`.
// keep == false для разделителей '/' и '*'.
func (p *Parser) paramFromSegment(seg []token.Token) (param ast.Param, keep, ok bool) {
	if len(seg) == 0 {
		p.err(diag.SynBadParameter, "expected a parameter")
		return param, false, false
	}
	first := seg[0]
	rest := seg
	switch first.Kind {
	case token.Slash:
		if len(seg) == 1 {
			return param, false, true
		}
	case token.Star:
		if len(seg) == 1 {
			return param, false, true
		}
		param.Variadic = ast.VariadicArgs
		rest = seg[1:]
	case token.DoubleStar:
		param.Variadic = ast.VariadicKwargs
		rest = seg[1:]
	}

	bad := func(msg string) (ast.Param, bool, bool) {
		p.report(diag.SynBadParameter, diag.SevError, first.Span, msg)
		return param, false, false
	}

	if len(rest) == 0 || rest[0].Kind != token.Name {
		return bad(fmt.Sprintf("invalid parameter starting with '%s'", first.Text))
	}
	param.Name = rest[0].Text
	rest = rest[1:]

	if len(rest) > 0 && rest[0].Kind == token.Colon {
		eq := topLevelIndex(rest, token.Assign)
		ann := rest[1:eq]
		if len(ann) == 0 {
			return bad(fmt.Sprintf("missing annotation for parameter '%s'", param.Name))
		}
		param.Annotation = p.sourceText(ann[0], ann[len(ann)-1])
		rest = rest[eq:]
	}

	if len(rest) > 0 && rest[0].Kind == token.Assign {
		def := rest[1:]
		if len(def) == 0 {
			return bad(fmt.Sprintf("missing default value for parameter '%s'", param.Name))
		}
		if param.Variadic != ast.VariadicNone {
			return bad(fmt.Sprintf("variadic parameter '%s' cannot have a default", param.Name))
		}
		param.Default = p.sourceText(def[0], def[len(def)-1])
		rest = nil
	}

	if len(rest) > 0 {
		return bad(fmt.Sprintf("unexpected '%s' in parameter '%s'", rest[0].Text, param.Name))
	}
	return param, true, true
}

// parseReturnAnnotation читает текст аннотации после '->' до ':' на нулевой глубине.
func (p *Parser) parseReturnAnnotation() (string, bool) {
	var first, last token.Token
	n := 0
	depth := 0
	for !p.atLineEnd() {
		tok := p.peek()
		if depth == 0 && tok.Kind == token.Colon {
			break
		}
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		}
		if n == 0 {
			first = tok
		}
		last = p.advance()
		n++
	}
	if n == 0 {
		p.err(diag.SynUnexpectedToken, "expected a return annotation after '->'")
		return "", false
	}
	return p.sourceText(first, last), true
}

// topLevelIndex ищет первый токен вида k вне скобок; len(toks), если нет.
func topLevelIndex(toks []token.Token, k token.Kind) int {
	depth := 0
	for i, tok := range toks {
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		case depth == 0 && tok.Kind == k:
			return i
		}
	}
	return len(toks)
}
