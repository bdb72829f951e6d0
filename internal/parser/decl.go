package parser

import (
	"fmt"
	"strings"

	"docweave/internal/ast"
	"docweave/internal/diag"
	"docweave/internal/source"
	"docweave/internal/token"
)

// parseDecorated собирает строки декораторов и передаёт их объявлению.
func (p *Parser) parseDecorated() {
	var decorators []string
	for p.at(token.At) {
		p.advance()
		first := p.peek()
		var last token.Token
		seen := false
		for !p.atLineEnd() {
			last = p.advance()
			seen = true
		}
		if seen {
			decorators = append(decorators, p.sourceText(first, last))
		}
		if p.at(token.Newline) {
			p.advance()
		}
	}
	if p.atOr(token.KwDef, token.KwClass) || (p.at(token.KwAsync) && p.peekAt(1).Kind == token.KwDef) {
		p.parseDef(decorators)
		return
	}
	p.err(diag.SynDecoratorTarget, "decorator must be followed by 'def' or 'class'")
}

// parseDef разбирает заголовок def/async def/class и его тело.
func (p *Parser) parseDef(decorators []string) {
	head := p.peek()
	decl := ast.Declaration{
		Decorators:  decorators,
		Depth:       p.depth,
		HeaderStart: p.line(head.Span.Start),
	}
	if p.at(token.KwAsync) {
		p.advance()
		decl.Async = true
	}
	kw := p.advance()
	isClass := kw.Kind == token.KwClass

	name, ok := p.expect(token.Name, diag.SynExpectName, fmt.Sprintf("expected a name after '%s'", kw.Text))
	if !ok {
		p.recoverHeader()
		return
	}
	decl.Name = name.Text
	decl.Kind, decl.QualName = p.classify(name.Text, isClass)

	// параметры типов: def f[T](...) / class A[T]
	if p.at(token.LBracket) {
		p.skipBalanced()
	}

	if isClass {
		if p.at(token.LParen) {
			p.skipBalanced()
		}
	} else {
		if _, ok := p.expect(token.LParen, diag.SynExpectLParen, fmt.Sprintf("expected '(' after function name '%s'", name.Text)); !ok {
			p.recoverHeader()
			return
		}
		params, ok := p.parseParams()
		if !ok {
			p.recoverHeader()
			return
		}
		decl.Params = params
		if p.at(token.Arrow) {
			p.advance()
			ann, ok := p.parseReturnAnnotation()
			if !ok {
				p.recoverHeader()
				return
			}
			decl.ReturnAnnotation = ann
		}
	}

	colon, ok := p.expect(token.Colon, diag.SynExpectColon, fmt.Sprintf("expected ':' after '%s' header", kw.Text))
	if !ok {
		p.recoverHeader()
		return
	}
	p.parseBody(decl, colon, kw.Text)
}

// classify определяет вид объявления и полное имя по ближайшему открытому объявлению.
func (p *Parser) classify(name string, isClass bool) (ast.DeclKind, string) {
	parent := p.current()
	qual := name
	if parent != nil {
		qual = parent.QualName + "." + name
	}
	switch {
	case isClass:
		return ast.DeclClass, qual
	case parent != nil && parent.Kind == ast.DeclClass:
		return ast.DeclMethod, qual
	default:
		return ast.DeclFunction, qual
	}
}

// parseBody определяет форму тела, ищет docstring и разбирает тело внутри
// области нового объявления.
func (p *Parser) parseBody(decl ast.Declaration, colon token.Token, kw string) {
	if !p.at(token.Newline) {
		// def f(): return 1
		decl.Inline = true
		decl.HeaderEnd = p.line(colon.Span.Start)
		decl.InsertOffset = p.file.LineEnd(decl.HeaderEnd)
		p.markDocumentation(&decl)
		idx := p.appendDecl(decl)
		p.pushFrame(idx)
		p.parseSimpleLine()
		p.popFrame()
		return
	}

	nl := p.advance()
	decl.HeaderEnd = p.line(nl.Span.Start)
	if decl.HeaderEnd < p.line(colon.Span.Start) {
		decl.HeaderEnd = p.line(colon.Span.Start)
	}
	decl.InsertOffset = p.file.LineEnd(decl.HeaderEnd)

	if !p.at(token.Indent) {
		p.err(diag.SynExpectIndentedBlock, fmt.Sprintf("expected an indented block after '%s' statement on line %d", kw, decl.HeaderStart))
		return
	}
	p.advance() // Indent
	decl.BodyIndent = p.indentOf(p.peek())
	p.markDocumentation(&decl)

	idx := p.appendDecl(decl)
	p.pushFrame(idx)
	p.parseBlock()
	p.popFrame()
}

func (p *Parser) appendDecl(decl ast.Declaration) int {
	p.decls = append(p.decls, decl)
	return len(p.decls) - 1
}

func (p *Parser) markDocumentation(decl *ast.Declaration) {
	documented, blank, sp := p.docstringAhead()
	decl.HasDocumentation = documented
	decl.BlankDocumentation = blank
	if blank {
		p.report(diag.DocBlankExisting, diag.SevWarning, sp,
			fmt.Sprintf("'%s' has a blank docstring; leaving it unchanged", decl.QualName))
	}
}

// docstringAhead проверяет, является ли первый оператор тела docstring:
// один или несколько соседних строковых литералов (не bytes и не f-строки),
// возможно в скобках, за которыми сразу идёт конец оператора.
func (p *Parser) docstringAhead() (documented, blank bool, sp source.Span) {
	i := 0
	parens := 0
	for p.peekAt(i).Kind == token.LParen {
		parens++
		i++
	}
	start := i
	blank = true
	for p.peekAt(i).Kind == token.String {
		tok := p.peekAt(i)
		if !tok.IsDocString() {
			return false, false, sp
		}
		if strings.TrimSpace(tok.StringBody()) != "" {
			blank = false
		}
		if i == start {
			sp = tok.Span
		} else {
			sp = sp.Cover(tok.Span)
		}
		i++
	}
	if i == start {
		return false, false, sp
	}
	for ; parens > 0; parens-- {
		if p.peekAt(i).Kind != token.RParen {
			return false, false, sp
		}
		i++
	}
	switch p.peekAt(i).Kind {
	case token.Newline, token.Semicolon, token.EOF:
		return true, blank, sp
	}
	return false, false, sp
}

// skipBalanced съедает скобочную группу, начиная с открывающей скобки.
func (p *Parser) skipBalanced() {
	depth := 0
	for !p.atLineEnd() {
		tok := p.advance()
		switch {
		case tok.Kind.IsOpen():
			depth++
		case tok.Kind.IsClose():
			depth--
		}
		if depth <= 0 {
			return
		}
	}
}
