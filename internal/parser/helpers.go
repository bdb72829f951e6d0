package parser

import (
	"strings"

	"docweave/internal/diag"
	"docweave/internal/source"
	"docweave/internal/token"
)

// getDiagnosticSpan - возвращает лучший span для диагностики
// Синтезированные токены пустые, поэтому для них берём позицию после lastSpan.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Span.Empty() && p.lastSpan.End > 0 && peek.Kind.IsStructural() {
		return source.At(p.lastSpan.File, p.lastSpan.End)
	}
	return peek.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter != nil {
		if sev.Fatal() {
			p.opts.CurrentErrors++
		}
		if !p.opts.Enough() {
			p.opts.Reporter.Report(code, sev, sp, msg, nil)
			return true
		}
		return false // достигли максимального количества ошибок
	}
	return false // нет reporter - ничего не записали
}

// line - 1-based номер строки для смещения.
func (p *Parser) line(off uint32) uint32 {
	return p.file.Position(off).Line
}

// indentOf возвращает ведущие пробелы строки, в которой начинается tok.
func (p *Parser) indentOf(tok token.Token) string {
	start := p.file.LineStart(p.line(tok.Span.Start))
	return string(p.file.Content[start:tok.Span.Start])
}

// sourceText возвращает исходный текст между токенами включительно, схлопывая
// переводы строк (и отступы вокруг них) в один пробел.
func (p *Parser) sourceText(first, last token.Token) string {
	if last.Span.End <= first.Span.Start {
		return ""
	}
	raw := string(p.file.Content[first.Span.Start:last.Span.End])
	if !strings.ContainsAny(raw, "\r\n") {
		return raw
	}
	var sb strings.Builder
	for i, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' }) {
		part = strings.TrimRight(part, " \t\\")
		if i > 0 {
			part = strings.TrimLeft(part, " \t")
			if part == "" {
				continue
			}
			sb.WriteByte(' ')
		}
		sb.WriteString(part)
	}
	return sb.String()
}

// skipLine съедает токены до конца логической строки (Newline включительно).
// Возвращает true, если последним значимым токеном был ':', то есть строка
// открывает блок.
func (p *Parser) skipLine() bool {
	colon := false
	for !p.atLineEnd() {
		tok := p.advance()
		colon = tok.Kind == token.Colon
	}
	if p.at(token.Newline) {
		p.advance()
	}
	return colon
}
