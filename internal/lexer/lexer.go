package lexer

import (
	"docweave/internal/diag"
	"docweave/internal/source"
	"docweave/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	queue  []token.Token  // синтезированные Indent/Dedent/Newline/EOF

	indents     []uint32      // стек ширин отступов, всегда начинается с 0
	parens      []token.Token // открытые скобки (implicit line joining)
	atLineStart bool
	lineHasCode bool // в текущей логической строке уже был значимый токен
	done        bool // EOF поставлен в очередь
	errors      int
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		atLineStart: true,
	}
	if n := source.BOMLen(file.Content); n > 0 {
		start := lx.cursor.Mark()
		lx.cursor.Off += n
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaBOM, Span: sp, Text: string(file.Content[sp.Start:sp.End])})
	}
	return lx
}

// Next возвращает следующий токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look - вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) синтезированные токены идут первыми
	if tok, ok := lx.dequeue(); ok {
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	// 3) начало логической строки: пустые строки, комментарии, отступ
	if lx.atLineStart && len(lx.parens) == 0 {
		lx.handleLineStart()
		if tok, ok := lx.dequeue(); ok {
			return tok
		}
	}

	// 4) пробелы, комментарии, продолжения строки (и переводы строк внутри скобок)
	lx.collectInlineTrivia()

	if lx.cursor.EOF() {
		lx.finish()
		tok, _ := lx.dequeue()
		return tok
	}

	// 5) конец логической строки
	if lx.cursor.AtNewline() {
		start := lx.cursor.Mark()
		lx.cursor.EatNewline()
		sp := lx.cursor.SpanFrom(start)
		lx.atLineStart = true
		lx.lineHasCode = false
		tok := token.Token{Kind: token.Newline, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End]), Leading: lx.takeHold()}
		return tok
	}

	// 6) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentKeywordOrString()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(lx.cursor.Mark(), 0)
	default:
		tok = lx.scanOperatorOrPunct()
	}
	lx.lineHasCode = true

	// 7) В полученный token.Token положить Leading: lx.hold, обнулить hold
	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// ErrorCount returns the number of lexical errors reported so far.
func (lx *Lexer) ErrorCount() int {
	return lx.errors
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan returns an empty span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.At(lx.file.ID, lx.cursor.Off)
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) enqueue(kind token.Kind, sp source.Span) {
	lx.queue = append(lx.queue, token.Token{Kind: kind, Span: sp})
}

func (lx *Lexer) dequeue() (token.Token, bool) {
	if len(lx.queue) == 0 {
		return token.Token{}, false
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok, true
}

// finish закрывает файл: незакрытые скобки, последний Newline, все Dedent и EOF.
func (lx *Lexer) finish() {
	for _, open := range lx.parens {
		lx.errLex(diag.LexUnclosedBracket, open.Span, "'"+open.Text+"' was never closed")
	}
	lx.parens = nil
	eof := lx.EmptySpan()
	if lx.lineHasCode {
		lx.enqueue(token.Newline, eof)
		lx.lineHasCode = false
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.enqueue(token.Dedent, eof)
	}
	lx.enqueue(token.EOF, eof)
	lx.done = true
}
