package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedTriple Code = 1003
	LexUnmatchedBracket   Code = 1004
	LexUnclosedBracket    Code = 1005
	LexBadDedent          Code = 1006
	LexBadContinuation    Code = 1007

	// Структурные (заголовки объявлений и блоки)
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnexpectedIndent    Code = 2002
	SynExpectIndentedBlock Code = 2003
	SynExpectName          Code = 2004
	SynExpectLParen        Code = 2005
	SynExpectColon         Code = 2006
	SynBadParameter        Code = 2007
	SynDecoratorTarget     Code = 2008

	// Генерация документации
	DocInfo          Code = 3000
	DocBlankExisting Code = 3001
	DocInlineBody    Code = 3002
	DocSkipped       Code = 3003
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string literal",
	LexUnterminatedTriple:  "Unterminated triple-quoted string",
	LexUnmatchedBracket:    "Unmatched closing bracket",
	LexUnclosedBracket:     "Unclosed bracket",
	LexBadDedent:           "Unindent does not match any outer indentation level",
	LexBadContinuation:     "Unexpected character after line continuation",
	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynUnexpectedIndent:    "Unexpected indent",
	SynExpectIndentedBlock: "Expected an indented block",
	SynExpectName:          "Expected a name",
	SynExpectLParen:        "Expected '('",
	SynExpectColon:         "Expected ':'",
	SynBadParameter:        "Invalid parameter",
	SynDecoratorTarget:     "Decorator must precede a def or class",
	DocInfo:                "Documentation information",
	DocBlankExisting:       "Existing docstring is blank",
	DocInlineBody:          "Body on the header line cannot receive a docstring",
	DocSkipped:             "Declaration skipped by options",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DOC%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
