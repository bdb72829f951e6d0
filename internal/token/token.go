package token

import (
	"docweave/internal/source"
)

// StringFlags describes the prefix and quoting of a String token.
type StringFlags uint8

const (
	StrRaw    StringFlags = 1 << iota // r"..."
	StrBytes                          // b"..."
	StrFormat                         // f"..."
	StrTriple                         // """...""" or '''...'''
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Str     StringFlags // only for Kind == String
	Leading []Trivia
}

// IsKeyword reports whether the token is a hard keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwDef && t.Kind <= KwOther
}

// IsName reports whether the token is an identifier.
func (t Token) IsName() bool { return t.Kind == Name }

// IsDocString reports whether the token is a literal that Python accepts as a
// docstring: a str literal that is neither bytes nor an f-string.
func (t Token) IsDocString() bool {
	return t.Kind == String && t.Str&(StrBytes|StrFormat) == 0
}

// StringBody returns the literal's content without prefix and quotes.
func (t Token) StringBody() string {
	if t.Kind != String {
		return ""
	}
	s := t.Text
	i := 0
	for i < len(s) && s[i] != '"' && s[i] != '\'' {
		i++
	}
	q := 1
	if t.Str&StrTriple != 0 {
		q = 3
	}
	if len(s)-i < 2*q {
		return ""
	}
	return s[i+q : len(s)-q]
}
