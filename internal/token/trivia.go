package token

import "docweave/internal/source"

// TriviaKind classifies source text that carries no tokens.
type TriviaKind uint8

const (
	TriviaSpace        TriviaKind = iota
	TriviaNewline                 // newline that does not end a logical line
	TriviaComment                 // # ...
	TriviaContinuation            // backslash + newline
	TriviaBOM
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaComment:
		return "Comment"
	case TriviaContinuation:
		return "Continuation"
	case TriviaBOM:
		return "BOM"
	}
	return "Trivia(?)"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
