package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline ends a logical line.
	Newline
	// Indent opens an indented block.
	Indent
	// Dedent closes an indented block.
	Dedent

	// Name is an identifier that is not a keyword.
	Name
	// Number is any numeric literal (int, float, imaginary).
	Number
	// String is any string or bytes literal, including f-strings.
	String

	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwAsync represents the 'async' keyword.
	KwAsync // async
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwRaise represents the 'raise' keyword.
	KwRaise // raise
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwLambda represents the 'lambda' keyword.
	KwLambda // lambda
	// KwNone represents the 'None' keyword.
	KwNone // None
	// KwTrue represents the 'True' keyword.
	KwTrue // True
	// KwFalse represents the 'False' keyword.
	KwFalse // False
	KwPass
	KwAwait
	KwYield
	KwOther // any remaining hard keyword (if, for, import, ...)

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Colon    // :
	Comma    // ,
	Semicolon
	Dot        // .
	Ellipsis   // ...
	Arrow      // ->
	Assign     // =
	Walrus     // :=
	Star       // *
	DoubleStar // **
	Slash      // /
	At         // @
	// Op is any other operator or augmented assignment.
	Op
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Newline:    "Newline",
	Indent:     "Indent",
	Dedent:     "Dedent",
	Name:       "Name",
	Number:     "Number",
	String:     "String",
	KwDef:      "def",
	KwClass:    "class",
	KwAsync:    "async",
	KwReturn:   "return",
	KwRaise:    "raise",
	KwFrom:     "from",
	KwLambda:   "lambda",
	KwNone:     "None",
	KwTrue:     "True",
	KwFalse:    "False",
	KwPass:     "pass",
	KwAwait:    "await",
	KwYield:    "yield",
	KwOther:    "keyword",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
	Colon:      ":",
	Comma:      ",",
	Semicolon:  ";",
	Dot:        ".",
	Ellipsis:   "...",
	Arrow:      "->",
	Assign:     "=",
	Walrus:     ":=",
	Star:       "*",
	DoubleStar: "**",
	Slash:      "/",
	At:         "@",
	Op:         "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOpen reports whether k opens a bracket pair.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBracket || k == LBrace
}

// IsClose reports whether k closes a bracket pair.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBracket || k == RBrace
}

// Closer returns the closing kind for an opening bracket.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	}
	return Invalid
}

// IsStructural reports whether k is synthesized from line structure.
func (k Kind) IsStructural() bool {
	return k == Newline || k == Indent || k == Dedent || k == EOF
}
