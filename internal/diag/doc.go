// Package diag defines the diagnostic model shared by the lexer, the
// structural scanner and the documentation generator.
//
// A Diagnostic carries a Severity, a numeric Code (LEX1xxx lexical,
// SYN2xxx structural, DOC3xxx generator notices), a short message and the
// primary source.Span. Producers emit through the Reporter interface; the
// driver collects into a Bag and turns the first error into a ParseError.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
