// Package token defines lexical token kinds and trivia for Python source.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Newline, Indent and Dedent are synthesized by the lexer from line
//     structure; Indent/Dedent have empty spans at the first token of a line.
//   - Comments, blank lines, line continuations and newlines inside brackets
//     are trivia and never appear in the main token stream.
//   - Soft keywords (match, case, type) are plain names.
package token
