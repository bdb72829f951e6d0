// Package ast holds the flat declaration model produced by the structural
// scanner: one Declaration per def/class header, in lexical order.
package ast
