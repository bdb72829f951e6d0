// Package rewrite turns scanned declarations into an insertion plan and
// applies it to the original bytes in one pass.
package rewrite
