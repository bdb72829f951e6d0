// Package docgen synthesizes docstring skeletons for declarations that
// lack one and renders them in Google, NumPy or Sphinx layout.
package docgen
