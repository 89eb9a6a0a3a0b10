// Package binder resolves names and types in a parsed file and lowers it
// into bound nodes.
//
// Binding is single-pass and sequential: a name is visible only after the
// binding that introduces it, and the first error aborts the file.
package binder
