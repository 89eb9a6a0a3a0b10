// Package dialect recognises keywords of other languages that show up as
// plain names in nkl sources. nkl has no keywords, so `fn` or `return`
// parse as names and then fail to resolve; the binder attaches the hint
// from Lookup to that error.
package dialect
