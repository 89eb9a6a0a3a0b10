// Package diag defines the diagnostic model shared by the lexer, the parser,
// the binder and the driver.
//
// A Diagnostic carries a Severity, a stable numeric Code, a short message,
// the primary source.Span and optional Notes pointing at related spans.
// Producers emit through a Reporter so they stay decoupled from storage;
// BagReporter collects into a Bag which can be sorted and deduplicated.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt.
package diag
