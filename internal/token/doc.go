// Package token defines lexical token kinds and trivia for the nkl compiler.
// Invariants:
//   - Token.Span covers the source bytes of the token exactly.
//   - Token.Text is the identifier text after NFC normalisation; for every
//     other kind it equals the source slice.
//   - The language has no keywords. Builtin type names (type, void, int,
//     uint, u8) are identifiers and are resolved by the binder.
//   - Newlines are tokens because they separate expressions; spaces and
//     comments are leading Trivia.
package token
