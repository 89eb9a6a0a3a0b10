package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline separates expressions; consecutive newlines form one token.
	Newline

	// Ident represents an identifier token.
	Ident
	// IntLit represents a decimal integer literal.
	IntLit

	Arrow     // ->
	Colon     // :
	Semicolon // ;
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Caret     // ^
	Dot       // .
	Comma     // ,
	Assign    // =
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Newline:   "Newline",
	Ident:     "Ident",
	IntLit:    "IntLit",
	Arrow:     "Arrow",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Caret:     "Caret",
	Dot:       "Dot",
	Comma:     "Comma",
	Assign:    "Assign",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spelling returns the fixed source text of punctuation kinds, or "" for
// kinds whose text varies.
func (k Kind) Spelling() string {
	switch k {
	case Arrow:
		return "->"
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Caret:
		return "^"
	case Dot:
		return "."
	case Comma:
		return ","
	case Assign:
		return "="
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	}
	return ""
}
