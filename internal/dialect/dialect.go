package dialect

import "fmt"

// Kind represents a foreign language "dialect" a name may come from.
type Kind uint8

const (
	Unknown Kind = iota
	Rust
	Go
	TypeScript
	Python
	C
)

func (k Kind) String() string {
	switch k {
	case Rust:
		return "rust"
	case Go:
		return "go"
	case TypeScript:
		return "typescript"
	case Python:
		return "python"
	case C:
		return "c"
	default:
		return "unknown"
	}
}

func (k Kind) GoString() string {
	return fmt.Sprintf("dialect.Kind(%s)", k.String())
}

// Construct is what the foreign keyword introduces.
type Construct uint8

const (
	ConstructProcedure Construct = iota
	ConstructVariable
	ConstructConstant
	ConstructReturn
	ConstructType
)

var constructAdvice = [...]string{
	ConstructProcedure: "procedures are constants: `name :: (x: int) -> int { x }`",
	ConstructVariable:  "declare variables with `name := value` or `name : type = value`",
	ConstructConstant:  "declare constants with `name :: value` or `name : type : value`",
	ConstructReturn:    "a block evaluates to its last expression",
	ConstructType:      "types are constants too: `Bytes :: []u8`",
}

// Hint describes a name that is a keyword elsewhere.
type Hint struct {
	Keyword   string
	Dialect   Kind
	Construct Construct
}

// Note renders the hint as a diagnostic note.
func (h Hint) Note() string {
	return fmt.Sprintf("`%s` is a %s keyword, but nkl has no keywords; %s", h.Keyword, h.Dialect, constructAdvice[h.Construct])
}
