package dialect

import "strings"

var keywords = map[string]Hint{
	// Rust-ish
	"fn":     {Dialect: Rust, Construct: ConstructProcedure},
	"let":    {Dialect: Rust, Construct: ConstructVariable},
	"mut":    {Dialect: Rust, Construct: ConstructVariable},
	"static": {Dialect: Rust, Construct: ConstructConstant},
	"impl":   {Dialect: Rust, Construct: ConstructType},
	"trait":  {Dialect: Rust, Construct: ConstructType},
	"enum":   {Dialect: Rust, Construct: ConstructType},
	"struct": {Dialect: Rust, Construct: ConstructType},

	// Go-ish
	"func":   {Dialect: Go, Construct: ConstructProcedure},
	"var":    {Dialect: Go, Construct: ConstructVariable},
	"const":  {Dialect: Go, Construct: ConstructConstant},
	"return": {Dialect: Go, Construct: ConstructReturn},

	// TypeScript-ish
	"function":  {Dialect: TypeScript, Construct: ConstructProcedure},
	"interface": {Dialect: TypeScript, Construct: ConstructType},

	// Python-ish
	"def":    {Dialect: Python, Construct: ConstructProcedure},
	"lambda": {Dialect: Python, Construct: ConstructProcedure},

	// C-ish
	"typedef": {Dialect: C, Construct: ConstructType},
	"auto":    {Dialect: C, Construct: ConstructVariable},
}

// Lookup reports whether name is a foreign keyword. It tries an exact
// match, then a lowercased one for spellings like "Fn".
func Lookup(name string) (Hint, bool) {
	if name == "" {
		return Hint{}, false
	}
	h, ok := keywords[name]
	if !ok {
		h, ok = keywords[strings.ToLower(name)]
	}
	if !ok {
		return Hint{}, false
	}
	h.Keyword = name
	return h, true
}
