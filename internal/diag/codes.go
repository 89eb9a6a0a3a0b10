package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectToken       Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectDeclaration Code = 2004
	SynUnexpectedEOF     Code = 2005

	// Семантические
	SemaInfo                       Code = 3000
	SemaOnlyConstantsInGlobalScope Code = 3001
	SemaUndefinedName              Code = 3002
	SemaNotConstant                Code = 3003
	SemaNotAType                   Code = 3004
	SemaTypeMismatch               Code = 3005
	SemaReturnTypeMismatch         Code = 3006
	SemaArgumentTypeMismatch       Code = 3007
	SemaUnsupportedConversion      Code = 3008
	SemaArityMismatch              Code = 3009
	SemaDefaultParameterValue      Code = 3010
	SemaUnknownMember              Code = 3011
	SemaNoMembers                  Code = 3012
	SemaNotCallable                Code = 3013
	SemaMissingType                Code = 3014
	SemaIntegerOverflow            Code = 3015
	SemaMissingMain                Code = 3016
	SemaBadMainSignature           Code = 3017
	SemaUnimplemented              Code = 3099

	// I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:    "Unknown error",
	LexInfo:        "Lexical information",
	LexUnknownChar: "Unknown character",
	LexBadNumber:   "Malformed number literal",

	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynExpectToken:       "Expected token",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectDeclaration: "Expected declaration",
	SynUnexpectedEOF:     "Unexpected end of file",

	SemaInfo:                       "Semantic information",
	SemaOnlyConstantsInGlobalScope: "Only constants are allowed in the global scope",
	SemaUndefinedName:              "Undefined name",
	SemaNotConstant:                "Expression is not a compile-time constant",
	SemaNotAType:                   "Expression is not a type",
	SemaTypeMismatch:               "Type mismatch",
	SemaReturnTypeMismatch:         "Body type does not match return type",
	SemaArgumentTypeMismatch:       "Argument type mismatch",
	SemaUnsupportedConversion:      "Unsupported conversion",
	SemaArityMismatch:              "Wrong number of arguments",
	SemaDefaultParameterValue:      "Default parameter values are not supported",
	SemaUnknownMember:              "Unknown member",
	SemaNoMembers:                  "Type has no members",
	SemaNotCallable:                "Expression is not callable",
	SemaMissingType:                "Declaration needs a type or a value",
	SemaIntegerOverflow:            "Integer literal out of range",
	SemaMissingMain:                "Missing main procedure",
	SemaBadMainSignature:           "Wrong main procedure signature",
	SemaUnimplemented:              "Language feature not implemented yet",

	IOLoadFileError: "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
