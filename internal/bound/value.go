package bound

import (
	"fmt"

	"nkl/internal/types"
)

// ValueKind enumerates compile-time value shapes.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueType
	ValueProcedure
	ValueInt
)

// Value is a compile-time value.
type Value struct {
	Kind      ValueKind
	Type      types.TypeID // ValueType
	Procedure NodeID       // ValueProcedure
	Int       uint64       // ValueInt
}

func TypeValue(id types.TypeID) Value {
	return Value{Kind: ValueType, Type: id}
}

func ProcedureValue(id NodeID) Value {
	return Value{Kind: ValueProcedure, Procedure: id}
}

func IntValue(v uint64) Value {
	return Value{Kind: ValueInt, Int: v}
}

func (v Value) String() string {
	switch v.Kind {
	case ValueType:
		return "type " + v.Type.String()
	case ValueProcedure:
		return "procedure " + v.Procedure.String()
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	}
	return "<invalid>"
}
