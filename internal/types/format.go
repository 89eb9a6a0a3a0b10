package types

import "strings"

// Format renders a type the way it is written in source.
func (in *Interner) Format(id TypeID) string {
	var sb strings.Builder
	in.format(&sb, id)
	return sb.String()
}

func (in *Interner) format(sb *strings.Builder, id TypeID) {
	if !id.IsValid() {
		sb.WriteString("<none>")
		return
	}
	t := in.Lookup(id)
	switch t.Kind {
	case KindSlice:
		sb.WriteString("[]")
		in.format(sb, t.Elem)
	case KindPointer:
		sb.WriteString("^")
		in.format(sb, t.Elem)
	case KindMultipointer:
		sb.WriteString("[^]")
		in.format(sb, t.Elem)
	case KindProcedure:
		sb.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			in.format(sb, p)
		}
		sb.WriteString(") -> ")
		in.format(sb, t.Result)
	default:
		sb.WriteString(t.Kind.String())
	}
}

// Size returns the storage size in bytes of a value of the type on the
// 64-bit target.
func (in *Interner) Size(id TypeID) uint64 {
	switch in.Kind(id) {
	case KindVoid:
		return 0
	case KindU8:
		return 1
	case KindSlice:
		return 16 // data + length
	case KindType, KindInt, KindUint, KindPointer, KindMultipointer, KindProcedure:
		return 8
	}
	return 0
}
