package storekey

import "fmt"

// Kind identifies one of the logical types storekey knows how to encode and
// decode. A Kind alone is not always enough to decode a value — option,
// tuple, sequence, and union values additionally carry element/field/variant
// information, captured by Type.
type Kind uint8

// The kinds supported by the codec, as described in the data model: booleans,
// unsigned and signed integers of every width, IEEE binary floats, Unicode
// scalar values, strings, byte sequences, and the four composite shapes
// (option, tuple, sequence, union).
const (
	KindBool Kind = iota
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint128
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindBytes
	KindOption
	KindTuple
	KindSeq
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindUint128:
		return "uint128"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindInt128:
		return "int128"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindOption:
		return "option"
	case KindTuple:
		return "tuple"
	case KindSeq:
		return "seq"
	case KindUnion:
		return "union"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// FixedWidth returns the number of bytes a value of this kind always
// occupies on the wire, and true, for kinds whose encoding has a constant
// width. It returns (0, false) for kinds whose encoded length depends on the
// value (char, string, bytes, seq) or on the schema (tuple, option, union).
func (k Kind) FixedWidth() (int, bool) {
	switch k {
	case KindBool, KindUint8, KindInt8:
		return 1, true
	case KindUint16, KindInt16:
		return 2, true
	case KindUint32, KindInt32, KindFloat32:
		return 4, true
	case KindUint64, KindInt64, KindFloat64:
		return 8, true
	case KindUint128, KindInt128:
		return 16, true
	default:
		return 0, false
	}
}
