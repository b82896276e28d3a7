package storekey

import "golang.org/x/exp/slices"

// Variant describes one arm of a Union type: a name (used for error messages
// and by VariantIndex, never encoded) and the ordered fields carried by that
// arm.
type Variant struct {
	Name   string
	Fields []Type
}

// Type describes the schema of a value: which Kind it is, and, for the
// composite kinds, enough additional information to encode and decode it
// without the wire format itself carrying any self-describing tags.
//
// Type is a value type and is safe to share; construct one with Bool(),
// Uint32(), Tuple(...), and the other constructor functions below rather
// than composing the struct literal directly.
type Type struct {
	kind     Kind
	elem     *Type
	fields   []Type
	variants []Variant
	tagWidth int
}

// Kind returns the Kind this Type describes.
func (t Type) Kind() Kind { return t.kind }

// Elem returns the element type of an Option or Seq type. It panics if t is
// not an Option or Seq.
func (t Type) Elem() Type {
	if t.kind != KindOption && t.kind != KindSeq {
		panic("storekey: Elem called on non-option, non-seq Type " + t.kind.String())
	}
	return *t.elem
}

// Fields returns the field types of a Tuple type. It panics if t is not a
// Tuple.
func (t Type) Fields() []Type {
	if t.kind != KindTuple {
		panic("storekey: Fields called on non-tuple Type " + t.kind.String())
	}
	return t.fields
}

// Variants returns the variant list of a Union type. It panics if t is not a
// Union.
func (t Type) Variants() []Variant {
	if t.kind != KindUnion {
		panic("storekey: Variants called on non-union Type " + t.kind.String())
	}
	return t.variants
}

// TagWidth returns the number of bytes a Union type's tag occupies on the
// wire. It panics if t is not a Union.
func (t Type) TagWidth() int {
	if t.kind != KindUnion {
		panic("storekey: TagWidth called on non-union Type " + t.kind.String())
	}
	return t.tagWidth
}

// VariantIndex returns the tag of the Union variant named name, for callers
// that want to construct a Union value by name instead of by numeric tag.
// It panics if t is not a Union or has no variant with that name.
func VariantIndex(t Type, name string) uint32 {
	i := slices.IndexFunc(t.Variants(), func(v Variant) bool { return v.Name == name })
	if i < 0 {
		panic("storekey: no variant named " + name)
	}
	return uint32(i)
}

func simple(k Kind) Type { return Type{kind: k} }

// Bool describes a boolean value.
func Bool() Type { return simple(KindBool) }

// Uint8 describes an unsigned 8-bit integer.
func Uint8() Type { return simple(KindUint8) }

// Uint16 describes an unsigned 16-bit integer.
func Uint16() Type { return simple(KindUint16) }

// Uint32 describes an unsigned 32-bit integer.
func Uint32() Type { return simple(KindUint32) }

// Uint64 describes an unsigned 64-bit integer.
func Uint64() Type { return simple(KindUint64) }

// Uint128 describes an unsigned 128-bit integer.
func Uint128() Type { return simple(KindUint128) }

// Int8 describes a signed 8-bit integer.
func Int8() Type { return simple(KindInt8) }

// Int16 describes a signed 16-bit integer.
func Int16() Type { return simple(KindInt16) }

// Int32 describes a signed 32-bit integer.
func Int32() Type { return simple(KindInt32) }

// Int64 describes a signed 64-bit integer.
func Int64() Type { return simple(KindInt64) }

// Int128 describes a signed 128-bit integer.
func Int128() Type { return simple(KindInt128) }

// Float32 describes an IEEE 754 single-precision float.
func Float32() Type { return simple(KindFloat32) }

// Float64 describes an IEEE 754 double-precision float.
func Float64() Type { return simple(KindFloat64) }

// Char describes a single Unicode scalar value.
func Char() Type { return simple(KindChar) }

// String describes a UTF-8 string of arbitrary length.
func String() Type { return simple(KindString) }

// Bytes describes an arbitrary-length byte sequence.
func Bytes() Type { return simple(KindBytes) }

// Option describes an optional value of the given element type.
func Option(elem Type) Type {
	e := elem
	return Type{kind: KindOption, elem: &e}
}

// Tuple describes a fixed-length, heterogeneous sequence of fields, encoded
// and decoded in the order given.
func Tuple(fields ...Type) Type {
	cp := make([]Type, len(fields))
	copy(cp, fields)
	return Type{kind: KindTuple, fields: cp}
}

// Seq describes a variable-length, homogeneous sequence of the given element
// type.
func Seq(elem Type) Type {
	e := elem
	return Type{kind: KindSeq, elem: &e}
}

// defaultUnionTagWidth is the width, in bytes, of a union's discriminator
// tag when none is given explicitly.
const defaultUnionTagWidth = 4

// Union describes a tagged choice between the given variants, using the
// default 4-byte tag width.
func Union(variants ...Variant) Type {
	return UnionWithTagWidth(defaultUnionTagWidth, variants...)
}

// UnionWithTagWidth describes a tagged choice between the given variants,
// using a tag of tagWidth bytes (1, 2, or 4). A narrower tag is appropriate
// when the variant count is known to be small and the saved bytes matter;
// the default of 4 bytes accommodates any uint32 tag value. The tag width is
// part of the wire format: a value encoded under one width does not decode
// correctly under a Type with another.
func UnionWithTagWidth(tagWidth int, variants ...Variant) Type {
	switch tagWidth {
	case 1, 2, 4:
	default:
		panic("storekey: unsupported union tag width")
	}
	cp := make([]Variant, len(variants))
	copy(cp, variants)
	return Type{kind: KindUnion, variants: cp, tagWidth: tagWidth}
}
