package storekey

import "github.com/ordbytes/storekey/internal/binarysort"

// Value is an encodable value: a Kind together with the Go data backing it.
// Values are produced with the New* constructors below and inspected with
// the As* accessor functions; there is no exported struct to construct
// directly.
type Value interface {
	// Kind reports which Kind this value holds.
	Kind() Kind

	// sealed prevents types outside this package from implementing Value.
	sealed()
}

// value is the sole implementation of Value.
type value struct {
	kind Kind
	v    interface{}
}

func (v value) Kind() Kind { return v.kind }
func (v value) sealed()    {}

// NewBool returns a Value holding a bool.
func NewBool(x bool) Value { return value{kind: KindBool, v: x} }

// NewUint8 returns a Value holding a uint8.
func NewUint8(x uint8) Value { return value{kind: KindUint8, v: x} }

// NewUint16 returns a Value holding a uint16.
func NewUint16(x uint16) Value { return value{kind: KindUint16, v: x} }

// NewUint32 returns a Value holding a uint32.
func NewUint32(x uint32) Value { return value{kind: KindUint32, v: x} }

// NewUint64 returns a Value holding a uint64.
func NewUint64(x uint64) Value { return value{kind: KindUint64, v: x} }

// NewUint128 returns a Value holding an unsigned 128-bit integer.
func NewUint128(x binarysort.Uint128) Value { return value{kind: KindUint128, v: x} }

// NewInt8 returns a Value holding an int8.
func NewInt8(x int8) Value { return value{kind: KindInt8, v: x} }

// NewInt16 returns a Value holding an int16.
func NewInt16(x int16) Value { return value{kind: KindInt16, v: x} }

// NewInt32 returns a Value holding an int32.
func NewInt32(x int32) Value { return value{kind: KindInt32, v: x} }

// NewInt64 returns a Value holding an int64.
func NewInt64(x int64) Value { return value{kind: KindInt64, v: x} }

// NewInt128 returns a Value holding a signed 128-bit integer.
func NewInt128(x binarysort.Int128) Value { return value{kind: KindInt128, v: x} }

// NewFloat32 returns a Value holding an IEEE 754 single-precision float.
func NewFloat32(x float32) Value { return value{kind: KindFloat32, v: x} }

// NewFloat64 returns a Value holding an IEEE 754 double-precision float.
func NewFloat64(x float64) Value { return value{kind: KindFloat64, v: x} }

// NewChar returns a Value holding a single Unicode scalar value.
func NewChar(x rune) Value { return value{kind: KindChar, v: x} }

// NewString returns a Value holding a UTF-8 string.
func NewString(x string) Value { return value{kind: KindString, v: x} }

// NewBytes returns a Value holding an arbitrary byte sequence. The slice is
// not copied; callers should not mutate it after passing it in.
func NewBytes(x []byte) Value { return value{kind: KindBytes, v: x} }

// optionValue is the payload kind behind an Option Value: either absent, or
// present wrapping exactly one inner Value.
type optionValue struct {
	some bool
	elem Value
}

// NewNone returns an absent Option value.
func NewNone() Value { return value{kind: KindOption, v: optionValue{some: false}} }

// NewSome returns a present Option value wrapping elem.
func NewSome(elem Value) Value {
	return value{kind: KindOption, v: optionValue{some: true, elem: elem}}
}

// NewTuple returns a Value holding a fixed-length, heterogeneous sequence of
// fields.
func NewTuple(fields ...Value) Value {
	cp := make([]Value, len(fields))
	copy(cp, fields)
	return value{kind: KindTuple, v: cp}
}

// NewSeq returns a Value holding a variable-length, homogeneous sequence of
// elements.
func NewSeq(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return value{kind: KindSeq, v: cp}
}

// unionValue is the payload kind behind a Union Value: the chosen variant's
// tag and its fields.
type unionValue struct {
	tag    uint32
	fields []Value
}

// NewUnion returns a Value holding a tagged union choosing the variant
// numbered tag, with the given fields.
func NewUnion(tag uint32, fields ...Value) Value {
	cp := make([]Value, len(fields))
	copy(cp, fields)
	return value{kind: KindUnion, v: unionValue{tag: tag, fields: cp}}
}

// AsBool returns the bool held by v. It panics if v does not hold a bool.
func AsBool(v Value) bool { return v.(value).v.(bool) }

// AsUint8 returns the uint8 held by v. It panics if v does not hold a uint8.
func AsUint8(v Value) uint8 { return v.(value).v.(uint8) }

// AsUint16 returns the uint16 held by v. It panics if v does not hold a
// uint16.
func AsUint16(v Value) uint16 { return v.(value).v.(uint16) }

// AsUint32 returns the uint32 held by v. It panics if v does not hold a
// uint32.
func AsUint32(v Value) uint32 { return v.(value).v.(uint32) }

// AsUint64 returns the uint64 held by v. It panics if v does not hold a
// uint64.
func AsUint64(v Value) uint64 { return v.(value).v.(uint64) }

// AsUint128 returns the unsigned 128-bit integer held by v. It panics if v
// does not hold one.
func AsUint128(v Value) binarysort.Uint128 { return v.(value).v.(binarysort.Uint128) }

// AsInt8 returns the int8 held by v. It panics if v does not hold an int8.
func AsInt8(v Value) int8 { return v.(value).v.(int8) }

// AsInt16 returns the int16 held by v. It panics if v does not hold an
// int16.
func AsInt16(v Value) int16 { return v.(value).v.(int16) }

// AsInt32 returns the int32 held by v. It panics if v does not hold an
// int32.
func AsInt32(v Value) int32 { return v.(value).v.(int32) }

// AsInt64 returns the int64 held by v. It panics if v does not hold an
// int64.
func AsInt64(v Value) int64 { return v.(value).v.(int64) }

// AsInt128 returns the signed 128-bit integer held by v. It panics if v does
// not hold one.
func AsInt128(v Value) binarysort.Int128 { return v.(value).v.(binarysort.Int128) }

// AsFloat32 returns the float32 held by v. It panics if v does not hold a
// float32.
func AsFloat32(v Value) float32 { return v.(value).v.(float32) }

// AsFloat64 returns the float64 held by v. It panics if v does not hold a
// float64.
func AsFloat64(v Value) float64 { return v.(value).v.(float64) }

// AsChar returns the rune held by v. It panics if v does not hold a char.
func AsChar(v Value) rune { return v.(value).v.(rune) }

// AsString returns the string held by v. It panics if v does not hold a
// string.
func AsString(v Value) string { return v.(value).v.(string) }

// AsBytes returns the byte slice held by v. It panics if v does not hold
// bytes.
func AsBytes(v Value) []byte { return v.(value).v.([]byte) }

// IsNone reports whether the Option value v is absent.
func IsNone(v Value) bool { return !v.(value).v.(optionValue).some }

// AsSome returns the inner Value of a present Option value v. It panics if v
// is absent or is not an Option.
func AsSome(v Value) Value {
	ov := v.(value).v.(optionValue)
	if !ov.some {
		panic("storekey: AsSome called on an absent Option value")
	}
	return ov.elem
}

// AsTupleFields returns the field values of a Tuple value v, in order.
func AsTupleFields(v Value) []Value { return v.(value).v.([]Value) }

// AsSeqElems returns the element values of a Seq value v, in order.
func AsSeqElems(v Value) []Value { return v.(value).v.([]Value) }

// UnionTag returns the variant tag chosen by a Union value v.
func UnionTag(v Value) uint32 { return v.(value).v.(unionValue).tag }

// AsUnionFields returns the field values carried by the chosen variant of a
// Union value v.
func AsUnionFields(v Value) []Value { return v.(value).v.(unionValue).fields }
