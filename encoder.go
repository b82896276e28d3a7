package storekey

import (
	"bytes"
	"io"

	"github.com/ordbytes/storekey/internal/binarysort"
	"github.com/ordbytes/storekey/internal/errors"
)

// Emitter is the write side of the codec's optional traversal driver: a
// Marshaler describes a value to an Emitter one piece at a time, in the
// order its Type expects, without ever building a Value tree.
//
// The nested callbacks (EmitSome, EmitTuple, EmitSeq, EmitUnion) each hand
// the callback an Emitter for the nested content: the same Encoder for
// EmitSome, EmitTuple and EmitUnion, a scratch Encoder for EmitSeq's
// elements. Callers must use that Emitter, not the outer one, to emit the
// nested content. Every
// method can fail: an Emitter ultimately writes to a byte sink, and sink
// errors propagate through the return value.
type Emitter interface {
	EmitBool(x bool) error
	EmitUint8(x uint8) error
	EmitUint16(x uint16) error
	EmitUint32(x uint32) error
	EmitUint64(x uint64) error
	EmitUint128(x binarysort.Uint128) error
	EmitInt8(x int8) error
	EmitInt16(x int16) error
	EmitInt32(x int32) error
	EmitInt64(x int64) error
	EmitInt128(x binarysort.Int128) error
	EmitFloat32(x float32) error
	EmitFloat64(x float64) error
	EmitChar(x rune) error
	EmitString(x string) error
	EmitBytes(x []byte) error
	EmitNone() error
	EmitSome(fn func(Emitter) error) error
	EmitTuple(fn func(Emitter) error) error
	EmitSeq(n int, fn func(i int, e Emitter) error) error
	EmitUnion(tag uint32, tagWidth int, fn func(Emitter) error) error
}

// Marshaler is implemented by types that know how to encode themselves
// directly to an Emitter, bypassing Value construction.
type Marshaler interface {
	MarshalStorekey(e Emitter) error
}

// Encoder writes the order-preserving encoding of a sequence of values to an
// underlying byte sink. The zero value is not usable; create one with
// NewEncoder.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the encoding of v, which must match t, to the Encoder's
// sink.
func (e *Encoder) Encode(v Value, t Type) error {
	return encodeValue(e, v, t)
}

// EncodeMarshaler drives m against this Encoder directly, without an
// intermediate Value.
func (e *Encoder) EncodeMarshaler(m Marshaler) error {
	return m.MarshalStorekey(e)
}

// write sends b to the sink, wrapping any non-nil error as a SourceError.
func (e *Encoder) write(b []byte) error {
	if _, err := e.w.Write(b); err != nil {
		return &SourceError{err: err}
	}
	return nil
}

func (e *Encoder) EmitBool(x bool) error                 { return e.write(binarysort.AppendBool(nil, x)) }
func (e *Encoder) EmitUint8(x uint8) error                { return e.write(binarysort.AppendUint8(nil, x)) }
func (e *Encoder) EmitUint16(x uint16) error              { return e.write(binarysort.AppendUint16(nil, x)) }
func (e *Encoder) EmitUint32(x uint32) error              { return e.write(binarysort.AppendUint32(nil, x)) }
func (e *Encoder) EmitUint64(x uint64) error              { return e.write(binarysort.AppendUint64(nil, x)) }
func (e *Encoder) EmitUint128(x binarysort.Uint128) error { return e.write(binarysort.AppendUint128(nil, x)) }
func (e *Encoder) EmitInt8(x int8) error                  { return e.write(binarysort.AppendInt8(nil, x)) }
func (e *Encoder) EmitInt16(x int16) error                { return e.write(binarysort.AppendInt16(nil, x)) }
func (e *Encoder) EmitInt32(x int32) error                { return e.write(binarysort.AppendInt32(nil, x)) }
func (e *Encoder) EmitInt64(x int64) error                { return e.write(binarysort.AppendInt64(nil, x)) }
func (e *Encoder) EmitInt128(x binarysort.Int128) error   { return e.write(binarysort.AppendInt128(nil, x)) }
func (e *Encoder) EmitFloat32(x float32) error            { return e.write(binarysort.AppendFloat32(nil, x)) }
func (e *Encoder) EmitFloat64(x float64) error            { return e.write(binarysort.AppendFloat64(nil, x)) }
func (e *Encoder) EmitChar(x rune) error                  { return e.write(binarysort.AppendChar(nil, x)) }

func (e *Encoder) EmitString(x string) error {
	return e.write(binarysort.AppendEscaped(nil, []byte(x)))
}

func (e *Encoder) EmitBytes(x []byte) error {
	return e.write(binarysort.AppendEscaped(nil, x))
}

// EmitNone writes the absent discriminator for an Option value.
func (e *Encoder) EmitNone() error {
	return e.write([]byte{0x00})
}

// EmitSome writes the present discriminator for an Option value, then lets
// fn emit the wrapped value on the same sink.
func (e *Encoder) EmitSome(fn func(Emitter) error) error {
	if err := e.write([]byte{0x01}); err != nil {
		return err
	}
	return fn(e)
}

// EmitTuple lets fn emit each field in order on the same sink. Tuple fields
// need no extra framing: the field count is fixed by the schema, and each
// field is already self-delimiting.
func (e *Encoder) EmitTuple(fn func(Emitter) error) error {
	return fn(e)
}

// EmitSeq emits n elements by calling fn once per index on a scratch
// Encoder buffering in memory, then frames their concatenation with
// sentinel-escaping so the whole sequence sorts and decodes as a single
// self-delimiting unit written to the real sink in one piece.
func (e *Encoder) EmitSeq(n int, fn func(i int, e Emitter) error) error {
	var scratchBuf bytes.Buffer
	scratch := NewEncoder(&scratchBuf)
	for i := 0; i < n; i++ {
		if err := fn(i, scratch); err != nil {
			return err
		}
	}
	return e.write(binarysort.AppendEscaped(nil, scratchBuf.Bytes()))
}

// EmitUnion writes the variant tag as tagWidth big-endian bytes, then lets
// fn emit the chosen variant's fields on the same sink.
func (e *Encoder) EmitUnion(tag uint32, tagWidth int, fn func(Emitter) error) error {
	var tagBytes []byte
	switch tagWidth {
	case 1:
		tagBytes = binarysort.AppendUint8(nil, uint8(tag))
	case 2:
		tagBytes = binarysort.AppendUint16(nil, uint16(tag))
	default:
		tagBytes = binarysort.AppendUint32(nil, tag)
	}
	if err := e.write(tagBytes); err != nil {
		return err
	}
	return fn(e)
}

// encodeValue is the schema-driven encoder at the core of Marshal, Append,
// and Encoder.Encode: it walks v and t together, dispatching on t.Kind(),
// and drives e's Emitter methods to write v's encoding. It always drives a
// concrete *Encoder — Marshal, Append, and Encoder.Encode are its only
// callers — so the type assertions in encodeOption/encodeTuple/encodeSeq/
// encodeUnion below always succeed.
func encodeValue(e *Encoder, v Value, t Type) error {
	if v.Kind() != t.Kind() {
		return errors.Newf("storekey: value kind %s does not match type kind %s", v.Kind(), t.Kind())
	}

	switch t.Kind() {
	case KindBool:
		return e.EmitBool(AsBool(v))
	case KindUint8:
		return e.EmitUint8(AsUint8(v))
	case KindUint16:
		return e.EmitUint16(AsUint16(v))
	case KindUint32:
		return e.EmitUint32(AsUint32(v))
	case KindUint64:
		return e.EmitUint64(AsUint64(v))
	case KindUint128:
		return e.EmitUint128(AsUint128(v))
	case KindInt8:
		return e.EmitInt8(AsInt8(v))
	case KindInt16:
		return e.EmitInt16(AsInt16(v))
	case KindInt32:
		return e.EmitInt32(AsInt32(v))
	case KindInt64:
		return e.EmitInt64(AsInt64(v))
	case KindInt128:
		return e.EmitInt128(AsInt128(v))
	case KindFloat32:
		return e.EmitFloat32(AsFloat32(v))
	case KindFloat64:
		return e.EmitFloat64(AsFloat64(v))
	case KindChar:
		return e.EmitChar(AsChar(v))
	case KindString:
		return e.EmitString(AsString(v))
	case KindBytes:
		return e.EmitBytes(AsBytes(v))
	case KindOption:
		return encodeOption(e, v, t)
	case KindTuple:
		return encodeTuple(e, v, t)
	case KindSeq:
		return encodeSeq(e, v, t)
	case KindUnion:
		return encodeUnion(e, v, t)
	default:
		return errors.Newf("storekey: unknown kind %s", t.Kind())
	}
}

func encodeOption(e *Encoder, v Value, t Type) error {
	if IsNone(v) {
		return e.EmitNone()
	}
	return e.EmitSome(func(inner Emitter) error {
		return encodeValue(inner.(*Encoder), AsSome(v), t.Elem())
	})
}

func encodeTuple(e *Encoder, v Value, t Type) error {
	fields := AsTupleFields(v)
	types := t.Fields()
	if len(fields) != len(types) {
		return errors.Newf("storekey: tuple has %d fields, type expects %d", len(fields), len(types))
	}
	return e.EmitTuple(func(inner Emitter) error {
		ie := inner.(*Encoder)
		for i, f := range fields {
			if err := encodeValue(ie, f, types[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func encodeSeq(e *Encoder, v Value, t Type) error {
	elems := AsSeqElems(v)
	elemType := t.Elem()
	return e.EmitSeq(len(elems), func(i int, inner Emitter) error {
		return encodeValue(inner.(*Encoder), elems[i], elemType)
	})
}

func encodeUnion(e *Encoder, v Value, t Type) error {
	tag := UnionTag(v)
	variants := t.Variants()
	if int(tag) >= len(variants) {
		return errors.Newf("storekey: union tag %d has no matching variant", tag)
	}
	variant := variants[tag]
	fields := AsUnionFields(v)
	if len(fields) != len(variant.Fields) {
		return errors.Newf("storekey: union variant %q has %d fields, value has %d", variant.Name, len(variant.Fields), len(fields))
	}
	return e.EmitUnion(tag, t.TagWidth(), func(inner Emitter) error {
		ie := inner.(*Encoder)
		for i, f := range fields {
			if err := encodeValue(ie, f, variant.Fields[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
