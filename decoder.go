package storekey

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/ordbytes/storekey/internal/binarysort"
	"github.com/ordbytes/storekey/internal/errors"
)

// Puller is the read side of the codec's optional traversal driver: an
// Unmarshaler pulls a value's pieces off a Puller in the same order a
// Marshaler would have emitted them, without an intermediate Value tree.
type Puller interface {
	PullBool() (bool, error)
	PullUint8() (uint8, error)
	PullUint16() (uint16, error)
	PullUint32() (uint32, error)
	PullUint64() (uint64, error)
	PullUint128() (binarysort.Uint128, error)
	PullInt8() (int8, error)
	PullInt16() (int16, error)
	PullInt32() (int32, error)
	PullInt64() (int64, error)
	PullInt128() (binarysort.Int128, error)
	PullFloat32() (float32, error)
	PullFloat64() (float64, error)
	PullChar() (rune, error)
	PullString() (string, error)
	PullBytes() ([]byte, error)

	// PullOption reports whether the next option value is present. If it
	// is, fn is called to pull the wrapped value; if not, fn is not called.
	PullOption(fn func(p Puller) error) (isSome bool, err error)

	// PullTuple lets fn pull each field in order off the same Puller.
	PullTuple(fn func(p Puller) error) error

	// PullSeq calls fn once per element, in order, off a Puller scoped to
	// the sequence's contents, until the sequence is exhausted. It returns
	// the number of elements pulled.
	PullSeq(fn func(i int, p Puller) error) (n int, err error)

	// PullUnion reads a tagWidth-byte variant tag, then calls fn to pull
	// that variant's fields off the same Puller.
	PullUnion(tagWidth int, fn func(tag uint32, p Puller) error) error
}

// Unmarshaler is implemented by types that know how to decode themselves
// directly from a Puller, bypassing Value construction.
type Unmarshaler interface {
	UnmarshalStorekey(p Puller) error
}

// Decoder reads a sequence of order-preserving encoded values off an
// underlying byte source. The zero value is not usable; create one with
// NewDecoder.
type Decoder struct {
	r      *bufio.Reader
	offset int
}

// NewDecoder returns a Decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// NewDecoderBytes is a thin adapter over NewDecoder for the common case of
// decoding a single in-memory buffer.
func NewDecoderBytes(buf []byte) *Decoder {
	return NewDecoder(bytes.NewReader(buf))
}

// Done reports whether the Decoder's source has no more bytes to offer.
func (d *Decoder) Done() bool {
	_, err := d.r.Peek(1)
	return err != nil
}

// Decode reads and returns the next value, which must match t.
func (d *Decoder) Decode(t Type) (Value, error) {
	return decodeValue(d, t)
}

// DecodeUnmarshaler drives m against this Decoder directly, without an
// intermediate Value.
func (d *Decoder) DecodeUnmarshaler(m Unmarshaler) error {
	return m.UnmarshalStorekey(d)
}

// readFull reads exactly n bytes, reporting ErrUnexpectedEOF if the source
// runs dry and SourceError for any other read failure.
func (d *Decoder) readFull(kind Kind, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, decodeErr(kind, d.offset, ErrUnexpectedEOF)
		}
		return nil, decodeErr(kind, d.offset, &SourceError{err: err})
	}
	d.offset += n
	return b, nil
}

func (d *Decoder) PullBool() (bool, error) {
	b, err := d.readFull(KindBool, 1)
	if err != nil {
		return false, err
	}
	x, err := binarysort.DecodeBool(b)
	if err != nil {
		return false, decodeErr(KindBool, d.offset-1, err)
	}
	return x, nil
}

func (d *Decoder) PullUint8() (uint8, error) {
	b, err := d.readFull(KindUint8, 1)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeUint8(b)
}

func (d *Decoder) PullUint16() (uint16, error) {
	b, err := d.readFull(KindUint16, 2)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeUint16(b)
}

func (d *Decoder) PullUint32() (uint32, error) {
	b, err := d.readFull(KindUint32, 4)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeUint32(b)
}

func (d *Decoder) PullUint64() (uint64, error) {
	b, err := d.readFull(KindUint64, 8)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeUint64(b)
}

func (d *Decoder) PullUint128() (binarysort.Uint128, error) {
	b, err := d.readFull(KindUint128, 16)
	if err != nil {
		return binarysort.Uint128{}, err
	}
	return binarysort.DecodeUint128(b)
}

func (d *Decoder) PullInt8() (int8, error) {
	b, err := d.readFull(KindInt8, 1)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeInt8(b)
}

func (d *Decoder) PullInt16() (int16, error) {
	b, err := d.readFull(KindInt16, 2)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeInt16(b)
}

func (d *Decoder) PullInt32() (int32, error) {
	b, err := d.readFull(KindInt32, 4)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeInt32(b)
}

func (d *Decoder) PullInt64() (int64, error) {
	b, err := d.readFull(KindInt64, 8)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeInt64(b)
}

func (d *Decoder) PullInt128() (binarysort.Int128, error) {
	b, err := d.readFull(KindInt128, 16)
	if err != nil {
		return binarysort.Int128{}, err
	}
	return binarysort.DecodeInt128(b)
}

func (d *Decoder) PullFloat32() (float32, error) {
	b, err := d.readFull(KindFloat32, 4)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeFloat32(b)
}

func (d *Decoder) PullFloat64() (float64, error) {
	b, err := d.readFull(KindFloat64, 8)
	if err != nil {
		return 0, err
	}
	return binarysort.DecodeFloat64(b)
}

// PullChar peeks up to a UTF-8 sequence's worth of bytes to size the rune
// without consuming more of the source than it needs.
func (d *Decoder) PullChar() (rune, error) {
	peek, perr := d.r.Peek(utf8.UTFMax)
	if len(peek) == 0 && perr != nil {
		if perr == io.EOF {
			return 0, decodeErr(KindChar, d.offset, ErrUnexpectedEOF)
		}
		return 0, decodeErr(KindChar, d.offset, &SourceError{err: perr})
	}
	r, size, err := binarysort.DecodeChar(peek)
	if err != nil {
		return 0, decodeErr(KindChar, d.offset, err)
	}
	if _, err := d.r.Discard(size); err != nil {
		return 0, decodeErr(KindChar, d.offset, &SourceError{err: err})
	}
	d.offset += size
	return r, nil
}

func (d *Decoder) PullString() (string, error) {
	payload, err := d.pullEscaped(KindString)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (d *Decoder) PullBytes() ([]byte, error) {
	return d.pullEscaped(KindBytes)
}

// countingByteReader wraps a bufio.Reader to count the bytes ReadEscaped
// consumes, since binarysort.ReadEscaped only sees an io.ByteReader and has
// no notion of the Decoder's running offset. It also reports end of input as
// ErrUnexpectedEOF and any other read failure as a SourceError, which
// ReadEscaped passes through unchanged.
type countingByteReader struct {
	r io.ByteReader
	n int
}

func (c *countingByteReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	switch {
	case err == nil:
		c.n++
	case err == io.EOF:
		return b, ErrUnexpectedEOF
	default:
		return b, &SourceError{err: err}
	}
	return b, nil
}

func (d *Decoder) pullEscaped(kind Kind) ([]byte, error) {
	cr := &countingByteReader{r: d.r}
	payload, err := binarysort.ReadEscaped(cr)
	d.offset += cr.n
	if err != nil {
		return nil, decodeErr(kind, d.offset-cr.n, err)
	}
	return payload, nil
}

func (d *Decoder) PullOption(fn func(p Puller) error) (bool, error) {
	b, err := d.readFull(KindOption, 1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0x00:
		return false, nil
	case 0x01:
		if err := fn(d); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, decodeErr(KindOption, d.offset-1, errors.Newf("invalid option discriminator: %#x", b[0]))
	}
}

func (d *Decoder) PullTuple(fn func(p Puller) error) error {
	return fn(d)
}

// PullSeq pulls the escaped payload off the source, then decodes elements
// from it via a sub-Decoder scoped to that payload: the whole sequence is
// already materialized by pullEscaped, so its elements can be pulled back
// to back without the source learning anything about sequence framing.
func (d *Decoder) PullSeq(fn func(i int, p Puller) error) (int, error) {
	inner, err := d.pullEscaped(KindSeq)
	if err != nil {
		return 0, err
	}
	sub := NewDecoderBytes(inner)
	i := 0
	for !sub.Done() {
		if err := fn(i, sub); err != nil {
			return i, err
		}
		i++
	}
	return i, nil
}

func (d *Decoder) PullUnion(tagWidth int, fn func(tag uint32, p Puller) error) error {
	var tag uint32
	switch tagWidth {
	case 1:
		x, err := d.PullUint8()
		if err != nil {
			return err
		}
		tag = uint32(x)
	case 2:
		x, err := d.PullUint16()
		if err != nil {
			return err
		}
		tag = uint32(x)
	default:
		x, err := d.PullUint32()
		if err != nil {
			return err
		}
		tag = x
	}
	return fn(tag, d)
}

// decodeValue is the schema-driven decoder at the core of Unmarshal and
// Decoder.Decode: it dispatches on t.Kind(), drives d's Puller methods to
// read a value matching t, and lifts the result into a Value. It always
// drives a concrete *Decoder — Unmarshal and Decoder.Decode are its only
// callers — so the type assertions in decodeOption/decodeTuple/decodeSeq/
// decodeUnion below always succeed.
func decodeValue(d *Decoder, t Type) (Value, error) {
	switch t.Kind() {
	case KindBool:
		x, err := d.PullBool()
		return wrap(NewBool, x, err)
	case KindUint8:
		x, err := d.PullUint8()
		return wrap(NewUint8, x, err)
	case KindUint16:
		x, err := d.PullUint16()
		return wrap(NewUint16, x, err)
	case KindUint32:
		x, err := d.PullUint32()
		return wrap(NewUint32, x, err)
	case KindUint64:
		x, err := d.PullUint64()
		return wrap(NewUint64, x, err)
	case KindUint128:
		x, err := d.PullUint128()
		return wrap(NewUint128, x, err)
	case KindInt8:
		x, err := d.PullInt8()
		return wrap(NewInt8, x, err)
	case KindInt16:
		x, err := d.PullInt16()
		return wrap(NewInt16, x, err)
	case KindInt32:
		x, err := d.PullInt32()
		return wrap(NewInt32, x, err)
	case KindInt64:
		x, err := d.PullInt64()
		return wrap(NewInt64, x, err)
	case KindInt128:
		x, err := d.PullInt128()
		return wrap(NewInt128, x, err)
	case KindFloat32:
		x, err := d.PullFloat32()
		return wrap(NewFloat32, x, err)
	case KindFloat64:
		x, err := d.PullFloat64()
		return wrap(NewFloat64, x, err)
	case KindChar:
		x, err := d.PullChar()
		return wrap(NewChar, x, err)
	case KindString:
		x, err := d.PullString()
		return wrap(NewString, x, err)
	case KindBytes:
		x, err := d.PullBytes()
		return wrap(NewBytes, x, err)
	case KindOption:
		return decodeOption(d, t)
	case KindTuple:
		return decodeTuple(d, t)
	case KindSeq:
		return decodeSeq(d, t)
	case KindUnion:
		return decodeUnion(d, t)
	default:
		return nil, errors.Newf("storekey: unknown kind %s", t.Kind())
	}
}

// wrap lifts a primitive decode result into a Value, or propagates an error.
func wrap[T any](new func(T) Value, x T, err error) (Value, error) {
	if err != nil {
		return nil, err
	}
	return new(x), nil
}

func decodeOption(d *Decoder, t Type) (Value, error) {
	var inner Value
	isSome, err := d.PullOption(func(p Puller) error {
		v, err := decodeValue(p.(*Decoder), t.Elem())
		if err != nil {
			return err
		}
		inner = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !isSome {
		return NewNone(), nil
	}
	return NewSome(inner), nil
}

func decodeTuple(d *Decoder, t Type) (Value, error) {
	types := t.Fields()
	fields := make([]Value, len(types))
	err := d.PullTuple(func(p Puller) error {
		pd := p.(*Decoder)
		for i, ft := range types {
			v, err := decodeValue(pd, ft)
			if err != nil {
				return err
			}
			fields[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewTuple(fields...), nil
}

func decodeSeq(d *Decoder, t Type) (Value, error) {
	elemType := t.Elem()
	var elems []Value
	_, err := d.PullSeq(func(i int, p Puller) error {
		v, err := decodeValue(p.(*Decoder), elemType)
		if err != nil {
			return err
		}
		elems = append(elems, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewSeq(elems...), nil
}

func decodeUnion(d *Decoder, t Type) (Value, error) {
	variants := t.Variants()
	var result Value
	err := d.PullUnion(t.TagWidth(), func(tag uint32, p Puller) error {
		if int(tag) >= len(variants) {
			return decodeErr(KindUnion, d.offset-t.TagWidth(), errors.Newf("union tag %d has no matching variant", tag))
		}
		variant := variants[tag]
		pd := p.(*Decoder)
		fields := make([]Value, len(variant.Fields))
		for i, ft := range variant.Fields {
			v, err := decodeValue(pd, ft)
			if err != nil {
				return err
			}
			fields[i] = v
		}
		result = NewUnion(tag, fields...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
