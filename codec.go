package storekey

import "bytes"

// Marshal returns the order-preserving encoding of v, which must match t.
// It is a thin adapter over Encoder for the common case of encoding a
// single value into an in-memory buffer.
func Marshal(v Value, t Type) ([]byte, error) {
	return Append(nil, v, t)
}

// Append appends the order-preserving encoding of v, which must match t, to
// dst and returns the extended buffer. Like Marshal, it is a thin adapter
// over Encoder; callers that want to write directly to a socket, file, or
// other byte sink should use Encoder instead.
func Append(dst []byte, v Value, t Type) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := NewEncoder(buf).Encode(v, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single value matching t from data. It returns an
// error if data contains trailing bytes after the value, since Unmarshal is
// meant for a single self-contained encoding rather than a stream; use
// Decoder to read a sequence of values back to back off an io.Reader.
func Unmarshal(data []byte, t Type) (Value, error) {
	d := NewDecoderBytes(data)
	v, err := decodeValue(d, t)
	if err != nil {
		return nil, err
	}
	if !d.Done() {
		return nil, decodeErr(t.Kind(), d.offset, ErrInvalidEncoding)
	}
	return v, nil
}
