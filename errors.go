package storekey

import (
	"fmt"

	"github.com/ordbytes/storekey/internal/errors"
)

// ErrUnexpectedEOF is returned when a Decoder runs out of input before the
// schema says it should.
var ErrUnexpectedEOF = errors.New("storekey: unexpected end of input")

// ErrInvalidEncoding is returned, wrapped in a *DecodeError, when Unmarshal
// finds bytes left over after the value it decoded. Other malformed input (a
// bool or option discriminator other than 0x00 or 0x01, a malformed escape
// sequence, invalid UTF-8, or a union tag with no matching variant) is
// reported as a *DecodeError wrapping an error that names the specific
// fault; errors.Is does not match those against ErrInvalidEncoding.
var ErrInvalidEncoding = errors.New("storekey: invalid encoding")

// DecodeError reports a decoding failure at a specific byte offset within
// the input, together with the Kind the Decoder was attempting to produce
// when it failed.
type DecodeError struct {
	Kind   Kind
	Offset int
	err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("storekey: decode %s at offset %d: %v", e.Kind, e.Offset, e.err)
}

func (e *DecodeError) Unwrap() error { return e.err }

// decodeErr builds a *DecodeError wrapping cause, tagged with the Kind being
// decoded and the byte offset at which decoding of that Kind began (for
// trailing input after Unmarshal's value, the offset of the first trailing
// byte).
func decodeErr(kind Kind, offset int, cause error) error {
	return &DecodeError{Kind: kind, Offset: offset, err: cause}
}

// SourceError reports that the underlying io.Writer or io.Reader returned an
// error other than io.EOF while an Encoder was writing or a Decoder was
// reading. The original error is available via errors.Unwrap.
type SourceError struct {
	err error
}

func (e *SourceError) Error() string { return "storekey: sink/source error: " + e.err.Error() }
func (e *SourceError) Unwrap() error { return e.err }
