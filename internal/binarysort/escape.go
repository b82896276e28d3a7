package binarysort

import (
	"io"

	"github.com/ordbytes/storekey/internal/errors"
)

// AppendEscaped appends payload to dst using the sentinel-escape framing
// used by variable-length values (strings, byte sequences, and the opaque
// concatenation of a homogeneous sequence's elements): every 0x00 byte in
// payload is replaced by the two-byte sequence 0x00 0x01, and the whole
// payload is terminated by 0x00 0x00.
//
// No escaped payload can contain its own terminator as a substring, because
// every internal zero byte is escaped; this is what makes the framing
// self-delimiting without a length prefix, and what gives "shorter payload
// sorts first" for two payloads that share a prefix.
func AppendEscaped(dst []byte, payload []byte) []byte {
	for _, b := range payload {
		if b == 0x00 {
			dst = append(dst, 0x00, 0x01)
		} else {
			dst = append(dst, b)
		}
	}
	return append(dst, 0x00, 0x00)
}

// escapeState is the sentinel-escape decoder's state machine: Data, SawZero,
// End as described by the codec's wire format.
type escapeState int

const (
	escapeData escapeState = iota
	escapeSawZero
)

// ReadEscaped reads and unescapes a sentinel-escape-framed payload from r,
// stopping after consuming the 0x00 0x00 terminator. It never reads past the
// end of the value.
func ReadEscaped(r io.ByteReader) ([]byte, error) {
	var out []byte
	state := escapeData

	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, errors.New("unexpected end of input while reading escaped payload")
			}
			return nil, err
		}

		switch state {
		case escapeData:
			if b == 0x00 {
				state = escapeSawZero
			} else {
				out = append(out, b)
			}
		case escapeSawZero:
			switch b {
			case 0x01:
				out = append(out, 0x00)
				state = escapeData
			case 0x00:
				return out, nil
			default:
				return nil, errors.Newf("invalid escape sequence: 0x00 followed by %#x", b)
			}
		}
	}
}
