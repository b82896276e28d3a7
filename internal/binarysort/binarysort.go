// Package binarysort provides the primitive, order-preserving byte-level
// transforms the storekey codec is built on. Each Append function takes a Go
// value and appends its order-preserving encoding to a buffer; each Decode
// function takes that same encoding back apart.
//
// That way, if vA < vB, where vA and vB are two unencoded values of the same
// type, then eA < eB, where eA and eB are the respective encoded values of vA
// and vB, compared as unsigned byte strings.
package binarysort

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/ordbytes/storekey/internal/errors"
)

// AppendBool appends the order-preserving encoding of x: 0x00 for false,
// 0x01 for true.
func AppendBool(buf []byte, x bool) []byte {
	if x {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// DecodeBool decodes a bool encoded by AppendBool.
func DecodeBool(buf []byte) (bool, error) {
	if len(buf) == 0 {
		return false, errors.New("cannot decode buffer to bool: empty input")
	}
	switch buf[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Newf("invalid bool discriminator: %#x", buf[0])
	}
}

// AppendUint8 appends x big-endian (a no-op for a single byte, kept for
// symmetry with the wider widths).
func AppendUint8(buf []byte, x uint8) []byte {
	return append(buf, x)
}

// DecodeUint8 decodes a uint8 encoded by AppendUint8.
func DecodeUint8(buf []byte) (uint8, error) {
	if len(buf) < 1 {
		return 0, errors.New("cannot decode buffer to uint8: need 1 byte")
	}
	return buf[0], nil
}

// AppendUint16 appends x as 2 big-endian bytes.
func AppendUint16(buf []byte, x uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], x)
	return append(buf, b[:]...)
}

// DecodeUint16 decodes a uint16 encoded by AppendUint16.
func DecodeUint16(buf []byte) (uint16, error) {
	if len(buf) < 2 {
		return 0, errors.New("cannot decode buffer to uint16: need 2 bytes")
	}
	return binary.BigEndian.Uint16(buf), nil
}

// AppendUint32 appends x as 4 big-endian bytes.
func AppendUint32(buf []byte, x uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], x)
	return append(buf, b[:]...)
}

// DecodeUint32 decodes a uint32 encoded by AppendUint32.
func DecodeUint32(buf []byte) (uint32, error) {
	if len(buf) < 4 {
		return 0, errors.New("cannot decode buffer to uint32: need 4 bytes")
	}
	return binary.BigEndian.Uint32(buf), nil
}

// AppendUint64 appends x as 8 big-endian bytes.
func AppendUint64(buf []byte, x uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], x)
	return append(buf, b[:]...)
}

// DecodeUint64 decodes a uint64 encoded by AppendUint64.
func DecodeUint64(buf []byte) (uint64, error) {
	if len(buf) < 8 {
		return 0, errors.New("cannot decode buffer to uint64: need 8 bytes")
	}
	return binary.BigEndian.Uint64(buf), nil
}

// Uint128 is an unsigned 128-bit integer, split into high and low 64-bit
// words since Go has no native 128-bit integer type.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// AppendUint128 appends x as 16 big-endian bytes (Hi, then Lo). Since both
// words are encoded unsigned big-endian, comparing the 16-byte result is
// equivalent to comparing Hi first and Lo second, which is exactly 128-bit
// unsigned magnitude order.
func AppendUint128(buf []byte, x Uint128) []byte {
	buf = AppendUint64(buf, x.Hi)
	return AppendUint64(buf, x.Lo)
}

// DecodeUint128 decodes a Uint128 encoded by AppendUint128.
func DecodeUint128(buf []byte) (Uint128, error) {
	if len(buf) < 16 {
		return Uint128{}, errors.New("cannot decode buffer to uint128: need 16 bytes")
	}
	hi, _ := DecodeUint64(buf[:8])
	lo, _ := DecodeUint64(buf[8:16])
	return Uint128{Hi: hi, Lo: lo}, nil
}

// AppendInt8 appends x big-endian with the sign bit flipped, mapping the
// signed range monotonically onto the unsigned range so that negatives sort
// below positives.
func AppendInt8(buf []byte, x int8) []byte {
	return append(buf, byte(x)^0x80)
}

// DecodeInt8 decodes an int8 encoded by AppendInt8.
func DecodeInt8(buf []byte) (int8, error) {
	if len(buf) < 1 {
		return 0, errors.New("cannot decode buffer to int8: need 1 byte")
	}
	return int8(buf[0] ^ 0x80), nil
}

// AppendInt16 appends x big-endian with the sign bit flipped.
func AppendInt16(buf []byte, x int16) []byte {
	return AppendUint16(buf, uint16(x)^(1<<15))
}

// DecodeInt16 decodes an int16 encoded by AppendInt16.
func DecodeInt16(buf []byte) (int16, error) {
	x, err := DecodeUint16(buf)
	if err != nil {
		return 0, err
	}
	return int16(x ^ (1 << 15)), nil
}

// AppendInt32 appends x big-endian with the sign bit flipped.
func AppendInt32(buf []byte, x int32) []byte {
	return AppendUint32(buf, uint32(x)^(1<<31))
}

// DecodeInt32 decodes an int32 encoded by AppendInt32.
func DecodeInt32(buf []byte) (int32, error) {
	x, err := DecodeUint32(buf)
	if err != nil {
		return 0, err
	}
	return int32(x ^ (1 << 31)), nil
}

// AppendInt64 appends x big-endian with the sign bit flipped.
func AppendInt64(buf []byte, x int64) []byte {
	return AppendUint64(buf, uint64(x)^(1<<63))
}

// DecodeInt64 decodes an int64 encoded by AppendInt64.
func DecodeInt64(buf []byte) (int64, error) {
	x, err := DecodeUint64(buf)
	if err != nil {
		return 0, err
	}
	return int64(x ^ (1 << 63)), nil
}

// Int128 is a signed 128-bit integer, split into a high word carrying the
// sign and a low, unsigned word, since Go has no native 128-bit integer type.
type Int128 struct {
	Hi int64
	Lo uint64
}

// AppendInt128 appends x as 16 bytes: the high word using the same sign-bit
// flip as AppendInt64, followed by the low word as a plain unsigned 64-bit
// big-endian value. Because the high word dominates magnitude comparison and
// is bias-corrected exactly like a standalone int64, and the low word's
// unsigned order agrees with its contribution to the 128-bit magnitude for a
// fixed high word, the concatenation preserves total 128-bit signed order.
func AppendInt128(buf []byte, x Int128) []byte {
	buf = AppendInt64(buf, x.Hi)
	return AppendUint64(buf, x.Lo)
}

// DecodeInt128 decodes an Int128 encoded by AppendInt128.
func DecodeInt128(buf []byte) (Int128, error) {
	if len(buf) < 16 {
		return Int128{}, errors.New("cannot decode buffer to int128: need 16 bytes")
	}
	hi, err := DecodeInt64(buf[:8])
	if err != nil {
		return Int128{}, err
	}
	lo, _ := DecodeUint64(buf[8:16])
	return Int128{Hi: hi, Lo: lo}, nil
}

// AppendFloat32 appends the IEEE 754 bit pattern of x, transformed so that
// unsigned big-endian byte comparison matches IEEE totalOrder restricted to
// non-NaN values: if the sign bit is 0 (non-negative), only the sign bit is
// flipped; if the sign bit is 1 (negative), all bits are flipped.
func AppendFloat32(buf []byte, x float32) []byte {
	b := math.Float32bits(x)
	if b&(1<<31) == 0 {
		b ^= 1 << 31
	} else {
		b = ^b
	}
	return AppendUint32(buf, b)
}

// DecodeFloat32 decodes a float32 encoded by AppendFloat32.
func DecodeFloat32(buf []byte) (float32, error) {
	b, err := DecodeUint32(buf)
	if err != nil {
		return 0, err
	}
	if b&(1<<31) != 0 {
		b ^= 1 << 31
	} else {
		b = ^b
	}
	return math.Float32frombits(b), nil
}

// AppendFloat64 appends the IEEE 754 bit pattern of x, transformed the same
// way as AppendFloat32.
func AppendFloat64(buf []byte, x float64) []byte {
	b := math.Float64bits(x)
	if b&(1<<63) == 0 {
		b ^= 1 << 63
	} else {
		b = ^b
	}
	return AppendUint64(buf, b)
}

// DecodeFloat64 decodes a float64 encoded by AppendFloat64.
func DecodeFloat64(buf []byte) (float64, error) {
	b, err := DecodeUint64(buf)
	if err != nil {
		return 0, err
	}
	if b&(1<<63) != 0 {
		b ^= 1 << 63
	} else {
		b = ^b
	}
	return math.Float64frombits(b), nil
}

// AppendChar appends the UTF-8 encoding of the code point r. UTF-8 preserves
// code point order under bytewise comparison, so no further transform is
// needed.
func AppendChar(buf []byte, r rune) []byte {
	return utf8.AppendRune(buf, r)
}

// DecodeChar reads one UTF-8 code point from the front of buf and returns it
// along with the number of bytes consumed.
func DecodeChar(buf []byte) (rune, int, error) {
	if len(buf) == 0 {
		return 0, 0, errors.New("cannot decode buffer to char: empty input")
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, errors.New("cannot decode buffer to char: invalid utf8")
	}
	return r, size, nil
}
