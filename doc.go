/*
Package storekey implements an order-preserving binary codec: a pair of
routines that serialize typed values into byte strings and deserialize them
back, such that the unsigned lexicographic ordering of the encoded bytes
matches the logical ordering of the source values.

storekey is intended to produce keys for sorted key-value stores whose key
type is an opaque byte string. Range scans, prefix scans, and ordered
iteration over such a store then operate directly on the logical ordering of
the encoded values, with no decoding required to compare two keys.

# Supported types

storekey supports booleans, unsigned and signed integers (8 through 128 bits),
32- and 64-bit IEEE 754 floats, Unicode scalar values, UTF-8 strings, raw byte
sequences, options, fixed-arity tuples, homogeneous sequences, and tagged
unions. See Kind and Type for the full schema vocabulary.

# Schema-driven decoding

storekey is not a self-describing format. No type information is written to
the stream: the caller must supply a Type describing the value being decoded.
This is a deliberate trade-off — embedding type tags in the stream would
perturb the byte ordering and cost extra bytes on every value.

# Encoding a value

	tupleType := storekey.Tuple(storekey.String(), storekey.Int32())
	buf, err := storekey.Marshal(storekey.NewTuple(
		storekey.NewString("alice"),
		storekey.NewInt32(42),
	), tupleType)

# Decoding a value

	v, err := storekey.Unmarshal(buf, tupleType)

# Ordering

Given two values a and b of the same Type, Marshal(a) <= Marshal(b) as
unsigned byte strings if and only if a <= b in the type's logical order. This
property is what makes storekey-encoded values usable directly as sorted
key-value store keys; see the store subpackage for an example built on
github.com/cockroachdb/pebble.
*/
package storekey
