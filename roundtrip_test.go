package storekey_test

import (
	"bytes"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ordbytes/storekey/internal/binarysort"
	"github.com/ordbytes/storekey"
)

func TestRoundTripPrimitives(t *testing.T) {
	tests := []struct {
		name string
		typ  storekey.Type
		val  storekey.Value
		get  func(storekey.Value) interface{}
	}{
		{"bool", storekey.Bool(), storekey.NewBool(true), func(v storekey.Value) interface{} { return storekey.AsBool(v) }},
		{"uint8", storekey.Uint8(), storekey.NewUint8(42), func(v storekey.Value) interface{} { return storekey.AsUint8(v) }},
		{"uint64", storekey.Uint64(), storekey.NewUint64(1 << 40), func(v storekey.Value) interface{} { return storekey.AsUint64(v) }},
		{"uint128", storekey.Uint128(), storekey.NewUint128(binarysort.Uint128{Hi: 7, Lo: 9}), func(v storekey.Value) interface{} { return storekey.AsUint128(v) }},
		{"int64", storekey.Int64(), storekey.NewInt64(-12345), func(v storekey.Value) interface{} { return storekey.AsInt64(v) }},
		{"int128", storekey.Int128(), storekey.NewInt128(binarysort.Int128{Hi: -1, Lo: 3}), func(v storekey.Value) interface{} { return storekey.AsInt128(v) }},
		{"float64", storekey.Float64(), storekey.NewFloat64(-3.5), func(v storekey.Value) interface{} { return storekey.AsFloat64(v) }},
		{"char", storekey.Char(), storekey.NewChar('λ'), func(v storekey.Value) interface{} { return storekey.AsChar(v) }},
		{"string", storekey.String(), storekey.NewString("hello\x00world"), func(v storekey.Value) interface{} { return storekey.AsString(v) }},
		{"bytes", storekey.Bytes(), storekey.NewBytes([]byte{0x00, 0x01, 0xff}), func(v storekey.Value) interface{} { return storekey.AsBytes(v) }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := storekey.Marshal(test.val, test.typ)
			require.NoError(t, err)

			got, err := storekey.Unmarshal(data, test.typ)
			require.NoError(t, err)
			require.Equal(t, test.get(test.val), test.get(got))
		})
	}
}

func TestRoundTripOption(t *testing.T) {
	typ := storekey.Option(storekey.String())

	none, err := storekey.Marshal(storekey.NewNone(), typ)
	require.NoError(t, err)
	gotNone, err := storekey.Unmarshal(none, typ)
	require.NoError(t, err)
	require.True(t, storekey.IsNone(gotNone))

	some, err := storekey.Marshal(storekey.NewSome(storekey.NewString("x")), typ)
	require.NoError(t, err)
	gotSome, err := storekey.Unmarshal(some, typ)
	require.NoError(t, err)
	require.False(t, storekey.IsNone(gotSome))
	require.Equal(t, "x", storekey.AsString(storekey.AsSome(gotSome)))

	// None always sorts before Some, regardless of payload.
	require.Equal(t, -1, bytes.Compare(none, some))
}

func TestRoundTripTuple(t *testing.T) {
	typ := storekey.Tuple(storekey.Uint32(), storekey.String(), storekey.Bool())
	val := storekey.NewTuple(storekey.NewUint32(7), storekey.NewString("abc"), storekey.NewBool(true))

	data, err := storekey.Marshal(val, typ)
	require.NoError(t, err)

	got, err := storekey.Unmarshal(data, typ)
	require.NoError(t, err)

	fields := storekey.AsTupleFields(got)
	require.Len(t, fields, 3)
	require.Equal(t, uint32(7), storekey.AsUint32(fields[0]))
	require.Equal(t, "abc", storekey.AsString(fields[1]))
	require.Equal(t, true, storekey.AsBool(fields[2]))
}

func TestRoundTripSeq(t *testing.T) {
	typ := storekey.Seq(storekey.String())
	val := storekey.NewSeq(storekey.NewString("a"), storekey.NewString("bb"), storekey.NewString(""))

	data, err := storekey.Marshal(val, typ)
	require.NoError(t, err)

	got, err := storekey.Unmarshal(data, typ)
	require.NoError(t, err)

	elems := storekey.AsSeqElems(got)
	require.Len(t, elems, 3)
	require.Equal(t, "a", storekey.AsString(elems[0]))
	require.Equal(t, "bb", storekey.AsString(elems[1]))
	require.Equal(t, "", storekey.AsString(elems[2]))
}

// TestRoundTripSeqOfEscapedElements covers the nested-framing case: a Seq
// of Strings whose elements themselves contain the 0x00 escape sentinel, so
// each element is escaped once by String and the whole element run is
// escaped a second time by Seq. Every element must survive both layers.
func TestRoundTripSeqOfEscapedElements(t *testing.T) {
	typ := storekey.Seq(storekey.String())
	val := storekey.NewSeq(
		storekey.NewString("a\x00b"),
		storekey.NewString("\x00"),
		storekey.NewString("c\x00\x00d"),
	)

	data, err := storekey.Marshal(val, typ)
	require.NoError(t, err)

	got, err := storekey.Unmarshal(data, typ)
	require.NoError(t, err)

	elems := storekey.AsSeqElems(got)
	require.Len(t, elems, 3)
	require.Equal(t, "a\x00b", storekey.AsString(elems[0]))
	require.Equal(t, "\x00", storekey.AsString(elems[1]))
	require.Equal(t, "c\x00\x00d", storekey.AsString(elems[2]))
}

// TestRoundTripSeqOfTuplesWithEscapedFields covers the same double-escaping
// case one level deeper: a Seq of Tuples, where a tuple field's string
// contains the escape sentinel.
func TestRoundTripSeqOfTuplesWithEscapedFields(t *testing.T) {
	typ := storekey.Seq(storekey.Tuple(storekey.String(), storekey.Uint8()))
	val := storekey.NewSeq(
		storekey.NewTuple(storekey.NewString("x\x00y"), storekey.NewUint8(1)),
		storekey.NewTuple(storekey.NewString("z"), storekey.NewUint8(2)),
	)

	data, err := storekey.Marshal(val, typ)
	require.NoError(t, err)

	got, err := storekey.Unmarshal(data, typ)
	require.NoError(t, err)

	elems := storekey.AsSeqElems(got)
	require.Len(t, elems, 2)
	first := storekey.AsTupleFields(elems[0])
	require.Equal(t, "x\x00y", storekey.AsString(first[0]))
	require.Equal(t, uint8(1), storekey.AsUint8(first[1]))
}

func TestRoundTripEmptySeq(t *testing.T) {
	typ := storekey.Seq(storekey.Uint8())
	val := storekey.NewSeq()

	data, err := storekey.Marshal(val, typ)
	require.NoError(t, err)

	got, err := storekey.Unmarshal(data, typ)
	require.NoError(t, err)
	require.Len(t, storekey.AsSeqElems(got), 0)
}

func TestRoundTripUnion(t *testing.T) {
	typ := storekey.Union(
		storekey.Variant{Name: "Empty"},
		storekey.Variant{Name: "Named", Fields: []storekey.Type{storekey.String()}},
	)

	empty, err := storekey.Marshal(storekey.NewUnion(0), typ)
	require.NoError(t, err)
	gotEmpty, err := storekey.Unmarshal(empty, typ)
	require.NoError(t, err)
	require.Equal(t, uint32(0), storekey.UnionTag(gotEmpty))

	named, err := storekey.Marshal(storekey.NewUnion(1, storekey.NewString("hi")), typ)
	require.NoError(t, err)
	gotNamed, err := storekey.Unmarshal(named, typ)
	require.NoError(t, err)
	require.Equal(t, uint32(1), storekey.UnionTag(gotNamed))
	require.Equal(t, "hi", storekey.AsString(storekey.AsUnionFields(gotNamed)[0]))

	// A lower tag always sorts before a higher one.
	require.Equal(t, -1, bytes.Compare(empty, named))
}

func TestVariantIndexByName(t *testing.T) {
	typ := storekey.Union(
		storekey.Variant{Name: "Empty"},
		storekey.Variant{Name: "Named", Fields: []storekey.Type{storekey.String()}},
	)

	require.Equal(t, uint32(0), storekey.VariantIndex(typ, "Empty"))
	require.Equal(t, uint32(1), storekey.VariantIndex(typ, "Named"))
}

func TestUnionNarrowTagWidth(t *testing.T) {
	typ := storekey.UnionWithTagWidth(1,
		storekey.Variant{Name: "A"},
		storekey.Variant{Name: "B"},
	)
	data, err := storekey.Marshal(storekey.NewUnion(1), typ)
	require.NoError(t, err)
	require.Len(t, data, 1)
}

func TestOrderingAcrossStrings(t *testing.T) {
	words := []string{"", "a", "aa", "ab", "b", "ba", "\x00", "\x00\x00"}
	sort.Strings(words)

	var encoded [][]byte
	for _, w := range words {
		data, err := storekey.Marshal(storekey.NewString(w), storekey.String())
		require.NoError(t, err)
		encoded = append(encoded, data)
	}

	for i := 1; i < len(encoded); i++ {
		require.LessOrEqualf(t, bytes.Compare(encoded[i-1], encoded[i]), 0,
			"encoding of %q should sort at or before %q", words[i-1], words[i])
	}
}

func TestOrderingAcrossFloats(t *testing.T) {
	vals := []float64{math.Inf(-1), -1.5, math.Copysign(0, -1), 0.0, 1.5, math.Inf(1)}

	var encoded [][]byte
	for _, v := range vals {
		data, err := storekey.Marshal(storekey.NewFloat64(v), storekey.Float64())
		require.NoError(t, err)
		encoded = append(encoded, data)
	}

	for i := 1; i < len(encoded); i++ {
		require.Equal(t, -1, bytes.Compare(encoded[i-1], encoded[i]))
	}
}

func TestTupleOrderingIsLexicographic(t *testing.T) {
	typ := storekey.Tuple(storekey.Uint8(), storekey.Uint8())

	a, err := storekey.Marshal(storekey.NewTuple(storekey.NewUint8(1), storekey.NewUint8(200)), typ)
	require.NoError(t, err)
	b, err := storekey.Marshal(storekey.NewTuple(storekey.NewUint8(2), storekey.NewUint8(0)), typ)
	require.NoError(t, err)

	require.Equal(t, -1, bytes.Compare(a, b), "first field dominates tuple order")
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	data, err := storekey.Marshal(storekey.NewUint8(1), storekey.Uint8())
	require.NoError(t, err)
	data = append(data, 0xff)

	_, err = storekey.Unmarshal(data, storekey.Uint8())
	require.Error(t, err)
}

func TestUnmarshalTruncatedInputErrors(t *testing.T) {
	_, err := storekey.Unmarshal([]byte{0x00, 0x01}, storekey.Uint64())
	require.Error(t, err)
}

func TestDecoderReadsBackToBackValues(t *testing.T) {
	var buf bytes.Buffer
	enc := storekey.NewEncoder(&buf)
	require.NoError(t, enc.Encode(storekey.NewUint32(1), storekey.Uint32()))
	require.NoError(t, enc.Encode(storekey.NewString("x"), storekey.String()))
	require.NoError(t, enc.Encode(storekey.NewBool(true), storekey.Bool()))

	dec := storekey.NewDecoderBytes(buf.Bytes())

	v1, err := dec.Decode(storekey.Uint32())
	require.NoError(t, err)
	require.Equal(t, uint32(1), storekey.AsUint32(v1))

	v2, err := dec.Decode(storekey.String())
	require.NoError(t, err)
	require.Equal(t, "x", storekey.AsString(v2))

	v3, err := dec.Decode(storekey.Bool())
	require.NoError(t, err)
	require.Equal(t, true, storekey.AsBool(v3))

	require.True(t, dec.Done())
}
