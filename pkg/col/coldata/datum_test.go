// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import (
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/require"
)

func TestDatumToArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	testCases := []struct {
		d        Datum
		expected string
	}{
		{MakeInt64(5), `[5,5,5]`},
		{MakeString("a"), `["a","a","a"]`},
		{MakeBool(true), `[true,true,true]`},
		{MakeFloat64(1.5), `[1.5,1.5,1.5]`},
		{NullDatum(arrow.PrimitiveTypes.Int32), `[null,null,null]`},
		{NullDatum(arrow.Null), `[null,null,null]`},
	}
	for _, tc := range testCases {
		t.Run(tc.d.String(), func(t *testing.T) {
			arr, err := tc.d.ToArray(mem, 3)
			require.NoError(t, err)
			defer arr.Release()
			require.Equal(t, 3, arr.Len())
			require.True(t, arrow.TypeEqual(tc.d.Type(), arr.DataType()))
			b, err := arr.MarshalJSON()
			require.NoError(t, err)
			require.JSONEq(t, tc.expected, string(b))
		})
	}
}

func TestDatumToArrayMismatch(t *testing.T) {
	d := MakeDatum(arrow.PrimitiveTypes.Int64, "five")
	_, err := d.ToArray(memory.NewGoAllocator(), 2)
	require.Error(t, err)
}

func TestNestedDatum(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	typ := arrow.ListOf(arrow.PrimitiveTypes.Int64)
	arr, _, err := array.FromJSON(mem, typ, stringReader(`[[1,2],null,[3]]`))
	require.NoError(t, err)
	defer arr.Release()

	d, err := DatumFromArray(arr, 2)
	require.NoError(t, err)
	defer d.Release()
	require.False(t, d.IsNull())
	require.Equal(t, "[3]", d.String())

	broadcast, err := d.ToArray(mem, 2)
	require.NoError(t, err)
	defer broadcast.Release()
	b, err := broadcast.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `[[3],[3]]`, string(b))

	empty, err := d.ToArray(mem, 0)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Len())
	empty.Release()

	null, err := DatumFromArray(arr, 1)
	require.NoError(t, err)
	require.True(t, null.IsNull())
	require.Nil(t, null.Array())
	require.Equal(t, "NULL", null.String())
}

func TestDatumFromArray(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	arr, _, err := array.FromJSON(mem, arrow.BinaryTypes.String, stringReader(`["x",null]`))
	require.NoError(t, err)
	defer arr.Release()

	d, err := DatumFromArray(arr, 0)
	require.NoError(t, err)
	require.Equal(t, "x", d.Value())
	require.Equal(t, `"x"`, d.String())

	d, err = DatumFromArray(arr, 1)
	require.NoError(t, err)
	require.True(t, d.IsNull())
	require.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, d.Type()))
}

func TestMakeDecimal(t *testing.T) {
	typ := &arrow.Decimal128Type{Precision: 10, Scale: 2}
	dec, _, err := apd.NewFromString("-123.456")
	require.NoError(t, err)
	d, err := MakeDecimal(dec, typ)
	require.NoError(t, err)
	require.Equal(t, "-123.46", d.String())

	back, ok := d.Decimal()
	require.True(t, ok)
	require.Equal(t, "-123.46", back.String())

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	arr, err := d.ToArray(mem, 2)
	require.NoError(t, err)
	defer arr.Release()
	fromArr, err := DatumFromArray(arr, 1)
	require.NoError(t, err)
	require.Equal(t, d.Value(), fromArr.Value())

	big, _, err := apd.NewFromString("123456789012")
	require.NoError(t, err)
	_, err = MakeDecimal(big, typ)
	require.Error(t, err)
}

func TestColumnarValue(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	arr, _, err := array.FromJSON(mem, arrow.PrimitiveTypes.Int64, stringReader(`[1,2]`))
	require.NoError(t, err)

	args := []ColumnarValue{Scalar{MakeString("a")}, Column{arr}, Scalar{NullDatum(arrow.Null)}}
	typs := Types(args)
	require.Equal(t, arrow.BinaryTypes.String, typs[0])
	require.Equal(t, arrow.PrimitiveTypes.Int64, typs[1])
	require.Equal(t, arrow.DataType(arrow.Null), typs[2])
	for _, arg := range args {
		arg.Release()
	}
}

func TestTemporalDatumRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	for _, d := range []Datum{
		MakeDatum(arrow.FixedWidthTypes.Date32, arrow.Date32(3)),
		MakeDatum(&arrow.TimestampType{Unit: arrow.Millisecond}, arrow.Timestamp(1700000000000)),
		MakeDatum(&arrow.DurationType{Unit: arrow.Second}, arrow.Duration(-5)),
		MakeDatum(arrow.BinaryTypes.Binary, []byte{0xde, 0xad}),
		MakeDatum(arrow.PrimitiveTypes.Uint16, uint16(7)),
	} {
		t.Run(d.String(), func(t *testing.T) {
			arr, err := d.ToArray(mem, 1)
			require.NoError(t, err)
			defer arr.Release()
			back, err := DatumFromArray(arr, 0)
			require.NoError(t, err)
			require.Equal(t, d.Value(), back.Value())
		})
	}
}

func TestNullTypedDatum(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	arr := array.NewNull(2)
	defer arr.Release()
	d, err := DatumFromArray(arr, 1)
	require.NoError(t, err)
	require.True(t, d.IsNull())
	require.Equal(t, arrow.Null, d.Type())
	require.Equal(t, "NULL", d.String())

	b, err := MarshalArrayJSON(arr)
	require.NoError(t, err)
	require.Equal(t, "[null,null]", string(b))
}

func TestMarshalArrayJSONSingleLine(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	for _, tc := range []struct {
		typ  arrow.DataType
		json string
	}{
		{arrow.ListOf(arrow.PrimitiveTypes.Int64), `[[1,2],[3],null]`},
		{arrow.StructOf(arrow.Field{Name: "a", Type: arrow.PrimitiveTypes.Int64, Nullable: true}),
			`[{"a":1},{"a":null}]`},
	} {
		arr, _, err := array.FromJSON(mem, tc.typ, stringReader(tc.json))
		require.NoError(t, err)
		b, err := MarshalArrayJSON(arr)
		arr.Release()
		require.NoError(t, err)
		require.Equal(t, tc.json, string(b))
	}
}
