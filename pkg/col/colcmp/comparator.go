// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package colcmp builds row comparators over pairs of arrow arrays.
package colcmp

import (
	"bytes"
	"cmp"
	"math"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/decimal128"
	"github.com/apache/arrow/go/v11/arrow/float16"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/errors"
)

// SortOptions configures a Comparator. The zero value orders ascending with
// nulls last.
type SortOptions uint8

const (
	// Descending reverses the order of non-null values.
	Descending SortOptions = 1 << iota
	// NullsFirst orders nulls before every non-null value.
	NullsFirst
)

// Comparator compares row i of the left array with row j of the right array
// and returns -1, 0 or +1.
type Comparator func(i, j int) int

// MakeComparator returns a Comparator over left and right, which must have
// the same type.
func MakeComparator(left, right arrow.Array, opts SortOptions) (Comparator, error) {
	if !arrow.TypeEqual(left.DataType(), right.DataType()) {
		return nil, pgerror.Newf(pgcode.FeatureNotSupported,
			"cannot compare arrays of different types %s and %s",
			errors.Safe(typeconv.TypeString(left.DataType())),
			errors.Safe(typeconv.TypeString(right.DataType())))
	}
	values, err := makeValueComparator(left, right, opts.child())
	if err != nil {
		return nil, err
	}
	nullOrder := 1
	if opts&NullsFirst != 0 {
		nullOrder = -1
	}
	descending := opts&Descending != 0
	return func(i, j int) int {
		switch leftNull, rightNull := left.IsNull(i), right.IsNull(j); {
		case leftNull && rightNull:
			return 0
		case leftNull:
			return nullOrder
		case rightNull:
			return -nullOrder
		}
		c := values(i, j)
		if descending {
			return -c
		}
		return c
	}, nil
}

// child returns the options for the elements and fields of nested values.
// Children compare ascending and the parent reverses the whole result, so
// under Descending the child null placement is flipped.
func (opts SortOptions) child() SortOptions {
	nullsFirst := opts&NullsFirst != 0
	descending := opts&Descending != 0
	if nullsFirst != descending {
		return NullsFirst
	}
	return 0
}

// makeValueComparator compares two non-null rows in ascending order. Floats
// follow the IEEE 754 total order. Nested values are compared through child
// comparators built with childOpts.
func makeValueComparator(left, right arrow.Array, childOpts SortOptions) (Comparator, error) {
	switch l := left.(type) {
	case *array.Null:
		return func(int, int) int { return 0 }, nil
	case *array.Boolean:
		r := right.(*array.Boolean)
		return func(i, j int) int { return compareBool(l.Value(i), r.Value(j)) }, nil
	case *array.Int8:
		return ordered(l.Value, right.(*array.Int8).Value), nil
	case *array.Int16:
		return ordered(l.Value, right.(*array.Int16).Value), nil
	case *array.Int32:
		return ordered(l.Value, right.(*array.Int32).Value), nil
	case *array.Int64:
		return ordered(l.Value, right.(*array.Int64).Value), nil
	case *array.Uint8:
		return ordered(l.Value, right.(*array.Uint8).Value), nil
	case *array.Uint16:
		return ordered(l.Value, right.(*array.Uint16).Value), nil
	case *array.Uint32:
		return ordered(l.Value, right.(*array.Uint32).Value), nil
	case *array.Uint64:
		return ordered(l.Value, right.(*array.Uint64).Value), nil
	case *array.Float16:
		r := right.(*array.Float16)
		return func(i, j int) int { return compareFloat16(l.Value(i), r.Value(j)) }, nil
	case *array.Float32:
		r := right.(*array.Float32)
		return func(i, j int) int { return compareFloat32(l.Value(i), r.Value(j)) }, nil
	case *array.Float64:
		r := right.(*array.Float64)
		return func(i, j int) int { return compareFloat64(l.Value(i), r.Value(j)) }, nil
	case *array.String:
		return ordered(l.Value, right.(*array.String).Value), nil
	case *array.LargeString:
		return ordered(l.Value, right.(*array.LargeString).Value), nil
	case *array.Binary:
		r := right.(*array.Binary)
		return func(i, j int) int { return bytes.Compare(l.Value(i), r.Value(j)) }, nil
	case *array.LargeBinary:
		r := right.(*array.LargeBinary)
		return func(i, j int) int { return bytes.Compare(l.Value(i), r.Value(j)) }, nil
	case *array.FixedSizeBinary:
		r := right.(*array.FixedSizeBinary)
		return func(i, j int) int { return bytes.Compare(l.Value(i), r.Value(j)) }, nil
	case *array.Date32:
		return ordered(l.Value, right.(*array.Date32).Value), nil
	case *array.Date64:
		return ordered(l.Value, right.(*array.Date64).Value), nil
	case *array.Time32:
		return ordered(l.Value, right.(*array.Time32).Value), nil
	case *array.Time64:
		return ordered(l.Value, right.(*array.Time64).Value), nil
	case *array.Timestamp:
		return ordered(l.Value, right.(*array.Timestamp).Value), nil
	case *array.Duration:
		return ordered(l.Value, right.(*array.Duration).Value), nil
	case *array.Decimal128:
		r := right.(*array.Decimal128)
		return func(i, j int) int { return compareDecimal128(l.Value(i), r.Value(j)) }, nil
	case *array.List:
		r := right.(*array.List)
		return makeListComparator(l.ListValues(), r.ListValues(),
			int32Offsets(l), int32Offsets(r), childOpts)
	case *array.LargeList:
		r := right.(*array.LargeList)
		return makeListComparator(l.ListValues(), r.ListValues(),
			int64Offsets(l), int64Offsets(r), childOpts)
	case *array.FixedSizeList:
		r := right.(*array.FixedSizeList)
		return makeListComparator(l.ListValues(), r.ListValues(),
			fixedOffsets(l), fixedOffsets(r), childOpts)
	case *array.Struct:
		return makeStructComparator(l, right.(*array.Struct), childOpts)
	}
	return nil, pgerror.Newf(pgcode.FeatureNotSupported,
		"comparison of %s values is not supported",
		errors.Safe(typeconv.TypeString(left.DataType())))
}

func ordered[T cmp.Ordered](left func(int) T, right func(int) T) Comparator {
	return func(i, j int) int { return cmp.Compare(left(i), right(j)) }
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

// compareFloat64 orders floats by the IEEE 754 totalOrder predicate:
// -NaN < -Inf < ... < -0 < +0 < ... < +Inf < +NaN.
func compareFloat64(a, b float64) int {
	return cmp.Compare(totalOrderKey64(a), totalOrderKey64(b))
}

func compareFloat32(a, b float32) int {
	return cmp.Compare(totalOrderKey32(a), totalOrderKey32(b))
}

func compareFloat16(a, b float16.Num) int {
	return compareFloat32(a.Float32(), b.Float32())
}

// totalOrderKey64 maps f to an integer whose signed order is the total
// order of f. Negative values have their magnitude bits flipped.
func totalOrderKey64(f float64) int64 {
	k := int64(math.Float64bits(f))
	return k ^ int64(uint64(k>>63)>>1)
}

func totalOrderKey32(f float32) int32 {
	k := int32(math.Float32bits(f))
	return k ^ int32(uint32(k>>31)>>1)
}

func compareDecimal128(a, b decimal128.Num) int {
	if c := cmp.Compare(a.HighBits(), b.HighBits()); c != 0 {
		return c
	}
	return cmp.Compare(a.LowBits(), b.LowBits())
}

// offsetsFn returns the [start, end) range of row i in the child array.
type offsetsFn func(i int) (start, end int)

func int32Offsets(arr arrow.Array) offsetsFn {
	data := arr.Data()
	offsets := arrow.Int32Traits.CastFromBytes(offsetBytes(data))
	base := data.Offset()
	return func(i int) (int, int) {
		return int(offsets[base+i]), int(offsets[base+i+1])
	}
}

func int64Offsets(arr arrow.Array) offsetsFn {
	data := arr.Data()
	offsets := arrow.Int64Traits.CastFromBytes(offsetBytes(data))
	base := data.Offset()
	return func(i int) (int, int) {
		return int(offsets[base+i]), int(offsets[base+i+1])
	}
}

func offsetBytes(data arrow.ArrayData) []byte {
	if buf := data.Buffers()[1]; buf != nil {
		return buf.Bytes()
	}
	return nil
}

func fixedOffsets(arr *array.FixedSizeList) offsetsFn {
	n := int(arr.DataType().(*arrow.FixedSizeListType).Len())
	base := arr.Data().Offset()
	return func(i int) (int, int) {
		return (base + i) * n, (base + i + 1) * n
	}
}

// makeListComparator orders lists lexicographically by element, and a list
// that is a prefix of another before it.
func makeListComparator(
	leftValues, rightValues arrow.Array, leftOffsets, rightOffsets offsetsFn, opts SortOptions,
) (Comparator, error) {
	elems, err := MakeComparator(leftValues, rightValues, opts)
	if err != nil {
		return nil, err
	}
	return func(i, j int) int {
		ls, le := leftOffsets(i)
		rs, re := rightOffsets(j)
		for ls < le && rs < re {
			if c := elems(ls, rs); c != 0 {
				return c
			}
			ls++
			rs++
		}
		return cmp.Compare(le-ls, re-rs)
	}, nil
}

// makeStructComparator orders structs field by field.
func makeStructComparator(left, right *array.Struct, opts SortOptions) (Comparator, error) {
	fields := make([]Comparator, left.NumField())
	for f := range fields {
		c, err := MakeComparator(left.Field(f), right.Field(f), opts)
		if err != nil {
			return nil, err
		}
		fields[f] = c
	}
	return func(i, j int) int {
		for _, c := range fields {
			if r := c(i, j); r != 0 {
				return r
			}
		}
		return 0
	}, nil
}

// CompareDatums orders two non-null datums of the same non-nested type.
func CompareDatums(a, b coldata.Datum) (int, error) {
	if !arrow.TypeEqual(a.Type(), b.Type()) {
		return 0, pgerror.Newf(pgcode.FeatureNotSupported,
			"cannot compare values of different types %s and %s",
			errors.Safe(typeconv.TypeString(a.Type())),
			errors.Safe(typeconv.TypeString(b.Type())))
	}
	switch x := a.Value().(type) {
	case bool:
		if y, ok := b.Value().(bool); ok {
			return compareBool(x, y), nil
		}
	case int8:
		return compareAs(x, b)
	case int16:
		return compareAs(x, b)
	case int32:
		return compareAs(x, b)
	case int64:
		return compareAs(x, b)
	case uint8:
		return compareAs(x, b)
	case uint16:
		return compareAs(x, b)
	case uint32:
		return compareAs(x, b)
	case uint64:
		return compareAs(x, b)
	case float32:
		if y, ok := b.Value().(float32); ok {
			return compareFloat32(x, y), nil
		}
	case float64:
		if y, ok := b.Value().(float64); ok {
			return compareFloat64(x, y), nil
		}
	case string:
		return compareAs(x, b)
	case arrow.Date32:
		return compareAs(x, b)
	case arrow.Date64:
		return compareAs(x, b)
	case arrow.Time32:
		return compareAs(x, b)
	case arrow.Time64:
		return compareAs(x, b)
	case arrow.Timestamp:
		return compareAs(x, b)
	case arrow.Duration:
		return compareAs(x, b)
	case float16.Num:
		if y, ok := b.Value().(float16.Num); ok {
			return compareFloat16(x, y), nil
		}
	case []byte:
		if y, ok := b.Value().([]byte); ok {
			return bytes.Compare(x, y), nil
		}
	case decimal128.Num:
		if y, ok := b.Value().(decimal128.Num); ok {
			return compareDecimal128(x, y), nil
		}
	default:
		return 0, pgerror.Newf(pgcode.FeatureNotSupported,
			"comparison of %s values is not supported",
			errors.Safe(typeconv.TypeString(a.Type())))
	}
	return 0, mismatchError(a, b)
}

func compareAs[T cmp.Ordered](x T, b coldata.Datum) (int, error) {
	y, ok := b.Value().(T)
	if !ok {
		return 0, mismatchError(coldata.MakeDatum(nil, x), b)
	}
	return cmp.Compare(x, y), nil
}

func mismatchError(a, b coldata.Datum) error {
	return pgerror.Newf(pgcode.FeatureNotSupported,
		"cannot compare values %T and %T", a.Value(), b.Value())
}
