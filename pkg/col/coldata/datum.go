// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/decimal128"
	"github.com/apache/arrow/go/v11/arrow/float16"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/errors"
)

// Datum is a single typed, nullable value. The value is held in the native
// Go representation used by the arrow array of the same type (int64,
// string, arrow.Date32, decimal128.Num, ...), except for nested types where
// it is a one-row arrow.Array. A Datum without a value is NULL.
type Datum struct {
	typ arrow.DataType
	val interface{}
}

// MakeDatum returns a datum of type t holding v. v must be the native value
// of t, or nil for NULL.
func MakeDatum(t arrow.DataType, v interface{}) Datum {
	if t == nil {
		t = arrow.Null
	}
	return Datum{typ: t, val: v}
}

// NullDatum returns a NULL of type t.
func NullDatum(t arrow.DataType) Datum {
	return MakeDatum(t, nil)
}

// MakeBool returns a bool datum.
func MakeBool(v bool) Datum {
	return Datum{typ: arrow.FixedWidthTypes.Boolean, val: v}
}

// MakeInt64 returns an int64 datum.
func MakeInt64(v int64) Datum {
	return Datum{typ: arrow.PrimitiveTypes.Int64, val: v}
}

// MakeFloat64 returns a float64 datum.
func MakeFloat64(v float64) Datum {
	return Datum{typ: arrow.PrimitiveTypes.Float64, val: v}
}

// MakeString returns a utf8 datum.
func MakeString(v string) Datum {
	return Datum{typ: arrow.BinaryTypes.String, val: v}
}

// MakeDecimal rounds d to the scale of t and returns it as a decimal128
// datum. It fails if d does not fit into the precision of t.
func MakeDecimal(d *apd.Decimal, t *arrow.Decimal128Type) (Datum, error) {
	var q apd.Decimal
	ctx := apd.BaseContext.WithPrecision(uint32(t.Precision))
	ctx.Rounding = apd.RoundHalfUp
	if _, err := ctx.Quantize(&q, d, -t.Scale); err != nil {
		return Datum{}, pgerror.Wrapf(err, pgcode.InvalidParameterValue,
			"value %s does not fit into decimal128(%d,%d)", d, t.Precision, t.Scale)
	}
	b := q.Coeff.MathBigInt()
	if q.Negative {
		b.Neg(b)
	}
	return Datum{typ: t, val: decimal128.FromBigInt(b)}, nil
}

// DatumFromArray returns the value at row i of arr. For nested types the
// datum holds a one-row slice of arr that must be released by the caller.
func DatumFromArray(arr arrow.Array, i int) (Datum, error) {
	t := arr.DataType()
	// Null arrays report every row as valid.
	if typeconv.IsNull(t) || arr.IsNull(i) {
		return NullDatum(t), nil
	}
	if typeconv.IsNested(t) {
		return Datum{typ: t, val: array.NewSlice(arr, int64(i), int64(i+1))}, nil
	}
	var v interface{}
	switch arr := arr.(type) {
	case *array.Boolean:
		v = arr.Value(i)
	case *array.Int8:
		v = arr.Value(i)
	case *array.Int16:
		v = arr.Value(i)
	case *array.Int32:
		v = arr.Value(i)
	case *array.Int64:
		v = arr.Value(i)
	case *array.Uint8:
		v = arr.Value(i)
	case *array.Uint16:
		v = arr.Value(i)
	case *array.Uint32:
		v = arr.Value(i)
	case *array.Uint64:
		v = arr.Value(i)
	case *array.Float16:
		v = arr.Value(i)
	case *array.Float32:
		v = arr.Value(i)
	case *array.Float64:
		v = arr.Value(i)
	case *array.String:
		v = arr.Value(i)
	case *array.LargeString:
		v = arr.Value(i)
	case *array.Binary:
		v = bytes.Clone(arr.Value(i))
	case *array.LargeBinary:
		v = bytes.Clone(arr.Value(i))
	case *array.FixedSizeBinary:
		v = bytes.Clone(arr.Value(i))
	case *array.Date32:
		v = arr.Value(i)
	case *array.Date64:
		v = arr.Value(i)
	case *array.Time32:
		v = arr.Value(i)
	case *array.Time64:
		v = arr.Value(i)
	case *array.Timestamp:
		v = arr.Value(i)
	case *array.Duration:
		v = arr.Value(i)
	case *array.Decimal128:
		v = arr.Value(i)
	default:
		return Datum{}, pgerror.Newf(pgcode.FeatureNotSupported,
			"unsupported type %s", errors.Safe(typeconv.TypeString(t)))
	}
	return Datum{typ: t, val: v}, nil
}

// Type returns the type of the datum.
func (d Datum) Type() arrow.DataType {
	return d.typ
}

// IsNull returns whether the datum is NULL.
func (d Datum) IsNull() bool {
	return d.val == nil
}

// Value returns the native value of the datum, or nil for NULL.
func (d Datum) Value() interface{} {
	return d.val
}

// Array returns the one-row array backing a non-NULL nested datum, and nil
// otherwise.
func (d Datum) Array() arrow.Array {
	arr, _ := d.val.(arrow.Array)
	return arr
}

// Decimal returns the value of a non-NULL decimal128 datum.
func (d Datum) Decimal() (*apd.Decimal, bool) {
	n, ok := d.val.(decimal128.Num)
	if !ok {
		return nil, false
	}
	t := d.typ.(*arrow.Decimal128Type)
	return apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(n.BigInt()), -t.Scale), true
}

// Retain adds a reference to the array backing a nested datum.
func (d Datum) Retain() {
	if arr := d.Array(); arr != nil {
		arr.Retain()
	}
}

// Release drops a reference to the array backing a nested datum.
func (d Datum) Release() {
	if arr := d.Array(); arr != nil {
		arr.Release()
	}
}

// String implements the fmt.Stringer interface.
func (d Datum) String() string {
	switch v := d.val.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		return fmt.Sprintf("\\x%x", v)
	case float16.Num:
		return v.String()
	case decimal128.Num:
		dec, _ := d.Decimal()
		return dec.String()
	case arrow.Array:
		b, err := MarshalArrayJSON(v)
		if err != nil {
			return fmt.Sprintf("<%v>", err)
		}
		return string(bytes.TrimSuffix(bytes.TrimPrefix(b, []byte("[")), []byte("]")))
	default:
		return fmt.Sprint(v)
	}
}

// ToArray broadcasts the datum into an array of n identical rows.
func (d Datum) ToArray(mem memory.Allocator, n int) (arrow.Array, error) {
	if typeconv.IsNull(d.typ) {
		return array.NewNull(n), nil
	}
	if arr := d.Array(); arr != nil {
		if n == 0 {
			return array.NewSlice(arr, 0, 0), nil
		}
		copies := make([]arrow.Array, n)
		for i := range copies {
			copies[i] = arr
		}
		return array.Concatenate(copies, mem)
	}

	b := array.NewBuilder(mem, d.typ)
	defer b.Release()
	b.Reserve(n)
	if d.IsNull() {
		for i := 0; i < n; i++ {
			b.AppendNull()
		}
		return b.NewArray(), nil
	}
	var err error
	switch b := b.(type) {
	case *array.BooleanBuilder:
		err = appendN(n, d.val, b.Append)
	case *array.Int8Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Int16Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Int32Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Int64Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Uint8Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Uint16Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Uint32Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Uint64Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Float16Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Float32Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Float64Builder:
		err = appendN(n, d.val, b.Append)
	case *array.StringBuilder:
		err = appendN(n, d.val, b.Append)
	case *array.LargeStringBuilder:
		err = appendN(n, d.val, b.Append)
	case *array.BinaryBuilder:
		err = appendN(n, d.val, b.Append)
	case *array.FixedSizeBinaryBuilder:
		err = appendN(n, d.val, b.Append)
	case *array.Date32Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Date64Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Time32Builder:
		err = appendN(n, d.val, b.Append)
	case *array.Time64Builder:
		err = appendN(n, d.val, b.Append)
	case *array.TimestampBuilder:
		err = appendN(n, d.val, b.Append)
	case *array.DurationBuilder:
		err = appendN(n, d.val, b.Append)
	case *array.Decimal128Builder:
		err = appendN(n, d.val, b.Append)
	default:
		return nil, pgerror.Newf(pgcode.FeatureNotSupported,
			"cannot broadcast value of type %s", errors.Safe(typeconv.TypeString(d.typ)))
	}
	if err != nil {
		return nil, err
	}
	return b.NewArray(), nil
}

func appendN[T any](n int, v interface{}, appendFn func(T)) error {
	x, ok := v.(T)
	if !ok {
		return errors.AssertionFailedf("datum value %T does not match builder value %T", v, x)
	}
	for i := 0; i < n; i++ {
		appendFn(x)
	}
	return nil
}

// MarshalArrayJSON returns the JSON array form of arr on a single line.
func MarshalArrayJSON(arr arrow.Array) ([]byte, error) {
	if typeconv.IsNull(arr.DataType()) {
		return json.Marshal(make([]interface{}, arr.Len()))
	}
	b, err := arr.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshaling array")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, errors.Wrap(err, "compacting array")
	}
	return buf.Bytes(), nil
}
