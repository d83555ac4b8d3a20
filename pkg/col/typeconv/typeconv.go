// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package typeconv describes how arrow types relate to each other: which
// types are nested, and which types can be coerced into which.
package typeconv

import "github.com/apache/arrow/go/v11/arrow"

// CoercionFunc reports whether every value of type from can be represented
// in type into.
type CoercionFunc func(into, from arrow.DataType) bool

// IsNull returns whether t is the untyped null type (or absent altogether).
func IsNull(t arrow.DataType) bool {
	return t == nil || t.ID() == arrow.NULL
}

// IsNested returns whether values of t are composite and have to be compared
// through a comparator rather than natively.
func IsNested(t arrow.DataType) bool {
	switch t.ID() {
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST, arrow.STRUCT,
		arrow.MAP, arrow.SPARSE_UNION, arrow.DENSE_UNION, arrow.DICTIONARY:
		return true
	}
	return false
}

// CanCoerceFrom is the default CoercionFunc. Integers widen into larger
// integers of the same or bigger range, everything numeric widens into
// floats, strings accept anything, and lists coerce element-wise.
func CanCoerceFrom(into, from arrow.DataType) bool {
	if arrow.TypeEqual(into, from) {
		return true
	}
	if IsNull(from) {
		return true
	}
	switch into.ID() {
	case arrow.INT8:
		return false
	case arrow.INT16:
		return oneOf(from, arrow.INT8, arrow.UINT8)
	case arrow.INT32:
		return oneOf(from, arrow.INT8, arrow.INT16, arrow.UINT8, arrow.UINT16)
	case arrow.INT64:
		return oneOf(from, arrow.INT8, arrow.INT16, arrow.INT32,
			arrow.UINT8, arrow.UINT16, arrow.UINT32)
	case arrow.UINT8:
		return false
	case arrow.UINT16:
		return oneOf(from, arrow.UINT8)
	case arrow.UINT32:
		return oneOf(from, arrow.UINT8, arrow.UINT16)
	case arrow.UINT64:
		return oneOf(from, arrow.UINT8, arrow.UINT16, arrow.UINT32)
	case arrow.FLOAT32:
		return isInteger(from) || from.ID() == arrow.FLOAT32
	case arrow.FLOAT64:
		return isInteger(from) || oneOf(from, arrow.FLOAT32, arrow.FLOAT64, arrow.DECIMAL128)
	case arrow.TIMESTAMP:
		return oneOf(from, arrow.TIMESTAMP, arrow.DATE32, arrow.STRING, arrow.LARGE_STRING)
	case arrow.STRING, arrow.LARGE_STRING:
		return true
	case arrow.LIST:
		elem := into.(*arrow.ListType).Elem()
		switch f := from.(type) {
		case *arrow.ListType:
			return CanCoerceFrom(elem, f.Elem())
		case *arrow.FixedSizeListType:
			return CanCoerceFrom(elem, f.Elem())
		}
	}
	return false
}

func isInteger(t arrow.DataType) bool {
	return oneOf(t, arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64)
}

func oneOf(t arrow.DataType, ids ...arrow.Type) bool {
	for _, id := range ids {
		if t.ID() == id {
			return true
		}
	}
	return false
}
