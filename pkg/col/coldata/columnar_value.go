// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import "github.com/apache/arrow/go/v11/arrow"

// ColumnarValue is a function argument or result: either a Scalar that is
// logically repeated for every row, or a Column.
type ColumnarValue interface {
	// Type returns the type of the value.
	Type() arrow.DataType
	// Release drops the reference held by the value.
	Release()

	columnarValue()
}

// Scalar is a single value broadcast to any number of rows.
type Scalar struct {
	Datum
}

// Column is a full column of values.
type Column struct {
	arrow.Array
}

var _ ColumnarValue = Scalar{}
var _ ColumnarValue = Column{}

func (Scalar) columnarValue() {}
func (Column) columnarValue() {}

// Type implements the ColumnarValue interface.
func (c Column) Type() arrow.DataType {
	return c.DataType()
}

// Types returns the type of every value in args.
func Types(args []ColumnarValue) []arrow.DataType {
	typs := make([]arrow.DataType, len(args))
	for i, arg := range args {
		typs[i] = arg.Type()
	}
	return typs
}
