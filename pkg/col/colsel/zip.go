// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package colsel selects rows out of pairs of arrow arrays.
package colsel

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/errors"
)

// Zip returns a new array with the length of mask that holds lhs[i] where
// mask[i] is true and rhs[i] where it is false or null. lhs and rhs must
// have the same type and be at least as long as mask.
//
// Rows are copied in runs: every maximal run of rows taken from the same
// side is a zero-copy slice, and the runs are concatenated. A mask that
// takes every row from one side returns a slice of that side.
func Zip(mem memory.Allocator, mask *array.Boolean, lhs, rhs arrow.Array) (arrow.Array, error) {
	if !arrow.TypeEqual(lhs.DataType(), rhs.DataType()) {
		return nil, errors.AssertionFailedf("cannot zip %s with %s",
			errors.Safe(typeconv.TypeString(lhs.DataType())),
			errors.Safe(typeconv.TypeString(rhs.DataType())))
	}
	n := mask.Len()
	if lhs.Len() < n || rhs.Len() < n {
		return nil, errors.AssertionFailedf("mask of length %d is longer than inputs of lengths %d and %d",
			n, lhs.Len(), rhs.Len())
	}
	if n == 0 {
		return array.NewSlice(lhs, 0, 0), nil
	}

	var runs []arrow.Array
	defer func() {
		for _, r := range runs {
			r.Release()
		}
	}()
	start, fromLeft := 0, selectsLeft(mask, 0)
	for i := 1; i <= n; i++ {
		if i < n && selectsLeft(mask, i) == fromLeft {
			continue
		}
		side := rhs
		if fromLeft {
			side = lhs
		}
		runs = append(runs, array.NewSlice(side, int64(start), int64(i)))
		if i < n {
			start, fromLeft = i, !fromLeft
		}
	}
	if len(runs) == 1 {
		res := runs[0]
		runs = nil
		return res, nil
	}
	return array.Concatenate(runs, mem)
}

func selectsLeft(mask *array.Boolean, i int) bool {
	return mask.IsValid(i) && mask.Value(i)
}
