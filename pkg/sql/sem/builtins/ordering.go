// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/col/colcmp"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/col/colsel"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
)

// direction selects which of two values an extremum keeps. NULL always
// loses, and ties keep the left value.
type direction int8

const (
	greater direction = iota
	lesser
)

// sortOptions is the comparator configuration of the direction. Ordering
// nulls on the losing side makes a null left row lose to any right row.
func (d direction) sortOptions() colcmp.SortOptions {
	if d == greater {
		return colcmp.NullsFirst
	}
	return 0
}

// keepLeft interprets the ordering of a left value relative to a right one.
func (d direction) keepLeft(c int) bool {
	if d == greater {
		return c >= 0
	}
	return c <= 0
}

// keep returns whichever of a and b wins under the direction. No new value
// is allocated; the result is a or b itself.
func (d direction) keep(a, b coldata.Datum) (coldata.Datum, error) {
	if a.IsNull() {
		return b, nil
	}
	if b.IsNull() {
		return a, nil
	}
	var c int
	if typeconv.IsNested(a.Type()) {
		cmp, err := colcmp.MakeComparator(a.Array(), b.Array(), d.sortOptions())
		if err != nil {
			return coldata.Datum{}, err
		}
		c = cmp(0, 0)
	} else {
		var err error
		if c, err = colcmp.CompareDatums(a, b); err != nil {
			return coldata.Datum{}, err
		}
	}
	if d.keepLeft(c) {
		return a, nil
	}
	return b, nil
}

// mask returns a boolean array that is true for every row where lhs wins
// over rhs. It is as long as the shorter input.
func (d direction) mask(mem memory.Allocator, lhs, rhs arrow.Array) (*array.Boolean, error) {
	cmp, err := colcmp.MakeComparator(lhs, rhs, d.sortOptions())
	if err != nil {
		return nil, err
	}
	n := min(lhs.Len(), rhs.Len())
	b := array.NewBooleanBuilder(mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.UnsafeAppend(d.keepLeft(cmp(i, i)))
	}
	return b.NewBooleanArray(), nil
}

// combine merges lhs and rhs row by row under the direction.
func (d direction) combine(mem memory.Allocator, lhs, rhs arrow.Array) (arrow.Array, error) {
	mask, err := d.mask(mem, lhs, rhs)
	if err != nil {
		return nil, err
	}
	defer mask.Release()
	return Merge(mem, lhs, rhs, mask)
}

// KeepGreater returns the greater of a and b. NULL loses to any value, and
// a is returned when both are equal.
func KeepGreater(a, b coldata.Datum) (coldata.Datum, error) {
	return greater.keep(a, b)
}

// KeepLesser returns the lesser of a and b. NULL loses to any value, and a
// is returned when both are equal.
func KeepLesser(a, b coldata.Datum) (coldata.Datum, error) {
	return lesser.keep(a, b)
}

// KeepGreaterMask returns, for every row of the shorter input, whether lhs
// is greater than or equal to rhs, with NULL smaller than any value.
func KeepGreaterMask(mem memory.Allocator, lhs, rhs arrow.Array) (*array.Boolean, error) {
	return greater.mask(mem, lhs, rhs)
}

// KeepLesserMask returns, for every row of the shorter input, whether lhs
// is less than or equal to rhs, with NULL greater than any value.
func KeepLesserMask(mem memory.Allocator, lhs, rhs arrow.Array) (*array.Boolean, error) {
	return lesser.mask(mem, lhs, rhs)
}

// Merge returns a new array holding lhs[i] where mask[i] is true and rhs[i]
// otherwise.
func Merge(mem memory.Allocator, lhs, rhs arrow.Array, mask *array.Boolean) (arrow.Array, error) {
	return colsel.Zip(mem, mask, lhs, rhs)
}
