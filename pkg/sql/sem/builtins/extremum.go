// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"context"
	"time"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/sql/sem/eval"
	"github.com/cockroachdb/colfn/pkg/sql/sem/tree"
	"github.com/cockroachdb/colfn/pkg/sql/sem/volatility"
	"github.com/cockroachdb/colfn/pkg/util/log"
	"github.com/cockroachdb/errors"
)

// extremumMinArgs is the minimum number of arguments of greatest and least.
const extremumMinArgs = 2

var lengthMismatchLogEvery = log.Every(10 * time.Second)

// extremumFunc implements greatest and least: per row, the greatest (or
// least) non-null value among all arguments.
type extremumFunc struct {
	name string
	dir  direction
}

var _ tree.ScalarFunc = (*extremumFunc)(nil)

// Name implements the tree.ScalarFunc interface.
func (f *extremumFunc) Name() string { return f.name }

// Signature implements the tree.ScalarFunc interface.
func (f *extremumFunc) Signature() tree.Signature {
	return tree.Signature{
		Variadic:   true,
		MinArgs:    extremumMinArgs,
		Volatility: volatility.Immutable,
	}
}

// ReturnType implements the tree.ScalarFunc interface.
func (f *extremumFunc) ReturnType(
	evalCtx *eval.Context, argTypes []arrow.DataType,
) (arrow.DataType, error) {
	if err := tree.CheckArity(f.name, extremumMinArgs, len(argTypes)); err != nil {
		return nil, err
	}
	return tree.FindCommonType(argTypes, evalCtx.Coercion())
}

// CoerceTypes implements the tree.ScalarFunc interface.
func (f *extremumFunc) CoerceTypes(
	evalCtx *eval.Context, argTypes []arrow.DataType,
) ([]arrow.DataType, error) {
	return tree.CoerceArgumentTypes(f.name, extremumMinArgs, argTypes, evalCtx.Coercion())
}

// Invoke implements the tree.ScalarFunc interface.
//
// Scalars are collapsed into a single scalar first. If there are no columns
// that scalar is the result; otherwise it is broadcast and merged into the
// first column, and the remaining columns are folded in argument order.
// Ties keep the left operand of each step: the earlier scalar during the
// collapse, the first column over the broadcast scalar, and the accumulated
// column over each later column.
func (f *extremumFunc) Invoke(
	ctx context.Context, evalCtx *eval.Context, args []coldata.ColumnarValue,
) (_ coldata.ColumnarValue, retErr error) {
	if err := tree.CheckArity(f.name, extremumMinArgs, len(args)); err != nil {
		return nil, err
	}
	mem := evalCtx.Mem()

	promoted, err := promoteNulls(mem, args)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, arr := range promoted.owned {
			arr.Release()
		}
	}()

	var scalars []coldata.Datum
	var cols []arrow.Array
	for _, arg := range promoted.values {
		switch arg := arg.(type) {
		case coldata.Scalar:
			scalars = append(scalars, arg.Datum)
		case coldata.Column:
			cols = append(cols, arg.Array)
		default:
			return nil, errors.AssertionFailedf("unexpected argument %T", arg)
		}
	}

	var merged coldata.Datum
	if len(scalars) > 0 {
		merged = scalars[0]
		for _, s := range scalars[1:] {
			if merged, err = f.dir.keep(merged, s); err != nil {
				return nil, err
			}
		}
	}
	log.VEventf(ctx, 2, "%s: %d scalars collapsed to %s, %d columns to fold",
		f.name, len(scalars), merged, len(cols))

	if len(cols) == 0 {
		merged.Retain()
		return coldata.Scalar{Datum: merged}, nil
	}

	largest := cols[0]
	largest.Retain()
	defer func() {
		if retErr != nil {
			largest.Release()
		}
	}()
	if len(scalars) > 0 {
		broadcast, err := merged.ToArray(mem, largest.Len())
		if err != nil {
			return nil, err
		}
		next, err := f.dir.combine(mem, largest, broadcast)
		broadcast.Release()
		if err != nil {
			return nil, err
		}
		largest.Release()
		largest = next
	}
	for i, col := range cols[1:] {
		if err := f.checkLengths(ctx, evalCtx, largest.Len(), col.Len(), i+1); err != nil {
			return nil, err
		}
		next, err := f.dir.combine(mem, largest, col)
		if err != nil {
			return nil, err
		}
		largest.Release()
		largest = next
	}
	return coldata.Column{Array: largest}, nil
}

// checkLengths reports columns of different lengths. In strict mode this is
// an error, otherwise the fold keeps the shorter length.
func (f *extremumFunc) checkLengths(
	ctx context.Context, evalCtx *eval.Context, accLen, colLen, colIdx int,
) error {
	if accLen == colLen {
		return nil
	}
	if evalCtx.StrictLengths {
		return errors.AssertionFailedf("%s: column %d has %d rows, expected %d",
			errors.Safe(f.name), colIdx, colLen, accLen)
	}
	if lengthMismatchLogEvery.ShouldLog() {
		log.Warningf(ctx, "%s: column %d has %d rows, expected %d; truncating to %d rows",
			f.name, colIdx, colLen, accLen, min(accLen, colLen))
	}
	return nil
}

// promotedArgs are arguments after null promotion. owned holds the arrays
// allocated by the promotion.
type promotedArgs struct {
	values []coldata.ColumnarValue
	owned  []arrow.Array
}

// promoteNulls gives arguments of the null type the type of the first typed
// argument, so that they can be compared with it. The arguments are not
// modified.
func promoteNulls(mem memory.Allocator, args []coldata.ColumnarValue) (promotedArgs, error) {
	res := promotedArgs{values: args}
	var typ arrow.DataType
	for _, arg := range args {
		if t := arg.Type(); !typeconv.IsNull(t) {
			typ = t
			break
		}
	}
	if typ == nil {
		return res, nil
	}
	copied := false
	for i, arg := range args {
		if !typeconv.IsNull(arg.Type()) {
			continue
		}
		if !copied {
			res.values = append([]coldata.ColumnarValue(nil), args...)
			copied = true
		}
		switch arg := arg.(type) {
		case coldata.Scalar:
			res.values[i] = coldata.Scalar{Datum: coldata.NullDatum(typ)}
		case coldata.Column:
			nulls, err := coldata.NullDatum(typ).ToArray(mem, arg.Len())
			if err != nil {
				for _, a := range res.owned {
					a.Release()
				}
				return promotedArgs{}, err
			}
			res.owned = append(res.owned, nulls)
			res.values[i] = coldata.Column{Array: nulls}
		}
	}
	return res, nil
}
