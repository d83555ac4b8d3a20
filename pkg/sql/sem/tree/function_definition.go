// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"context"
	"fmt"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/sql/sem/eval"
	"github.com/cockroachdb/colfn/pkg/sql/sem/volatility"
)

// Signature describes the arguments accepted by a function.
type Signature struct {
	// Variadic is set when the function accepts any number of arguments of
	// any type, subject to MinArgs.
	Variadic bool
	// MinArgs is the minimum number of arguments.
	MinArgs int
	// Volatility is consulted by planners to decide whether calls can be
	// folded.
	Volatility volatility.V
}

// String implements the fmt.Stringer interface.
func (s Signature) String() string {
	if s.Variadic {
		return fmt.Sprintf("variadic(any, min=%d)", s.MinArgs)
	}
	return fmt.Sprintf("fixed(%d)", s.MinArgs)
}

// ScalarFunc is a function that maps its arguments to one value per row.
//
// A planner resolves the return type with ReturnType, asks CoerceTypes for
// the type each argument must be cast to, casts the arguments and finally
// calls Invoke. Arguments of the null type may be passed to Invoke without
// a cast.
type ScalarFunc interface {
	// Name returns the name the function is registered under.
	Name() string
	// Signature returns the arguments accepted by the function.
	Signature() Signature
	// ReturnType returns the type of the result for the given argument types.
	ReturnType(evalCtx *eval.Context, argTypes []arrow.DataType) (arrow.DataType, error)
	// CoerceTypes returns the type every argument must be cast to before
	// Invoke.
	CoerceTypes(evalCtx *eval.Context, argTypes []arrow.DataType) ([]arrow.DataType, error)
	// Invoke evaluates the function. The result is owned by the caller; the
	// arguments are not released.
	Invoke(ctx context.Context, evalCtx *eval.Context, args []coldata.ColumnarValue) (coldata.ColumnarValue, error)
}

// FunctionDefinition pairs a function with the properties a planner reads
// without calling it.
type FunctionDefinition struct {
	// Name is the short name of the function.
	Name string
	// Signature is the argument signature of the function.
	Signature Signature
	// Func is the implementation.
	Func ScalarFunc
}

// NewFunctionDefinition allocates a function definition for fn.
func NewFunctionDefinition(fn ScalarFunc) *FunctionDefinition {
	return &FunctionDefinition{
		Name:      fn.Name(),
		Signature: fn.Signature(),
		Func:      fn,
	}
}

// String implements the fmt.Stringer interface.
func (fd *FunctionDefinition) String() string { return fd.Name }
