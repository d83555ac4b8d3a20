// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtins

import (
	"context"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/colfn/pkg/sql/sem/builtins/builtinsregistry"
	"github.com/cockroachdb/colfn/pkg/sql/sem/eval"
	"github.com/cockroachdb/colfn/pkg/sql/sem/tree"
	"github.com/cockroachdb/errors"
)

// AllBuiltinNames is an array containing all the built-in function
// names, sorted in alphabetical order. This can be used for a
// deterministic walk through the registry.
var AllBuiltinNames []string

func init() {
	for _, fn := range []tree.ScalarFunc{
		&extremumFunc{name: "greatest", dir: greater},
		&extremumFunc{name: "least", dir: lesser},
	} {
		builtinsregistry.Register(fn)
	}
	AllBuiltinNames = builtinsregistry.Names()
}

// Eval calls the named builtin the way a planner would: it resolves the
// return type, checks that every argument already has that type (or the
// null type) and invokes the function. The result must be released by the
// caller.
func Eval(
	ctx context.Context, evalCtx *eval.Context, name string, args []coldata.ColumnarValue,
) (coldata.ColumnarValue, error) {
	def, ok := builtinsregistry.Get(name)
	if !ok {
		return nil, pgerror.Newf(pgcode.UndefinedFunction, "unknown function: %s()", name)
	}
	typs := coldata.Types(args)
	retType, err := def.Func.ReturnType(evalCtx, typs)
	if err != nil {
		return nil, err
	}
	if err := checkArgTypes(def.Name, retType, typs); err != nil {
		return nil, err
	}
	return def.Func.Invoke(ctx, evalCtx, args)
}

func checkArgTypes(name string, want arrow.DataType, typs []arrow.DataType) error {
	for i, t := range typs {
		if typeconv.IsNull(t) || arrow.TypeEqual(t, want) {
			continue
		}
		err := pgerror.Newf(pgcode.DatatypeMismatch,
			"argument %d of %s has type %s, expected %s",
			i+1, errors.Safe(name),
			errors.Safe(typeconv.TypeString(t)), errors.Safe(typeconv.TypeString(want)))
		return errors.WithHintf(err, "cast the argument to %s", typeconv.TypeString(want))
	}
	return nil
}
