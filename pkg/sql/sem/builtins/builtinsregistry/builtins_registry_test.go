// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package builtinsregistry

import (
	"context"
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/sql/sem/eval"
	"github.com/cockroachdb/colfn/pkg/sql/sem/tree"
	"github.com/cockroachdb/colfn/pkg/sql/sem/volatility"
	"github.com/stretchr/testify/require"
)

type constFunc struct {
	name string
}

var _ tree.ScalarFunc = constFunc{}

func (f constFunc) Name() string { return f.name }

func (f constFunc) Signature() tree.Signature {
	return tree.Signature{Volatility: volatility.LeakProof}
}

func (f constFunc) ReturnType(*eval.Context, []arrow.DataType) (arrow.DataType, error) {
	return arrow.PrimitiveTypes.Int64, nil
}

func (f constFunc) CoerceTypes(_ *eval.Context, typs []arrow.DataType) ([]arrow.DataType, error) {
	return typs, nil
}

func (f constFunc) Invoke(
	context.Context, *eval.Context, []coldata.ColumnarValue,
) (coldata.ColumnarValue, error) {
	return coldata.Scalar{Datum: coldata.MakeInt64(1)}, nil
}

func TestRegistry(t *testing.T) {
	defer func(old map[string]*tree.FunctionDefinition) { registry = old }(registry)
	registry = map[string]*tree.FunctionDefinition{}

	Register(constFunc{name: "one"})
	Register(constFunc{name: "Another"})
	require.Panics(t, func() { Register(constFunc{name: "ONE"}) })

	require.Equal(t, []string{"another", "one"}, Names())

	def, ok := Get("One")
	require.True(t, ok)
	require.Equal(t, "one", def.Name)
	require.Equal(t, volatility.LeakProof, def.Signature.Volatility)

	_, ok = Get("two")
	require.False(t, ok)
}
