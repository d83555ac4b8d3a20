// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package eval

import (
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/util/buildutil"
	"github.com/stretchr/testify/require"
)

func TestMakeContext(t *testing.T) {
	t.Setenv(strictLengthsEnvVar, "true")
	evalCtx := MakeContext()
	require.True(t, evalCtx.StrictLengths)
	require.Equal(t, memory.DefaultAllocator, evalCtx.Mem())

	t.Setenv(strictLengthsEnvVar, "false")
	evalCtx = MakeContext()
	require.Equal(t, buildutil.Invariants, evalCtx.StrictLengths)

	mem := memory.NewGoAllocator()
	evalCtx = MakeTestingContext(mem)
	require.Equal(t, memory.Allocator(mem), evalCtx.Mem())
}

func TestZeroContext(t *testing.T) {
	var evalCtx Context
	require.Equal(t, memory.DefaultAllocator, evalCtx.Mem())
	require.True(t, evalCtx.Coercion()(arrow.PrimitiveTypes.Int64, arrow.PrimitiveTypes.Int32))
	require.False(t, evalCtx.StrictLengths)
}
