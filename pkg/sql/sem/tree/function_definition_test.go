// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"testing"

	"github.com/cockroachdb/colfn/pkg/sql/sem/volatility"
	"github.com/stretchr/testify/require"
)

func TestSignatureString(t *testing.T) {
	require.Equal(t, "variadic(any, min=2)",
		Signature{Variadic: true, MinArgs: 2, Volatility: volatility.Immutable}.String())
	require.Equal(t, "fixed(1)", Signature{MinArgs: 1}.String())
}

func TestCheckArity(t *testing.T) {
	require.NoError(t, CheckArity("f", 2, 2))
	require.NoError(t, CheckArity("f", 0, 0))
	err := CheckArity("f", 2, 1)
	require.EqualError(t, err, "f was called with 1 arguments. It requires at least 2.")
}
