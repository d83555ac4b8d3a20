// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package volatility

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVolatility(t *testing.T) {
	testCases := []struct {
		v           V
		str         string
		provolatile string
		leakproof   bool
		foldable    bool
	}{
		{LeakProof, "leak-proof", "i", true, true},
		{Immutable, "immutable", "i", false, true},
		{Stable, "stable", "s", false, false},
		{Volatile, "volatile", "v", false, false},
	}
	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			require.Equal(t, tc.str, tc.v.String())
			provolatile, leakproof := tc.v.ToPostgres()
			require.Equal(t, tc.provolatile, provolatile)
			require.Equal(t, tc.leakproof, leakproof)
			require.Equal(t, tc.foldable, tc.v.Foldable())
		})
	}
	require.Equal(t, "invalid", V(0).String())
	require.Panics(t, func() { V(0).ToPostgres() })
	require.True(t, LeakProof < Volatile)
}
