// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package envutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvOrDefaultBool(t *testing.T) {
	const name = "COCKROACH_ENVUTIL_TEST_BOOL"

	require.True(t, EnvOrDefaultBool(name, true))

	t.Setenv(name, "false")
	require.False(t, EnvOrDefaultBool(name, true))

	t.Setenv(name, " 1 ")
	require.True(t, EnvOrDefaultBool(name, false))

	t.Setenv(name, "maybe")
	require.Panics(t, func() { EnvOrDefaultBool(name, false) })

	require.Panics(t, func() { EnvOrDefaultBool("ENVUTIL_NO_PREFIX", false) })
}
