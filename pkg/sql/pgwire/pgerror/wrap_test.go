// Copyright 2019 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror_test

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	testData := []struct {
		err      error
		code     pgcode.Code
		expected pgcode.Code
	}{
		{errors.New("woo"), pgcode.Syntax, pgcode.Syntax},
		{pgerror.New(pgcode.DatatypeMismatch, "woo"), pgcode.Syntax, pgcode.DatatypeMismatch},
		{fmt.Errorf("woo"), pgcode.UndefinedFunction, pgcode.UndefinedFunction},
	}

	for i, test := range testData {
		werr := pgerror.Wrap(test.err, test.code, "wrapped")
		require.Equal(t, test.expected, pgerror.GetPGCode(werr), "%d", i)
		require.Equal(t, "wrapped: woo", werr.Error())
		require.True(t, errors.Is(werr, test.err), "%d: original error not preserved", i)
	}
}

func TestWrapEmptyMessage(t *testing.T) {
	base := errors.New("woo")
	werr := pgerror.Wrap(base, pgcode.Syntax, "")
	require.Equal(t, "woo", werr.Error())
	require.Equal(t, pgcode.Syntax, pgerror.GetPGCode(werr))
}

func TestGetPGCode(t *testing.T) {
	require.Equal(t, pgcode.Uncategorized, pgerror.GetPGCode(errors.New("plain")))
	require.Equal(t, pgcode.Internal, pgerror.GetPGCode(errors.AssertionFailedf("bad")))
	require.False(t, pgerror.HasCandidateCode(errors.New("plain")))

	err := pgerror.Newf(pgcode.FeatureNotSupported, "type %s", "map")
	require.True(t, pgerror.HasCandidateCode(err))
	require.Equal(t, "type map", err.Error())
	require.Contains(t, fmt.Sprintf("%+v", err), "candidate pg code: 0A000")
	require.Nil(t, pgerror.WithCandidateCode(nil, pgcode.Syntax))
}
