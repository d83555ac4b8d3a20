// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func TestSeverity(t *testing.T) {
	testCases := []struct {
		err              error
		expectedSeverity string
	}{
		{WithSeverity(fmt.Errorf("notice me"), "NOTICE ME"), "NOTICE ME"},
		{WithSeverity(WithSeverity(fmt.Errorf("notice me"), "IGNORE ME"), "NOTICE ME"), "NOTICE ME"},
		{WithSeverity(WithCandidateCode(fmt.Errorf("notice me"), pgcode.FeatureNotSupported), "NOTICE ME"), "NOTICE ME"},
		{New(pgcode.Uncategorized, "i am an error"), "ERROR"},
		{WithCandidateCode(WithSeverity(errors.Newf("i am not an error"), "NOT AN ERROR"), pgcode.Internal), "NOT AN ERROR"},
		{fmt.Errorf("something else"), "ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			severity := GetSeverity(tc.err)
			require.Equal(t, tc.expectedSeverity, severity)
		})
	}
}

func TestFlatten(t *testing.T) {
	require.Nil(t, Flatten(nil))
	require.Equal(t, "", FullError(nil))

	err := Newf(pgcode.DatatypeMismatch, "argument %d has type %s", 2, "bool")
	err = errors.WithDetail(err, "argument types: int64, bool")
	err = errors.WithHint(err, "cast the argument")
	expected := &Error{
		Code:     pgcode.DatatypeMismatch,
		Severity: DefaultSeverity,
		Message:  "argument 2 has type bool",
		Detail:   "argument types: int64, bool",
		Hint:     "cast the argument",
	}
	if diff := pretty.Diff(expected, Flatten(err)); len(diff) > 0 {
		t.Fatalf("unexpected flattened error:\n%s", strings.Join(diff, "\n"))
	}
	require.Equal(t,
		"ERROR: argument 2 has type bool\n"+
			"SQLSTATE: 42804\n"+
			"DETAIL: argument types: int64, bool\n"+
			"HINT: cast the argument", FullError(err))

	require.Equal(t, "ERROR: plain", FullError(errors.New("plain")))
	require.Equal(t, "internal error: bad", Flatten(errors.AssertionFailedf("bad")).Message)
}
