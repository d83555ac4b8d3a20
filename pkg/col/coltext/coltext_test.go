// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coltext

import (
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	inputs := []string{
		`col int64 [1,null,3]`,
		`col utf8 ["apple","zebra"]`,
		`col list<int64> [[1,2],null,[]]`,
		`col struct<a: int64, b: utf8> [{"a":1,"b":"x"},null]`,
		`col null [null,null]`,
		`scalar int64 5`,
		`scalar int64 null`,
		`scalar utf8 "a b"`,
		`scalar list<utf8> ["x","y"]`,
		`scalar null null`,
		`scalar float64 1.5`,
	}
	var outputs []string
	for _, in := range inputs {
		v, err := Parse(mem, in)
		require.NoError(t, err, in)
		out, err := Format(mem, v)
		v.Release()
		require.NoError(t, err, in)
		outputs = append(outputs, out)
	}
	if diff := cmp.Diff(inputs, outputs); diff != "" {
		t.Errorf("unexpected round trip (-want +got):\n%s", diff)
	}
}

func TestParseKinds(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	v, err := Parse(mem, "  col   fixed_size_list<int64>( 2 )   [[1, 2], [3, 4]] ")
	require.NoError(t, err)
	col, ok := v.(coldata.Column)
	require.True(t, ok)
	require.Equal(t, 2, col.Len())
	v.Release()

	v, err = Parse(mem, `scalar int64 7`)
	require.NoError(t, err)
	s, ok := v.(coldata.Scalar)
	require.True(t, ok)
	require.Equal(t, int64(7), s.Value())

	v, err = Parse(mem, `scalar null null`)
	require.NoError(t, err)
	s, ok = v.(coldata.Scalar)
	require.True(t, ok)
	require.True(t, s.IsNull())
	require.Equal(t, arrow.Null, s.Type())

	v, err = Parse(mem, `col list<int64> [[1,2],[3]]`)
	require.NoError(t, err)
	out, err := Format(mem, v)
	v.Release()
	require.NoError(t, err)
	require.Equal(t, `col list<int64> [[1,2],[3]]`, out)
}

func TestParseErrors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	testCases := []struct {
		input string
		code  pgcode.Code
	}{
		{`col`, pgcode.Syntax},
		{`col int64`, pgcode.Syntax},
		{`row int64 [1]`, pgcode.Syntax},
		{`col list< [1]`, pgcode.Syntax},
		{`col int64 [1,"x"]`, pgcode.InvalidTextRepresentation},
		{`scalar int64 1,2`, pgcode.InvalidTextRepresentation},
		{`col null [1]`, pgcode.InvalidTextRepresentation},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			_, err := Parse(mem, tc.input)
			require.Error(t, err)
			require.Equal(t, tc.code, pgerror.GetPGCode(err))
		})
	}
}
