// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package coltext converts function arguments and results to and from a
// one-line text form:
//
//	col <type> <json array>
//	scalar <type> <json value>
//
// for example `col list<int64> [[1,2],null]` or `scalar utf8 "abc"`.
package coltext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/col/coldata"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/errors"
)

const (
	colKeyword    = "col"
	scalarKeyword = "scalar"
)

// Parse parses a single value in text form. The returned value must be
// released by the caller.
func Parse(mem memory.Allocator, s string) (coldata.ColumnarValue, error) {
	kind, rest := splitWord(strings.TrimSpace(s))
	typText, data := splitType(rest)
	if typText == "" || data == "" {
		return nil, pgerror.Newf(pgcode.Syntax,
			"expected \"col|scalar <type> <json>\", got %q", s)
	}
	typ, err := typeconv.ParseType(typText)
	if err != nil {
		return nil, err
	}
	switch kind {
	case colKeyword:
		arr, err := parseArray(mem, typ, data)
		if err != nil {
			return nil, err
		}
		return coldata.Column{Array: arr}, nil
	case scalarKeyword:
		arr, err := parseArray(mem, typ, "["+data+"]")
		if err != nil {
			return nil, err
		}
		defer arr.Release()
		if arr.Len() != 1 {
			return nil, pgerror.Newf(pgcode.InvalidTextRepresentation,
				"expected a single value, got %q", data)
		}
		d, err := coldata.DatumFromArray(arr, 0)
		if err != nil {
			return nil, err
		}
		return coldata.Scalar{Datum: d}, nil
	}
	return nil, pgerror.Newf(pgcode.Syntax, "unknown value kind %q", kind)
}

func parseArray(mem memory.Allocator, typ arrow.DataType, data string) (arrow.Array, error) {
	if typeconv.IsNull(typ) {
		var vals []json.RawMessage
		if err := json.Unmarshal([]byte(data), &vals); err != nil {
			return nil, pgerror.Wrapf(err, pgcode.InvalidTextRepresentation, "parsing %q", data)
		}
		for _, v := range vals {
			if string(bytes.TrimSpace(v)) != "null" {
				return nil, pgerror.Newf(pgcode.InvalidTextRepresentation,
					"null column holds non-null value %s", v)
			}
		}
		return array.NewNull(len(vals)), nil
	}
	arr, _, err := array.FromJSON(mem, typ, strings.NewReader(data))
	if err != nil {
		return nil, pgerror.Wrapf(err, pgcode.InvalidTextRepresentation,
			"parsing %s value %q", errors.Safe(typeconv.TypeString(typ)), data)
	}
	return arr, nil
}

// Format returns the text form of v.
func Format(mem memory.Allocator, v coldata.ColumnarValue) (string, error) {
	switch v := v.(type) {
	case coldata.Column:
		b, err := coldata.MarshalArrayJSON(v.Array)
		if err != nil {
			return "", errors.Wrap(err, "formatting column")
		}
		return fmt.Sprintf("%s %s %s", colKeyword, typeconv.TypeString(v.Type()), b), nil
	case coldata.Scalar:
		arr, err := v.ToArray(mem, 1)
		if err != nil {
			return "", err
		}
		defer arr.Release()
		b, err := coldata.MarshalArrayJSON(arr)
		if err != nil {
			return "", errors.Wrap(err, "formatting scalar")
		}
		b = bytes.TrimSuffix(bytes.TrimPrefix(b, []byte("[")), []byte("]"))
		return fmt.Sprintf("%s %s %s", scalarKeyword, typeconv.TypeString(v.Type()), b), nil
	}
	return "", errors.AssertionFailedf("unexpected value %T", v)
}

func splitWord(s string) (word, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// splitType splits off the type at the start of s. The type ends at the
// first space outside of <> and ().
func splitType(s string) (typ, rest string) {
	depth := 0
	for i, r := range s {
		switch {
		case r == '<' || r == '(':
			depth++
		case r == '>' || r == ')':
			depth--
		case unicode.IsSpace(r) && depth == 0:
			return s[:i], strings.TrimSpace(s[i:])
		}
	}
	return s, ""
}
