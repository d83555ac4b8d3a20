// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
)

// FindCommonType returns the first of typs, in argument order, that every
// other non-null type can be coerced into. Null types are ignored, and if
// only null types are present the result is arrow.Null.
func FindCommonType(typs []arrow.DataType, canCoerce typeconv.CoercionFunc) (arrow.DataType, error) {
	candidates := make([]arrow.DataType, 0, len(typs))
	for _, t := range typs {
		if !typeconv.IsNull(t) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return arrow.Null, nil
	}
	for _, into := range candidates {
		ok := true
		for _, from := range candidates {
			if !canCoerce(into, from) {
				ok = false
				break
			}
		}
		if ok {
			return into, nil
		}
	}
	return nil, NewCoercionError(typs)
}

// CoerceArgumentTypes checks that at least min types were passed and returns
// their common type once per argument.
func CoerceArgumentTypes(
	name string, min int, typs []arrow.DataType, canCoerce typeconv.CoercionFunc,
) ([]arrow.DataType, error) {
	if err := CheckArity(name, min, len(typs)); err != nil {
		return nil, err
	}
	common, err := FindCommonType(typs, canCoerce)
	if err != nil {
		return nil, err
	}
	res := make([]arrow.DataType, len(typs))
	for i := range res {
		res[i] = common
	}
	return res, nil
}
