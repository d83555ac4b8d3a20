// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package eval holds the configuration shared by all function invocations.
package eval

import (
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/util/buildutil"
	"github.com/cockroachdb/colfn/pkg/util/envutil"
)

// strictLengthsEnvVar makes column length mismatches an error instead of a
// warning followed by truncation.
const strictLengthsEnvVar = "COCKROACH_STRICT_COLUMN_LENGTHS"

// Context configures function invocations.
type Context struct {
	// Allocator is used for every array produced by a function.
	Allocator memory.Allocator
	// CanCoerce decides which types can be coerced into which during type
	// resolution.
	CanCoerce typeconv.CoercionFunc
	// StrictLengths turns columns of different lengths into an error. When
	// unset, the longer column is truncated.
	StrictLengths bool
}

// MakeContext returns a Context with default settings.
func MakeContext() Context {
	return Context{
		Allocator:     memory.DefaultAllocator,
		CanCoerce:     typeconv.CanCoerceFrom,
		StrictLengths: buildutil.Invariants || envutil.EnvOrDefaultBool(strictLengthsEnvVar, false),
	}
}

// MakeTestingContext returns a Context for tests that allocates from mem.
func MakeTestingContext(mem memory.Allocator) Context {
	evalCtx := MakeContext()
	evalCtx.Allocator = mem
	return evalCtx
}

// Mem returns the allocator of the context, falling back to the default
// allocator.
func (c *Context) Mem() memory.Allocator {
	if c.Allocator == nil {
		return memory.DefaultAllocator
	}
	return c.Allocator
}

// Coercion returns the coercion predicate of the context, falling back to
// typeconv.CanCoerceFrom.
func (c *Context) Coercion() typeconv.CoercionFunc {
	if c.CanCoerce == nil {
		return typeconv.CanCoerceFrom
	}
	return c.CanCoerce
}
