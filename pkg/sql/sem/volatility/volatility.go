// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package volatility describes whether the result of a function may change
// between invocations with the same arguments.
package volatility

import "github.com/cockroachdb/errors"

// V indicates whether the result of a function is dependent *only*
// on the values of its explicit arguments, or can change due to outside
// factors (such as parameter variables or table contents).
//
// The values are ordered with smaller values being strictly more restrictive
// than larger values.
type V int8

const (
	// LeakProof means that the function is immutable and also doesn't reveal
	// any information about its arguments besides its result.
	LeakProof V = 1 + iota
	// Immutable means that the function cannot modify the database and is
	// guaranteed to return the same results given the same arguments forever.
	// The planner may fold calls with constant arguments.
	Immutable
	// Stable means that the function cannot modify the database and for a
	// single table scan it will consistently return the same result for the
	// same argument values, but its result could change across statements.
	Stable
	// Volatile means that the function can do anything, including modifying
	// the database.
	Volatile
)

// String returns the byte representation of Volatility as a string.
func (v V) String() string {
	switch v {
	case LeakProof:
		return "leak-proof"
	case Immutable:
		return "immutable"
	case Stable:
		return "stable"
	case Volatile:
		return "volatile"
	default:
		return "invalid"
	}
}

// ToPostgres returns the postgres "provolatile" string ("i" or "s" or "v")
// and the "proleakproof" flag.
func (v V) ToPostgres() (provolatile string, proleakproof bool) {
	switch v {
	case LeakProof:
		return "i", true
	case Immutable:
		return "i", false
	case Stable:
		return "s", false
	case Volatile:
		return "v", false
	default:
		panic(errors.AssertionFailedf("invalid volatility %s", v))
	}
}

// Foldable returns whether calls with constant arguments may be evaluated
// once at planning time.
func (v V) Foldable() bool {
	return v == LeakProof || v == Immutable
}
