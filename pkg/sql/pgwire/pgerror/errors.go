// Copyright 2019 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package pgerror attaches PostgreSQL error codes to errors built with
// github.com/cockroachdb/errors.
package pgerror

import (
	"fmt"

	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/errors"
)

// New creates an error with a code.
func New(code pgcode.Code, msg string) error {
	err := errors.NewWithDepth(1, msg)
	err = WithCandidateCode(err, code)
	return err
}

// Newf creates an Error with a format string.
func Newf(code pgcode.Code, format string, args ...interface{}) error {
	err := errors.NewWithDepthf(1, format, args...)
	err = WithCandidateCode(err, code)
	return err
}

// WithCandidateCode decorates the error with a candidate postgres
// error code. It is called "candidate" because the code is only used
// by GetPGCode() below conditionally.
// The code is considered PII-free and is thus reportable.
func WithCandidateCode(err error, code pgcode.Code) error {
	if err == nil {
		return nil
	}
	return &withCandidateCode{cause: err, code: code.String()}
}

// HasCandidateCode returns true iff there's at least one error code
// annotation in the chain.
func HasCandidateCode(err error) bool {
	for ; err != nil; err = errors.UnwrapOnce(err) {
		if _, ok := err.(*withCandidateCode); ok {
			return true
		}
	}
	return false
}

// GetPGCode retrieves the error code for an error. The innermost candidate
// code wins. Errors without one are reported as internal errors if they
// carry an assertion failure, and as uncategorized otherwise.
func GetPGCode(err error) pgcode.Code {
	code := pgcode.Uncategorized
	found := false
	for c := err; c != nil; c = errors.UnwrapOnce(c) {
		if w, ok := c.(*withCandidateCode); ok {
			code = pgcode.MakeCode(w.code)
			found = true
		}
	}
	if !found && errors.HasAssertionFailure(err) {
		return pgcode.Internal
	}
	return code
}

type withCandidateCode struct {
	cause error
	code  string
}

var _ error = (*withCandidateCode)(nil)
var _ errors.SafeFormatter = (*withCandidateCode)(nil)
var _ fmt.Formatter = (*withCandidateCode)(nil)

func (w *withCandidateCode) Error() string { return w.cause.Error() }
func (w *withCandidateCode) Cause() error  { return w.cause }
func (w *withCandidateCode) Unwrap() error { return w.cause }

func (w *withCandidateCode) Format(s fmt.State, verb rune) { errors.FormatError(w, s, verb) }

func (w *withCandidateCode) SafeFormatError(p errors.Printer) (next error) {
	if p.Detail() {
		p.Printf("candidate pg code: %s", errors.Safe(w.code))
	}
	return w.cause
}
