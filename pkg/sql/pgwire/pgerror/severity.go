// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// DefaultSeverity is the severity of errors that were not annotated
// with WithSeverity.
const DefaultSeverity = "ERROR"

// WithSeverity decorates the error with a severity. The outermost
// severity wins.
func WithSeverity(err error, severity string) error {
	if err == nil {
		return nil
	}
	return &withSeverity{cause: err, severity: severity}
}

// GetSeverity returns the outermost severity in the chain, or
// DefaultSeverity.
func GetSeverity(err error) string {
	var w *withSeverity
	if errors.As(err, &w) {
		return w.severity
	}
	return DefaultSeverity
}

type withSeverity struct {
	cause    error
	severity string
}

var _ error = (*withSeverity)(nil)
var _ errors.SafeFormatter = (*withSeverity)(nil)
var _ fmt.Formatter = (*withSeverity)(nil)

func (w *withSeverity) Error() string { return w.cause.Error() }
func (w *withSeverity) Cause() error  { return w.cause }
func (w *withSeverity) Unwrap() error { return w.cause }

func (w *withSeverity) Format(s fmt.State, verb rune) { errors.FormatError(w, s, verb) }

func (w *withSeverity) SafeFormatError(p errors.Printer) (next error) {
	if p.Detail() {
		p.Printf("severity: %s", errors.Safe(w.severity))
	}
	return w.cause
}
