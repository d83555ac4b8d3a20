// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

import (
	"fmt"
	"strings"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/cockroachdb/colfn/pkg/col/typeconv"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgerror"
	"github.com/cockroachdb/errors"
)

// ArityError is returned when a function is called with too few arguments.
type ArityError struct {
	Name   string
	Min    int
	Actual int
}

var _ errors.SafeFormatter = (*ArityError)(nil)
var _ fmt.Formatter = (*ArityError)(nil)

// NewArityError returns an ArityError annotated with the undefined_function
// pg code.
func NewArityError(name string, min, actual int) error {
	return pgerror.WithCandidateCode(&ArityError{Name: name, Min: min, Actual: actual},
		pgcode.UndefinedFunction)
}

// CheckArity returns an ArityError if fewer than min arguments were passed.
func CheckArity(name string, min, actual int) error {
	if actual < min {
		return NewArityError(name, min, actual)
	}
	return nil
}

func (e *ArityError) Error() string { return fmt.Sprint(e) }

// Format implements the fmt.Formatter interface.
func (e *ArityError) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

// SafeFormatError implements the errors.SafeFormatter interface.
func (e *ArityError) SafeFormatError(p errors.Printer) (next error) {
	p.Printf("%s was called with %d arguments. It requires at least %d.",
		errors.Safe(e.Name), e.Actual, e.Min)
	return nil
}

// errNoCommonType is the cause of every coercion error.
var errNoCommonType = pgerror.New(pgcode.DatatypeMismatch,
	"cannot find a common type for arguments")

// NewCoercionError returns an error reporting that typs have no common type.
func NewCoercionError(typs []arrow.DataType) error {
	names := make([]string, len(typs))
	for i, t := range typs {
		names[i] = typeconv.TypeString(t)
	}
	return errors.WithDetailf(errors.WithStack(errNoCommonType),
		"argument types: %s", errors.Safe(strings.Join(names, ", ")))
}

// IsCoercionError returns whether err was returned by NewCoercionError.
func IsCoercionError(err error) bool {
	return errors.Is(err, errNoCommonType)
}
