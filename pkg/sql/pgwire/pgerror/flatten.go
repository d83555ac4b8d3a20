// Copyright 2019 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"strings"

	"github.com/cockroachdb/colfn/pkg/sql/pgwire/pgcode"
	"github.com/cockroachdb/errors"
)

// Error is the flattened form of an error, with the fields a client would
// see on the wire.
type Error struct {
	Code     pgcode.Code
	Severity string
	Message  string
	Detail   string
	Hint     string
}

// InternalErrorPrefix is prepended to the message of internal errors.
const InternalErrorPrefix = "internal error: "

// Flatten turns any error into an Error with fields populated.
// Returns a nil ptr if err was nil to start with.
func Flatten(err error) *Error {
	if err == nil {
		return nil
	}
	resErr := &Error{
		Code:     GetPGCode(err),
		Severity: GetSeverity(err),
		Message:  err.Error(),
		Detail:   errors.FlattenDetails(err),
		Hint:     errors.FlattenHints(err),
	}
	if resErr.Code == pgcode.Internal && !strings.HasPrefix(resErr.Message, InternalErrorPrefix) {
		resErr.Message = InternalErrorPrefix + resErr.Message
	}
	return resErr
}

// FullError can be used when the hint and/or detail are to be tested.
func FullError(err error) string {
	pgErr := Flatten(err)
	if pgErr == nil {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(pgErr.Severity)
	buf.WriteString(": ")
	buf.WriteString(pgErr.Message)
	if pgErr.Code != pgcode.Uncategorized {
		buf.WriteString("\nSQLSTATE: ")
		buf.WriteString(pgErr.Code.String())
	}
	if pgErr.Detail != "" {
		buf.WriteString("\nDETAIL: ")
		buf.WriteString(pgErr.Detail)
	}
	if pgErr.Hint != "" {
		buf.WriteString("\nHINT: ")
		buf.WriteString(pgErr.Hint)
	}
	return buf.String()
}
