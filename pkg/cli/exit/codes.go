// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package exit

// Codes that are common to all commands follow.

// Success (0) represents a normal process termination.
func Success() Code { return Code{0} }

// UnspecifiedError (1) indicates the process has terminated with an
// error condition. The specific cause of the error can be found in
// the logging output.
func UnspecifiedError() Code { return Code{1} }

// UnspecifiedGoPanic (2) indicates the process has terminated due to
// an uncaught Go panic or some other error in the Go runtime.
//
// The reporting of this exit code likely indicates a programming
// error inside colfn.
func UnspecifiedGoPanic() Code { return Code{2} }

// CommandLineFlagError (4) indicates there was an error in the
// command-line parameters, including arguments that cannot be parsed.
func CommandLineFlagError() Code { return Code{4} }

// Codes that are specific to client commands follow. Command-specific
// exit codes are allocated down from 125.

// 'eval' exit codes.

// PlanningFailed (125) indicates that the function could not be
// resolved for its arguments: it does not exist, was passed too few
// arguments, or the arguments have no common type.
func PlanningFailed() Code { return Code{125} }

// EvaluationFailed (124) indicates that the function failed while
// computing its result.
func EvaluationFailed() Code { return Code{124} }
