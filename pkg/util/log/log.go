// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log implements leveled, context-tagged logging for colfn.
//
// Messages are formatted with redact so that values which may contain user
// data are enclosed in redaction markers. The markers are stripped on output
// unless redactable output was requested with SetRedactable.
package log

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Severity identifies the importance of a log entry.
type Severity int32

// Severity levels, in increasing order of importance.
const (
	Severity_INFO Severity = iota + 1
	Severity_WARNING
	Severity_ERROR
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Severity_INFO:
		return "INFO"
	case Severity_WARNING:
		return "WARNING"
	case Severity_ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// char returns the single-letter severity marker used in entry headers.
func (s Severity) char() byte {
	return s.String()[0]
}

var logging struct {
	verbosity  int32
	redactable int32

	mu struct {
		sync.Mutex
		out   io.Writer
		color *colorProfile
	}
}

func init() {
	logging.mu.out = OrigStderr
	logging.mu.color = stderrColorProfile
}

// OrigStderr points to the original stderr stream.
var OrigStderr = os.Stderr

// SetOutput redirects log output to w and returns the previous writer.
// Colors are only used when writing to the original stderr.
func SetOutput(w io.Writer) io.Writer {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.out
	logging.mu.out = w
	if f, ok := w.(*os.File); ok && f == OrigStderr {
		logging.mu.color = stderrColorProfile
	} else {
		logging.mu.color = nil
	}
	return prev
}

// SetVerbosity sets the global verbosity level consulted by V and VEventf,
// and returns the previous level.
func SetVerbosity(level int32) int32 {
	return atomic.SwapInt32(&logging.verbosity, level)
}

// SetRedactable controls whether redaction markers are kept in the output.
func SetRedactable(redactable bool) {
	var v int32
	if redactable {
		v = 1
	}
	atomic.StoreInt32(&logging.redactable, v)
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return atomic.LoadInt32(&logging.verbosity) >= level
}

// Infof logs to the INFO severity.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_INFO, 1, format, args)
}

// Warningf logs to the WARNING severity.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_WARNING, 1, format, args)
}

// Errorf logs to the ERROR severity.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_ERROR, 1, format, args)
}

// VEventf logs an INFO entry if the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, Severity_INFO, 1, format, args)
	}
}
