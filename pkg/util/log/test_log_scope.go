// Copyright 2018 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"io"
	"sync"
)

// tShim is the subset of testing.TB used by TestLogScope.
type tShim interface {
	Helper()
	Failed() bool
	Logf(format string, args ...interface{})
}

// TestLogScope captures log output for the duration of a test. The captured
// output is replayed through the test's own log only if the test failed.
//
// Use it as:
//
//	defer log.Scope(t).Close(t)
type TestLogScope struct {
	prevOut       io.Writer
	prevVerbosity int32

	mu  sync.Mutex
	buf bytes.Buffer
}

// Scope redirects logging into a buffer owned by the returned scope.
func Scope(t tShim) *TestLogScope {
	t.Helper()
	s := &TestLogScope{}
	s.prevOut = SetOutput(s)
	s.prevVerbosity = SetVerbosity(2)
	return s
}

// Write implements io.Writer.
func (s *TestLogScope) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

// Close restores the previous logging configuration.
func (s *TestLogScope) Close(t tShim) {
	t.Helper()
	SetOutput(s.prevOut)
	SetVerbosity(s.prevVerbosity)
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Failed() && s.buf.Len() > 0 {
		t.Logf("log output:\n%s", s.buf.String())
	}
}

// String returns everything logged so far in the scope.
func (s *TestLogScope) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
