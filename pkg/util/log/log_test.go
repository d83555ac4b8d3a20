// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestLogEntries(t *testing.T) {
	s := Scope(t)
	defer s.Close(t)

	ctx := logtags.AddTag(context.Background(), "fn", "greatest")
	Infof(ctx, "folding %d columns", 3)
	Warningf(ctx, "value %s", "secret")
	VEventf(ctx, 3, "not shown")

	out := s.String()
	require.Contains(t, out, "[fn=greatest] folding 3 columns")
	require.Contains(t, out, "value secret")
	require.NotContains(t, out, "not shown")
	require.Regexp(t, `(?m)^I\d{6} `, out)
	require.Regexp(t, `(?m)^W\d{6} `, out)
	require.Contains(t, out, "log_test.go:")
}

func TestRedactableOutput(t *testing.T) {
	s := Scope(t)
	defer s.Close(t)
	SetRedactable(true)
	defer SetRedactable(false)

	Infof(context.Background(), "safe %s unsafe %s", redact.Safe("visible"), "hidden")
	require.Contains(t, s.String(), "safe visible unsafe ‹hidden›")
}

func TestEveryNVerbosity(t *testing.T) {
	defer Scope(t).Close(t)
	// The scope raises verbosity to 2, which disables rate limiting.
	e := Every(time.Hour)
	now := time.Now()
	require.True(t, e.shouldLog(now))
	require.True(t, e.shouldLog(now))

	SetVerbosity(0)
	e = Every(time.Hour)
	require.True(t, e.shouldLog(now))
	require.False(t, e.shouldLog(now.Add(time.Minute)))
}
