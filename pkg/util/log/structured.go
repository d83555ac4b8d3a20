// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

func formatTags(ctx context.Context, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil || len(tags.Get()) == 0 {
		return
	}
	buf.WriteByte('[')
	buf.WriteString(tags.String())
	buf.WriteString("] ")
}

// logEntry is a single formatted log message.
type logEntry struct {
	sev     Severity
	time    time.Time
	file    string
	line    int
	tags    string
	message redact.RedactableString
}

func makeEntry(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) logEntry {
	entry := logEntry{
		sev:     sev,
		time:    time.Now(),
		message: redact.Sprintf(format, args...),
	}
	if _, file, line, ok := runtime.Caller(depth + 1); ok {
		entry.file = filepath.Base(file)
		entry.line = line
	}
	var tags strings.Builder
	formatTags(ctx, &tags)
	entry.tags = tags.String()
	return entry
}

// format renders the entry in a crdb-v1 like layout:
//
//	I241018 12:00:00.000000 file.go:123  [tags] message
func (e logEntry) format(redactable bool, cp *colorProfile) string {
	var buf strings.Builder
	if cp != nil {
		switch e.sev {
		case Severity_INFO:
			buf.Write(cp.infoPrefix)
		case Severity_WARNING:
			buf.Write(cp.warnPrefix)
		default:
			buf.Write(cp.errorPrefix)
		}
	}
	buf.WriteByte(e.sev.char())
	if cp != nil {
		buf.Write(colorReset)
		buf.Write(cp.timePrefix)
	}
	buf.WriteString(e.time.UTC().Format("060102 15:04:05.000000"))
	if cp != nil {
		buf.Write(colorReset)
	}
	fmt.Fprintf(&buf, " %s:%d  %s", e.file, e.line, e.tags)
	if redactable {
		buf.WriteString(string(e.message))
	} else {
		buf.WriteString(e.message.StripMarkers())
	}
	buf.WriteByte('\n')
	return buf.String()
}

// addStructured creates a structured log entry and writes it to the current
// output.
func addStructured(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) {
	entry := makeEntry(ctx, sev, depth+1, format, args)
	redactable := atomic.LoadInt32(&logging.redactable) != 0

	logging.mu.Lock()
	defer logging.mu.Unlock()
	// Write errors are dropped: there is nowhere left to report them.
	_, _ = logging.mu.out.Write([]byte(entry.format(redactable, logging.mu.color)))
}
