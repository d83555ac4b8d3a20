// Copyright 2013 Google Inc. All Rights Reserved.
// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// colorProfile defines escape sequences which provide color in
// terminals. Some terminals support 8 colors, some 256, others
// none at all.
type colorProfile struct {
	infoPrefix  []byte
	warnPrefix  []byte
	errorPrefix []byte
	timePrefix  []byte
}

var colorReset = []byte("\033[0m")

// For terms with 8-color support.
var colorProfile8 = &colorProfile{
	infoPrefix:  []byte("\033[0;36;49m"),
	warnPrefix:  []byte("\033[0;33;49m"),
	errorPrefix: []byte("\033[0;31;49m"),
	timePrefix:  []byte("\033[2;37;49m"),
}

// For terms with 256-color support.
var colorProfile256 = &colorProfile{
	infoPrefix:  []byte("\033[38;5;33m"),
	warnPrefix:  []byte("\033[38;5;214m"),
	errorPrefix: []byte("\033[38;5;160m"),
	timePrefix:  []byte("\033[38;5;246m"),
}

// stderrColorProfile is nil unless stderr is a terminal that advertises
// color support through TERM.
var stderrColorProfile = func() *colorProfile {
	if !isatty.IsTerminal(OrigStderr.Fd()) {
		return nil
	}
	term := os.Getenv("TERM")
	switch term {
	case "ansi", "tmux":
		return colorProfile8
	case "st":
		return colorProfile256
	default:
		if strings.HasSuffix(term, "256color") {
			return colorProfile256
		}
		if strings.HasSuffix(term, "color") || strings.HasPrefix(term, "screen") {
			return colorProfile8
		}
	}
	return nil
}()
