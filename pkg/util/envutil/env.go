// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package envutil reads process configuration from COCKROACH_* environment
// variables.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const prefix = "COCKROACH_"

func checkVarName(name string) {
	if !strings.HasPrefix(name, prefix) {
		panic(errors.AssertionFailedf("invalid env var name %q: must start with %s", name, prefix))
	}
}

// EnvString returns the value of the named variable and whether it was set.
func EnvString(name string) (string, bool) {
	checkVarName(name)
	return os.LookupEnv(name)
}

// EnvOrDefaultBool returns the value of the named variable parsed as a
// boolean, or def if it is unset. A malformed value panics.
func EnvOrDefaultBool(name string, def bool) bool {
	v, ok := EnvString(name)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		panic(errors.Wrapf(err, "error parsing %s", name))
	}
	return b
}
