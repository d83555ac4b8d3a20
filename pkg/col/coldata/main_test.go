// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package coldata

import (
	"io"
	"strings"
)

func stringReader(s string) io.Reader {
	return strings.NewReader(s)
}
