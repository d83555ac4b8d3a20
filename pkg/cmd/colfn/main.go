// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package main

import "github.com/cockroachdb/colfn/pkg/cli"

func main() {
	cli.Main()
}
