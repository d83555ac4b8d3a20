// Copyright 2022 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package builtinsregistry stores the definitions of builtin functions.
//
// The registry is populated from init functions and is read-only
// afterwards, so lookups need no synchronization.
package builtinsregistry

import (
	"sort"
	"strings"

	"github.com/cockroachdb/colfn/pkg/sql/sem/tree"
	"github.com/cockroachdb/errors"
)

var registry = map[string]*tree.FunctionDefinition{}

// Register registers a builtin. Intending to be called at init time, it
// panics if a function of the same name has already been registered.
func Register(fn tree.ScalarFunc) {
	name := strings.ToLower(fn.Name())
	if _, exists := registry[name]; exists {
		panic(errors.AssertionFailedf("duplicate builtin: %s", name))
	}
	registry[name] = tree.NewFunctionDefinition(fn)
}

// Get returns the definition of the builtin with the given name. Names are
// case insensitive.
func Get(name string) (*tree.FunctionDefinition, bool) {
	def, ok := registry[strings.ToLower(name)]
	return def, ok
}

// Names returns the names of all registered builtins in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
