// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package interp

import "sort"

// Environment is one lexical scope: a name-to-value mapping plus a link to
// the enclosing scope. The parent link is set at creation time and never
// reassigned afterwards, which keeps the scope graph acyclic.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a scope enclosed by parent. A nil parent makes a
// root scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Define binds name in this scope. Redefining an existing name replaces its
// value, and a definition shadows any binding of the same name in an
// enclosing scope.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get resolves name in this scope or, failing that, the enclosing chain.
// The second result is false when the name is bound nowhere.
func (e *Environment) Get(name string) (Value, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if v, ok := scope.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign rebinds name in the nearest scope that already defines it and
// reports whether such a scope exists. Assignment never creates a binding.
func (e *Environment) Assign(name string, v Value) bool {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.values[name]; ok {
			scope.values[name] = v
			return true
		}
	}
	return false
}

// Names returns every name visible from this scope, deduplicated across
// shadowing and sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})
	for scope := e; scope != nil; scope = scope.parent {
		for name := range scope.values {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
