// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package repl

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlang/go-tern/lang/engine"
)

func newTestREPL(t *testing.T) (*REPL, *engine.Engine) {
	t.Helper()
	eng, err := engine.New(ioutil.Discard)
	require.NoError(t, err)
	return New(eng, Config{NoColor: true}), eng
}

func TestDefaultPrompt(t *testing.T) {
	r, _ := newTestREPL(t)
	assert.Equal(t, DefaultPrompt, r.cfg.Prompt)

	eng, err := engine.New(ioutil.Discard)
	require.NoError(t, err)
	custom := New(eng, Config{Prompt: "tern> ", NoColor: true})
	assert.Equal(t, "tern> ", custom.cfg.Prompt)
}

func TestCompleteKeyword(t *testing.T) {
	r, _ := newTestREPL(t)

	head, matches, tail := r.completeWord("pr", 2)
	assert.Equal(t, "", head)
	assert.Equal(t, []string{"print"}, matches)
	assert.Equal(t, "", tail)
}

func TestCompleteReturnsSortedMatches(t *testing.T) {
	r, _ := newTestREPL(t)

	_, matches, _ := r.completeWord("f", 1)
	assert.Equal(t, []string{"false", "for", "fun"}, matches)
}

func TestCompleteMidLine(t *testing.T) {
	r, _ := newTestREPL(t)

	head, matches, tail := r.completeWord("if (tr) x", 6)
	assert.Equal(t, "if (", head)
	assert.Equal(t, []string{"true"}, matches)
	assert.Equal(t, ") x", tail)
}

func TestCompleteEmptyPrefix(t *testing.T) {
	r, _ := newTestREPL(t)

	head, matches, tail := r.completeWord("print ", 6)
	assert.Equal(t, "print ", head)
	assert.Empty(t, matches)
	assert.Equal(t, "", tail)
}

func TestSessionNamesJoinCompletion(t *testing.T) {
	r, eng := newTestREPL(t)

	require.NoError(t, eng.Run("var counter = 1;"))
	r.refreshCompletions()

	_, matches, _ := r.completeWord("co", 2)
	assert.Equal(t, []string{"counter"}, matches)

	// Keywords stay available alongside session names.
	_, matches, _ = r.completeWord("v", 1)
	assert.Equal(t, []string{"var"}, matches)
}
