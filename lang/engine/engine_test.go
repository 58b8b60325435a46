// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlang/go-tern/lang/token"
)

// newEngine returns an engine writing into the returned buffer.
func newEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	eng, err := New(&out)
	require.NoError(t, err)
	return eng, &out
}

func TestRunExecutes(t *testing.T) {
	eng, out := newEngine(t)
	require.NoError(t, eng.Run("print 1 + 2;"))
	assert.Equal(t, "3\n", out.String())
}

func TestSessionStatePersists(t *testing.T) {
	eng, out := newEngine(t)
	require.NoError(t, eng.Run("var x = 1;"))
	require.NoError(t, eng.Run("x = x + 1;"))
	require.NoError(t, eng.Run("print x;"))
	assert.Equal(t, "2\n", out.String())
}

func TestLexicalReportAbortsBeforeParse(t *testing.T) {
	eng, out := newEngine(t)

	// The source carries both a lexical error and a syntax error; only the
	// lexical stage may report.
	err := eng.Run("$ var (;")
	require.Error(t, err)
	assert.EqualError(t, err, "Unrecognized char at line 1: $")
	assert.NotContains(t, err.Error(), "Expected")
	assert.Equal(t, "", out.String())
}

func TestLexicalErrorsAreJoined(t *testing.T) {
	eng, _ := newEngine(t)
	err := eng.Run("$ #\n^")
	require.Error(t, err)
	assert.EqualError(t, err,
		"Unrecognized char at line 1: $\nUnrecognized char at line 1: #\nUnrecognized char at line 2: ^")
}

func TestSyntaxReportAbortsBeforeExecution(t *testing.T) {
	eng, out := newEngine(t)

	err := eng.Run("print 1")
	require.Error(t, err)
	assert.EqualError(t, err, "Expected ';' after value.")
	assert.Equal(t, "", out.String(), "nothing may execute on a syntax error")
}

func TestSyntaxErrorsAreJoined(t *testing.T) {
	eng, _ := newEngine(t)
	err := eng.Run("1 +; 2 +;")
	require.Error(t, err)
	assert.EqualError(t, err, "Expected expression\nExpected expression")
}

func TestRuntimeErrorPropagates(t *testing.T) {
	eng, out := newEngine(t)
	err := eng.Run("print 1; print missing;")
	assert.EqualError(t, err, "Variable 'missing' has not been declared")
	assert.Equal(t, "1\n", out.String(), "effects before the failure are kept")
}

func TestParseCacheReusesCleanParses(t *testing.T) {
	eng, out := newEngine(t)

	require.NoError(t, eng.Run("print 1;"))
	require.Equal(t, 1, eng.cache.Len())

	// The second run executes the cached tree.
	require.NoError(t, eng.Run("print 1;"))
	assert.Equal(t, 1, eng.cache.Len())
	assert.Equal(t, "1\n1\n", out.String())
}

func TestFailedParsesAreNotCached(t *testing.T) {
	eng, _ := newEngine(t)

	require.Error(t, eng.Run("print 1"))
	assert.Equal(t, 0, eng.cache.Len())

	require.Error(t, eng.Run("$"))
	assert.Equal(t, 0, eng.cache.Len())
}

func TestCachedTreeKeepsSessionSemantics(t *testing.T) {
	eng, out := newEngine(t)

	require.NoError(t, eng.Run("var x = 0;"))
	// Same source twice: the second execution must see the mutated session,
	// not a stale snapshot.
	require.NoError(t, eng.Run("x = x + 1; print x;"))
	require.NoError(t, eng.Run("x = x + 1; print x;"))
	assert.Equal(t, "1\n2\n", out.String())
}

func TestTokens(t *testing.T) {
	eng, _ := newEngine(t)

	toks, err := eng.Tokens("var x = 1;")
	require.NoError(t, err)
	require.Len(t, toks, 6)
	assert.Equal(t, token.VAR, toks[0].Type)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestTokensKeepsStreamOnError(t *testing.T) {
	eng, _ := newEngine(t)

	toks, err := eng.Tokens("$")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unrecognized char")
	require.NotEmpty(t, toks, "the scan still completes")
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestProgram(t *testing.T) {
	eng, _ := newEngine(t)

	stmts, err := eng.Program("1 == (2 + 2);")
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, "(== 1 (group (+ 2 2)))", stmts[0].String())
}

func TestProgramReportsSyntaxErrors(t *testing.T) {
	eng, _ := newEngine(t)
	_, err := eng.Program("var;")
	assert.EqualError(t, err, "Expected variable name")
}

func TestGlobals(t *testing.T) {
	eng, _ := newEngine(t)
	assert.Empty(t, eng.Globals())

	require.NoError(t, eng.Run("var b = 1; var a = 2;"))
	assert.Equal(t, []string{"a", "b"}, eng.Globals())
}
