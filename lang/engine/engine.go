// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package engine ties the scanner, parser, and interpreter into one
// runnable pipeline with a persistent session.
//
// A run proceeds in stages: lexical errors abort before parsing, syntax
// errors abort before execution, and the first runtime failure aborts the
// rest of the run. Each static stage reports every error it found, joined
// into a single message.
package engine

import (
	"errors"
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/sha3"

	"github.com/ternlang/go-tern/lang/ast"
	"github.com/ternlang/go-tern/lang/interp"
	"github.com/ternlang/go-tern/lang/lexer"
	"github.com/ternlang/go-tern/lang/parser"
	"github.com/ternlang/go-tern/lang/token"
)

// parseCacheSize bounds the number of parsed programs kept per engine.
const parseCacheSize = 128

// Engine owns an interpreter session and a parse cache. Variable state
// persists across Run calls, so one Engine backs one console session or
// one script execution.
type Engine struct {
	interp *interp.Interpreter
	cache  *lru.ARCCache // source hash -> []ast.Stmt, clean parses only
}

// New creates an engine whose print output goes to stdout.
func New(stdout io.Writer) (*Engine, error) {
	cache, err := lru.NewARC(parseCacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{
		interp: interp.New(stdout),
		cache:  cache,
	}, nil
}

// Run scans, parses, and executes source against the engine's session.
// Static errors are returned as one newline-joined message per stage;
// a runtime failure is returned as-is.
func (e *Engine) Run(source string) error {
	stmts, err := e.compile(source)
	if err != nil {
		return err
	}
	return e.interp.Interpret(stmts)
}

// Tokens scans source and returns the token stream. The stream is returned
// even when scanning reported errors; the error carries the joined report.
func (e *Engine) Tokens(source string) ([]token.Token, error) {
	toks, errs := lexer.New(source).Scan()
	if len(errs) > 0 {
		return toks, joinErrors(errs)
	}
	return toks, nil
}

// Program scans and parses source without executing it.
func (e *Engine) Program(source string) ([]ast.Stmt, error) {
	return e.compile(source)
}

// Globals returns the names defined in the session, sorted.
func (e *Engine) Globals() []string {
	return e.interp.Globals().Names()
}

// compile turns source into a statement list, consulting the parse cache.
// Only clean parses enter the cache. Parsed trees are never mutated, so a
// hit can be executed any number of times.
func (e *Engine) compile(source string) ([]ast.Stmt, error) {
	key := sourceKey(source)
	if cached, ok := e.cache.Get(key); ok {
		return cached.([]ast.Stmt), nil
	}

	toks, errs := lexer.New(source).Scan()
	if len(errs) > 0 {
		return nil, joinErrors(errs)
	}

	stmts, errs := parser.Parse(toks)
	if len(errs) > 0 {
		return nil, joinErrors(errs)
	}

	e.cache.Add(key, stmts)
	return stmts, nil
}

// sourceKey hashes source text into a fixed-size cache key.
func sourceKey(source string) [32]byte {
	var key [32]byte
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(source))
	h.Sum(key[:0])
	return key
}

// joinErrors folds an error list into a single error, one message per line.
func joinErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.New(strings.Join(msgs, "\n"))
}
