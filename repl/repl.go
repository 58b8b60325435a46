// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package repl implements the interactive tern console: a line editor with
// history and word completion wrapped around a persistent engine session.
package repl

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/ternlang/go-tern/lang/engine"
	"github.com/ternlang/go-tern/lang/token"
)

// DefaultPrompt is used when the configuration does not set one.
const DefaultPrompt = "> "

// Config controls the console's presentation.
type Config struct {
	Prompt      string // line prompt; DefaultPrompt when empty
	HistoryFile string // history persistence path; empty disables history
	NoColor     bool   // force plain diagnostics even on a terminal
}

// REPL drives a read-evaluate loop. Successful lines mutate the underlying
// engine session, so variables accumulate across inputs; failed lines print
// their report and leave the session as it was.
type REPL struct {
	engine *engine.Engine
	cfg    Config
	words  mapset.Set // completion candidates: keywords plus session names
	errOut io.Writer
	color  bool
}

// New wraps an engine session in a console. The completion set starts with
// the language keywords; variable names join it as lines define them.
func New(eng *engine.Engine, cfg Config) *REPL {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	r := &REPL{
		engine: eng,
		cfg:    cfg,
		words:  mapset.NewSet(),
		errOut: os.Stderr,
	}
	for _, kw := range token.Keywords() {
		r.words.Add(kw)
	}
	if !cfg.NoColor && stderrIsTerminal() {
		r.errOut = colorable.NewColorableStderr()
		r.color = true
	}
	return r
}

// Run starts the loop and blocks until the session ends: an empty input
// line, ctrl-C, or end of input all return nil.
func (r *REPL) Run() error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetMultiLineMode(true)
	line.SetWordCompleter(r.completeWord)

	r.loadHistory(line)
	defer r.saveHistory(line)

	for {
		input, err := line.Prompt(r.cfg.Prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return nil
			}
			return err
		}
		if input == "" {
			return nil
		}
		line.AppendHistory(input)

		if err := r.engine.Run(input); err != nil {
			r.printError(err)
			continue
		}
		r.refreshCompletions()
	}
}

// completeWord implements liner's word completion: it extends the
// identifier under the cursor with matching candidates.
func (r *REPL) completeWord(line string, pos int) (string, []string, string) {
	start := pos
	for start > 0 && isIdentByte(line[start-1]) {
		start--
	}
	prefix := line[start:pos]

	var matches []string
	if prefix != "" {
		for _, w := range r.words.ToSlice() {
			if word := w.(string); strings.HasPrefix(word, prefix) {
				matches = append(matches, word)
			}
		}
		sort.Strings(matches)
	}
	return line[:start], matches, line[pos:]
}

// refreshCompletions folds the session's variable names into the candidate
// set. Names are only ever added: the language has no way to undefine one.
func (r *REPL) refreshCompletions() {
	for _, name := range r.engine.Globals() {
		r.words.Add(name)
	}
}

func (r *REPL) printError(err error) {
	if r.color {
		color.New(color.FgRed).Fprintln(r.errOut, err)
		return
	}
	fmt.Fprintln(r.errOut, err)
}

func (r *REPL) loadHistory(line *liner.State) {
	if r.cfg.HistoryFile == "" {
		return
	}
	if f, err := os.Open(r.cfg.HistoryFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
}

func (r *REPL) saveHistory(line *liner.State) {
	if r.cfg.HistoryFile == "" {
		return
	}
	f, err := os.Create(r.cfg.HistoryFile)
	if err != nil {
		return
	}
	line.WriteHistory(f)
	f.Close()
}

// stderrIsTerminal reports whether stderr supports colored output.
func stderrIsTerminal() bool {
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
