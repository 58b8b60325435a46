// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for the Tern language.
//
// Design principles:
//   - ASCII-only input
//   - Single-pass, no backtracking
//   - // line comments are consumed, never emitted
//   - String literals may span multiple lines; no escape decoding
//   - Errors accumulate: scanning always runs to the end of the input and
//     always emits a trailing EOF token
package lexer

import (
	"fmt"
	"strconv"

	"github.com/ternlang/go-tern/lang/token"
)

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	input []byte

	// pos is the index into input of the next byte to be loaded into ch.
	// After advance(), ch == input[pos-1] and pos points one past it.
	pos  int
	line int // 1-based current line number

	ch byte // current character; 0 when past end

	tokens []token.Token
	errs   []error
}

// New creates a new Lexer for the given input string.
func New(input string) *Lexer {
	l := &Lexer{
		input: []byte(input),
		line:  1,
	}
	l.advance() // prime l.ch with the first byte
	return l
}

// Scan tokenizes the whole input. The returned slice always ends with an EOF
// token, even when the input is empty or malformed. Lexical faults do not
// stop the scan; each one is reported in the second return value and the
// offending lexeme is dropped.
func (l *Lexer) Scan() ([]token.Token, []error) {
	for {
		l.skipWhitespace()
		if l.ch == 0 {
			break
		}
		l.scanToken()
	}
	l.emit(token.EOF, "", nil)
	return l.tokens, l.errs
}

// advance moves to the next byte in the input, updating line tracking.
// When the end of input is reached, ch is set to 0.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
	l.pos++
}

// peek returns the byte after the current character without consuming it.
// Returns 0 if at or past end.
func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// skipWhitespace consumes space, tab, carriage return, and newline characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

// emit appends a token carrying the current line number. Tokens are stamped
// with the line they END on, so a multi-line string reports its closing line.
func (l *Lexer) emit(typ token.Type, lexeme string, lit token.Literal) {
	l.tokens = append(l.tokens, token.Token{Type: typ, Lexeme: lexeme, Literal: lit, Line: l.line})
}

// errorf records a lexical fault without stopping the scan.
func (l *Lexer) errorf(format string, args ...interface{}) {
	l.errs = append(l.errs, fmt.Errorf(format, args...))
}

// scanToken consumes one lexeme, emitting a token or recording an error.
// The caller has already skipped whitespace and checked for end of input.
func (l *Lexer) scanToken() {
	ch := l.ch
	l.advance() // consume ch; from here on, l.ch is the character AFTER ch

	switch {
	// -------------------------------------------------------------------------
	// Identifiers and keywords
	// -------------------------------------------------------------------------
	case isIdentStart(ch):
		lit := l.readIdentFromFirst(ch)
		if typ := token.LookupIdent(lit); typ == token.IDENT {
			l.emit(typ, lit, token.IdentLit(lit))
		} else {
			l.emit(typ, lit, nil)
		}

	// -------------------------------------------------------------------------
	// Numeric literals
	// -------------------------------------------------------------------------
	case isDigit(ch):
		l.readNumberFromFirst(ch)

	// -------------------------------------------------------------------------
	// String literals
	// -------------------------------------------------------------------------
	case ch == '"':
		// The opening '"' has been consumed; read the rest.
		body, ok := l.readStringBody()
		if !ok {
			l.errorf("Unterminated string")
			return
		}
		l.emit(token.STRING, `"`+body+`"`, token.StringLit(body))

	// -------------------------------------------------------------------------
	// Slash: comments or division
	// -------------------------------------------------------------------------
	case ch == '/':
		if l.ch == '/' {
			l.advance() // consume second '/'
			l.skipLineComment()
			return
		}
		l.emit(token.SLASH, "/", nil)

	// -------------------------------------------------------------------------
	// Comparison and assignment operators
	// -------------------------------------------------------------------------
	case ch == '!':
		if l.ch == '=' {
			l.advance()
			l.emit(token.NEQ, "!=", nil)
			return
		}
		l.emit(token.BANG, "!", nil)

	case ch == '=':
		if l.ch == '=' {
			l.advance()
			l.emit(token.EQ, "==", nil)
			return
		}
		l.emit(token.ASSIGN, "=", nil)

	case ch == '<':
		if l.ch == '=' {
			l.advance()
			l.emit(token.LTE, "<=", nil)
			return
		}
		l.emit(token.LT, "<", nil)

	case ch == '>':
		if l.ch == '=' {
			l.advance()
			l.emit(token.GTE, ">=", nil)
			return
		}
		l.emit(token.GT, ">", nil)

	// -------------------------------------------------------------------------
	// Single-character operators and punctuation
	// -------------------------------------------------------------------------
	case ch == '(':
		l.emit(token.LPAREN, "(", nil)
	case ch == ')':
		l.emit(token.RPAREN, ")", nil)
	case ch == '{':
		l.emit(token.LBRACE, "{", nil)
	case ch == '}':
		l.emit(token.RBRACE, "}", nil)
	case ch == ',':
		l.emit(token.COMMA, ",", nil)
	case ch == '.':
		l.emit(token.DOT, ".", nil)
	case ch == '-':
		l.emit(token.MINUS, "-", nil)
	case ch == '+':
		l.emit(token.PLUS, "+", nil)
	case ch == '%':
		l.emit(token.PERCENT, "%", nil)
	case ch == ';':
		l.emit(token.SEMICOLON, ";", nil)
	case ch == '*':
		l.emit(token.STAR, "*", nil)

	default:
		l.errorf("Unrecognized char at line %d: %c", l.line, ch)
	}
}

// ---------------------------------------------------------------------------
// Internal readers. Each assumes the first character has already been
// consumed by the advance() call inside scanToken.
// ---------------------------------------------------------------------------

// readIdentFromFirst builds an identifier literal starting with the already-
// consumed byte `first`, then consuming subsequent ident-continue bytes.
func (l *Lexer) readIdentFromFirst(first byte) string {
	buf := make([]byte, 1, 16)
	buf[0] = first
	for isIdentContinue(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readNumberFromFirst scans a numeric literal given the already-consumed
// first digit `first`. Integral literals carry an IntLit payload, literals
// with a fraction carry a FloatLit. A '.' counts as part of the number only
// when a digit follows it, so "123." scans as 123 then DOT.
func (l *Lexer) readNumberFromFirst(first byte) {
	buf := make([]byte, 1, 24)
	buf[0] = first

	for isDigit(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}

	if l.ch == '.' && isDigit(l.peek()) {
		buf = append(buf, '.')
		l.advance() // consume '.'
		for isDigit(l.ch) {
			buf = append(buf, l.ch)
			l.advance()
		}
		s := string(buf)
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			l.errorf("Could not parse: %s", s)
			return
		}
		l.emit(token.NUMBER, s, token.FloatLit(v))
		return
	}

	s := string(buf)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		l.errorf("Could not parse: %s", s)
		return
	}
	l.emit(token.NUMBER, s, token.IntLit(v))
}

// readStringBody reads the content of a string literal after the opening '"'
// has been consumed. It returns the body without the quote characters and a
// bool that is false when the input ended before a closing quote. Newlines
// are legal inside a string and advance the line counter.
func (l *Lexer) readStringBody() (string, bool) {
	var buf []byte
	for {
		switch l.ch {
		case 0:
			return string(buf), false
		case '"':
			l.advance() // consume closing '"'
			return string(buf), true
		default:
			buf = append(buf, l.ch)
			l.advance()
		}
	}
}

// skipLineComment discards bytes up to, but not including, the newline.
// The "//" prefix has already been consumed.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.advance()
	}
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
