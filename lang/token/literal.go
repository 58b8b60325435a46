// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package token

import "strconv"

// Literal is a scan-time payload attached to literal-class tokens. The set
// of implementations is closed: IntLit, FloatLit, StringLit and IdentLit.
type Literal interface {
	literalValue()
	String() string
}

// IntLit is an integral numeric payload.
type IntLit int64

// FloatLit is a floating-point numeric payload.
type FloatLit float64

// StringLit is the unquoted contents of a string literal.
type StringLit string

// IdentLit is the text of an identifier.
type IdentLit string

func (IntLit) literalValue()    {}
func (FloatLit) literalValue()  {}
func (StringLit) literalValue() {}
func (IdentLit) literalValue()  {}

func (l IntLit) String() string    { return strconv.FormatInt(int64(l), 10) }
func (l FloatLit) String() string  { return strconv.FormatFloat(float64(l), 'g', -1, 64) }
func (l StringLit) String() string { return string(l) }
func (l IdentLit) String() string  { return string(l) }

// Float64 widens a numeric payload to float64. Both integral and floating
// payloads are numeric at runtime; every other payload reports false.
func Float64(l Literal) (float64, bool) {
	switch v := l.(type) {
	case IntLit:
		return float64(v), true
	case FloatLit:
		return float64(v), true
	}
	return 0, false
}
