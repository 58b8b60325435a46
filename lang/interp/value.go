// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package interp

import (
	"fmt"

	"github.com/ternlang/go-tern/lang/ast"
)

// Kind categorizes a runtime value.
//
// True and False are separate kinds rather than one boolean kind: type
// mismatch diagnostics name the exact kind of the offending operand.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindTrue
	KindFalse
	KindNil
)

var kindNames = [...]string{
	KindNumber: "Number",
	KindString: "String",
	KindTrue:   "True",
	KindFalse:  "False",
	KindNil:    "Nil",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a runtime value. The set of implementations is closed: Number,
// String, Bool, and Nil. All of them are freely copyable value types, so
// two Values compare equal with == exactly when they hold the same kind
// and the same payload.
type Value interface {
	// Kind returns the category of this value.
	Kind() Kind

	// Truthy reports the value's two-valued classification: zero Numbers,
	// empty Strings, False, and Nil are falsy; everything else is truthy.
	Truthy() bool

	// Display returns the rendering used by print and by diagnostics.
	Display() string

	// value restricts implementations to this package.
	value()
}

// ---- Number ----------------------------------------------------------------

// Number is the single numeric kind. Integer and fractional source literals
// both collapse into it.
type Number float64

func (Number) Kind() Kind      { return KindNumber }
func (n Number) Truthy() bool  { return n != 0 }
func (n Number) Display() string {
	return ast.FormatNumber(float64(n))
}
func (Number) value() {}

// ---- String ----------------------------------------------------------------

// String is a text value. Display keeps the surrounding quotes, so
// `print "hi";` writes "hi" including the quote characters.
type String string

func (String) Kind() Kind     { return KindString }
func (s String) Truthy() bool { return len(s) > 0 }
func (s String) Display() string {
	return `"` + string(s) + `"`
}
func (String) value() {}

// ---- Bool ------------------------------------------------------------------

// Bool holds the two boolean values. Its Kind splits into KindTrue and
// KindFalse depending on the payload.
type Bool bool

func (b Bool) Kind() Kind {
	if b {
		return KindTrue
	}
	return KindFalse
}
func (b Bool) Truthy() bool { return bool(b) }
func (b Bool) Display() string {
	if b {
		return "true"
	}
	return "false"
}
func (Bool) value() {}

// ---- Nil -------------------------------------------------------------------

// Nil is the absent value. Its rendering is "nill", with two l's; scripts
// in the wild match on that exact text.
type Nil struct{}

func (Nil) Kind() Kind      { return KindNil }
func (Nil) Truthy() bool    { return false }
func (Nil) Display() string { return "nill" }
func (Nil) value()          {}

// Pre-allocated singletons for the two boolean values.
var (
	True  Value = Bool(true)
	False Value = Bool(false)
)

// FromBool converts a native bool to the matching Bool value.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Equal reports structural equality. Values of different kinds are never
// equal; no coercion happens. Because every implementation is a comparable
// value type, interface comparison is exactly that relation.
func Equal(a, b Value) bool {
	return a == b
}
