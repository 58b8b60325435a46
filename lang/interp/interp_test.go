// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package interp

import (
	"bytes"
	"io/ioutil"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlang/go-tern/lang/ast"
	"github.com/ternlang/go-tern/lang/lexer"
	"github.com/ternlang/go-tern/lang/parser"
)

// parse tokenizes and parses source that must be free of static errors.
func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, errs := lexer.New(src).Scan()
	require.Empty(t, errs, "scan errors")
	stmts, perrs := parser.Parse(toks)
	require.Empty(t, perrs, "parse errors")
	return stmts
}

// run executes a program and returns everything it printed plus the first
// runtime error, if any.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := New(&out)
	err := in.Interpret(parse(t, src))
	return out.String(), err
}

// eval evaluates a single expression.
func eval(t *testing.T, expr string) (Value, error) {
	t.Helper()
	stmts := parse(t, expr+";")
	require.Len(t, stmts, 1)
	es, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok, "expected an expression statement")
	in := New(ioutil.Discard)
	return in.evaluate(es.Expression, in.globals)
}

// mustEval evaluates a single expression that must succeed.
func mustEval(t *testing.T, expr string) Value {
	t.Helper()
	v, err := eval(t, expr)
	require.NoError(t, err)
	return v
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func TestEvalLiterals(t *testing.T) {
	assert.Equal(t, Number(42), mustEval(t, "42"))
	assert.Equal(t, Number(1.5), mustEval(t, "1.5"))
	assert.Equal(t, String("hi"), mustEval(t, `"hi"`))
	assert.Equal(t, True, mustEval(t, "true"))
	assert.Equal(t, False, mustEval(t, "false"))
	assert.Equal(t, Value(Nil{}), mustEval(t, "nil"))
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		expr string
		want Value
	}{
		{"1 + 2", Number(3)},
		{"7 - 4", Number(3)},
		{"3 * 4", Number(12)},
		{"10 / 4", Number(2.5)},
		{"7 % 3", Number(1)},
		{"-5 + 3", Number(-2)},
		{"2 + 3 * 4", Number(14)},
		{"(2 + 3) * 4", Number(20)},
		{"1 / 0", Number(math.Inf(1))},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			assert.Equal(t, c.want, mustEval(t, c.expr))
		})
	}
}

func TestModuloByZeroIsNaN(t *testing.T) {
	v := mustEval(t, "1 % 0")
	n, ok := v.(Number)
	require.True(t, ok, "expected a Number, got %T", v)
	assert.True(t, math.IsNaN(float64(n)))
}

func TestStringOperations(t *testing.T) {
	cases := []struct {
		expr string
		want Value
	}{
		{`"foo" + "bar"`, String("foobar")},
		{`"" + "x"`, String("x")},
		{`"a" < "b"`, True},
		{`"b" <= "a"`, False},
		{`"b" > "a"`, True},
		{`"a" >= "b"`, False},
		{`"abc" < "abd"`, True},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			assert.Equal(t, c.want, mustEval(t, c.expr))
		})
	}
}

func TestNumberComparisons(t *testing.T) {
	cases := []struct {
		expr string
		want Value
	}{
		{"1 < 2", True},
		{"2 < 1", False},
		{"2 <= 2", True},
		{"3 > 2", True},
		{"2 >= 3", False},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			assert.Equal(t, c.want, mustEval(t, c.expr))
		})
	}
}

func TestEquality(t *testing.T) {
	cases := []struct {
		expr string
		want Value
	}{
		{"1 == 1", True},
		{"1 == 2", False},
		{"1 != 2", True},
		{`"a" == "a"`, True},
		{`"a" == "b"`, False},
		{"true == true", True},
		{"false == false", True},
		{"nil == nil", True},

		// Values of different kinds are unequal, never a type error.
		{`1 == "1"`, False},
		{"0 == false", False},
		{"1 == true", False},
		{"nil == false", False},
		{`"" == nil`, False},
		{`"a" != 1`, True},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			assert.Equal(t, c.want, mustEval(t, c.expr))
		})
	}
}

func TestBangIsFalsyConversion(t *testing.T) {
	cases := []struct {
		expr string
		want Value
	}{
		{"!0", True},
		{"!1", False},
		{`!""`, True},
		{`!"x"`, False},
		{"!nil", True},
		{"!true", False},
		{"!false", True},
		{"!!nil", False},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			assert.Equal(t, c.want, mustEval(t, c.expr))
		})
	}
}

func TestLogicalOperators(t *testing.T) {
	cases := []struct {
		expr string
		want Value
	}{
		// or yields the left operand itself when it is truthy.
		{"1 or 2", Number(1)},
		{"0 or 2", Number(2)},
		{`nil or "x"`, String("x")},
		{`"" or 0`, Number(0)},

		// and yields the False value, not the left operand, when the left
		// side is falsy.
		{"1 and 2", Number(2)},
		{"0 and 2", False},
		{`"" and 1`, False},
		{"nil and 1", False},
		{"true and nil", Value(Nil{})},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			assert.Equal(t, c.want, mustEval(t, c.expr))
		})
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	// The right operand references an undeclared variable, so evaluating it
	// would fail. A decided left side must keep it unevaluated.
	v, err := eval(t, "1 or missing")
	require.NoError(t, err)
	assert.Equal(t, Number(1), v)

	v, err = eval(t, "0 and missing")
	require.NoError(t, err)
	assert.Equal(t, False, v)

	_, err = eval(t, "0 or missing")
	assert.EqualError(t, err, "Variable 'missing' has not been declared")

	_, err = eval(t, "1 and missing")
	assert.EqualError(t, err, "Variable 'missing' has not been declared")
}

func TestUnaryMinusTypeErrors(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{`-"a"`, "Minus not implemented for String"},
		{"-true", "Minus not implemented for True"},
		{"-false", "Minus not implemented for False"},
		{"-nil", "Minus not implemented for Nil"},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			_, err := eval(t, c.expr)
			assert.EqualError(t, err, c.want)
		})
	}
}

func TestBinaryTypeErrors(t *testing.T) {
	cases := []struct {
		expr string
		want string
	}{
		{`"a" + 1`, "'+' is not defined for string and numbers"},
		{`1 + "a"`, "'+' is not defined for string and numbers"},
		{`1 * "a"`, "'*' is not defined for string and numbers"},
		{`"a" < 1`, "'<' is not defined for string and numbers"},
		{`1 >= "a"`, "'>=' is not defined for string and numbers"},
		{`"a" - "b"`, `'-' is not implemented for operands "a" and "b"`},
		{`"a" * "b"`, `'*' is not implemented for operands "a" and "b"`},
		{"true + 1", "'+' is not implemented for operands true and 1"},
		{"nil + nil", "'+' is not implemented for operands nill and nill"},
		{"true < false", "'<' is not implemented for operands true and false"},
	}
	for _, c := range cases {
		t.Run(c.expr, func(t *testing.T) {
			_, err := eval(t, c.expr)
			assert.EqualError(t, err, c.want)
		})
	}
}

func TestCallExpressionsUnsupported(t *testing.T) {
	_, err := eval(t, "foo(1, 2)")
	assert.EqualError(t, err, "call expressions are not supported")
}

// ---------------------------------------------------------------------------
// Variables and scopes
// ---------------------------------------------------------------------------

func TestVarDeclarationAndRead(t *testing.T) {
	out, err := run(t, "var x = 1; print x;")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestVarWithoutInitializerIsNil(t *testing.T) {
	out, err := run(t, "var x; print x;")
	require.NoError(t, err)
	assert.Equal(t, "nill\n", out)
}

func TestRedeclarationReplaces(t *testing.T) {
	out, err := run(t, "var x = 1; var x = 2; print x;")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestReadUndeclared(t *testing.T) {
	_, err := run(t, "print y;")
	assert.EqualError(t, err, "Variable 'y' has not been declared")
}

func TestAssignUndeclared(t *testing.T) {
	_, err := run(t, "y = 1;")
	assert.EqualError(t, err, "Variable y has not been declared.")
}

func TestAssignmentYieldsValue(t *testing.T) {
	out, err := run(t, "var x = 1; print x = 2;")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestBlockShadowing(t *testing.T) {
	out, err := run(t, "var x = 1; { var x = 2; print x; } print x;")
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", out)
}

func TestAssignmentReachesEnclosingScope(t *testing.T) {
	out, err := run(t, "var x = 1; { x = 2; } print x;")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestBlockLocalsAreDiscarded(t *testing.T) {
	_, err := run(t, "{ var y = 5; } print y;")
	assert.EqualError(t, err, "Variable 'y' has not been declared")
}

// ---------------------------------------------------------------------------
// Statements and control flow
// ---------------------------------------------------------------------------

func TestPrintRendering(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"print 1 + 2;", "3\n"},
		{"print 15;", "15\n"},
		{"print 0.5;", "0.5\n"},
		{"print -3;", "-3\n"},
		{`print "hi";`, "\"hi\"\n"},
		{"print true;", "true\n"},
		{"print false;", "false\n"},
		{"print nil;", "nill\n"},
		{`print "a" + "b";`, "\"ab\"\n"},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			out, err := run(t, c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestIfBranching(t *testing.T) {
	out, err := run(t, "if (1 < 2) print 1; else print 2;")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = run(t, "if (2 < 1) print 1; else print 2;")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	// A falsy predicate with no else branch does nothing.
	out, err = run(t, "if (0) print 1;")
	require.NoError(t, err)
	assert.Equal(t, "", out)

	// Predicates use general truthiness, not just booleans.
	out, err = run(t, `if ("") print 1; else print 2;`)
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, "var i = 0; while (i < 3) { print i; i = i + 1; }")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestWhileNeverEntersOnFalsyCondition(t *testing.T) {
	out, err := run(t, "while (0) print 1;")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestForLoop(t *testing.T) {
	out, err := run(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestForLoopVariableIsScoped(t *testing.T) {
	_, err := run(t, "for (var i = 0; i < 1; i = i + 1) print i; print i;")
	assert.EqualError(t, err, "Variable 'i' has not been declared")
}

func TestFibonacciProgram(t *testing.T) {
	src := `
var a = 0;
var b = 1;
for (var i = 0; i < 5; i = i + 1) {
    print a;
    var next = a + b;
    a = b;
    b = next;
}
`
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n1\n2\n3\n", out)
}

// ---------------------------------------------------------------------------
// Failure propagation and state
// ---------------------------------------------------------------------------

func TestFirstRuntimeErrorAborts(t *testing.T) {
	out, err := run(t, "print 1; print missing; print 2;")
	assert.EqualError(t, err, "Variable 'missing' has not been declared")
	assert.Equal(t, "1\n", out, "statements after the failure must not run")
}

func TestEffectsBeforeFailureAreKept(t *testing.T) {
	in := New(ioutil.Discard)
	err := in.Interpret(parse(t, "var x = 1; missing = 2;"))
	require.Error(t, err)

	v, ok := in.Globals().Get("x")
	require.True(t, ok, "x must survive the failed run")
	assert.Equal(t, Value(Number(1)), v)
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	in := New(&out)

	require.NoError(t, in.Interpret(parse(t, "var x = 1;")))
	require.NoError(t, in.Interpret(parse(t, "x = x + 1;")))
	require.NoError(t, in.Interpret(parse(t, "print x;")))

	assert.Equal(t, "2\n", out.String())
}
