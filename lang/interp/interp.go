// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package interp executes parsed tern programs.
//
// The interpreter walks the syntax tree directly against a chain of lexical
// scopes. Execution is single-threaded and strictly left-to-right; the
// first runtime failure aborts the remaining statements of the current run
// while keeping the effects of statements that already executed.
package interp

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ternlang/go-tern/lang/ast"
	"github.com/ternlang/go-tern/lang/token"
)

// Interpreter evaluates statements against a persistent root scope, so
// consecutive Interpret calls share variable state. That is what lets a
// read-evaluate loop accumulate definitions across lines.
type Interpreter struct {
	globals *Environment
	stdout  io.Writer
}

// New creates an interpreter whose print output goes to stdout. A nil
// writer falls back to os.Stdout.
func New(stdout io.Writer) *Interpreter {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Interpreter{
		globals: NewEnvironment(nil),
		stdout:  stdout,
	}
}

// Globals returns the interpreter's root scope.
func (i *Interpreter) Globals() *Environment { return i.globals }

// Interpret executes stmts in order and returns the first runtime failure,
// if any. Statements before the failing one keep their effects.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := i.execute(s, i.globals); err != nil {
			return err
		}
	}
	return nil
}

// execute runs a single statement in the given scope.
func (i *Interpreter) execute(s ast.Stmt, env *Environment) error {
	switch s := s.(type) {

	case *ast.ExprStmt:
		_, err := i.evaluate(s.Expression, env)
		return err

	case *ast.PrintStmt:
		v, err := i.evaluate(s.Expression, env)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(i.stdout, v.Display())
		return err

	case *ast.VarStmt:
		v, err := i.evaluate(s.Initializer, env)
		if err != nil {
			return err
		}
		env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		// The child scope lives for exactly this block.
		child := NewEnvironment(env)
		for _, inner := range s.Statements {
			if err := i.execute(inner, child); err != nil {
				return err
			}
		}
		return nil

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Condition, env)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return i.execute(s.Then, env)
		}
		if s.Else != nil {
			return i.execute(s.Else, env)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evaluate(s.Condition, env)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := i.execute(s.Body, env); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("interp: unknown statement %T", s)
	}
}

// evaluate computes the value of an expression in the given scope.
func (i *Interpreter) evaluate(e ast.Expr, env *Environment) (Value, error) {
	switch e := e.(type) {

	// ---- Literals ----------------------------------------------------------

	case *ast.NumberLiteral:
		return Number(e.Value), nil

	case *ast.StringLiteral:
		return String(e.Value), nil

	case *ast.BoolLiteral:
		return FromBool(e.Value), nil

	case *ast.NilLiteral:
		return Nil{}, nil

	// ---- Names -------------------------------------------------------------

	case *ast.VariableExpr:
		v, ok := env.Get(e.Name.Lexeme)
		if !ok {
			return nil, fmt.Errorf("Variable '%s' has not been declared", e.Name.Lexeme)
		}
		return v, nil

	case *ast.AssignExpr:
		v, err := i.evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(e.Name.Lexeme, v) {
			return nil, fmt.Errorf("Variable %s has not been declared.", e.Name.Lexeme)
		}
		return v, nil

	// ---- Operators ---------------------------------------------------------

	case *ast.GroupingExpr:
		return i.evaluate(e.Inner, env)

	case *ast.UnaryExpr:
		right, err := i.evaluate(e.Right, env)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Type {
		case token.MINUS:
			n, ok := right.(Number)
			if !ok {
				return nil, fmt.Errorf("Minus not implemented for %s", right.Kind())
			}
			return -n, nil
		case token.BANG:
			return FromBool(!right.Truthy()), nil
		default:
			return nil, fmt.Errorf("'%s' is not a valid unary operator", e.Operator.Lexeme)
		}

	case *ast.BinaryExpr:
		left, err := i.evaluate(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := i.evaluate(e.Right, env)
		if err != nil {
			return nil, err
		}
		return binary(left, e.Operator, right)

	case *ast.LogicalExpr:
		left, err := i.evaluate(e.Left, env)
		if err != nil {
			return nil, err
		}
		switch e.Operator.Type {
		case token.OR:
			// A truthy left side is the result; the right side stays
			// unevaluated.
			if left.Truthy() {
				return left, nil
			}
			return i.evaluate(e.Right, env)
		case token.AND:
			// A falsy left side yields the False value itself, not the
			// left operand.
			if !left.Truthy() {
				return False, nil
			}
			return i.evaluate(e.Right, env)
		default:
			return nil, fmt.Errorf("Invalid token in logical expression: %s", e.Operator.Lexeme)
		}

	case *ast.CallExpr:
		return nil, errors.New("call expressions are not supported")

	default:
		return nil, fmt.Errorf("interp: unknown expression %T", e)
	}
}

// binary applies a binary operator to two evaluated operands.
//
// Equality dispatches before the typed arms: it is defined for every pair
// of kinds, and values of different kinds compare unequal rather than
// raising a type mismatch.
func binary(left Value, op token.Token, right Value) (Value, error) {
	switch op.Type {
	case token.EQ:
		return FromBool(Equal(left, right)), nil
	case token.NEQ:
		return FromBool(!Equal(left, right)), nil
	}

	if ln, ok := left.(Number); ok {
		if rn, ok := right.(Number); ok {
			switch op.Type {
			case token.PLUS:
				return ln + rn, nil
			case token.MINUS:
				return ln - rn, nil
			case token.STAR:
				return ln * rn, nil
			case token.SLASH:
				return ln / rn, nil
			case token.PERCENT:
				return Number(math.Mod(float64(ln), float64(rn))), nil
			case token.LT:
				return FromBool(ln < rn), nil
			case token.LTE:
				return FromBool(ln <= rn), nil
			case token.GT:
				return FromBool(ln > rn), nil
			case token.GTE:
				return FromBool(ln >= rn), nil
			}
		}
	}

	if ls, ok := left.(String); ok {
		if rs, ok := right.(String); ok {
			switch op.Type {
			case token.PLUS:
				return ls + rs, nil
			case token.LT:
				return FromBool(ls < rs), nil
			case token.LTE:
				return FromBool(ls <= rs), nil
			case token.GT:
				return FromBool(ls > rs), nil
			case token.GTE:
				return FromBool(ls >= rs), nil
			}
		}
	}

	if mixesStringAndNumber(left, right) {
		return nil, fmt.Errorf("'%s' is not defined for string and numbers", op.Lexeme)
	}
	return nil, fmt.Errorf("'%s' is not implemented for operands %s and %s",
		op.Lexeme, left.Display(), right.Display())
}

// mixesStringAndNumber reports whether exactly one side is a String and the
// other a Number, in either order.
func mixesStringAndNumber(left, right Value) bool {
	if _, ok := left.(String); ok {
		_, rn := right.(Number)
		return rn
	}
	if _, ok := left.(Number); ok {
		_, rs := right.(String)
		return rs
	}
	return false
}
