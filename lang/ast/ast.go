// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the Tern language.
//
// Design overview:
//
//   - All AST nodes implement the Node interface via TokenLiteral and String.
//   - Expressions and statements each have a marker interface that embeds
//     Node to enable type-safe dispatch; both sets are closed and the
//     evaluator type-switches over them exhaustively.
//   - String renders the parenthesised prefix form used by tests and the
//     tree dump command: "1 + 2 == 5 + 7" prints as (== (+ 1 2) (+ 5 7)).
//   - There is no node for the for loop; the parser lowers it to a Block
//     and While combination before the tree is ever seen downstream.
package ast

import (
	"bytes"
	"strconv"

	"github.com/ternlang/go-tern/lang/token"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// TokenLiteral returns the lexeme of the token that originated this node.
	// Used primarily for debugging and testing.
	TokenLiteral() string

	// String returns a human-readable, parenthesised representation of the
	// node suitable for unit tests and debug output.
	String() string
}

// Expr is a marker interface for all expression nodes.
// Every Expr is also a Node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for all statement nodes.
// Every Stmt is also a Node.
type Stmt interface {
	Node
	stmtNode()
}

// ---------------------------------------------------------------------------
// Expression nodes
// ---------------------------------------------------------------------------

// NumberLiteral is a numeric literal: 42, 3.14.
type NumberLiteral struct {
	Token token.Token // the NUMBER token
	Value float64
}

func (e *NumberLiteral) exprNode()            {}
func (e *NumberLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *NumberLiteral) String() string       { return FormatNumber(e.Value) }

// StringLiteral is a double-quoted string: "hello, world".
type StringLiteral struct {
	Token token.Token // the STRING token
	Value string
}

func (e *StringLiteral) exprNode()            {}
func (e *StringLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *StringLiteral) String() string       { return `"` + e.Value + `"` }

// BoolLiteral is a boolean literal: true or false.
type BoolLiteral struct {
	Token token.Token // TRUE or FALSE
	Value bool
}

func (e *BoolLiteral) exprNode()            {}
func (e *BoolLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *BoolLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// NilLiteral represents the nil keyword. Its printed form is "nill", an
// observed quirk of the language that conformance depends on.
type NilLiteral struct {
	Token token.Token // NIL
}

func (e *NilLiteral) exprNode()            {}
func (e *NilLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *NilLiteral) String() string       { return "nill" }

// VariableExpr is a variable read: x.
type VariableExpr struct {
	Name token.Token // the IDENT token
}

func (e *VariableExpr) exprNode()            {}
func (e *VariableExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *VariableExpr) String() string       { return "(var " + e.Name.Lexeme + ")" }

// AssignExpr assigns to an already-declared variable: x = expr.
// Assignment is an expression; its value is the assigned value.
type AssignExpr struct {
	Name  token.Token // the IDENT token of the target
	Value Expr
}

func (e *AssignExpr) exprNode()            {}
func (e *AssignExpr) TokenLiteral() string { return e.Name.Lexeme }
func (e *AssignExpr) String() string       { return "(= " + e.Name.Lexeme + " " + e.Value.String() + ")" }

// UnaryExpr is a prefix expression: -x or !x.
type UnaryExpr struct {
	Operator token.Token
	Right    Expr
}

func (e *UnaryExpr) exprNode()            {}
func (e *UnaryExpr) TokenLiteral() string { return e.Operator.Lexeme }
func (e *UnaryExpr) String() string {
	return "(" + e.Operator.Lexeme + " " + e.Right.String() + ")"
}

// BinaryExpr is an infix arithmetic, comparison, or equality expression.
type BinaryExpr struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *BinaryExpr) exprNode()            {}
func (e *BinaryExpr) TokenLiteral() string { return e.Operator.Lexeme }
func (e *BinaryExpr) String() string {
	return "(" + e.Operator.Lexeme + " " + e.Left.String() + " " + e.Right.String() + ")"
}

// LogicalExpr is a short-circuiting and/or expression. It is distinct from
// BinaryExpr because its right operand is conditionally evaluated.
type LogicalExpr struct {
	Left     Expr
	Operator token.Token // AND or OR
	Right    Expr
}

func (e *LogicalExpr) exprNode()            {}
func (e *LogicalExpr) TokenLiteral() string { return e.Operator.Lexeme }
func (e *LogicalExpr) String() string {
	return "(" + e.Operator.Lexeme + " " + e.Left.String() + " " + e.Right.String() + ")"
}

// GroupingExpr is a parenthesised expression: (expr).
type GroupingExpr struct {
	Inner Expr
}

func (e *GroupingExpr) exprNode()            {}
func (e *GroupingExpr) TokenLiteral() string { return "(" }
func (e *GroupingExpr) String() string       { return "(group " + e.Inner.String() + ")" }

// CallExpr is a call expression: callee(args). Calls parse but carry no
// evaluation rule; the evaluator reports them as unsupported.
type CallExpr struct {
	Callee Expr
	Paren  token.Token // the closing ')' token, kept for error reporting
	Args   []Expr
}

func (e *CallExpr) exprNode()            {}
func (e *CallExpr) TokenLiteral() string { return e.Paren.Lexeme }
func (e *CallExpr) String() string {
	var out bytes.Buffer
	out.WriteString("(call ")
	out.WriteString(e.Callee.String())
	for _, a := range e.Args {
		out.WriteString(" ")
		out.WriteString(a.String())
	}
	out.WriteString(")")
	return out.String()
}

// ---------------------------------------------------------------------------
// Statement nodes
// ---------------------------------------------------------------------------

// ExprStmt wraps an expression used in a statement position.
// The value of the expression is discarded.
type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) stmtNode()            {}
func (s *ExprStmt) TokenLiteral() string { return s.Expression.TokenLiteral() }
func (s *ExprStmt) String() string       { return s.Expression.String() }

// PrintStmt evaluates an expression and prints its display form.
type PrintStmt struct {
	Expression Expr
}

func (s *PrintStmt) stmtNode()            {}
func (s *PrintStmt) TokenLiteral() string { return "print" }
func (s *PrintStmt) String() string       { return "(print " + s.Expression.String() + ")" }

// VarStmt declares a variable in the current scope: var x = expr;.
// The parser fills Initializer with a NilLiteral when it is omitted.
type VarStmt struct {
	Name        token.Token // the IDENT token
	Initializer Expr
}

func (s *VarStmt) stmtNode()            {}
func (s *VarStmt) TokenLiteral() string { return s.Name.Lexeme }
func (s *VarStmt) String() string {
	return "(var-decl " + s.Name.Lexeme + " " + s.Initializer.String() + ")"
}

// BlockStmt is a brace-delimited statement sequence executed in a child scope.
type BlockStmt struct {
	Statements []Stmt
}

func (s *BlockStmt) stmtNode() {}
func (s *BlockStmt) TokenLiteral() string {
	if len(s.Statements) > 0 {
		return s.Statements[0].TokenLiteral()
	}
	return ""
}
func (s *BlockStmt) String() string {
	var out bytes.Buffer
	out.WriteString("(block")
	for _, st := range s.Statements {
		out.WriteString(" ")
		out.WriteString(st.String())
	}
	out.WriteString(")")
	return out.String()
}

// IfStmt branches on the truthiness of its predicate. Else is nil when the
// statement has no else branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (s *IfStmt) stmtNode()            {}
func (s *IfStmt) TokenLiteral() string { return "if" }
func (s *IfStmt) String() string {
	var out bytes.Buffer
	out.WriteString("(if ")
	out.WriteString(s.Condition.String())
	out.WriteString(" ")
	out.WriteString(s.Then.String())
	if s.Else != nil {
		out.WriteString(" ")
		out.WriteString(s.Else.String())
	}
	out.WriteString(")")
	return out.String()
}

// WhileStmt loops while its condition stays truthy. For loops are lowered to
// this node plus surrounding blocks at parse time.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) stmtNode()            {}
func (s *WhileStmt) TokenLiteral() string { return "while" }
func (s *WhileStmt) String() string {
	return "(while " + s.Condition.String() + " " + s.Body.String() + ")"
}

// ---------------------------------------------------------------------------
// Shared rendering helpers
// ---------------------------------------------------------------------------

// FormatNumber renders a numeric value in its shortest natural decimal form:
// whole numbers without a fraction (15), everything else with one (1.5).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Program renders a statement sequence one line per statement, the form the
// tree dump command prints.
func Program(stmts []Stmt) string {
	var out bytes.Buffer
	for _, s := range stmts {
		out.WriteString(s.String())
		out.WriteByte('\n')
	}
	return out.String()
}
