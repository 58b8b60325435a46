// Copyright 2025 The go-tern Authors
// This file is part of the go-tern library.
//
// The go-tern library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for the Tern language.
//
// Design overview:
//
//   - Statements are parsed with straightforward recursive descent.
//   - Expressions are parsed by precedence climbing, one method per level,
//     each folding a left-leaning tree.
//   - Errors are collected rather than aborting; after a failed declaration
//     the parser synchronizes to the next statement boundary so subsequent
//     statements can still be parsed and checked independently.
//   - for loops are lowered here: the parser emits only Block and While
//     nodes, so downstream passes never see a dedicated loop-header form.
package parser

import (
	"errors"
	"strconv"

	"github.com/ternlang/go-tern/lang/ast"
	"github.com/ternlang/go-tern/lang/token"
)

// Parser holds the mutable state for a single parse run over a token slice.
type Parser struct {
	tokens  []token.Token
	current int
	errors  []error
}

// New creates a Parser over a scanned token sequence. The sequence is
// expected to end with an EOF token; a missing one is tolerated.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is the public entry point. It consumes the token sequence and
// returns the statement list together with every syntax error collected
// during the run. Statements that parsed cleanly are returned even when
// later ones failed.
func Parse(tokens []token.Token) ([]ast.Stmt, []error) {
	p := New(tokens)
	stmts := p.Run()
	return stmts, p.Errors()
}

// Run parses declarations until end of input, synchronizing after each error.
func (p *Parser) Run() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// Errors returns the syntax errors collected by Run, in source order.
func (p *Parser) Errors() []error { return p.errors }

// ---------------------------------------------------------------------------
// declaration = var_decl | statement ;
// ---------------------------------------------------------------------------

func (p *Parser) declaration() (ast.Stmt, error) {
	if p.match(token.VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

// ---------------------------------------------------------------------------
// var_decl = "var" IDENT [ "=" expression ] ";" ;
// ---------------------------------------------------------------------------

func (p *Parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(token.IDENT, "Expected variable name")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expr
	if p.match(token.ASSIGN) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	} else {
		initializer = &ast.NilLiteral{}
	}

	if _, err := p.consume(token.SEMICOLON, "Expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Initializer: initializer}, nil
}

// ---------------------------------------------------------------------------
// statement = print_stmt | block | if_stmt | while_stmt | for_stmt | expr_stmt ;
// ---------------------------------------------------------------------------

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.LBRACE):
		return p.blockStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	default:
		return p.expressionStatement()
	}
}

// ---------------------------------------------------------------------------
// print_stmt = "print" expression ";" ;
// ---------------------------------------------------------------------------

func (p *Parser) printStatement() (ast.Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expected ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStmt{Expression: value}, nil
}

// ---------------------------------------------------------------------------
// block = "{" { declaration } "}" ;
// ---------------------------------------------------------------------------

func (p *Parser) blockStatement() (ast.Stmt, error) {
	var statements []ast.Stmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, decl)
	}
	if _, err := p.consume(token.RBRACE, "Expected '}' after block."); err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Statements: statements}, nil
}

// ---------------------------------------------------------------------------
// if_stmt = "if" "(" expression ")" statement [ "else" statement ] ;
// ---------------------------------------------------------------------------

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LPAREN, "Expected '(' after 'if'"); err != nil {
		return nil, err
	}
	predicate, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "Expected ')' after if-predicate"); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.match(token.ELSE) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfStmt{Condition: predicate, Then: then, Else: els}, nil
}

// ---------------------------------------------------------------------------
// while_stmt = "while" "(" expression ")" statement ;
// ---------------------------------------------------------------------------

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LPAREN, "Expected '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "Expected ')' after condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Condition: condition, Body: body}, nil
}

// ---------------------------------------------------------------------------
// for_stmt = "for" "(" ( var_decl | expr_stmt | ";" ) [ expression ] ";"
//            [ expression ] ")" statement ;
//
// There is no for node. The loop is lowered here:
//
//	{ initializer  while (condition) { body  increment; } }
//
// with each wrapper omitted when its clause is absent and a missing
// condition defaulting to true.
// ---------------------------------------------------------------------------

func (p *Parser) forStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LPAREN, "Expected '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer ast.Stmt
	var err error
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		initializer, err = p.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var condition ast.Expr
	if !p.check(token.SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expected ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expr
	if !p.check(token.RPAREN) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RPAREN, "Expected ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{
			body,
			&ast.ExprStmt{Expression: increment},
		}}
	}
	if condition == nil {
		condition = &ast.BoolLiteral{Value: true}
	}
	body = &ast.WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}}
	}
	return body, nil
}

// ---------------------------------------------------------------------------
// expr_stmt = expression ";" ;
// ---------------------------------------------------------------------------

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expression: expr}, nil
}

// ---------------------------------------------------------------------------
// expression = assignment ;
// assignment = or [ "=" assignment ] ;
// ---------------------------------------------------------------------------

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment is right-associative and only a plain variable is a legal
// target; anything else on the left of '=' is rejected after the fact.
func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(token.ASSIGN) {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		v, ok := expr.(*ast.VariableExpr)
		if !ok {
			return nil, errors.New("Invalid assignment target.")
		}
		return &ast.AssignExpr{Name: v.Name, Value: value}, nil
	}
	return expr, nil
}

// ---------------------------------------------------------------------------
// or  = and { "or" and } ;
// and = equality { "and" equality } ;
// ---------------------------------------------------------------------------

func (p *Parser) or() (ast.Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.match(token.OR) {
		operator := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.AND) {
		operator := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &ast.LogicalExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// ---------------------------------------------------------------------------
// equality   = comparison { ( "==" | "!=" ) comparison } ;
// comparison = term { ( ">" | ">=" | "<" | "<=" ) term } ;
// term       = factor { ( "-" | "+" | "%" ) factor } ;
// factor     = unary { ( "/" | "*" ) unary } ;
// ---------------------------------------------------------------------------

func (p *Parser) equality() (ast.Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.matchAny(token.NEQ, token.EQ) {
		operator := p.previous()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.matchAny(token.GT, token.GTE, token.LT, token.LTE) {
		operator := p.previous()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.matchAny(token.MINUS, token.PLUS, token.PERCENT) {
		operator := p.previous()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.matchAny(token.SLASH, token.STAR) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}
	return expr, nil
}

// ---------------------------------------------------------------------------
// unary = ( "!" | "-" ) unary | call ;
// ---------------------------------------------------------------------------

func (p *Parser) unary() (ast.Expr, error) {
	if p.matchAny(token.BANG, token.MINUS) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Operator: operator, Right: right}, nil
	}
	return p.call()
}

// ---------------------------------------------------------------------------
// call      = primary { "(" [ arguments ] ")" } ;
// arguments = expression { "," expression } ;
//
// Calls parse into a CallExpr but the language defines no calling
// convention; the evaluator rejects them at run time.
// ---------------------------------------------------------------------------

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(token.LPAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(token.RPAREN, "Expected ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &ast.CallExpr{Callee: callee, Paren: paren, Args: args}, nil
}

// ---------------------------------------------------------------------------
// primary = NUMBER | STRING | "true" | "false" | "nil" | IDENT
//         | "(" expression ")" ;
// ---------------------------------------------------------------------------

func (p *Parser) primary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case token.LPAREN:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "Expected ')'"); err != nil {
			return nil, err
		}
		return &ast.GroupingExpr{Inner: inner}, nil

	case token.FALSE:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: false}, nil

	case token.TRUE:
		p.advance()
		return &ast.BoolLiteral{Token: tok, Value: true}, nil

	case token.NIL:
		p.advance()
		return &ast.NilLiteral{Token: tok}, nil

	case token.NUMBER:
		p.advance()
		v, ok := token.Float64(tok.Literal)
		if !ok {
			// Hand-built token streams carry the value only in the lexeme.
			var err error
			if v, err = strconv.ParseFloat(tok.Lexeme, 64); err != nil {
				return nil, errors.New("Expected expression")
			}
		}
		return &ast.NumberLiteral{Token: tok, Value: v}, nil

	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Token: tok, Value: stringPayload(tok)}, nil

	case token.IDENT:
		p.advance()
		return &ast.VariableExpr{Name: p.previous()}, nil
	}
	return nil, errors.New("Expected expression")
}

// stringPayload extracts the body of a STRING token, preferring the scan-time
// payload and falling back to the quoted lexeme.
func stringPayload(tok token.Token) string {
	switch v := tok.Literal.(type) {
	case token.StringLit:
		return string(v)
	case token.IdentLit:
		return string(v)
	}
	if n := len(tok.Lexeme); n >= 2 && tok.Lexeme[0] == '"' && tok.Lexeme[n-1] == '"' {
		return tok.Lexeme[1 : n-1]
	}
	return tok.Lexeme
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

// consume advances past the expected token type or fails with msg.
func (p *Parser) consume(typ token.Type, msg string) (token.Token, error) {
	if p.peek().Type == typ {
		p.advance()
		return p.previous(), nil
	}
	return token.Token{}, errors.New(msg)
}

// check reports whether the current token has the given type, consuming
// nothing.
func (p *Parser) check(typ token.Type) bool {
	return p.peek().Type == typ
}

// match consumes the current token when it has the given type.
func (p *Parser) match(typ token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	if p.peek().Type == typ {
		p.advance()
		return true
	}
	return false
}

// matchAny consumes the current token when it has any of the given types.
func (p *Parser) matchAny(types ...token.Type) bool {
	for _, typ := range types {
		if p.match(typ) {
			return true
		}
	}
	return false
}

// advance moves the cursor forward one token, stopping at EOF.
func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() token.Token {
	if p.current >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

// ---------------------------------------------------------------------------
// Error recovery
// ---------------------------------------------------------------------------

// synchronize advances past the failed construct: at least one token, then
// until the previous token was a ';' or the next token starts a new
// declaration or statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.IF,
			token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
