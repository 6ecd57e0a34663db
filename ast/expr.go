// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ast defines the external AST contract the query-planning
// core consumes (spec §6). It is deliberately small: just enough shape
// for GraphBuilder to lower a SELECT into a QueryGraph and for CNF
// literals to render themselves back to SQL. A real parser or a richer
// AST is expected to either produce these types directly or be adapted
// to them; internal/sqlparse does the former for this module.
package ast

import "github.com/shopspring/decimal"

// Expr is the closed sum type of expression variants named in spec §6:
// Designator, Constant, UnaryExpr, BinaryExpr, FnApplicationExpr, and
// ErrorExpr. Dispatch on the concrete type is explicit (a type switch)
// rather than visitor double-dispatch, per the spec's design notes.
type Expr interface {
	// String renders the expression back to SQL. CNF literals rely on
	// this to reconstruct filter and join conditions.
	String() string

	exprNode()
}

// Designator is a (possibly qualified) column reference, e.g. `a.x` or
// bare `x`. TableName is empty for an unqualified reference.
type Designator struct {
	TableName     string
	AttributeName string
}

func (*Designator) exprNode() {}

func (d *Designator) String() string {
	if d.TableName == "" {
		return d.AttributeName
	}
	return d.TableName + "." + d.AttributeName
}

// ConstantKind distinguishes the three literal forms Constant can hold.
type ConstantKind int

const (
	// ConstantNumeric marks a numeric literal; Value holds its decoded form.
	ConstantNumeric ConstantKind = iota
	// ConstantString marks a quoted string literal.
	ConstantString
	// ConstantNull marks the NULL literal.
	ConstantNull
)

// Constant is a literal value. Text is its exact SQL rendering (so
// `'foo'` keeps its quotes, `5` stays unquoted); Value decodes numeric
// literals for callers that need the parsed magnitude. (LIMIT/OFFSET
// do not use it: LimitClause carries raw tokens.)
type Constant struct {
	Kind  ConstantKind
	Text  string
	Value decimal.Decimal
}

func (*Constant) exprNode() {}

func (c *Constant) String() string { return c.Text }

// NewNumericConstant builds a Constant from a numeric literal's text.
func NewNumericConstant(text string) (*Constant, error) {
	v, err := decimal.NewFromString(text)
	if err != nil {
		return nil, err
	}
	return &Constant{Kind: ConstantNumeric, Text: text, Value: v}, nil
}

// NewStringConstant builds a Constant for a quoted string literal. text
// must already include its surrounding quotes.
func NewStringConstant(text string) *Constant {
	return &Constant{Kind: ConstantString, Text: text}
}

// NewNullConstant builds the NULL literal.
func NewNullConstant() *Constant {
	return &Constant{Kind: ConstantNull, Text: "NULL"}
}

// UnaryExpr is a prefix or postfix unary operator application, e.g.
// `NOT x` (prefix) or `x IS NULL` (postfix).
type UnaryExpr struct {
	Op      string
	Inner   Expr
	Postfix bool
}

func (*UnaryExpr) exprNode() {}

func (u *UnaryExpr) String() string {
	if u.Postfix {
		return "(" + u.Inner.String() + ") " + u.Op
	}
	return u.Op + " (" + u.Inner.String() + ")"
}

// BinaryExpr is an infix binary operator application, e.g. `a.x = b.y`.
type BinaryExpr struct {
	Op       string
	LHS, RHS Expr
}

func (*BinaryExpr) exprNode() {}

func (b *BinaryExpr) String() string {
	return "(" + b.LHS.String() + " " + b.Op + " " + b.RHS.String() + ")"
}

// aggregateFunctions is the set of function names treated as aggregates
// by IsAggregate. It is intentionally small: this spec's core only
// needs to detect aggregate application, never evaluate one.
var aggregateFunctions = map[string]bool{
	"COUNT": true,
	"SUM":   true,
	"AVG":   true,
	"MIN":   true,
	"MAX":   true,
}

// FnApplicationExpr is a function call, e.g. `COUNT(*)` or `f(a, b)`.
// Star is set for the bare `COUNT(*)` form, where Args is empty.
type FnApplicationExpr struct {
	Fn   string
	Args []Expr
	Star bool
}

func (*FnApplicationExpr) exprNode() {}

func (f *FnApplicationExpr) String() string {
	if f.Star {
		return f.Fn + "(*)"
	}
	s := f.Fn + "("
	for i, a := range f.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

// IsAggregate reports whether this function application is an aggregate.
func (f *FnApplicationExpr) IsAggregate() bool {
	return aggregateFunctions[f.Fn]
}

// ErrorExpr marks a malformed expression. It must never appear in a
// fully parsed, valid input; GraphBuilder treats its presence as a
// MalformedAST invariant violation (spec §7).
type ErrorExpr struct{}

func (*ErrorExpr) exprNode() {}

func (*ErrorExpr) String() string { return "<error>" }
