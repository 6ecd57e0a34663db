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

// Package cnf is the "existing, external" CNF service spec §2/§6
// names: conjunctive normal form over boolean expression literals. No
// third-party library in the example pack performs boolean-formula
// normalization, so this is implemented directly on the stdlib — see
// DESIGN.md for why that is the correct call rather than a gap.
package cnf

import "github.com/mutable-db/qgraph/ast"

// Literal wraps a boolean sub-expression together with a negation
// flag, per spec §6 ("each literal exposes its underlying boolean
// expression and its negation flag").
type Literal struct {
	Expr    ast.Expr
	Negated bool
}

// String renders the literal back to SQL.
func (l Literal) String() string {
	if l.Negated {
		return "NOT (" + l.Expr.String() + ")"
	}
	return l.Expr.String()
}

// Clause is a disjunction of literals.
type Clause []Literal

// String renders the clause back to SQL, joining literals with OR.
func (c Clause) String() string {
	if len(c) == 1 {
		return c[0].String()
	}
	s := ""
	for i, l := range c {
		if i > 0 {
			s += " OR "
		}
		s += l.String()
	}
	return "(" + s + ")"
}

// Tables returns the set of table aliases referenced by this clause's
// Designator leaves (spec §4.1 step 3: "compute the set of source
// aliases it touches by scanning Designator leaves"). An unqualified
// Designator (empty TableName) contributes nothing: it cannot be
// attributed to a single source without a resolved schema, and no
// valid, fully-typed input reaching this core should contain one.
func (c Clause) Tables() map[string]struct{} {
	tables := make(map[string]struct{})
	for _, lit := range c {
		collectTables(lit.Expr, tables)
	}
	return tables
}

func collectTables(e ast.Expr, out map[string]struct{}) {
	switch x := e.(type) {
	case *ast.ErrorExpr:
		panic("cnf: malformed AST: ErrorExpr in otherwise-valid input")
	case *ast.Designator:
		if x.TableName != "" {
			out[x.TableName] = struct{}{}
		}
	case *ast.Constant:
		// nothing to do
	case *ast.UnaryExpr:
		collectTables(x.Inner, out)
	case *ast.BinaryExpr:
		collectTables(x.LHS, out)
		collectTables(x.RHS, out)
	case *ast.FnApplicationExpr:
		for _, a := range x.Args {
			collectTables(a, out)
		}
	default:
		panic("cnf: unknown expression type in Clause.Tables")
	}
}

// CNF is an ordered conjunction of clauses.
type CNF []Clause

// Empty reports whether this CNF has no clauses.
func (c CNF) Empty() bool { return len(c) == 0 }

// String renders the CNF back to SQL, joining clauses with AND.
func (c CNF) String() string {
	s := ""
	for i, clause := range c {
		if i > 0 {
			s += " AND "
		}
		s += clause.String()
	}
	return s
}

// Append returns a new CNF with clause appended; CNF values are never
// mutated in place so that a constant clause can be shared across every
// source's filter (spec §4.1 step 3) without aliasing surprises.
func (c CNF) Append(clause Clause) CNF {
	out := make(CNF, len(c), len(c)+1)
	copy(out, c)
	return append(out, clause)
}
