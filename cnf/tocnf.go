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

package cnf

import "github.com/mutable-db/qgraph/ast"

// ToCNF converts a boolean expression tree to conjunctive normal form.
// It is the Go-native stand-in for the external `to_cnf` operation spec
// §1/§6 treats as an opaque, already-existing service; nothing in this
// module's dependency pack supplies one, so it is implemented here by
// straightforward negation-normal-form construction followed by
// OR-over-AND distribution, mirroring what `cnf::to_CNF` does for the
// original C++ `mutable` project (see original_source/src/IR/QueryGraph.cpp,
// which calls it but does not itself define it).
func ToCNF(expr ast.Expr) CNF {
	nnf := toNNF(expr, false)
	return distribute(nnf)
}

// nnf is a boolean formula in negation-normal form: negation only ever
// appears directly on a literal (non-AND/OR) leaf.
type nnf interface{ isNNF() }

type nnfAnd struct{ lhs, rhs nnf }
type nnfOr struct{ lhs, rhs nnf }
type nnfLit struct {
	expr    ast.Expr
	negated bool
}

func (nnfAnd) isNNF() {}
func (nnfOr) isNNF()  {}
func (nnfLit) isNNF() {}

// toNNF pushes negation down to the leaves via De Morgan's laws. negate
// is whether the surrounding context negates this subtree.
func toNNF(e ast.Expr, negate bool) nnf {
	switch x := e.(type) {
	case *ast.ErrorExpr:
		panic("cnf: malformed AST: ErrorExpr in otherwise-valid input")
	case *ast.UnaryExpr:
		if x.Op == "NOT" && !x.Postfix {
			return toNNF(x.Inner, !negate)
		}
		return nnfLit{expr: x, negated: negate}
	case *ast.BinaryExpr:
		switch x.Op {
		case "AND":
			if negate {
				// NOT (a AND b) == (NOT a) OR (NOT b)
				return nnfOr{lhs: toNNF(x.LHS, true), rhs: toNNF(x.RHS, true)}
			}
			return nnfAnd{lhs: toNNF(x.LHS, false), rhs: toNNF(x.RHS, false)}
		case "OR":
			if negate {
				// NOT (a OR b) == (NOT a) AND (NOT b)
				return nnfAnd{lhs: toNNF(x.LHS, true), rhs: toNNF(x.RHS, true)}
			}
			return nnfOr{lhs: toNNF(x.LHS, false), rhs: toNNF(x.RHS, false)}
		default:
			return nnfLit{expr: x, negated: negate}
		}
	default:
		return nnfLit{expr: e, negated: negate}
	}
}

// distribute converts an NNF tree to CNF by distributing OR over AND.
func distribute(n nnf) CNF {
	switch x := n.(type) {
	case nnfLit:
		return CNF{Clause{{Expr: x.expr, Negated: x.negated}}}
	case nnfAnd:
		return append(distribute(x.lhs), distribute(x.rhs)...)
	case nnfOr:
		left := distribute(x.lhs)
		right := distribute(x.rhs)
		out := make(CNF, 0, len(left)*len(right))
		for _, lc := range left {
			for _, rc := range right {
				merged := make(Clause, 0, len(lc)+len(rc))
				merged = append(merged, lc...)
				merged = append(merged, rc...)
				out = append(out, merged)
			}
		}
		return out
	default:
		panic("cnf: unreachable NNF variant")
	}
}
