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

package querygraph

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mutable-db/qgraph/ast"
	"github.com/mutable-db/qgraph/cnf"
)

var log = logrus.WithField("component", "querygraph")

// Build transforms one AST statement into an owned QueryGraph (spec
// §4.1). It accepts *ast.EmptyStmt and *ast.SelectStmt; an
// *ast.ErrorStmt panics as a MalformedAST invariant violation, and
// anything else fails with ErrUnsupportedStatement. A failed build releases all
// intermediate allocations and returns no visible QueryGraph.
func Build(stmt ast.Stmt) (*QueryGraph, error) {
	switch s := stmt.(type) {
	case *ast.EmptyStmt:
		return &QueryGraph{}, nil
	case *ast.SelectStmt:
		g, err := buildSelect(s)
		if err != nil {
			return nil, err
		}
		return g, nil
	case *ast.ErrorStmt:
		malformedAST("ErrorStmt reached GraphBuilder.Build")
		panic("unreachable")
	default:
		return nil, ErrUnsupportedStatement.New(stmt)
	}
}

// buildSelect runs the per-SELECT algorithm of spec §4.1, steps 1-9.
func buildSelect(s *ast.SelectStmt) (*QueryGraph, error) {
	g := &QueryGraph{}

	// Step 1: CNF of WHERE.
	var whereCNF cnf.CNF
	if s.Where != nil {
		whereCNF = cnf.ToCNF(s.Where.Expr)
	}

	// Step 2: materialize FROM sources.
	aliasOrder := make([]string, 0)
	aliases := make(map[string]DataSource)
	if s.From != nil {
		for _, entry := range s.From.Entries {
			var src DataSource
			if entry.Nested != nil {
				if !entry.HasAlias || entry.Alias == "" {
					return nil, ErrMissingAlias.New()
				}
				nestedGraph, err := buildSelect(entry.Nested)
				if err != nil {
					return nil, err
				}
				sq := &SubQuery{Nested: nestedGraph}
				sq.id = uint32(len(g.sources))
				sq.alias = entry.Alias
				src = sq
			} else {
				alias := entry.TableToken
				if entry.HasAlias {
					alias = entry.Alias
				}
				bt := &BaseTable{TableRef: entry.Table}
				bt.id = uint32(len(g.sources))
				bt.alias = alias
				src = bt
			}

			if _, collision := aliases[src.Alias()]; collision {
				// A collision here is a semantic error from earlier
				// stages (resolution/validation) and may be asserted,
				// per spec §4.1 step 2.
				malformedAST("duplicate alias " + src.Alias() + " in FROM clause")
			}
			aliases[src.Alias()] = src
			aliasOrder = append(aliasOrder, src.Alias())
			g.sources = append(g.sources, src)
		}
	}

	// Step 3: dissect the CNF into per-source filters vs. joins.
	for _, clause := range whereCNF {
		dissectClause(g, clause, aliases, aliasOrder)
	}

	// Step 4: GROUP BY.
	if s.GroupBy != nil {
		g.groupBy = append(g.groupBy, s.GroupBy.Exprs...)
	}

	// Step 5: aggregates, deduped by textual form, first-occurrence order.
	g.aggregates = collectAggregates(s)

	// Step 6: HAVING as a selection on a sub-query.
	working := g
	if s.Having != nil {
		outer := &QueryGraph{}
		sub := &SubQuery{Nested: working}
		sub.id = 0
		sub.alias = "HAVING"
		sub.filter = cnf.ToCNF(s.Having.Expr)
		outer.sources = []DataSource{sub}
		working = outer
	}

	// Step 7: projections.
	if s.Select != nil {
		working.projectionIsAnti = s.Select.SelectAll
		for _, item := range s.Select.Items {
			working.projections = append(working.projections, Projection{
				Expr: item.Expr, Alias: item.Alias, HasAlias: item.HasAlias,
			})
		}
	}

	// Step 8: ORDER BY.
	if s.OrderBy != nil {
		for _, item := range s.OrderBy.Items {
			working.orderBy = append(working.orderBy, OrderKey{Expr: item.Expr, Ascending: item.Ascending})
		}
	}

	// Step 9: LIMIT.
	if s.Limit != nil {
		count, err := strconv.ParseUint(s.Limit.CountToken, 10, 64)
		if err != nil {
			return nil, ErrInvalidLimit.New(s.Limit.CountToken)
		}
		working.limit.Count = count
		if s.Limit.HasOffset {
			offset, err := strconv.ParseUint(s.Limit.OffsetToken, 10, 64)
			if err != nil {
				return nil, ErrInvalidLimit.New(s.Limit.OffsetToken)
			}
			working.limit.Offset = offset
		}
	}

	log.WithFields(logrus.Fields{
		"sources": len(working.sources),
		"joins":   len(working.joins),
	}).Debug("built query graph")

	return working, nil
}

// dissectClause implements spec §4.1 step 3 for a single CNF clause.
func dissectClause(g *QueryGraph, clause cnf.Clause, aliases map[string]DataSource, aliasOrder []string) {
	tables := clause.Tables()
	switch len(tables) {
	case 0:
		// Constant clause: applies to every source, regardless of which
		// one is scanned.
		for _, alias := range aliasOrder {
			aliases[alias].base().addFilter(clause)
		}
	case 1:
		var alias string
		for t := range tables {
			alias = t
		}
		src, ok := aliases[alias]
		if !ok {
			malformedAST("clause references unknown alias " + alias)
		}
		src.base().addFilter(clause)
	default:
		sources := make([]DataSource, 0, len(tables))
		for _, alias := range aliasOrder {
			if _, touched := tables[alias]; touched {
				sources = append(sources, aliases[alias])
			}
		}
		j := &Join{Condition: cnf.CNF{clause}, sources: sources}
		g.joins = append(g.joins, j)
		for _, src := range sources {
			src.base().addJoin(j)
		}
	}
}

// collectAggregates implements spec §4.1 step 5: traverse the SELECT
// list, HAVING condition, and ORDER BY list, collecting every
// aggregate-function application exactly once, keyed by its canonical
// textual rendering.
func collectAggregates(s *ast.SelectStmt) []ast.Expr {
	seen := make(map[string]bool)
	var out []ast.Expr

	add := func(e ast.Expr) {
		if fn, ok := e.(*ast.FnApplicationExpr); ok && fn.IsAggregate() {
			key := fn.String()
			if !seen[key] {
				seen[key] = true
				out = append(out, fn)
			}
		}
	}

	var walk func(e ast.Expr)
	walk = func(e ast.Expr) {
		switch x := e.(type) {
		case *ast.ErrorExpr:
			malformedAST("ErrorExpr reached aggregate collection")
		case *ast.Designator, *ast.Constant:
			// nothing to do
		case *ast.UnaryExpr:
			walk(x.Inner)
		case *ast.BinaryExpr:
			walk(x.LHS)
			walk(x.RHS)
		case *ast.FnApplicationExpr:
			add(x)
			for _, a := range x.Args {
				walk(a)
			}
		default:
			malformedAST("unknown expression type in aggregate collection")
		}
	}

	if s.Select != nil {
		for _, item := range s.Select.Items {
			walk(item.Expr)
		}
	}
	if s.Having != nil {
		walk(s.Having.Expr)
	}
	if s.OrderBy != nil {
		for _, item := range s.OrderBy.Items {
			walk(item.Expr)
		}
	}

	return out
}
