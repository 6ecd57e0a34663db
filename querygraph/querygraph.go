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

import "github.com/mutable-db/qgraph/ast"

// Projection is one entry of a SELECT list: an expression with an
// optional output alias.
type Projection struct {
	Expr     ast.Expr
	Alias    string
	HasAlias bool
}

// OrderKey is one ORDER BY key: an expression and its sort direction.
type OrderKey struct {
	Expr      ast.Expr
	Ascending bool
}

// Limit is a LIMIT/OFFSET pair. A Count of 0 means "unspecified" per
// spec §9's open-question resolution: it is rendered only when either
// Count or Offset is non-zero, and is never itself treated as an
// explicit `LIMIT 0`.
type Limit struct {
	Count  uint64
	Offset uint64
}

// QueryGraph is the algebraic intermediate representation of one
// SELECT statement (spec §3). It uniquely owns its sources and joins,
// modeled as two index-keyed arenas rather than owning pointers; ids
// are insertion-order indices into the sources arena.
type QueryGraph struct {
	sources []DataSource
	joins   []*Join

	groupBy          []ast.Expr
	aggregates       []ast.Expr
	projections      []Projection
	projectionIsAnti bool
	orderBy          []OrderKey
	limit            Limit
}

// Sources returns the sources of this QueryGraph in insertion order;
// Sources()[i].ID() == i for every i.
func (g *QueryGraph) Sources() []DataSource { return g.sources }

// Joins returns the joins of this QueryGraph in the order they were
// created during CNF dissection.
func (g *QueryGraph) Joins() []*Join { return g.joins }

// GroupBy returns the GROUP BY key expressions, in textual order.
func (g *QueryGraph) GroupBy() []ast.Expr { return g.groupBy }

// Aggregates returns the distinct aggregate-function applications
// collected from the SELECT list, HAVING condition, and ORDER BY list,
// in first-occurrence order.
func (g *QueryGraph) Aggregates() []ast.Expr { return g.aggregates }

// Projections returns the SELECT list as (expression, optional alias)
// pairs, in textual order. Empty when ProjectionIsAnti is true and no
// explicit exclusions were written.
func (g *QueryGraph) Projections() []Projection { return g.projections }

// ProjectionIsAnti reports whether the source statement used
// `SELECT *`, making Projections the complement to hide rather than
// the list to include.
func (g *QueryGraph) ProjectionIsAnti() bool { return g.projectionIsAnti }

// OrderBy returns the ORDER BY keys, in textual order.
func (g *QueryGraph) OrderBy() []OrderKey { return g.orderBy }

// Limit returns the LIMIT/OFFSET pair.
func (g *QueryGraph) Limit() Limit { return g.limit }

// NumSources and JoinSourceIDs let csg.NewAdjacencyMatrix build an
// AdjacencyMatrix directly from a *QueryGraph: they satisfy
// csg.Graph structurally, so neither package needs to import the
// other's concrete types.
func (g *QueryGraph) NumSources() int { return len(g.sources) }

// JoinSourceIDs returns, for each join, the ids of the sources it
// connects.
func (g *QueryGraph) JoinSourceIDs() [][]int {
	out := make([][]int, len(g.joins))
	for i, j := range g.joins {
		ids := make([]int, len(j.sources))
		for k, s := range j.sources {
			ids[k] = int(s.ID())
		}
		out[i] = ids
	}
	return out
}
