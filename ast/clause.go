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

package ast

import "github.com/mutable-db/qgraph/catalog"

// Clause is the marker interface for the clause variants named in
// spec §6.
type Clause interface {
	clauseNode()
}

// FromEntry is one entry of a FROM clause: either a base table
// reference (Nested == nil) or a nested SELECT (Nested != nil), always
// with a mandatory alias in the nested case. Per spec §6, a base-table
// entry already carries its resolved table handle: resolving a table
// token against a catalog is the external catalog/schema subsystem's
// job, not the query-planning core's.
type FromEntry struct {
	// TableToken is the literal table-name token written in the FROM
	// list, used as the implicit alias when no explicit alias is given.
	TableToken string
	// Table is the resolved catalog handle for a base-table entry; nil
	// for a nested-SELECT entry.
	Table    catalog.TableRef
	Alias    string
	HasAlias bool
	// Nested holds the nested SELECT for a `(SELECT ...) AS alias`
	// entry; nil for a base table entry.
	Nested *SelectStmt
}

// FromClause lists the data sources of a SELECT, in textual order.
type FromClause struct {
	Entries []FromEntry
}

func (*FromClause) clauseNode() {}

// WhereClause carries the boolean expression of a WHERE clause.
type WhereClause struct {
	Expr Expr
}

func (*WhereClause) clauseNode() {}

// GroupByClause lists GROUP BY key expressions, in textual order.
type GroupByClause struct {
	Exprs []Expr
}

func (*GroupByClause) clauseNode() {}

// HavingClause carries the boolean expression of a HAVING clause.
type HavingClause struct {
	Expr Expr
}

func (*HavingClause) clauseNode() {}

// SelectItem is one entry of a SELECT list: an expression with an
// optional alias.
type SelectItem struct {
	Expr     Expr
	Alias    string
	HasAlias bool
}

// SelectClause is the SELECT list. SelectAll is set for `SELECT *`, in
// which case Items is empty.
type SelectClause struct {
	SelectAll bool
	Items     []SelectItem
}

func (*SelectClause) clauseNode() {}

// OrderByItem is one ORDER BY key: an expression and a direction.
type OrderByItem struct {
	Expr      Expr
	Ascending bool
}

// OrderByClause lists ORDER BY keys, in textual order.
type OrderByClause struct {
	Items []OrderByItem
}

func (*OrderByClause) clauseNode() {}

// LimitClause carries the raw LIMIT/OFFSET tokens; GraphBuilder parses
// them into unsigned integers (spec §4.1 step 9), surfacing
// InvalidLimit on failure.
type LimitClause struct {
	CountToken  string
	OffsetToken string
	HasOffset   bool
}

func (*LimitClause) clauseNode() {}
