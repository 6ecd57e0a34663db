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
	"github.com/mutable-db/qgraph/catalog"
	"github.com/mutable-db/qgraph/cnf"
)

// DataSource is an operand of a FROM clause: either a BaseTable or a
// SubQuery (spec §3, a closed sum type). Dispatch to the concrete
// variant is an explicit type switch at use sites, per the spec's
// design notes, rather than a visitor hierarchy.
type DataSource interface {
	// ID is this source's dense, insertion-order index within its
	// owning QueryGraph.
	ID() uint32
	// Alias is this source's alias, unique within its owning QueryGraph.
	Alias() string
	// Filter is the CNF of predicates that reference only this source.
	Filter() cnf.CNF
	// Joins is the ordered set of joins this source participates in.
	Joins() []*Join

	base() *sourceBase
}

// sourceBase holds the attributes common to every DataSource variant.
// DataSource.joins and Join.sources are modeled as plain slice
// back-references within one QueryGraph's arenas rather than owning or
// reference-counted edges, per the spec's "Back-pointers inside
// QueryGraph" design note.
type sourceBase struct {
	id     uint32
	alias  string
	filter cnf.CNF
	joins  []*Join
}

func (b *sourceBase) ID() uint32      { return b.id }
func (b *sourceBase) Alias() string   { return b.alias }
func (b *sourceBase) Filter() cnf.CNF { return b.filter }
func (b *sourceBase) Joins() []*Join  { return b.joins }
func (b *sourceBase) base() *sourceBase { return b }

func (b *sourceBase) addFilter(c cnf.Clause) {
	b.filter = b.filter.Append(c)
}

func (b *sourceBase) addJoin(j *Join) {
	b.joins = append(b.joins, j)
}

// BaseTable is a FROM entry naming a real table in the catalog.
type BaseTable struct {
	sourceBase
	TableRef catalog.TableRef
}

// SubQuery is a FROM entry whose source is a nested SELECT. SubQuery
// uniquely owns its Nested QueryGraph.
type SubQuery struct {
	sourceBase
	Nested *QueryGraph
}

// Join is a hyperedge over two or more data sources, carrying the CNF
// condition that connects them (spec §3). Every clause in Condition
// references exactly the sources in Sources (the join-locality
// invariant).
type Join struct {
	Condition cnf.CNF
	sources   []DataSource
}

// Sources returns the ordered sequence of data sources this join
// connects.
func (j *Join) Sources() []DataSource { return j.sources }
