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

// Package queryslice is the illustrative consumer of spec §4.6: given
// a QueryGraph, its AdjacencyMatrix, and one enumerated Subproblem, it
// renders the SQL query that scans exactly that slice of the join
// graph. It is grounded directly on the original C++ implementation's
// `emit_query_slice` (original_source/src/query_slicer.cpp).
package queryslice

import (
	"errors"
	"fmt"
	"io"

	"github.com/mutable-db/qgraph/csg"
	"github.com/mutable-db/qgraph/querygraph"
)

// ErrNestedSource is returned when the slice includes a SubQuery
// source: the illustrative consumer only knows how to scan base
// tables, matching the original tool's hard error on nested queries.
var ErrNestedSource = errors.New("queryslice: nested subquery sources are not supported")

// Render writes `SELECT COUNT(*) FROM ... WHERE ...;` for the slice of
// g named by s to w. The FROM list holds the base tables of s, in
// ascending source-id order; the WHERE list combines every join
// condition whose sources are entirely contained in s with every
// non-empty filter of every source in s, joined with AND. No trailing
// join or filter is elided.
func Render(g *querygraph.QueryGraph, m *csg.AdjacencyMatrix, s csg.Subproblem, w io.Writer) error {
	sources := g.Sources()

	if _, err := io.WriteString(w, "SELECT COUNT(*)\nFROM "); err != nil {
		return err
	}

	first := true
	for _, idx := range s.Bits() {
		src := sources[idx]
		bt, ok := src.(*querygraph.BaseTable)
		if !ok {
			return ErrNestedSource
		}
		if !first {
			if _, err := io.WriteString(w, ", "); err != nil {
				return err
			}
		}
		first = false
		name := ""
		if bt.TableRef != nil {
			name = bt.TableRef.Name()
		}
		if _, err := fmt.Fprintf(w, "%s AS %s", name, bt.Alias()); err != nil {
			return err
		}
	}

	isFirstWhere := true
	writeCondition := func(text string) error {
		if isFirstWhere {
			if _, err := io.WriteString(w, "\nWHERE "); err != nil {
				return err
			}
			isFirstWhere = false
		} else {
			if _, err := io.WriteString(w, " AND "); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, text)
		return err
	}

joins:
	for _, j := range g.Joins() {
		for _, src := range j.Sources() {
			if !s.Has(int(src.ID())) {
				continue joins
			}
		}
		if err := writeCondition(j.Condition.String()); err != nil {
			return err
		}
	}

	for _, idx := range s.Bits() {
		src := sources[idx]
		if src.Filter().Empty() {
			continue
		}
		if err := writeCondition(src.Filter().String()); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, ";\n\n")
	return err
}
