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

package csg

import (
	"fmt"
	"io"
)

// Graph is the minimal view of a QueryGraph AdjacencyMatrix needs to
// build itself: a source count and, for each join, the set of sources
// it connects. querygraph.QueryGraph satisfies this directly through
// its NumSources() and JoinSourceIDs() methods; csg itself stays free
// of a dependency on querygraph so the enumerator can be exercised (and
// tested) against bare adjacency data.
type Graph interface {
	NumSources() int
	JoinSourceIDs() [][]int
}

// AdjacencyMatrix is a symmetric bitset adjacency over a fixed set of
// sources (spec §4.3): row i is the set of sources directly co-joined
// with source i. Self-edges are never set.
type AdjacencyMatrix struct {
	rows []Subproblem
}

// NewAdjacencyMatrix builds an AdjacencyMatrix from g in O(sum of join
// arities squared): each join of arity k induces the complete graph
// K_k over its sources.
func NewAdjacencyMatrix(g Graph) *AdjacencyMatrix {
	m := &AdjacencyMatrix{rows: make([]Subproblem, g.NumSources())}
	for _, ids := range g.JoinSourceIDs() {
		for _, i := range ids {
			for _, j := range ids {
				if i == j {
					continue
				}
				m.rows[i] |= Single(j)
			}
		}
	}
	return m
}

// Width returns the number of sources this matrix covers.
func (m *AdjacencyMatrix) Width() int { return len(m.rows) }

// Neighbors returns the union of the adjacency rows of every source in
// s: ⋃_{i ∈ S} M[i,*]. The result may include members of s itself;
// callers subtract as needed (spec §4.3).
func (m *AdjacencyMatrix) Neighbors(s Subproblem) Subproblem {
	var out Subproblem
	for _, i := range s.Bits() {
		out |= m.rows[i]
	}
	return out
}

// Row returns the raw adjacency row for source i.
func (m *AdjacencyMatrix) Row(i int) Subproblem { return m.rows[i] }

// Dump writes a debug rendering of the matrix to w: one line of bits
// per row, row 0 at the top.
func (m *AdjacencyMatrix) Dump(w io.Writer) error {
	n := len(m.rows)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			bit := 0
			if m.rows[i].Has(j) {
				bit = 1
			}
			if _, err := fmt.Fprintf(w, "%d", bit); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
