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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeGraph is a bare csg.Graph for testing AdjacencyMatrix/Enumerate
// without depending on the querygraph package.
type fakeGraph struct {
	numSources int
	joins      [][]int
}

func (g fakeGraph) NumSources() int      { return g.numSources }
func (g fakeGraph) JoinSourceIDs() [][]int { return g.joins }

func twoTableGraph() fakeGraph {
	return fakeGraph{numSources: 2, joins: [][]int{{0, 1}}}
}

func triangleGraph() fakeGraph {
	return fakeGraph{numSources: 3, joins: [][]int{{0, 1}, {1, 2}, {0, 2}}}
}

func TestAdjacencyMatrixIsSymmetric(t *testing.T) {
	m := NewAdjacencyMatrix(twoTableGraph())
	assert.True(t, m.Row(0).Has(1))
	assert.True(t, m.Row(1).Has(0))
	assert.False(t, m.Row(0).Has(0))
}

func TestAdjacencyMatrixTriangle(t *testing.T) {
	m := NewAdjacencyMatrix(triangleGraph())
	assert.Equal(t, 3, m.Width())
	for i := 0; i < 3; i++ {
		assert.Equal(t, 2, m.Row(i).Len())
	}
}

func TestNeighborsIsUnionOfRows(t *testing.T) {
	m := NewAdjacencyMatrix(triangleGraph())
	n := m.Neighbors(Single(0).Union(Single(1)))
	assert.Equal(t, m.Row(0).Union(m.Row(1)), n)
}

func TestDumpRendersSquareBitMatrix(t *testing.T) {
	m := NewAdjacencyMatrix(twoTableGraph())
	var buf bytes.Buffer
	err := m.Dump(&buf)
	assert.NoError(t, err)
	assert.Equal(t, "01\n10\n", buf.String())
}
