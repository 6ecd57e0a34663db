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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateTwoTableJoinExactOrder(t *testing.T) {
	m := NewAdjacencyMatrix(twoTableGraph())
	got := All(m)

	want := []Subproblem{
		Single(1),
		Single(0),
		Single(0).Union(Single(1)),
	}
	assert.Equal(t, want, got)
}

func TestEnumerateTriangleJoinSevenSubproblems(t *testing.T) {
	m := NewAdjacencyMatrix(triangleGraph())
	got := All(m)

	require.Len(t, got, 7)

	seen := make(map[Subproblem]bool)
	for _, s := range got {
		assert.False(t, seen[s], "subproblem %03b emitted more than once", uint64(s))
		seen[s] = true
	}

	want := []Subproblem{
		Single(2),
		Single(1),
		Single(1).Union(Single(2)),
		Single(0),
		Single(0).Union(Single(1)),
		Single(0).Union(Single(2)),
		Single(0).Union(Single(1)).Union(Single(2)),
	}
	assert.Equal(t, want, got)
}

func TestEnumerateIsDeterministicAcrossRuns(t *testing.T) {
	m := NewAdjacencyMatrix(triangleGraph())
	first := All(m)
	second := All(m)
	assert.Equal(t, first, second)
}

func TestEnumerateStopsEarlyWhenYieldReturnsFalse(t *testing.T) {
	m := NewAdjacencyMatrix(triangleGraph())
	count := 0
	Enumerate(m, func(s Subproblem) bool {
		count++
		return count < 3
	})
	assert.Equal(t, 3, count)
}

func TestEnumerateDisconnectedSourcesNeverJoinedAlone(t *testing.T) {
	// Two independent single-source graphs (no join) each enumerate to
	// exactly their own singleton.
	m := NewAdjacencyMatrix(fakeGraph{numSources: 2})
	got := All(m)
	assert.ElementsMatch(t, []Subproblem{Single(0), Single(1)}, got)
}
