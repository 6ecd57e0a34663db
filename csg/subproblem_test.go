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
)

func TestSubproblemSetOps(t *testing.T) {
	s := Single(0).Union(Single(2))
	assert.True(t, s.Has(0))
	assert.False(t, s.Has(1))
	assert.True(t, s.Has(2))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []int{0, 2}, s.Bits())

	assert.Equal(t, Single(2), s.Intersect(Single(2).Union(Single(3))))
	assert.Equal(t, Single(0), s.Difference(Single(2)))
}

func TestSubproblemIsEmptyAndSingleton(t *testing.T) {
	var zero Subproblem
	assert.True(t, zero.IsEmpty())
	assert.False(t, zero.IsSingleton())

	assert.True(t, Single(3).IsSingleton())
	assert.False(t, Single(3).Union(Single(4)).IsSingleton())
}

func TestSingletonToLoMask(t *testing.T) {
	assert.Equal(t, Subproblem(0), Single(0).SingletonToLoMask())
	assert.Equal(t, Subproblem(0b0111), Single(3).SingletonToLoMask())
}

func TestLeastAndNextSubset(t *testing.T) {
	n := Single(0).Union(Single(1)).Union(Single(2))

	var subsets []Subproblem
	for s := LeastSubset(n); !s.IsEmpty(); s = NextSubset(s, n) {
		subsets = append(subsets, s)
	}

	assert.Len(t, subsets, 7) // every non-empty subset of a 3-element set
	seen := make(map[Subproblem]bool)
	for _, s := range subsets {
		assert.False(t, seen[s], "subset %b enumerated twice", s)
		seen[s] = true
		assert.Equal(t, s, s.Intersect(n), "subset %b not contained in n", s)
	}
}

func TestLeastSubsetOfEmptyIsEmpty(t *testing.T) {
	assert.True(t, LeastSubset(0).IsEmpty())
}
