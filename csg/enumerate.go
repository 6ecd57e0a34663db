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

import "github.com/sirupsen/logrus"

var log = logrus.WithField("component", "csg")

// pair is a queue entry: a connected subset S and the exclusion mask X
// of indices already claimed by an earlier seed or an earlier step.
type pair struct {
	s, x Subproblem
}

// Enumerate visits every connected induced subset of m exactly once,
// in the deterministic order fixed by spec §4.5: descending seed
// index, breadth-first queue order, and the Gosper-style subset order
// of LeastSubset/NextSubset. It stops early if yield returns false.
//
// The algorithm: for each source index i from N-1 down to 0, seed a
// queue with ({i}, mask-of-bits-below-i); repeatedly pop (S, X), emit
// S, compute the candidate extension set N = neighbors(S) - X - S, and
// enqueue (S ∪ n, X ∪ N) for every non-empty subset n of N. Subtracting
// S from the neighborhood matters once S is no longer a singleton: a
// member of S can be "rediscovered" as another member's neighbor, and
// without excluding S a grown subset could re-enqueue itself.
func Enumerate(m *AdjacencyMatrix, yield func(Subproblem) bool) {
	n := m.Width()
	emitted := 0
	for i := n - 1; i >= 0; i-- {
		seed := Single(i)
		queue := []pair{{s: seed, x: seed.SingletonToLoMask()}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			emitted++
			if !yield(cur.s) {
				log.WithField("emitted", emitted).Debug("csg enumeration stopped early")
				return
			}

			candidates := m.Neighbors(cur.s).Difference(cur.x).Difference(cur.s)
			for sub := LeastSubset(candidates); !sub.IsEmpty(); sub = NextSubset(sub, candidates) {
				queue = append(queue, pair{s: cur.s.Union(sub), x: cur.x.Union(candidates)})
			}
		}
	}
	log.WithField("emitted", emitted).Debug("csg enumeration complete")
}

// All collects every Subproblem Enumerate would visit, in order. It is
// a convenience for tests and small graphs; callers who only need to
// stream results should use Enumerate directly.
func All(m *AdjacencyMatrix) []Subproblem {
	var out []Subproblem
	Enumerate(m, func(s Subproblem) bool {
		out = append(out, s)
		return true
	})
	return out
}
