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
	"fmt"
	"io"

	"github.com/mutable-db/qgraph/ast"
)

// RenderDump writes a human-readable rendering of this QueryGraph to
// w: one line per source (with its filter, if any), one line per join,
// then the grouping/projection/ordering/limit summary. It exists for
// interactive debugging, parallel to the Graphviz output of RenderDOT.
func (g *QueryGraph) RenderDump(w io.Writer) error {
	return dumpGraph(w, g, 0)
}

func dumpGraph(w io.Writer, g *QueryGraph, depth int) error {
	indent := indentOf(depth)

	for _, src := range g.sources {
		switch s := src.(type) {
		case *BaseTable:
			if _, err := fmt.Fprintf(w, "%sSOURCE %d %q BASE TABLE", indent, s.ID(), s.Alias()); err != nil {
				return err
			}
			if s.TableRef != nil {
				if _, err := fmt.Fprintf(w, " (%s)", s.TableRef.Name()); err != nil {
					return err
				}
			}
		case *SubQuery:
			if _, err := fmt.Fprintf(w, "%sSOURCE %d %q SUBQUERY", indent, s.ID(), s.Alias()); err != nil {
				return err
			}
		}
		if !src.Filter().Empty() {
			if _, err := fmt.Fprintf(w, " FILTER %s", src.Filter()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if sq, ok := src.(*SubQuery); ok {
			if err := dumpGraph(w, sq.Nested, depth+1); err != nil {
				return err
			}
		}
	}

	for i, j := range g.joins {
		aliases := make([]string, len(j.sources))
		for k, s := range j.sources {
			aliases[k] = s.Alias()
		}
		if _, err := fmt.Fprintf(w, "%sJOIN %d %v ON %s\n", indent, i, aliases, j.Condition); err != nil {
			return err
		}
	}

	if len(g.groupBy) > 0 {
		if _, err := fmt.Fprintf(w, "%sGROUP BY %s\n", indent, joinExprs(g.groupBy)); err != nil {
			return err
		}
	}
	if len(g.aggregates) > 0 {
		if _, err := fmt.Fprintf(w, "%sAGGREGATES %s\n", indent, joinExprs(g.aggregates)); err != nil {
			return err
		}
	}
	if g.projectionIsAnti || len(g.projections) > 0 {
		if _, err := fmt.Fprintf(w, "%sPROJECT", indent); err != nil {
			return err
		}
		if g.projectionIsAnti {
			if _, err := fmt.Fprint(w, " *"); err != nil {
				return err
			}
		}
		for _, p := range g.projections {
			s := p.Expr.String()
			if p.HasAlias {
				s += " AS " + p.Alias
			}
			if _, err := fmt.Fprintf(w, " %s", s); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if len(g.orderBy) > 0 {
		if _, err := fmt.Fprintf(w, "%sORDER BY", indent); err != nil {
			return err
		}
		for _, o := range g.orderBy {
			dir := "ASC"
			if !o.Ascending {
				dir = "DESC"
			}
			if _, err := fmt.Fprintf(w, " %s %s", o.Expr, dir); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	if g.limit.Count != 0 || g.limit.Offset != 0 {
		if _, err := fmt.Fprintf(w, "%sLIMIT %d OFFSET %d\n", indent, g.limit.Count, g.limit.Offset); err != nil {
			return err
		}
	}

	return nil
}

func indentOf(depth int) string {
	s := ""
	for i := 0; i < depth; i++ {
		s += "  "
	}
	return s
}

func joinExprs(exprs []ast.Expr) string {
	s := ""
	for i, e := range exprs {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s
}
