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
	"strings"

	"github.com/google/uuid"
)

// RenderDOT writes a Graphviz rendering of this QueryGraph to w,
// following the stabilized rules of spec §4.2. Rendering never
// mutates the graph; the only errors it can return come from w.
func (g *QueryGraph) RenderDOT(w io.Writer) error {
	r := &dotRenderer{w: w}
	if _, err := io.WriteString(w, "graph query_graph\n{\n"+
		"    forcelabels=true;\n"+
		"    overlap=false;\n"+
		"    labeljust=\"l\";\n"+
		"    graph [compound=true];\n"); err != nil {
		return err
	}
	if err := r.renderCluster(g, "root"); err != nil {
		return err
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

type dotRenderer struct {
	w   io.Writer
	err error
}

// clusterID returns a deterministic, path-scoped identifier standing
// in for the original C++ implementation's pointer address (the `id(X)`
// macro in QueryGraph.cpp's dot_recursive): a SHA1-based UUID of the
// slash-separated alias path from the render root to this node, so repeated
// renders of the same graph produce byte-identical output.
func clusterID(path string) string {
	return "cluster_" + uuid.NewSHA1(uuid.Nil, []byte(path)).String()
}

func nodeID(path string) string {
	return uuid.NewSHA1(uuid.Nil, []byte(path)).String()
}

func (r *dotRenderer) write(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *dotRenderer) renderCluster(g *QueryGraph, path string) error {
	// SubQuery sources recurse first, producing nested clusters.
	for _, src := range g.sources {
		if sq, ok := src.(*SubQuery); ok {
			if err := r.renderCluster(sq.Nested, path+"/"+sq.Alias()); err != nil {
				return err
			}
		}
	}

	r.write("\n  subgraph %s {\n", clusterID(path))

	for _, src := range g.sources {
		srcPath := path + "/" + src.Alias()
		r.write("    %q [label=<<B>%s</B>", nodeID(srcPath), htmlEscape(src.Alias()))
		if !src.Filter().Empty() {
			r.write("<BR/><FONT COLOR=\"0.0 0.0 0.25\" POINT-SIZE=\"10\">%s</FONT>", htmlEscape(src.Filter().String()))
		}
		r.write(">,style=filled,fillcolor=\"0.0 0.0 0.8\"];\n")
		if sq, ok := src.(*SubQuery); ok {
			r.write("    %q -- %q;\n", nodeID(srcPath), clusterID(path+"/"+sq.Alias()))
		}
	}

	for i, j := range g.joins {
		joinPath := fmt.Sprintf("%s#join%d", path, i)
		r.write("    %q [label=<%s>,style=filled,fillcolor=\"0.0 0.0 0.95\"];\n", nodeID(joinPath), htmlEscape(j.Condition.String()))
		for _, src := range j.sources {
			r.write("    %q -- %q;\n", nodeID(joinPath), nodeID(path+"/"+src.Alias()))
		}
	}

	r.write("    label=<<TABLE BORDER=\"0\" CELLPADDING=\"0\" CELLSPACING=\"0\">\n")

	if g.limit.Count != 0 || g.limit.Offset != 0 {
		r.write("<TR><TD ALIGN=\"LEFT\"><B>λ</B><FONT POINT-SIZE=\"9\">%d, %d</FONT></TD></TR>\n", g.limit.Count, g.limit.Offset)
	}

	if len(g.orderBy) > 0 {
		r.write("<TR><TD ALIGN=\"LEFT\"><B>ω</B><FONT POINT-SIZE=\"9\">")
		for i, o := range g.orderBy {
			if i > 0 {
				r.write(", ")
			}
			dir := "ASC"
			if !o.Ascending {
				dir = "DESC"
			}
			r.write("%s %s", htmlEscape(o.Expr.String()), dir)
		}
		r.write("</FONT></TD></TR>\n")
	}

	if g.projectionIsAnti || len(g.projections) > 0 {
		r.write("<TR><TD ALIGN=\"LEFT\"><B>π</B><FONT POINT-SIZE=\"9\">")
		first := true
		if g.projectionIsAnti {
			r.write("*")
			first = false
		}
		for _, p := range g.projections {
			if !first {
				r.write(", ")
			}
			first = false
			r.write("%s", htmlEscape(p.Expr.String()))
			if p.HasAlias {
				r.write(" AS %s", htmlEscape(p.Alias))
			}
		}
		r.write("</FONT></TD></TR>\n")
	}

	if len(g.groupBy) > 0 || len(g.aggregates) > 0 {
		r.write("<TR><TD ALIGN=\"LEFT\"><B>γ</B><FONT POINT-SIZE=\"9\">")
		first := true
		for _, e := range g.groupBy {
			if !first {
				r.write(", ")
			}
			first = false
			r.write("%s", htmlEscape(e.String()))
		}
		for _, e := range g.aggregates {
			if !first {
				r.write(", ")
			}
			first = false
			r.write("%s", htmlEscape(e.String()))
		}
		r.write("</FONT></TD></TR>\n")
	}

	r.write("</TABLE>>;\n  }\n")

	return r.err
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}
