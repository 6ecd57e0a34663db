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

// Command qslice is the illustrative driver for the query-planning
// core: given a schema file and a query (as a second argument or on
// stdin), it builds the QueryGraph, enumerates every connected
// subgraph of its join graph, and prints the SQL slice query for each
// one. It is grounded on the original C++ tool's `main`
// (original_source/src/query_slicer.cpp) and on cobra wiring borrowed
// from accented-ai-pgtofu's internal/cli/cli.go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mutable-db/qgraph/csg"
	"github.com/mutable-db/qgraph/internal/sqlparse"
	"github.com/mutable-db/qgraph/querygraph"
	"github.com/mutable-db/qgraph/queryslice"
)

var log = logrus.WithField("component", "qslice")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dotPath string

	cmd := &cobra.Command{
		Use:   "qslice <SCHEMA.sql> [<QUERY.sql>]",
		Short: "Enumerate connected-subgraph slices of a SELECT's join graph",
		Long: "qslice parses a CREATE TABLE schema and a single SELECT query, builds\n" +
			"its query graph, and prints one `SELECT COUNT(*) ...` slice query per\n" +
			"connected subgraph of the join graph, in enumeration order.",
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQSlice(cmd, args, dotPath)
		},
	}

	cmd.Flags().StringVar(&dotPath, "dot", "", "also render the query graph as Graphviz dot to this path")
	return cmd
}

func runQSlice(cmd *cobra.Command, args []string, dotPath string) error {
	schemaBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("qslice: reading schema: %w", err)
	}
	cat, err := sqlparse.ParseSchema(string(schemaBytes))
	if err != nil {
		return fmt.Errorf("qslice: parsing schema: %w", err)
	}
	log.WithField("tables", len(cat.Tables())).Debug("loaded schema")

	var queryBytes []byte
	if len(args) == 2 {
		queryBytes, err = os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("qslice: reading query: %w", err)
		}
	} else {
		queryBytes, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("qslice: reading query from stdin: %w", err)
		}
	}

	stmt, err := sqlparse.ParseStatement(string(queryBytes), cat)
	if err != nil {
		return fmt.Errorf("qslice: parsing query: %w", err)
	}

	graph, err := querygraph.Build(stmt)
	if err != nil {
		return fmt.Errorf("qslice: building query graph: %w", err)
	}

	if dotPath != "" {
		if err := writeDot(graph, dotPath); err != nil {
			return err
		}
	}

	matrix := csg.NewAdjacencyMatrix(graph)
	out := cmd.OutOrStdout()

	count := 0
	var renderErr error
	csg.Enumerate(matrix, func(s csg.Subproblem) bool {
		if err := queryslice.Render(graph, matrix, s, out); err != nil {
			renderErr = fmt.Errorf("qslice: rendering query slice: %w", err)
			return false
		}
		count++
		return true
	})
	if renderErr != nil {
		return renderErr
	}
	log.WithField("slices", count).Debug("enumeration complete")

	return nil
}

func writeDot(graph *querygraph.QueryGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("qslice: creating dot file: %w", err)
	}
	defer f.Close()
	if err := graph.RenderDOT(f); err != nil {
		return fmt.Errorf("qslice: rendering dot: %w", err)
	}
	return nil
}
