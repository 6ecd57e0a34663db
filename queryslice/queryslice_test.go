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

package queryslice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutable-db/qgraph/csg"
	"github.com/mutable-db/qgraph/internal/sqlparse"
	"github.com/mutable-db/qgraph/querygraph"
)

func build(t *testing.T, sql string) (*querygraph.QueryGraph, *csg.AdjacencyMatrix) {
	t.Helper()
	stmt, err := sqlparse.ParseStatement(sql, nil)
	require.NoError(t, err)
	g, err := querygraph.Build(stmt)
	require.NoError(t, err)
	return g, csg.NewAdjacencyMatrix(g)
}

func TestRenderSingleSource(t *testing.T) {
	g, m := build(t, "SELECT * FROM orders AS o WHERE o.amount > 100")

	var buf bytes.Buffer
	require.NoError(t, Render(g, m, csg.Single(0), &buf))

	out := buf.String()
	assert.Contains(t, out, "SELECT COUNT(*)")
	assert.Contains(t, out, "FROM orders AS o")
	assert.Contains(t, out, "WHERE (o.amount > 100)")
}

func TestRenderJoinOnlyWhenFullyContained(t *testing.T) {
	g, m := build(t, "SELECT * FROM orders AS o, customers AS c WHERE o.customer_id = c.id")

	var bufO bytes.Buffer
	require.NoError(t, Render(g, m, csg.Single(0), &bufO))
	assert.NotContains(t, bufO.String(), "WHERE")

	var bufBoth bytes.Buffer
	require.NoError(t, Render(g, m, csg.Single(0).Union(csg.Single(1)), &bufBoth))
	assert.Contains(t, bufBoth.String(), "WHERE (o.customer_id = c.id)")
	assert.Contains(t, bufBoth.String(), "FROM orders AS o, customers AS c")
}

func TestRenderCombinesJoinAndFilterWithAnd(t *testing.T) {
	g, m := build(t, "SELECT * FROM orders AS o, customers AS c "+
		"WHERE o.customer_id = c.id AND o.amount > 100 AND c.active = 1")

	var buf bytes.Buffer
	require.NoError(t, Render(g, m, csg.Single(0).Union(csg.Single(1)), &buf))

	out := buf.String()
	assert.Contains(t, out, "(o.customer_id = c.id) AND (o.amount > 100) AND (c.active = 1)")
}

func TestRenderNestedSubquerySourceErrors(t *testing.T) {
	g, m := build(t, "SELECT * FROM (SELECT * FROM orders AS o) AS sub")

	var buf bytes.Buffer
	err := Render(g, m, csg.Single(0), &buf)
	assert.ErrorIs(t, err, ErrNestedSource)
}
