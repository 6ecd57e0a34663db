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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestQSliceEndToEndTwoTableJoin(t *testing.T) {
	schema := writeTempFile(t, "schema.sql",
		"CREATE TABLE orders (id INT, customer_id INT, amount INT);\n"+
			"CREATE TABLE customers (id INT, name VARCHAR);\n")
	query := writeTempFile(t, "query.sql",
		"SELECT * FROM orders AS o, customers AS c WHERE o.customer_id = c.id;")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{schema, query})

	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "FROM orders AS o")
	assert.Contains(t, got, "FROM orders AS o, customers AS c")
	assert.Contains(t, got, "WHERE (o.customer_id = c.id)")
}

func TestQSliceRequiresSchemaArgument(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	assert.Error(t, cmd.Execute())
}

func TestQSliceFailsOnNestedSubquerySource(t *testing.T) {
	schema := writeTempFile(t, "schema.sql",
		"CREATE TABLE t (x INT);\n"+
			"CREATE TABLE u (x INT);\n")
	query := writeTempFile(t, "query.sql",
		"SELECT * FROM (SELECT * FROM t) AS s, u WHERE s.x = u.x;")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{schema, query})
	cmd.SilenceErrors = true

	assert.Error(t, cmd.Execute())
}

func TestQSliceWritesDotFile(t *testing.T) {
	schema := writeTempFile(t, "schema.sql", "CREATE TABLE orders (id INT);\n")
	query := writeTempFile(t, "query.sql", "SELECT * FROM orders AS o;")
	dotPath := filepath.Join(t.TempDir(), "out.dot")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dot", dotPath, schema, query})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(dotPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graph query_graph")
}
