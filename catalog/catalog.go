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

// Package catalog is the minimal external collaborator §6 of the spec
// calls the "catalog / schema subsystem". The query-planning core only
// ever needs a stable name off of a table handle; everything else
// (column types, indexes, statistics) belongs to a real catalog and is
// out of scope here.
package catalog

// TableRef is an opaque handle into an external catalog. BaseTable
// sources hold one; the core never does anything with it beyond
// reading Name() for SQL rendering.
type TableRef interface {
	Name() string
}

// Table is a concrete, in-memory TableRef used by internal/sqlparse and
// by tests and the cmd/qslice demo in place of a real catalog/schema
// subsystem.
type Table struct {
	TableName string
	Columns   []string
}

// Name implements TableRef.
func (t *Table) Name() string { return t.TableName }

// Catalog is a name-keyed set of tables, populated from CREATE TABLE
// statements by internal/sqlparse.
type Catalog struct {
	tables map[string]*Table
	order  []string
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*Table)}
}

// AddTable registers a table, overwriting any previous table of the
// same name.
func (c *Catalog) AddTable(t *Table) {
	if _, ok := c.tables[t.TableName]; !ok {
		c.order = append(c.order, t.TableName)
	}
	c.tables[t.TableName] = t
}

// Table looks up a table by name.
func (c *Catalog) Table(name string) (*Table, bool) {
	t, ok := c.tables[name]
	return t, ok
}

// Tables returns the registered tables in insertion order.
func (c *Catalog) Tables() []*Table {
	out := make([]*Table, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tables[name])
	}
	return out
}
