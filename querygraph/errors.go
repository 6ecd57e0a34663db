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

import goerrors "gopkg.in/src-d/go-errors.v1"

// Error kinds for GraphBuilder.Build (spec §7). Each is fatal to the
// build in progress and surfaced to the caller; a failed build leaves
// no visible QueryGraph.
var (
	// ErrUnsupportedStatement is returned when the input statement is
	// anything other than a SelectStmt or EmptyStmt.
	ErrUnsupportedStatement = goerrors.NewKind("unsupported statement: %T")
	// ErrMissingAlias is returned when a nested SELECT in a FROM clause
	// has no alias.
	ErrMissingAlias = goerrors.NewKind("nested SELECT in FROM clause requires an alias")
	// ErrInvalidLimit is returned when a LIMIT or OFFSET token does not
	// parse as an unsigned integer.
	ErrInvalidLimit = goerrors.NewKind("invalid LIMIT/OFFSET literal: %q")
)

// malformedAST panics to signal a MalformedAST condition: an ErrorExpr
// or ErrorStmt reaching the builder, a duplicate FROM alias, a clause
// naming an unknown alias, or an unknown expression type. Per spec §7 this is a programming-error
// invariant violation, not a returned error: an otherwise-valid input
// must never contain one.
func malformedAST(what string) {
	panic("querygraph: malformed AST: " + what)
}
