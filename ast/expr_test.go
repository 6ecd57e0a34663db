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

package ast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignatorString(t *testing.T) {
	assert.Equal(t, "a.x", (&Designator{TableName: "a", AttributeName: "x"}).String())
	assert.Equal(t, "x", (&Designator{AttributeName: "x"}).String())
}

func TestConstants(t *testing.T) {
	n, err := NewNumericConstant("42")
	require.NoError(t, err)
	assert.Equal(t, "42", n.String())
	assert.True(t, n.Value.Equal(decimal.NewFromInt(42)))

	_, err = NewNumericConstant("not-a-number")
	assert.Error(t, err)

	s := NewStringConstant("'foo'")
	assert.Equal(t, "'foo'", s.String())
	assert.Equal(t, ConstantString, s.Kind)

	null := NewNullConstant()
	assert.Equal(t, "NULL", null.String())
	assert.Equal(t, ConstantNull, null.Kind)
}

func TestUnaryExprString(t *testing.T) {
	inner := &Designator{AttributeName: "x"}

	prefix := &UnaryExpr{Op: "NOT", Inner: inner}
	assert.Equal(t, "NOT (x)", prefix.String())

	postfix := &UnaryExpr{Op: "IS NULL", Inner: inner, Postfix: true}
	assert.Equal(t, "(x) IS NULL", postfix.String())
}

func TestBinaryExprString(t *testing.T) {
	lhs := &Designator{TableName: "a", AttributeName: "x"}
	rhs := &Designator{TableName: "b", AttributeName: "y"}
	bin := &BinaryExpr{Op: "=", LHS: lhs, RHS: rhs}
	assert.Equal(t, "(a.x = b.y)", bin.String())
}

func TestFnApplicationExpr(t *testing.T) {
	star := &FnApplicationExpr{Fn: "COUNT", Star: true}
	assert.Equal(t, "COUNT(*)", star.String())
	assert.True(t, star.IsAggregate())

	call := &FnApplicationExpr{Fn: "SUM", Args: []Expr{&Designator{AttributeName: "x"}}}
	assert.Equal(t, "SUM(x)", call.String())
	assert.True(t, call.IsAggregate())

	notAgg := &FnApplicationExpr{Fn: "UPPER", Args: []Expr{&Designator{AttributeName: "x"}}}
	assert.False(t, notAgg.IsAggregate())
}

func TestErrorExprString(t *testing.T) {
	assert.Equal(t, "<error>", (&ErrorExpr{}).String())
}

