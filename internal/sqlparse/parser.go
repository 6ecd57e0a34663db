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

package sqlparse

import (
	"fmt"
	"strings"

	"github.com/mutable-db/qgraph/ast"
	"github.com/mutable-db/qgraph/catalog"
)

// Parser is a recursive-descent parser over a pre-lexed token stream.
type Parser struct {
	tokens []Token
	pos    int
	cat    *catalog.Catalog
}

// ParseStatement parses a single SQL statement (a SELECT, an empty
// statement, or a CREATE TABLE) into an ast.Stmt. cat resolves FROM
// table references against a catalog; pass nil to auto-synthesize a
// catalog.Table for every bare table name encountered (useful for
// tests that don't care about catalog resolution).
func ParseStatement(sql string, cat *catalog.Catalog) (ast.Stmt, error) {
	tokens, err := tokenize(sql)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, cat: cat}
	return p.parseStatement()
}

// ParseSchema parses a sequence of `CREATE TABLE ...;` statements into
// a Catalog.
func ParseSchema(sql string) (*catalog.Catalog, error) {
	tokens, err := tokenize(sql)
	if err != nil {
		return nil, err
	}
	cat := catalog.NewCatalog()
	p := &Parser{tokens: tokens, cat: cat}
	for !p.atEOF() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if ct, ok := stmt.(*ast.CreateTableStmt); ok {
			cat.AddTable(&catalog.Table{TableName: ct.TableName, Columns: ct.Columns})
		}
	}
	return cat, nil
}

func tokenize(sql string) ([]Token, error) {
	lex := NewLexer(sql)
	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return tokens, nil
}

func (p *Parser) peek() Token  { return p.tokens[p.pos] }
func (p *Parser) atEOF() bool  { return p.peek().Type == TokenEOF }
func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) isKeyword(kw string) bool {
	t := p.peek()
	return t.Type == TokenKeyword && t.Literal == kw
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.isKeyword(kw) {
		return fmt.Errorf("sqlparse: expected %s at offset %d, got %q", kw, p.peek().Pos, p.peek().Literal)
	}
	p.advance()
	return nil
}

func (p *Parser) expect(tt TokenType, what string) (Token, error) {
	if p.peek().Type != tt {
		return Token{}, fmt.Errorf("sqlparse: expected %s at offset %d, got %q", what, p.peek().Pos, p.peek().Literal)
	}
	return p.advance(), nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.peek().Type == TokenSemicolon:
		p.advance()
		return &ast.EmptyStmt{}, nil
	case p.peek().Type == TokenEOF:
		return &ast.EmptyStmt{}, nil
	case p.isKeyword("CREATE"):
		return p.parseCreateTable()
	case p.isKeyword("SELECT"):
		return p.parseSelect()
	default:
		return nil, fmt.Errorf("sqlparse: unsupported statement at offset %d, got %q", p.peek().Pos, p.peek().Literal)
	}
}

func (p *Parser) parseCreateTable() (*ast.CreateTableStmt, error) {
	if err := p.expectKeyword("CREATE"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdentifier, "table name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen, "("); err != nil {
		return nil, err
	}
	var cols []string
	for {
		colName, err := p.expect(TokenIdentifier, "column name")
		if err != nil {
			return nil, err
		}
		cols = append(cols, colName.Literal)
		// Skip the column type and any remaining modifiers up to the
		// next comma or closing paren: this front end only needs names.
		for p.peek().Type != TokenComma && p.peek().Type != TokenRParen && p.peek().Type != TokenEOF {
			p.advance()
		}
		if p.peek().Type == TokenComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(TokenRParen, ")"); err != nil {
		return nil, err
	}
	if p.peek().Type == TokenSemicolon {
		p.advance()
	}
	return &ast.CreateTableStmt{TableName: name.Literal, Columns: cols}, nil
}

func (p *Parser) parseSelect() (*ast.SelectStmt, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	selectClause, err := p.parseSelectClause()
	if err != nil {
		return nil, err
	}
	stmt := &ast.SelectStmt{Select: selectClause}

	if p.isKeyword("FROM") {
		p.advance()
		from, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		stmt.From = from
	}

	if p.isKeyword("WHERE") {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Where = &ast.WhereClause{Expr: e}
	}

	if p.isKeyword("GROUP") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		exprs, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = &ast.GroupByClause{Exprs: exprs}
	}

	if p.isKeyword("HAVING") {
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Having = &ast.HavingClause{Expr: e}
	}

	if p.isKeyword("ORDER") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		items, err := p.parseOrderByItems()
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = &ast.OrderByClause{Items: items}
	}

	if p.isKeyword("LIMIT") {
		p.advance()
		count, err := p.expect(TokenNumber, "LIMIT count")
		if err != nil {
			return nil, err
		}
		lc := &ast.LimitClause{CountToken: count.Literal}
		if p.isKeyword("OFFSET") {
			p.advance()
			offset, err := p.expect(TokenNumber, "OFFSET count")
			if err != nil {
				return nil, err
			}
			lc.HasOffset = true
			lc.OffsetToken = offset.Literal
		}
		stmt.Limit = lc
	}

	if p.peek().Type == TokenSemicolon {
		p.advance()
	}

	return stmt, nil
}

func (p *Parser) parseSelectClause() (*ast.SelectClause, error) {
	if p.peek().Type == TokenStar {
		p.advance()
		return &ast.SelectClause{SelectAll: true}, nil
	}

	var items []ast.SelectItem
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		item := ast.SelectItem{Expr: e}
		if p.isKeyword("AS") {
			p.advance()
			alias, err := p.expect(TokenIdentifier, "projection alias")
			if err != nil {
				return nil, err
			}
			item.Alias = alias.Literal
			item.HasAlias = true
		}
		items = append(items, item)
		if p.peek().Type == TokenComma {
			p.advance()
			continue
		}
		break
	}
	return &ast.SelectClause{Items: items}, nil
}

func (p *Parser) parseFromClause() (*ast.FromClause, error) {
	var entries []ast.FromEntry
	for {
		entry, err := p.parseFromEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		if p.peek().Type == TokenComma {
			p.advance()
			continue
		}
		break
	}
	return &ast.FromClause{Entries: entries}, nil
}

func (p *Parser) parseFromEntry() (ast.FromEntry, error) {
	if p.peek().Type == TokenLParen {
		p.advance()
		if err := p.expectKeyword("SELECT"); err != nil {
			return ast.FromEntry{}, err
		}
		p.pos-- // rewind so parseSelect sees its own SELECT keyword
		nested, err := p.parseSelect()
		if err != nil {
			return ast.FromEntry{}, err
		}
		if _, err := p.expect(TokenRParen, ")"); err != nil {
			return ast.FromEntry{}, err
		}
		entry := ast.FromEntry{Nested: nested}
		if p.isKeyword("AS") {
			p.advance()
		}
		alias, err := p.expect(TokenIdentifier, "subquery alias")
		if err != nil {
			return ast.FromEntry{}, err
		}
		entry.Alias = alias.Literal
		entry.HasAlias = true
		return entry, nil
	}

	name, err := p.expect(TokenIdentifier, "table name")
	if err != nil {
		return ast.FromEntry{}, err
	}
	entry := ast.FromEntry{TableToken: name.Literal, Table: p.resolveTable(name.Literal)}
	if p.isKeyword("AS") {
		p.advance()
	}
	if p.peek().Type == TokenIdentifier {
		alias := p.advance()
		entry.Alias = alias.Literal
		entry.HasAlias = true
	}
	return entry, nil
}

// resolveTable looks up name in the catalog provided to the parser, if
// any, synthesizing a bare catalog.Table when unresolved. Real
// table-name resolution belongs to the external catalog/schema
// subsystem; this is only a convenience for standalone parsing.
func (p *Parser) resolveTable(name string) catalog.TableRef {
	if p.cat != nil {
		if t, ok := p.cat.Table(name); ok {
			return t
		}
	}
	return &catalog.Table{TableName: name}
}

func (p *Parser) parseOrderByItems() ([]ast.OrderByItem, error) {
	var items []ast.OrderByItem
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		item := ast.OrderByItem{Expr: e, Ascending: true}
		if p.isKeyword("ASC") {
			p.advance()
		} else if p.isKeyword("DESC") {
			p.advance()
			item.Ascending = false
		}
		items = append(items, item)
		if p.peek().Type == TokenComma {
			p.advance()
			continue
		}
		break
	}
	return items, nil
}

func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.peek().Type == TokenComma {
			p.advance()
			continue
		}
		break
	}
	return exprs, nil
}

// Expression grammar, lowest to highest precedence:
//
//	expr       := orExpr
//	orExpr     := andExpr (OR andExpr)*
//	andExpr    := notExpr (AND notExpr)*
//	notExpr    := NOT notExpr | comparison
//	comparison := primary [ cmpOp primary | IS [NOT] NULL ]
//	primary    := literal | designator | fnCall | ( expr )
func (p *Parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("OR") {
		p.advance()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{Op: "OR", LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("AND") {
		p.advance()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpr{Op: "AND", LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	if p.isKeyword("NOT") {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: "NOT", Inner: inner}, nil
	}
	return p.parseComparison()
}

var comparisonOps = map[string]bool{
	"=": true, "<>": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.isKeyword("IS") {
		p.advance()
		negated := false
		if p.isKeyword("NOT") {
			p.advance()
			negated = true
		}
		if err := p.expectKeyword("NULL"); err != nil {
			return nil, err
		}
		op := "IS NULL"
		if negated {
			op = "IS NOT NULL"
		}
		return &ast.UnaryExpr{Op: op, Inner: lhs, Postfix: true}, nil
	}

	if p.peek().Type == TokenOperator && comparisonOps[p.peek().Literal] {
		op := p.advance().Literal
		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}, nil
	}

	return lhs, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.peek()
	switch t.Type {
	case TokenLParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return e, nil
	case TokenNumber:
		p.advance()
		return ast.NewNumericConstant(t.Literal)
	case TokenString:
		p.advance()
		return ast.NewStringConstant(t.Literal), nil
	case TokenKeyword:
		if t.Literal == "NULL" {
			p.advance()
			return ast.NewNullConstant(), nil
		}
		return nil, fmt.Errorf("sqlparse: unexpected keyword %q at offset %d", t.Literal, t.Pos)
	case TokenIdentifier:
		return p.parseDesignatorOrCall()
	default:
		return nil, fmt.Errorf("sqlparse: unexpected token %q at offset %d", t.Literal, t.Pos)
	}
}

func (p *Parser) parseDesignatorOrCall() (ast.Expr, error) {
	first := p.advance().Literal

	if p.peek().Type == TokenLParen {
		p.advance()
		fn := &ast.FnApplicationExpr{Fn: strings.ToUpper(first)}
		if p.peek().Type == TokenStar {
			p.advance()
			fn.Star = true
		} else if p.peek().Type != TokenRParen {
			args, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			fn.Args = args
		}
		if _, err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return fn, nil
	}

	if p.peek().Type == TokenDot {
		p.advance()
		attr, err := p.expect(TokenIdentifier, "attribute name")
		if err != nil {
			return nil, err
		}
		return &ast.Designator{TableName: first, AttributeName: attr.Literal}, nil
	}

	return &ast.Designator{AttributeName: first}, nil
}
