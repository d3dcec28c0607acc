// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package parser

import (
	"github.com/samber/lo"

	"wincc/internal/ast"
	"wincc/internal/token"
	"wincc/internal/types"
)

// parseProgram parses alternating `struct name { decls };` and
// `T func(params) { block }` top-level declarations until EOF.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		if p.at(token.KW_STRUCT) {
			prog.Structs = append(prog.Structs, p.parseStructDecl())
			continue
		}
		prog.Functions = append(prog.Functions, p.parseFuncDecl())
	}
	return prog
}

// parseStructDecl parses `struct Name { T field; ... };` and registers
// the struct immediately, so later declarations in the same file can
// reference it by name — the same forward-progress the rest of the
// grammar relies on (structs must precede their first use).
func (p *Parser) parseStructDecl() *ast.StructDecl {
	p.expect(token.KW_STRUCT)
	name := p.expectIdent()
	p.expect(token.LBRACE)

	var fields []ast.StructFieldDecl
	for !p.at(token.RBRACE) {
		ft := p.parseType()
		fname := p.expectIdent()
		p.expect(token.SEMI)
		fields = append(fields, ast.StructFieldDecl{Name: fname, Type: ft})
	}
	closeBrace := p.expect(token.RBRACE)
	p.expect(token.SEMI)

	names := lo.Map(fields, func(f ast.StructFieldDecl, _ int) string { return f.Name })
	if len(lo.Uniq(names)) != len(names) {
		p.fail("unique field names in struct "+name, closeBrace)
	}
	fieldDecls := lo.Map(fields, func(f ast.StructFieldDecl, _ int) types.FieldDecl {
		return types.FieldDecl{Name: f.Name, Type: f.Type}
	})

	p.structs.Declare(name, fieldDecls)
	return &ast.StructDecl{Name: name, Fields: fields}
}

// parseFuncDecl parses `int name(params) { block }` or the
// prototype-only `int name(params);` form. Only `int` is a legal
// return type (spec.md §4.3); parseType accepts any declared type, so
// the result is checked against plain `int` and rejected as an
// ordinary SyntaxError otherwise.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	retTok := p.peek()
	retType := p.parseType()
	if retType.ID != types.IntID || retType.Pointers != 0 {
		p.fail("int return type", retTok)
	}
	name := p.expectIdent()
	p.expect(token.LPAREN)

	var params []ast.Param
	for !p.at(token.RPAREN) {
		if len(params) > 0 {
			p.expect(token.COMMA)
		}
		pt := p.parseType()
		pn := p.expectIdent()
		if pt.IsStruct() {
			pt = pt.AsLvalue()
		}
		params = append(params, ast.Param{Name: pn, Type: pt})
	}
	p.expect(token.RPAREN)

	if p.at(token.SEMI) {
		p.tokens.Pop()
		return &ast.FuncDecl{Name: name, Params: params, RetType: retType}
	}

	body := p.parseBlock()
	return &ast.FuncDecl{Name: name, Params: params, RetType: retType, Body: body}
}
