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

// Package parser is the classic recursive-descent, precedence-climbing
// parser: one function per C operator precedence level, top-down from
// comma to primary. Grounded on the C++ original's compile_val /
// compile_term / compile_exp chain in ast.cpp (the same
// "each level calls the next, then loops while the lookahead matches
// this level's operators" shape), expanded from the original's two
// levels (term, exp) to the full 17-level C precedence ladder
// y1yang0-falcon's ast/parser.go walks, and producing this repository's
// own internal/ast node set instead of either source's.
package parser

import (
	"fmt"

	"wincc/internal/ast"
	"wincc/internal/lexer"
	"wincc/internal/token"
	"wincc/internal/types"
)

// SyntaxError is the single fatal error kind the parser raises: the
// next token did not match what the current grammar rule expected.
// The parser performs no error recovery, so the first SyntaxError ends
// the parse.
type SyntaxError struct {
	Expected string
	Got      token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("incorrect token: expected %s, got %s %q", e.Expected, e.Got.Kind, e.Got.Text)
}

// bailout unwinds the recursive-descent call stack back to Parse via
// panic/recover, the same technique go/parser uses internally — every
// other path back to the caller would mean threading an error return
// through all seventeen precedence levels for a condition that is
// always immediately fatal.
type bailout struct{ err error }

// Parser holds the token stream and the struct-name table being built
// up as top-level struct declarations are parsed; a field's or
// parameter's type name is only valid if it names a primitive or a
// struct already declared earlier in the file.
type Parser struct {
	tokens  *lexer.Queue
	structs *types.Registry
}

func New(tokens *lexer.Queue, structs *types.Registry) *Parser {
	return &Parser{tokens: tokens, structs: structs}
}

// Parse consumes the entire token stream and returns the program, or
// the first SyntaxError encountered.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if b, ok := r.(bailout); ok {
				err = b.err
				return
			}
			panic(r)
		}
	}()
	return p.parseProgram(), nil
}

func (p *Parser) fail(expected string, got token.Token) {
	panic(bailout{&SyntaxError{Expected: expected, Got: got}})
}

func (p *Parser) peek() token.Token {
	return p.tokens.Front()
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// expect consumes the next token, requiring it to be kind k.
func (p *Parser) expect(k token.Kind) token.Token {
	t := p.tokens.Pop()
	if t.Kind != k {
		p.fail(k.String(), t)
	}
	return t
}

// expectIdent consumes an identifier and returns its text.
func (p *Parser) expectIdent() string {
	return p.expect(token.IDENT).Text
}

// isTypeStart reports whether the current token can begin a type name:
// a primitive keyword, or the `struct` keyword introducing a
// previously declared struct name.
func (p *Parser) isTypeStart() bool {
	t := p.peek()
	return t.Kind.IsTypeKeyword() || t.Kind == token.KW_STRUCT
}

// parseType consumes a type name — a primitive keyword, or
// `struct Name` naming a struct already registered by an earlier
// top-level declaration — followed by zero or more '*' for pointer
// indirection.
func (p *Parser) parseType() types.DataType {
	var base types.DataType
	t := p.tokens.Pop()
	switch t.Kind {
	case token.KW_CHAR:
		base = types.Char()
	case token.KW_SHORT:
		base = types.Short()
	case token.KW_INT:
		base = types.Int()
	case token.KW_LONG:
		base = types.Long()
	case token.KW_STRUCT:
		name := p.expectIdent()
		st, ok := p.structs.ByName(name)
		if !ok {
			p.fail("declared struct name", t)
		}
		base = st.DataType()
	default:
		p.fail("type name", t)
	}
	for p.at(token.STAR) {
		p.tokens.Pop()
		base = base.AddressOf()
	}
	return base
}
