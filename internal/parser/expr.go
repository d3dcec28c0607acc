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
	"wincc/internal/ast"
	"wincc/internal/token"
)

// parseComma implements the documented gap verbatim: it discards every
// operand but the last rather than threading them all into the tree,
// so only the rightmost sub-expression is ever generated.
func (p *Parser) parseComma() ast.Expr {
	e := p.parseAssignment()
	for p.at(token.COMMA) {
		p.tokens.Pop()
		e = p.parseAssignment()
	}
	return e
}

var assignOps = map[token.Kind]bool{
	token.ASSIGN: true, token.PLUS_EQ: true, token.MINUS_EQ: true,
	token.STAR_EQ: true, token.SLASH_EQ: true, token.PERCENT_EQ: true,
	token.LSHIFT_EQ: true, token.RSHIFT_EQ: true,
	token.AMP_EQ: true, token.PIPE_EQ: true, token.CARET_EQ: true,
}

// parseAssignment is right-associative: `a = b = c` parses as
// `a = (b = c)`. The source re-checks every compound operator after a
// plain '=' is consumed (an else-if chain would be correct; an if
// chain keeps testing after a match); this parser looks the next token
// up once in assignOps and consumes at most one operator, which is the
// else-if reading spec.md's open question asks for.
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseTernary()
	if op := p.peek().Kind; assignOps[op] {
		p.tokens.Pop()
		right := p.parseAssignment()
		return &ast.Assign{Op: op, Left: left, Right: right}
	}
	return left
}

// parseTernary: the true-arm is parsed at the comma level, the
// false-arm at the assignment level, and the whole thing is
// right-associative via the false-arm's recursive descent back into
// assignment.
func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseLogicalOr()
	if !p.at(token.QUESTION) {
		return cond
	}
	p.tokens.Pop()
	then := p.parseComma()
	p.expect(token.COLON)
	elseExpr := p.parseAssignment()
	return &ast.Ternary{Cond: cond, Then: then, Else: elseExpr}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.at(token.LOGOR) {
		p.tokens.Pop()
		right := p.parseLogicalAnd()
		left = &ast.LogicalOr{Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseBitwiseOr()
	for p.at(token.LOGAND) {
		p.tokens.Pop()
		right := p.parseBitwiseOr()
		left = &ast.LogicalAnd{Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitwiseOr() ast.Expr {
	left := p.parseBitwiseXor()
	for p.at(token.PIPE) {
		p.tokens.Pop()
		right := p.parseBitwiseXor()
		left = &ast.BinaryOp{Op: token.PIPE, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitwiseXor() ast.Expr {
	left := p.parseBitwiseAnd()
	for p.at(token.CARET) {
		p.tokens.Pop()
		right := p.parseBitwiseAnd()
		left = &ast.BinaryOp{Op: token.CARET, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseBitwiseAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AMP) {
		p.tokens.Pop()
		right := p.parseEquality()
		left = &ast.BinaryOp{Op: token.AMP, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NE) {
		op := p.tokens.Pop().Kind
		right := p.parseRelational()
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseShift()
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) {
		op := p.tokens.Pop().Kind
		right := p.parseShift()
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseShift() ast.Expr {
	left := p.parseAdditive()
	for p.at(token.LSHIFT) || p.at(token.RSHIFT) {
		op := p.tokens.Pop().Kind
		right := p.parseAdditive()
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.tokens.Pop().Kind
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.tokens.Pop().Kind
		right := p.parseUnary()
		left = &ast.BinaryOp{Op: op, Left: left, Right: right}
	}
	return left
}

// parseUnary groups right-to-left: `- ~ x` parses as `-(~x)`. Unary
// '+' is a no-op (spec.md §4.3) and is consumed without building a
// node. '&' and '*' share the UnaryOp shape with the arithmetic unary
// operators; the generator distinguishes them structurally rather
// than through the operator table (spec.md §4.6).
func (p *Parser) parseUnary() ast.Expr {
	switch p.peek().Kind {
	case token.PLUS:
		p.tokens.Pop()
		return p.parseUnary()
	case token.MINUS, token.TILDE, token.BANG, token.AMP, token.STAR:
		op := p.tokens.Pop().Kind
		operand := p.parseUnary()
		return &ast.UnaryOp{Op: op, Expr: operand}
	case token.INC, token.DEC:
		op := p.tokens.Pop().Kind
		operand := p.parseUnary()
		return &ast.UnaryOp{Op: op, Expr: operand, Postfix: false}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles postfix ++/--, function calls, array subscript
// (desugared to `*(a+i)` at parse time per spec.md §4.3), and member
// access, all left-associative and chainable (`a.b.c`, `f()()` is not
// legal here since functions aren't values, but `a[i].b` is).
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case token.INC, token.DEC:
			op := p.tokens.Pop().Kind
			expr = &ast.UnaryOp{Op: op, Expr: expr, Postfix: true}
		case token.LBRACKET:
			p.tokens.Pop()
			index := p.parseComma()
			p.expect(token.RBRACKET)
			sum := &ast.BinaryOp{Op: token.PLUS, Left: expr, Right: index}
			expr = &ast.UnaryOp{Op: token.STAR, Expr: sum}
		case token.DOT:
			p.tokens.Pop()
			field := p.expectIdent()
			expr = &ast.MemberAccess{Base: expr, Field: field}
		default:
			return expr
		}
	}
}

// parsePrimary: parenthesized expression, literals, or a name — either
// a plain variable reference or, followed by '(', a function call.
func (p *Parser) parsePrimary() ast.Expr {
	t := p.peek()
	switch t.Kind {
	case token.LPAREN:
		p.tokens.Pop()
		e := p.parseComma()
		p.expect(token.RPAREN)
		return e
	case token.LIT_INT:
		p.tokens.Pop()
		return &ast.ConstantInt{Value: parseI32(t.Text)}
	case token.LIT_SHORT:
		p.tokens.Pop()
		return &ast.ConstantShort{Value: parseI16(t.Text)}
	case token.LIT_LONG:
		p.tokens.Pop()
		return &ast.ConstantLong{Value: parseI64(t.Text)}
	case token.LIT_CHAR:
		p.tokens.Pop()
		return &ast.ConstantChar{Value: t.Text[0]}
	case token.LIT_STRING:
		p.tokens.Pop()
		return &ast.ConstantString{Value: t.Text}
	case token.IDENT:
		p.tokens.Pop()
		if p.at(token.LPAREN) {
			return p.parseCallArgs(t.Text)
		}
		return &ast.VariableRef{Name: t.Text}
	default:
		p.fail("expression", t)
		return nil
	}
}

func (p *Parser) parseCallArgs(name string) ast.Expr {
	p.expect(token.LPAREN)
	var args []ast.Expr
	for !p.at(token.RPAREN) {
		if len(args) > 0 {
			p.expect(token.COMMA)
		}
		args = append(args, p.parseAssignment())
	}
	p.expect(token.RPAREN)
	return &ast.FunctionCall{Name: name, Args: args}
}
