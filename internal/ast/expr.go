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

// Package ast is the syntax tree the parser builds and the generator
// walks. Node shapes follow y1yang0-falcon's ast/ast.go: a small Expr
// struct carrying the node's resolved DataType is embedded into every
// expression node, and every statement/declaration is its own
// concrete struct behind the Stmt/Decl marker interfaces rather than
// a single tagged-union node.
package ast

import (
	"wincc/internal/token"
	"wincc/internal/types"
)

// Node is the root of every tree shape (expressions, statements,
// declarations).
type Node interface {
	String() string
}

// Expr is anything that produces a value. Its resolved type starts zero and
// is filled in by the generator as it walks the tree (spec.md's type
// resolution is a side effect of code generation, not a separate
// pass), not by the parser.
type Expr interface {
	Node
	Type() types.DataType
	SetType(types.DataType)
}

type Stmt interface {
	Node
}

type Decl interface {
	Node
}

// exprBase is embedded into every concrete expression node; it
// carries the resolved type and implements Type/SetType once.
type exprBase struct {
	ResolvedType types.DataType
}

func (e *exprBase) Type() types.DataType     { return e.ResolvedType }
func (e *exprBase) SetType(t types.DataType) { e.ResolvedType = t }

// ---- literals ----

type ConstantInt struct {
	exprBase
	Value int32
}

type ConstantShort struct {
	exprBase
	Value int16
}

type ConstantLong struct {
	exprBase
	Value int64
}

type ConstantChar struct {
	exprBase
	Value byte
}

// ConstantString is a string literal; the generator allocates it on
// the heap at the point of evaluation (spec.md §4.7 "string literal
// heap allocation via malloc") rather than lifting it to a data
// section, so the node just carries the decoded text.
type ConstantString struct {
	exprBase
	Value string
}

func (*ConstantInt) String() string    { return "ConstantInt" }
func (*ConstantShort) String() string  { return "ConstantShort" }
func (*ConstantLong) String() string   { return "ConstantLong" }
func (*ConstantChar) String() string   { return "ConstantChar" }
func (*ConstantString) String() string { return "ConstantString" }

// ---- names and access ----

// VariableRef names a local, a parameter, or (after the generator
// resolves it against the current scope chain) nothing at all —
// spec.md's open question on unresolved identifiers is answered in
// DESIGN.md; the node itself is agnostic.
type VariableRef struct {
	exprBase
	Name string
}

func (v *VariableRef) String() string { return "VariableRef{" + v.Name + "}" }

// MemberAccess is `base.Field`; base must resolve to a struct or a
// pointer-to-struct lvalue, and Field is looked up by name against
// that struct's declaration. Arrow syntax is not part of the grammar:
// spec.md uses '.' for both a struct lvalue and a struct pointer.
type MemberAccess struct {
	exprBase
	Base  Expr
	Field string
}

func (*MemberAccess) String() string { return "MemberAccess" }

// ---- operators ----

type UnaryOp struct {
	exprBase
	Op   token.Kind
	Expr Expr
	// Postfix distinguishes x++ / x-- (evaluate, then mutate) from
	// ++x / --x (mutate, then evaluate); Op is INC or DEC either way.
	Postfix bool
}

func (*UnaryOp) String() string { return "UnaryOp" }

type BinaryOp struct {
	exprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

func (*BinaryOp) String() string { return "BinaryOp" }

// Assign covers both plain '=' and every compound assignment operator
// (+=, -=, ...); Op is token.ASSIGN for the plain form.
type Assign struct {
	exprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

func (*Assign) String() string { return "Assign" }

// LogicalAnd / LogicalOr are split out from BinaryOp because they
// short-circuit and never consult the operator table (spec.md §4.6):
// the generator lowers them directly to branches.
type LogicalAnd struct {
	exprBase
	Left  Expr
	Right Expr
}

type LogicalOr struct {
	exprBase
	Left  Expr
	Right Expr
}

func (*LogicalAnd) String() string { return "LogicalAnd" }
func (*LogicalOr) String() string  { return "LogicalOr" }

type Ternary struct {
	exprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (*Ternary) String() string { return "Ternary" }

// Note: there is no Comma node. The comma operator's parse rule
// discards every operand but the last one as it parses (see
// parser.parseComma) rather than building a list the generator would
// evaluate left-to-right — a documented gap carried forward
// unchanged, not a list this tree needs to represent.

type FunctionCall struct {
	exprBase
	Name string
	Args []Expr
}

func (f *FunctionCall) String() string { return "FunctionCall{" + f.Name + "}" }
