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

package ast

import "wincc/internal/types"

// VariableDecl is `Type name [= init];`. Struct-typed locals omit
// Init (spec.md's Non-goals exclude struct literal initializers).
type VariableDecl struct {
	Name string
	Type types.DataType
	Init Expr
}

func (*VariableDecl) String() string { return "VariableDecl" }

// BlockItem is either a statement or a variable declaration; C-family
// blocks interleave the two freely, so it isn't useful to model a
// block as []Stmt alone.
type BlockItem struct {
	Stmt Stmt
	Decl *VariableDecl
}

type Block struct {
	Items []BlockItem
}

func (*Block) String() string { return "Block" }

type ReturnStmt struct {
	Expr Expr // nil for a bare `return;`
}

type ExprStmt struct {
	Expr Expr
}

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil when there is no else-branch
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

type DoWhileStmt struct {
	Body Stmt
	Cond Expr
}

type ForStmt struct {
	Init *VariableDecl // nil if the init-clause is absent or a bare expression
	InitExpr Expr      // used when the init-clause is an expression, not a decl
	Cond Expr           // nil means "always true"
	Post Expr           // nil means no post-expression
	Body Stmt
}

type BreakStmt struct{}
type ContinueStmt struct{}

func (*ReturnStmt) String() string   { return "ReturnStmt" }
func (*ExprStmt) String() string     { return "ExprStmt" }
func (*IfStmt) String() string       { return "IfStmt" }
func (*WhileStmt) String() string    { return "WhileStmt" }
func (*DoWhileStmt) String() string  { return "DoWhileStmt" }
func (*ForStmt) String() string      { return "ForStmt" }
func (*BreakStmt) String() string    { return "BreakStmt" }
func (*ContinueStmt) String() string { return "ContinueStmt" }
