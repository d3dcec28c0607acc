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

// Param is one function parameter: a name and declared type. A
// struct-by-value parameter is passed as an address under the hood
// but is an ordinary lvalue of struct type from the body's point of
// view (spec.md §4.4).
type Param struct {
	Name string
	Type types.DataType
}

// FuncDecl is `int name(params) { body }`. Only `int` is a legal
// return type (spec.md §4.2); RetType is carried anyway so the
// generator's return-statement lowering has a single source of truth
// instead of a hardcoded literal.
type FuncDecl struct {
	Name    string
	Params  []Param
	RetType types.DataType
	Body    *Block
}

func (f *FuncDecl) String() string { return "FuncDecl{" + f.Name + "}" }

// StructFieldDecl is one field in a `struct Name { ... };` declaration,
// before being registered (and given an offset) in types.Registry.
type StructFieldDecl struct {
	Name string
	Type types.DataType
}

type StructDecl struct {
	Name   string
	Fields []StructFieldDecl
}

func (s *StructDecl) String() string { return "StructDecl{" + s.Name + "}" }

// Program is the whole translation unit: its structs and its
// functions, each list in declaration order. The two kinds are kept in
// separate lists, so the relative order of a struct and a function is
// not recorded.
type Program struct {
	Structs   []*StructDecl
	Functions []*FuncDecl
}

func (*Program) String() string { return "Program" }
