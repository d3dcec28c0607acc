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

// Package codegen is the stack-based single-pass code generator: an
// AST post-order walk that emits AT&T/GAS assembly following the
// register/stack discipline spec.md §4.5-4.7 describes, performing
// lvalue->rvalue collapse and operator-table lookups as it goes. It is
// grounded on the C++ original's generateAssembly() virtual-dispatch
// walk in ast.cpp — the same push-right/evaluate-left/pop-and-emit
// shape — generalized from the original's int-only, variable-only
// subset to the full typed surface the operator table and scope
// chains (internal/optable, internal/scope) now support.
package codegen

import (
	"fmt"

	"go.uber.org/zap"

	"wincc/internal/asmbuf"
	"wincc/internal/ast"
	"wincc/internal/optable"
	"wincc/internal/regs"
	"wincc/internal/scope"
	"wincc/internal/types"
)

// Generator holds all of the process-wide mutable state spec.md §5
// calls out: the operator table (read-only once built), the struct
// and function registries, the current variable/loop scope chains,
// and the monotonic label counters. One Generator compiles one
// Program; nothing here is safe for concurrent use, matching the
// single-threaded execution model spec.md §5 describes.
type Generator struct {
	buf       *asmbuf.Buffer
	tables    *optable.Tables
	structs   *types.Registry
	functions *scope.Functions
	labels    *labels
	log       *zap.SugaredLogger

	vars *scope.VarScope
	loop *scope.LoopScope
}

// New builds a Generator around a struct registry already populated by
// parsing (structs must be declared before any function that uses
// them, so by the time code generation starts every struct the parser
// accepted is already registered). The logger defaults to a no-op one;
// callers that want spec.md §7's silent-miss diagnostics observable
// call SetLogger before Generate.
func New(structs *types.Registry) *Generator {
	return &Generator{
		buf:       asmbuf.New(),
		tables:    optable.Build(),
		structs:   structs,
		functions: scope.NewFunctions(),
		labels:    newLabels(),
		log:       zap.NewNop().Sugar(),
	}
}

// SetLogger replaces the generator's logger, used to report the silent
// semantic misses spec.md §7 describes (unresolved names, unsupported
// operator triples, break/continue outside a loop) at debug level
// without changing generated output.
func (g *Generator) SetLogger(log *zap.SugaredLogger) {
	g.log = log
}

// Generate lowers an entire program to assembly text. Function
// signatures are registered in a first pass over every top-level
// function so a call to a function declared later in the same file
// resolves (spec.md §4.4); a call to a name with no declaration
// anywhere is a silent semantic miss (spec.md §7) — the call site
// emits nothing.
func (g *Generator) Generate(prog *ast.Program) string {
	for _, fn := range prog.Functions {
		g.functions.Declare(fn.Name, scope.FuncSignature{
			Params:     paramTypes(fn.Params),
			ReturnType: fn.RetType,
		})
	}
	for _, fn := range prog.Functions {
		if fn.Body != nil {
			g.genFunction(fn)
		}
	}
	return g.buf.String()
}

func paramTypes(params []ast.Param) []types.DataType {
	out := make([]types.DataType, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// genFunction emits the prologue, the body, and a fallback epilogue
// for control falling off the end without an explicit return — the
// same epilogue a `return;` with no value produces. Neither loads a
// value into %eax, so the result is whatever %rax last held.
func (g *Generator) genFunction(fn *ast.FuncDecl) {
	g.buf.Raw(".globl " + fn.Name)
	g.buf.Label(fn.Name)
	g.buf.Op("push %rbp")
	g.buf.Op("movq %rsp, %rbp")

	fnScope := scope.NewFunctionScope()
	for i, param := range fn.Params {
		offset := 8 * (i + 2)
		fnScope.DeclareAt(param.Name, param.Type, offset)
	}
	g.vars = fnScope

	g.genBlock(fn.Body)
	g.emitEpilogue()
}

func (g *Generator) emitEpilogue() {
	g.buf.Op("movq %rbp, %rsp")
	g.buf.Op("pop %rbp")
	g.buf.Op("ret")
}

// collapseLvalue turns an address-in-%rax into a value-in-%rax: it
// loads the full 64-bit slot the address points at and clears the
// lvalue flag, leaving ID/Pointers/Size untouched. Every local and
// parameter lives in a full qword stack slot regardless of its own
// declared width (locals are always pushed as %rax), so the load is
// always `movq`; a use that needs a narrower value reads the matching
// sub-register of the same physical register afterwards. This is
// deliberately NOT the same operation as the unary '*' operator: a
// pointer-typed variable collapses to its own pointer *value*
// (Pointers unchanged) — only an explicit dereference strips a level
// of indirection (see genDereference).
func (g *Generator) collapseLvalue(t types.DataType) types.DataType {
	return g.collapseLvalueIn(t, regs.AX)
}

// collapseLvalueIn is the same collapse, through whichever register
// currently holds the address — binary operators need this on the
// right-hand operand, which sits in %rcx after the pop.
func (g *Generator) collapseLvalueIn(t types.DataType, r regs.Reg) types.DataType {
	if !t.Lvalue {
		return t
	}
	reg64 := regs.Name(r, regs.Qword)
	g.buf.Op(fmt.Sprintf("movq (%%%s), %%%s", reg64, reg64))
	return t.AsRvalue()
}
