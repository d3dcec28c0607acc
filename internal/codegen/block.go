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

package codegen

import (
	"fmt"

	"wincc/internal/ast"
	"wincc/internal/utils"
)

// genBlock opens a child variable scope, lowers every item in order,
// and releases the block's locals from the stack on the way out. The
// child scope's offset counter starts from a copy of its parent's and
// the parent's does not advance (scope.VarScope.Child), so a later
// sibling block is handed the same slots once this block's release has
// popped them. The release is a single `add` for the whole block
// rather than per-declaration bookkeeping.
func (g *Generator) genBlock(b *ast.Block) {
	outer := g.vars
	g.vars = outer.Child()

	for _, item := range b.Items {
		if item.Decl != nil {
			g.genVariableDecl(item.Decl)
		} else {
			g.genStmt(item.Stmt)
		}
	}

	released := g.vars.FrameSize() - outer.FrameSize()
	if released > 0 {
		g.log.Debugw("releasing block locals", "names", g.vars.Names(), "bytes", released)
		g.buf.Op(fmt.Sprintf("addq $%d, %%rsp", released))
	}
	g.vars = outer
}

// genVariableDecl reserves the local's stack slot(s) and stores its
// initializer, or zero if there is none — a declared local always has
// a defined value, the same as the C++ original's compile_declare
// pushing a zeroed slot up front. A type wider than one slot (a struct
// local) has no initializer syntax to begin with, so the uninitialized
// path alone needs to push more than one zero; it pushes
// utils.Align8(decl.Type.Size)/8 of them, matching the slot count
// scope.VarScope.Declare reserved for this local.
func (g *Generator) genVariableDecl(decl *ast.VariableDecl) {
	g.vars.Declare(decl.Name, decl.Type)
	if decl.Init == nil {
		slots := utils.Align8(decl.Type.Size) / 8
		if slots < 1 {
			slots = 1
		}
		for i := 0; i < slots; i++ {
			g.buf.Push("$0")
		}
		return
	}
	t := g.genExpr(decl.Init)
	g.collapseLvalue(t)
	// Push always moves the full 64-bit slot regardless of the value's
	// own declared width; every later read of this local re-loads with
	// its own width suffix and ignores whatever garbage sits above it.
	g.buf.Push("%rax")
}
