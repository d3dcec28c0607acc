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

// Package scope is the code generator's name-resolution state: a
// parent-linked chain of variable scopes (one per block) for turning
// an identifier into a stack-frame offset and a type, and a parallel
// chain of loop scopes for resolving break/continue to the right pair
// of labels. Grounded on the C++ original's single global `variables`
// map and `current_variable_location` counter (register.h / ast.cpp),
// generalized to nested, shadowing block scopes the way a real
// compiler needs.
package scope

import (
	"github.com/samber/lo"

	"wincc/internal/types"
	"wincc/internal/utils"
)

// Variable is one resolved name: its stack-frame offset relative to
// %rbp, and its declared type.
type Variable struct {
	Offset int
	Type   types.DataType
}

// VarScope is one lexical block's variables, linked to its enclosing
// block. Offsets are negative and decrease by a multiple of 8 per
// declared local, the same stride y1yang0-falcon's frame layout and
// the C++ original's current_variable_location both use.
type VarScope struct {
	parent     *VarScope
	vars       map[string]Variable
	nextOffset int
}

// NewFunctionScope starts a fresh offset sequence for a new function
// body; locals begin at -8(%rbp), just past the saved %rbp itself.
func NewFunctionScope() *VarScope {
	return &VarScope{vars: make(map[string]Variable), nextOffset: -8}
}

// Child opens a nested block scope (an if/while/for body, or a bare
// `{ }`) whose offset counter starts from a copy of its parent's. The
// parent's counter does not advance, so once a child block's locals
// are released, the next sibling block is handed the same slots again.
func (s *VarScope) Child() *VarScope {
	return &VarScope{parent: s, vars: make(map[string]Variable), nextOffset: s.nextOffset}
}

// Declare reserves a new stack slot for name of type t and returns it.
// A type wider than 8 bytes (a struct local) reserves
// utils.Align8(t.Size)/8 consecutive slots instead of one; the
// returned offset is the lowest (most negative) of them, so that
// struct.Registry's ascending, zero-based field offsets (field 0 at
// +0, field 1 at +8, ...) land on actual reserved addresses once added
// to it — the generator fills slots for such a local in the matching
// reverse order (see codegen.genVariableDecl). Redeclaring a name
// already bound in this exact block shadows the outer binding once
// resolution walks outward, matching ordinary lexical scoping;
// declaring it twice in the *same* block rebinds the name to a newly
// reserved slot (the earlier slot stays reserved but is no longer
// reachable by name), which callers should reject before calling Declare a second time if
// the language is meant to forbid it.
func (s *VarScope) Declare(name string, t types.DataType) Variable {
	slots := utils.Align8(t.Size) / 8
	if slots < 1 {
		slots = 1
	}
	offset := s.nextOffset - 8*(slots-1)
	v := Variable{Offset: offset, Type: t}
	s.vars[name] = v
	s.nextOffset -= 8 * slots
	return v
}

// DeclareAt binds name directly to a caller-supplied offset instead of
// drawing one from the counter — used for function parameters, which
// live above %rbp at fixed positions the calling convention dictates
// rather than in the locals area this scope otherwise manages.
func (s *VarScope) DeclareAt(name string, t types.DataType, offset int) Variable {
	v := Variable{Offset: offset, Type: t}
	s.vars[name] = v
	return v
}

// Resolve looks up name in this scope, then walks outward through
// enclosing blocks.
func (s *VarScope) Resolve(name string) (Variable, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return Variable{}, false
}

// FrameSize reports the total bytes of local storage reserved so far
// in this scope chain; the generator subtracts an outer scope's
// FrameSize from an inner one's to size a block's `add $N, %rsp`
// release.
func (s *VarScope) FrameSize() int {
	return -8 - s.nextOffset
}

// Names returns the names declared directly in this block (not its
// parents), via lo.Keys — used only for the generator's verbose-mode
// debug logging of what a block exit releases, never for resolution.
func (s *VarScope) Names() []string {
	return lo.Keys(s.vars)
}
