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

package scope

import "wincc/internal/types"

// FuncSignature is what the generator needs about a callee at a call
// site: its parameter types (to tell which arguments are passed by
// address, i.e. struct parameters) and return
// type (always int, per spec, but carried rather than assumed so a
// future extension isn't a silent miscompile).
type FuncSignature struct {
	Params     []types.DataType
	ReturnType types.DataType
}

// Functions is the program-wide function table, populated by a first
// pass over every top-level declaration before any function body is
// generated — so a function may call another declared later in the
// same file, the same forward-reference freedom the original's single
// `functions` vector gives it by compiling signatures before bodies.
type Functions struct {
	byName map[string]FuncSignature
}

func NewFunctions() *Functions {
	return &Functions{byName: make(map[string]FuncSignature)}
}

func (f *Functions) Declare(name string, sig FuncSignature) {
	f.byName[name] = sig
}

func (f *Functions) Lookup(name string) (FuncSignature, bool) {
	sig, ok := f.byName[name]
	return sig, ok
}
