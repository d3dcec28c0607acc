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

// Package regs is the pure (register, width) -> AT&T mnemonic mapping
// spec.md treats as an external collaborator. It is grounded on the
// same table y1yang0-falcon's compile/codegen/arch_x86.go builds (one
// Register value per width, picked by suffix) and on the smaller
// register.h from the C++ original this spec distills, which keys
// just rax/rbx/rcx/rdx/r8/r9 by an i8/i16/i32/i64 size enum.
package regs

// Size is the operand width in bytes: 1 (byte), 2 (word), 4 (dword) or
// 8 (qword).
type Size int

const (
	Byte  Size = 1
	Word  Size = 2
	Dword Size = 4
	Qword Size = 8
)

// Suffix returns the AT&T mnemonic suffix for s: b/w/l/q.
func (s Size) Suffix() string {
	switch s {
	case Byte:
		return "b"
	case Word:
		return "w"
	case Dword:
		return "l"
	case Qword:
		return "q"
	default:
		panic("regs: invalid operand size")
	}
}

// Reg names a physical general-purpose register, independent of width.
type Reg int

const (
	AX Reg = iota
	CX
	DX
	R8
	R9
	SP
	BP
)

var names = map[Reg][4]string{
	AX: {"al", "ax", "eax", "rax"},
	CX: {"cl", "cx", "ecx", "rcx"},
	DX: {"dl", "dx", "edx", "rdx"},
	R8: {"r8b", "r8w", "r8d", "r8"},
	R9: {"r9b", "r9w", "r9d", "r9"},
	SP: {"spl", "sp", "esp", "rsp"},
	BP: {"bpl", "bp", "ebp", "rbp"},
}

func sizeIndex(s Size) int {
	switch s {
	case Byte:
		return 0
	case Word:
		return 1
	case Dword:
		return 2
	case Qword:
		return 3
	default:
		panic("regs: invalid operand size")
	}
}

// Name returns the bare register mnemonic (no leading '%') for r at
// width s, e.g. Name(AX, Dword) == "eax".
func Name(r Reg, s Size) string {
	row, ok := names[r]
	if !ok {
		panic("regs: unknown register")
	}
	return row[sizeIndex(s)]
}

// ArgRegs is the Microsoft x64 calling convention's integer argument
// register order: first four arguments in rcx, rdx, r8, r9.
var ArgRegs = [4]Reg{CX, DX, R8, R9}

// ShadowSpace is the byte count the caller reserves above the
// register arguments for the callee's use.
const ShadowSpace = 32
