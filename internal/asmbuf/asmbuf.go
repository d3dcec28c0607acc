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

// Package asmbuf is the append-only output buffer the generator writes
// AT&T-syntax instructions into. It is grounded directly on the C++
// original's `assembly` struct in ast.h: a flat line list with an
// `add` that builds an instruction from a mnemonic/size/register
// triple, generalized here to take pre-formatted operand strings
// (optable's entries already carry fully-formatted operands) rather
// than the original's fixed two-register overloads.
package asmbuf

import (
	"strings"

	"wincc/internal/regs"
)

// Buffer accumulates assembly lines in emission order.
type Buffer struct {
	lines []string
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Raw appends a line verbatim — used for directives and labels that
// don't want the instruction indent.
func (b *Buffer) Raw(line string) *Buffer {
	b.lines = append(b.lines, line)
	return b
}

// Op appends a tab-indented instruction line: "\tmnemonic operands".
// The line is taken as-is; callers format and comma-separate the
// operands themselves (e.g. "addl %ecx, %eax") since AT&T operand
// order and formatting varies by instruction shape.
func (b *Buffer) Op(line string) *Buffer {
	return b.Raw("\t" + line)
}

// Lines appends every instruction in seq, in order — the shape
// optable.BinaryEntry.Emit / UnaryEntry.Emit / AssignEntry.Emit return.
func (b *Buffer) Lines(seq []string) *Buffer {
	for _, l := range seq {
		b.Op(l)
	}
	return b
}

// Label appends a bare "name:" line.
func (b *Buffer) Label(name string) *Buffer {
	return b.Raw(name + ":")
}

// Append concatenates other's lines onto b, in order — used to splice
// a sub-expression's generated code into its parent's buffer.
func (b *Buffer) Append(other *Buffer) *Buffer {
	b.lines = append(b.lines, other.lines...)
	return b
}

// Mov emits a width-suffixed move between two already-formatted
// operands, e.g. Mov(regs.Dword, "$5", "%eax") -> "\tmovl $5, %eax".
func (b *Buffer) Mov(size regs.Size, src, dst string) *Buffer {
	return b.Op("mov" + size.Suffix() + " " + src + ", " + dst)
}

// Push/Pop are always quad-word: the stack discipline spec.md
// describes (push an intermediate result, recurse, pop it back) only
// ever moves full 8-byte slots, regardless of the value's own type
// width — the same convention y1yang0-falcon's arch_x86.go and the
// C++ original both follow.
func (b *Buffer) Push(operand string) *Buffer {
	return b.Op("pushq " + operand)
}

func (b *Buffer) Pop(operand string) *Buffer {
	return b.Op("popq " + operand)
}

func (b *Buffer) String() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Buffer) Len() int {
	return len(b.lines)
}
