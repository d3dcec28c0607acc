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

package asmbuf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wincc/internal/regs"
)

func TestOpIndentsAndLabelDoesNot(t *testing.T) {
	b := New()
	b.Label("main")
	b.Op("pushq %rbp")
	require.Equal(t, "main:\n\tpushq %rbp\n", b.String())
}

func TestMovFormatsWidthSuffix(t *testing.T) {
	b := New()
	b.Mov(regs.Dword, "$5", "%eax")
	require.Equal(t, "\tmovl $5, %eax\n", b.String())
}

func TestAppendSplicesInOrder(t *testing.T) {
	left := New()
	left.Op("movl $1, %eax")
	right := New()
	right.Op("movl $2, %eax")

	out := New()
	out.Append(right).Append(left)
	require.Equal(t, "\tmovl $2, %eax\n\tmovl $1, %eax\n", out.String())
}

func TestLinesAppendsEntireSequence(t *testing.T) {
	b := New()
	b.Lines([]string{"addl %ecx, %eax", "movl %eax, %ecx"})
	require.Equal(t, 2, b.Len())
}
