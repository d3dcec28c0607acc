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

package regs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuffixes(t *testing.T) {
	require.Equal(t, "b", Byte.Suffix())
	require.Equal(t, "w", Word.Suffix())
	require.Equal(t, "l", Dword.Suffix())
	require.Equal(t, "q", Qword.Suffix())
}

func TestNameByWidth(t *testing.T) {
	require.Equal(t, "al", Name(AX, Byte))
	require.Equal(t, "ax", Name(AX, Word))
	require.Equal(t, "eax", Name(AX, Dword))
	require.Equal(t, "rax", Name(AX, Qword))
	require.Equal(t, "r9d", Name(R9, Dword))
	require.Equal(t, "r9", Name(R9, Qword))
}

func TestArgRegOrder(t *testing.T) {
	require.Equal(t, [4]Reg{CX, DX, R8, R9}, ArgRegs)
}
