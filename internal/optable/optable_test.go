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

package optable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wincc/internal/token"
	"wincc/internal/types"
)

func TestIntPlusIntProducesInt(t *testing.T) {
	tbl := Build()
	entry, result, ok := tbl.LookupBinary(types.Int(), token.PLUS, types.Int())
	require.True(t, ok)
	require.Equal(t, types.Int(), result)
	require.Equal(t, []string{"addl %ecx, %eax"}, entry.Emit(0))
}

func TestCharMinusCharUsesByteRegisters(t *testing.T) {
	tbl := Build()
	entry, result, ok := tbl.LookupBinary(types.Char(), token.MINUS, types.Char())
	require.True(t, ok)
	require.Equal(t, types.Char(), result)
	require.Equal(t, []string{"subb %cl, %al"}, entry.Emit(0))
}

func TestComparisonResultsInOperandWidth(t *testing.T) {
	tbl := Build()
	_, result, ok := tbl.LookupBinary(types.Long(), token.LT, types.Long())
	require.True(t, ok)
	require.Equal(t, types.Long(), result)
}

func TestDivisionSignExtendsPerWidth(t *testing.T) {
	tbl := Build()
	entry, _, ok := tbl.LookupBinary(types.Long(), token.SLASH, types.Long())
	require.True(t, ok)
	require.Equal(t, []string{"cqto", "idivq %rcx"}, entry.Emit(0))

	entry, _, ok = tbl.LookupBinary(types.Char(), token.SLASH, types.Char())
	require.True(t, ok)
	require.Equal(t, []string{"cbtw", "idivb %cl"}, entry.Emit(0))
}

func TestModuloMovesRemainderIntoAccumulator(t *testing.T) {
	tbl := Build()
	entry, _, ok := tbl.LookupBinary(types.Int(), token.PERCENT, types.Int())
	require.True(t, ok)
	require.Equal(t, []string{"cltd", "idivl %ecx", "movl %edx, %eax"}, entry.Emit(0))
}

func TestMismatchedWidthsMiss(t *testing.T) {
	tbl := Build()
	_, _, ok := tbl.LookupBinary(types.Int(), token.PLUS, types.Long())
	require.False(t, ok)
}

func TestPointerPlusIntScalesByPointeeSize(t *testing.T) {
	tbl := Build()
	ptr := types.Int().AddressOf()
	entry, result, ok := tbl.LookupBinary(ptr, token.PLUS, types.Int())
	require.True(t, ok)
	require.Equal(t, ptr.ID, result.ID)
	require.Equal(t, ptr.Pointers, result.Pointers)
	lines := entry.Emit(4)
	require.Contains(t, lines, "imulq $4, %rcx")
}

func TestPlainAssignStoresAndReturnsValue(t *testing.T) {
	tbl := Build()
	entry, ok := tbl.LookupAssign(types.Int().AsLvalue(), token.ASSIGN, types.Int())
	require.True(t, ok)
	require.Equal(t, []string{"movl %ecx, (%rax)", "movl %ecx, %eax"}, entry.Emit)
}

func TestPointerAssignStoresQuadwordAndReturnsPointer(t *testing.T) {
	tbl := Build()
	ptr := types.Int().AddressOf()
	entry, ok := tbl.LookupAssign(ptr.AsLvalue(), token.ASSIGN, ptr)
	require.True(t, ok)
	require.Equal(t, []string{"movq %rcx, (%rax)", "movq %rcx, %rax"}, entry.Emit)
	require.Equal(t, ptr.ID, entry.Result.ID)
	require.Equal(t, ptr.Pointers, entry.Result.Pointers)
}

func TestCompoundDivideAssignRoutesThroughScratch(t *testing.T) {
	tbl := Build()
	entry, ok := tbl.LookupAssign(types.Int().AsLvalue(), token.SLASH_EQ, types.Int())
	require.True(t, ok)
	require.Equal(t, []string{
		"movq %rax, %r9",
		"movl (%r9), %eax",
		"cltd",
		"idivl %ecx",
		"movl %eax, (%r9)",
	}, entry.Emit)
}

func TestUnaryNegationAndLogicalNot(t *testing.T) {
	tbl := Build()
	neg, ok := tbl.LookupUnary(types.Int(), token.MINUS)
	require.True(t, ok)
	require.Equal(t, []string{"negl %eax"}, neg.Emit)

	not, ok := tbl.LookupUnary(types.Int(), token.BANG)
	require.True(t, ok)
	require.Equal(t, types.Int(), not.Result)
	require.Equal(t, []string{"cmpl $0, %eax", "movl $0, %eax", "sete %al"}, not.Emit)
}

func TestComparisonLowersToCompareZeroThenSetcc(t *testing.T) {
	tbl := Build()
	entry, _, ok := tbl.LookupBinary(types.Int(), token.LT, types.Int())
	require.True(t, ok)
	require.Equal(t, []string{"cmpl %ecx, %eax", "movl $0, %eax", "setl %al"}, entry.Emit(0))
}

func TestShiftsUseSalSar(t *testing.T) {
	tbl := Build()
	left, _, ok := tbl.LookupBinary(types.Int(), token.LSHIFT, types.Int())
	require.True(t, ok)
	require.Equal(t, []string{"sall %cl, %eax"}, left.Emit(0))

	right, _, ok := tbl.LookupBinary(types.Int(), token.RSHIFT, types.Int())
	require.True(t, ok)
	require.Equal(t, []string{"sarl %cl, %eax"}, right.Emit(0))
}
