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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wincc/internal/types"
)

func TestDeclareAssignsDecreasingOffsets(t *testing.T) {
	s := NewFunctionScope()
	x := s.Declare("x", types.Int())
	y := s.Declare("y", types.Long())
	require.Equal(t, -8, x.Offset)
	require.Equal(t, -16, y.Offset)
	require.Equal(t, 16, s.FrameSize())
}

func TestDeclareReservesMultipleSlotsForStructLocal(t *testing.T) {
	s := NewFunctionScope()
	point := types.DataType{ID: types.FirstStructID, Pointers: 0, Size: 16, Lvalue: false}
	p := s.Declare("p", point)
	after := s.Declare("after", types.Int())
	require.Equal(t, -16, p.Offset)
	require.Equal(t, -24, after.Offset)
	require.Equal(t, 24, s.FrameSize())
}

func TestChildScopeSharesOffsetCounterAndShadows(t *testing.T) {
	outer := NewFunctionScope()
	outer.Declare("x", types.Int())
	inner := outer.Child()
	shadowed := inner.Declare("x", types.Char())

	v, ok := inner.Resolve("x")
	require.True(t, ok)
	require.Equal(t, shadowed, v)

	v, ok = outer.Resolve("x")
	require.True(t, ok)
	require.Equal(t, types.Int(), v.Type)
}

func TestResolveWalksOutward(t *testing.T) {
	outer := NewFunctionScope()
	outer.Declare("count", types.Long())
	inner := outer.Child()

	v, ok := inner.Resolve("count")
	require.True(t, ok)
	require.Equal(t, types.Long(), v.Type)

	_, ok = inner.Resolve("missing")
	require.False(t, ok)
}

func TestLoopScopeChainResolvesBreakContinue(t *testing.T) {
	outer := (*LoopScope)(nil).Child(WhileLoop, 1, "_while_end_1", "_while_start_1")
	inner := outer.Child(ForLoop, 2, "_for_end_2", "_for_continue_2")

	require.Equal(t, "_for_end_2", inner.BreakLabel)
	require.Equal(t, "_for_continue_2", inner.ContinueLabel)
	require.Same(t, outer, inner.Parent())
	require.Nil(t, outer.Parent())
}

func TestFunctionsRegistryForwardReference(t *testing.T) {
	fns := NewFunctions()
	fns.Declare("helper", FuncSignature{Params: []types.DataType{types.Int()}, ReturnType: types.Int()})

	sig, ok := fns.Lookup("helper")
	require.True(t, ok)
	require.Len(t, sig.Params, 1)

	_, ok = fns.Lookup("nonexistent")
	require.False(t, ok)
}
