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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalOrderIsConsistentWithEquality(t *testing.T) {
	samples := []Key{
		Char().Key(),
		Short().Key(),
		Int().Key(),
		Long().Key(),
		Int().AddressOf().Key(),
		Int().AsLvalue().Key(),
		Int().AddressOf().AsLvalue().Key(),
		{ID: 5, Pointers: 0, Lvalue: false},
	}
	for _, a := range samples {
		for _, b := range samples {
			less := a.Less(b)
			greater := b.Less(a)
			require.False(t, less && greater, "both a<b and b<a for %+v, %+v", a, b)
			eq := a == b
			require.Equal(t, eq, a.Equal(b), "Equal disagrees with == for %+v, %+v", a, b)
			require.Equal(t, eq, !less && !greater, "key equality disagrees with order-equivalence for %+v, %+v", a, b)
		}
	}
}

func TestOrderRespectsIDThenPointersThenLvalue(t *testing.T) {
	require.True(t, Char().Key().Less(Short().Key()))
	require.True(t, Int().Key().Less(Int().AddressOf().Key()))
	require.True(t, Int().Key().Less(Int().AsLvalue().Key()))
	require.False(t, Int().AsLvalue().Key().Less(Int().Key()))
}

func TestDereferenceStripsOnePointerLevel(t *testing.T) {
	p := Int().AddressOf()
	require.Equal(t, 1, p.Pointers)
	v := p.Dereference(nil)
	require.Equal(t, 0, v.Pointers)
	require.Equal(t, IntID, v.ID)
	require.False(t, v.Lvalue)
}

func TestDereferencePlainVariableCollapsesToRvalue(t *testing.T) {
	x := Int().AsLvalue()
	v := x.Dereference(nil)
	require.False(t, v.Lvalue)
	require.Equal(t, IntID, v.ID)
}

func TestIsPrimitiveIntExcludesStructsRegardlessOfPointers(t *testing.T) {
	require.True(t, Long().IsPrimitiveInt())
	st := DataType{ID: FirstStructID, Pointers: 0, Size: 16}
	require.False(t, st.IsPrimitiveInt())
	require.True(t, st.IsStruct())
	ptrToStruct := st.AddressOf()
	require.False(t, ptrToStruct.IsStruct())
	require.True(t, ptrToStruct.IsPointer())
}
