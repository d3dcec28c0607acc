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
package utils

import "fmt"

func Assert(cond bool, format string, msg ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, msg...))
	}
}

func Any[T comparable](c T, cs ...T) bool {
	for _, cc := range cs {
		if c == cc {
			return true
		}
	}
	return false
}

func ShouldNotReachHere() {
	panic("Should not reach here")
}

// Align8 rounds n up to the next multiple of 8, the stack slot stride
// every local variable and every stack argument uses.
func Align8(n int) int {
	return (n + 7) &^ 7
}
