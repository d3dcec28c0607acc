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

package parser

import "strconv"

// The lexer only ever hands the parser a run of decimal digits for a
// numeric literal (the s/S/l/L suffix is consumed but not included in
// Token.Text), so these conversions cannot fail on well-formed input;
// a panic here means the lexer and parser have disagreed about what a
// numeric literal looks like.

func parseI32(text string) int32 {
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		panic("parser: malformed int literal " + text)
	}
	return int32(v)
}

func parseI16(text string) int16 {
	v, err := strconv.ParseInt(text, 10, 16)
	if err != nil {
		panic("parser: malformed short literal " + text)
	}
	return int16(v)
}

func parseI64(text string) int64 {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		panic("parser: malformed long literal " + text)
	}
	return v
}
