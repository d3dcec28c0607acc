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

package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wincc/internal/token"
)

func kinds(q *Queue) []token.Kind {
	var out []token.Kind
	for {
		tok := q.Pop()
		out = append(out, tok.Kind)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestTokenizeCompoundOperators(t *testing.T) {
	q := Tokenize("<<= << < <= >>= >> > >=")
	require.Equal(t, []token.Kind{
		token.LSHIFT_EQ, token.LSHIFT, token.LT, token.LE,
		token.RSHIFT_EQ, token.RSHIFT, token.GT, token.GE,
		token.EOF,
	}, kinds(q))
}

func TestTokenizeNumericSuffixes(t *testing.T) {
	q := Tokenize("123 123s 123S 123l 123L")
	require.Equal(t, token.LIT_INT, q.Pop().Kind)
	require.Equal(t, token.LIT_SHORT, q.Pop().Kind)
	require.Equal(t, token.LIT_SHORT, q.Pop().Kind)
	require.Equal(t, token.LIT_LONG, q.Pop().Kind)
	require.Equal(t, token.LIT_LONG, q.Pop().Kind)
	require.Equal(t, token.EOF, q.Pop().Kind)
}

func TestTokenizeStringEscapes(t *testing.T) {
	q := Tokenize(`"a\nb\tc"`)
	tok := q.Pop()
	require.Equal(t, token.LIT_STRING, tok.Kind)
	require.Equal(t, "a\nb\tc", tok.Text)
}

func TestTokenizeCharEscape(t *testing.T) {
	q := Tokenize(`'\n'`)
	tok := q.Pop()
	require.Equal(t, token.LIT_CHAR, tok.Kind)
	require.Equal(t, "\n", tok.Text)
}

func TestTokenizeKeywordsAndIdent(t *testing.T) {
	q := Tokenize("struct Point int foo")
	require.Equal(t, token.KW_STRUCT, q.Pop().Kind)
	id := q.Pop()
	require.Equal(t, token.IDENT, id.Kind)
	require.Equal(t, "Point", id.Text)
	require.Equal(t, token.KW_INT, q.Pop().Kind)
	require.Equal(t, token.IDENT, q.Pop().Kind)
}

func TestTokenizeLineComment(t *testing.T) {
	q := Tokenize("int x; // trailing comment\nreturn x;")
	require.Equal(t, []token.Kind{
		token.KW_INT, token.IDENT, token.SEMI,
		token.KW_RETURN, token.IDENT, token.SEMI, token.EOF,
	}, kinds(q))
}
