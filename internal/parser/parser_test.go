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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wincc/internal/ast"
	"wincc/internal/lexer"
	"wincc/internal/token"
	"wincc/internal/types"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.Tokenize(src), types.NewRegistry())
	prog, err := p.Parse()
	require.NoError(t, err)
	return prog
}

func TestReturnConstant(t *testing.T) {
	prog := parseSource(t, "int main(){ return 2; }")
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	require.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body.Items, 1)
	ret, ok := fn.Body.Items[0].Stmt.(*ast.ReturnStmt)
	require.True(t, ok)
	lit, ok := ret.Expr.(*ast.ConstantInt)
	require.True(t, ok)
	require.EqualValues(t, 2, lit.Value)
}

func TestArithmeticPrecedenceMultiplyBindsTighterThanAdd(t *testing.T) {
	prog := parseSource(t, "int main(){ return 1 + 2 * 3; }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*ast.ReturnStmt)
	add, ok := ret.Expr.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, token.PLUS, add.Op)
	_, leftIsConst := add.Left.(*ast.ConstantInt)
	require.True(t, leftIsConst)
	mul, ok := add.Right.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, token.STAR, mul.Op)
}

func TestCompoundAssignmentParsesAsAssignNode(t *testing.T) {
	prog := parseSource(t, "int main(){ int x = 5; x += 3; return x; }")
	items := prog.Functions[0].Body.Items
	require.Len(t, items, 3)
	require.NotNil(t, items[0].Decl)
	require.Equal(t, "x", items[0].Decl.Name)

	exprStmt := items[1].Stmt.(*ast.ExprStmt)
	assign, ok := exprStmt.Expr.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, token.PLUS_EQ, assign.Op)
}

func TestShortCircuitOperatorsAreDistinctNodes(t *testing.T) {
	prog := parseSource(t, "int main(){ return 1 || 2; }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*ast.ReturnStmt)
	_, ok := ret.Expr.(*ast.LogicalOr)
	require.True(t, ok)
}

func TestWhileLoopWithBreakInsideIf(t *testing.T) {
	prog := parseSource(t, `int main(){
		int i = 0;
		while (i < 10) {
			if (i == 5) break;
			i = i + 1;
		}
		return i;
	}`)
	items := prog.Functions[0].Body.Items
	whileStmt := items[1].Stmt.(*ast.WhileStmt)
	body := whileStmt.Body.(*ast.Block)
	ifStmt := body.Items[0].Stmt.(*ast.IfStmt)
	_, ok := ifStmt.Then.(*ast.BreakStmt)
	require.True(t, ok)
}

func TestPointerArithmeticAndDereference(t *testing.T) {
	prog := parseSource(t, "int main(){ int a = 0; int* p = &a; return *(p + 0); }")
	items := prog.Functions[0].Body.Items
	pDecl := items[1].Decl
	require.Equal(t, 1, pDecl.Type.Pointers)
	addrOf, ok := pDecl.Init.(*ast.UnaryOp)
	require.True(t, ok)
	require.Equal(t, token.AMP, addrOf.Op)

	ret := items[2].Stmt.(*ast.ReturnStmt)
	deref, ok := ret.Expr.(*ast.UnaryOp)
	require.True(t, ok)
	require.Equal(t, token.STAR, deref.Op)
	sum, ok := deref.Expr.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, token.PLUS, sum.Op)
}

func TestArraySubscriptDesugarsToDerefOfSum(t *testing.T) {
	prog := parseSource(t, "int main(){ int* p; return p[3]; }")
	ret := prog.Functions[0].Body.Items[1].Stmt.(*ast.ReturnStmt)
	deref, ok := ret.Expr.(*ast.UnaryOp)
	require.True(t, ok)
	require.Equal(t, token.STAR, deref.Op)
	sum := deref.Expr.(*ast.BinaryOp)
	require.Equal(t, token.PLUS, sum.Op)
	idx, ok := sum.Right.(*ast.ConstantInt)
	require.True(t, ok)
	require.EqualValues(t, 3, idx.Value)
}

func TestTernaryIsRightAssociative(t *testing.T) {
	prog := parseSource(t, "int main(){ return 1 ? 2 : 0 ? 3 : 4; }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*ast.ReturnStmt)
	outer, ok := ret.Expr.(*ast.Ternary)
	require.True(t, ok)
	_, innerIsTernary := outer.Else.(*ast.Ternary)
	require.True(t, innerIsTernary)
}

func TestCommaOperatorDiscardsAllButLastOperand(t *testing.T) {
	prog := parseSource(t, "int main(){ return (1, 2, 3); }")
	ret := prog.Functions[0].Body.Items[0].Stmt.(*ast.ReturnStmt)
	lit, ok := ret.Expr.(*ast.ConstantInt)
	require.True(t, ok)
	require.EqualValues(t, 3, lit.Value)
}

func TestStructFieldAccessAndPassByValueParam(t *testing.T) {
	prog := parseSource(t, `struct Point { int x; int y; };
		int sum(struct Point p) { return p.x + p.y; }`)
	require.Len(t, prog.Structs, 1)
	require.Equal(t, "Point", prog.Structs[0].Name)

	fn := prog.Functions[0]
	require.True(t, fn.Params[0].Type.Lvalue)
	require.True(t, fn.Params[0].Type.IsStruct())

	ret := fn.Body.Items[0].Stmt.(*ast.ReturnStmt)
	add := ret.Expr.(*ast.BinaryOp)
	left := add.Left.(*ast.MemberAccess)
	require.Equal(t, "x", left.Field)
}

func TestForLoopWithDeclarationInit(t *testing.T) {
	prog := parseSource(t, "int main(){ for (int i = 0; i < 10; i = i + 1) { } return 0; }")
	forStmt := prog.Functions[0].Body.Items[0].Stmt.(*ast.ForStmt)
	require.NotNil(t, forStmt.Init)
	require.Equal(t, "i", forStmt.Init.Name)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Post)
}

func TestSyntaxErrorOnMismatchedToken(t *testing.T) {
	p := New(lexer.Tokenize("int main( { return 1; }"), types.NewRegistry())
	_, err := p.Parse()
	require.Error(t, err)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestFunctionCallWithArguments(t *testing.T) {
	prog := parseSource(t, "int add(int a, int b){ return a + b; } int main(){ return add(1, 2); }")
	ret := prog.Functions[1].Body.Items[0].Stmt.(*ast.ReturnStmt)
	call, ok := ret.Expr.(*ast.FunctionCall)
	require.True(t, ok)
	require.Equal(t, "add", call.Name)
	require.Len(t, call.Args, 2)
}
