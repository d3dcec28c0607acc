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

package codegen

import (
	"fmt"

	"wincc/internal/ast"
	"wincc/internal/scope"
	"wincc/internal/utils"
)

func (g *Generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		g.genBlock(n)
	case *ast.ReturnStmt:
		g.genReturn(n)
	case *ast.ExprStmt:
		g.genExpr(n.Expr)
	case *ast.IfStmt:
		g.genIf(n)
	case *ast.WhileStmt:
		g.genWhile(n)
	case *ast.DoWhileStmt:
		g.genDoWhile(n)
	case *ast.ForStmt:
		g.genFor(n)
	case *ast.BreakStmt:
		g.genBreak()
	case *ast.ContinueStmt:
		g.genContinue()
	default:
		utils.ShouldNotReachHere()
	}
}

// genReturn evaluates the return expression into %rax (collapsing any
// lvalue left there) and emits the function epilogue inline. A
// bare `return;` leaves %rax whatever it already holds, matching the
// fallthrough case of a function ending without an explicit return.
func (g *Generator) genReturn(n *ast.ReturnStmt) {
	if n.Expr != nil {
		t := g.genExpr(n.Expr)
		g.collapseLvalue(t)
	}
	g.buf.Op("movq %rbp, %rsp")
	g.buf.Op("pop %rbp")
	g.buf.Op("ret")
}

// genIf lowers `if (cond) then [else other]` to the two-label pattern:
// a false condition jumps past the then-branch to either the else
// branch or the end.
func (g *Generator) genIf(n *ast.IfStmt) {
	elseLabel, endLabel := g.labels.ifLabels()
	g.genCondJumpIfZero(n.Cond, elseLabel)
	g.genStmt(n.Then)
	if n.Else != nil {
		g.buf.Op("jmp " + endLabel)
		g.buf.Label(elseLabel)
		g.genStmt(n.Else)
		g.buf.Label(endLabel)
	} else {
		g.buf.Label(elseLabel)
	}
}

// genWhile lowers to test-then-loop: condition re-evaluated at the
// top, break target is the end label, continue target is the start
// label (retesting the condition is exactly what continue should do).
func (g *Generator) genWhile(n *ast.WhileStmt) {
	start, end := g.labels.whileLabels()
	outer := g.loop
	g.loop = outer.Child(scope.WhileLoop, 0, end, start)

	g.buf.Label(start)
	g.genCondJumpIfZero(n.Cond, end)
	g.genStmt(n.Body)
	g.buf.Op("jmp " + start)
	g.buf.Label(end)

	g.loop = outer
}

// genDoWhile lowers to loop-then-test: the body always runs once.
// continue jumps to the condition test just like while, since there is
// no post-expression to run first.
func (g *Generator) genDoWhile(n *ast.DoWhileStmt) {
	start, end := g.labels.doWhileLabels()
	testLabel := start + "_test"
	outer := g.loop
	g.loop = outer.Child(scope.DoWhileLoop, 0, end, testLabel)

	g.buf.Label(start)
	g.genStmt(n.Body)
	g.buf.Label(testLabel)
	g.genCondJumpIfZero(n.Cond, end)
	g.buf.Op("jmp " + start)
	g.buf.Label(end)

	g.loop = outer
}

// genFor lowers init; test; body; post in its own child scope (the
// init-clause's declaration, if any, is scoped to the loop alone).
// continue jumps to the post-expression, not the test, since `i++`
// must still run before the condition is rechecked.
func (g *Generator) genFor(n *ast.ForStmt) {
	outerVars := g.vars
	g.vars = outerVars.Child()

	if n.Init != nil {
		g.genVariableDecl(n.Init)
	} else if n.InitExpr != nil {
		g.genExpr(n.InitExpr)
	}

	start, continueLabel, end := g.labels.forLabels()
	outerLoop := g.loop
	g.loop = outerLoop.Child(scope.ForLoop, 0, end, continueLabel)

	g.buf.Label(start)
	if n.Cond != nil {
		g.genCondJumpIfZero(n.Cond, end)
	}
	g.genStmt(n.Body)
	g.buf.Label(continueLabel)
	if n.Post != nil {
		g.genExpr(n.Post)
	}
	g.buf.Op("jmp " + start)
	g.buf.Label(end)

	g.loop = outerLoop
	released := g.vars.FrameSize() - outerVars.FrameSize()
	if released > 0 {
		g.buf.Op(fmt.Sprintf("addq $%d, %%rsp", released))
	}
	g.vars = outerVars
}

// genBreak/genContinue jump to the innermost enclosing loop's stored
// labels. A break or continue with no enclosing loop is the one
// control-flow case spec.md §7 treats as a silent semantic miss: the
// statement simply emits nothing.
func (g *Generator) genBreak() {
	if g.loop == nil {
		g.log.Debug("break outside any enclosing loop")
		return
	}
	g.buf.Op("jmp " + g.loop.BreakLabel)
}

func (g *Generator) genContinue() {
	if g.loop == nil {
		g.log.Debug("continue outside any enclosing loop")
		return
	}
	g.buf.Op("jmp " + g.loop.ContinueLabel)
}

// genCondJumpIfZero evaluates cond, collapses it to a value, compares
// against zero, and jumps to falseLabel when it is zero — the shared
// skeleton if/while/do-while/for all build their branch on.
func (g *Generator) genCondJumpIfZero(cond ast.Expr, falseLabel string) {
	t := g.genExpr(cond)
	t = g.collapseLvalue(t)
	if t.Size == 0 {
		g.log.Debug("condition resolved to an unregistered type, skipping comparison")
		return
	}
	suf := widthSuffix(t)
	g.buf.Op("cmp" + suf + " $0, " + accumulator(t))
	g.buf.Op("je " + falseLabel)
}
