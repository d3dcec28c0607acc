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
	"wincc/internal/regs"
	"wincc/internal/token"
	"wincc/internal/types"
	"wincc/internal/utils"
)

// genExpr lowers one expression node, leaving its value (or, for an
// lvalue result, its address) in %rax, and records the resolved type
// on the node itself — the generator is the only type-resolution pass
// this compiler has, so every case here calls n.SetType before
// returning.
func (g *Generator) genExpr(e ast.Expr) types.DataType {
	switch n := e.(type) {
	case *ast.ConstantInt:
		return set(n, g.loadImmediate(regs.Dword, fmt.Sprintf("$%d", n.Value), types.Int()))
	case *ast.ConstantShort:
		return set(n, g.loadImmediate(regs.Word, fmt.Sprintf("$%d", n.Value), types.Short()))
	case *ast.ConstantLong:
		return set(n, g.loadImmediate(regs.Qword, fmt.Sprintf("$%d", n.Value), types.Long()))
	case *ast.ConstantChar:
		return set(n, g.loadImmediate(regs.Byte, fmt.Sprintf("$%d", int(n.Value)), types.Char()))
	case *ast.ConstantString:
		return set(n, g.genConstantString(n))
	case *ast.VariableRef:
		return set(n, g.genVariableRef(n))
	case *ast.MemberAccess:
		return set(n, g.genMemberAccess(n))
	case *ast.UnaryOp:
		return set(n, g.genUnaryOp(n))
	case *ast.BinaryOp:
		return set(n, g.genBinaryOp(n))
	case *ast.Assign:
		return set(n, g.genAssign(n))
	case *ast.LogicalAnd:
		return set(n, g.genShortCircuit(n.Left, n.Right, false))
	case *ast.LogicalOr:
		return set(n, g.genShortCircuit(n.Left, n.Right, true))
	case *ast.Ternary:
		return set(n, g.genTernary(n))
	case *ast.FunctionCall:
		return set(n, g.genFunctionCall(n))
	default:
		utils.ShouldNotReachHere()
		return types.DataType{}
	}
}

// set records t on n and returns it, so every genExpr case can read as
// a single expression instead of a statement followed by a SetType
// call.
func set(n ast.Expr, t types.DataType) types.DataType {
	n.SetType(t)
	return t
}

func (g *Generator) loadImmediate(w regs.Size, literal string, t types.DataType) types.DataType {
	g.buf.Op("mov" + w.Suffix() + " " + literal + ", %" + regs.Name(regs.AX, w))
	return t
}

func widthSuffix(t types.DataType) string {
	return regs.Size(t.Size).Suffix()
}

func accumulator(t types.DataType) string {
	return "%" + regs.Name(regs.AX, regs.Size(t.Size))
}

// genVariableRef resolves name against the current scope chain and
// loads its address: `lea` of its stack slot for an ordinary variable,
// or a `movq` of the slot for a struct parameter (declared type already
// an lvalue), whose slot holds the address the caller passed. Every
// variable reference, whether a plain local or a struct passed by
// value, is an address in a register first; collapsing to a value happens only where the
// expression actually needs one (spec.md §4.6). An unresolved name is
// a silent semantic miss: nothing is emitted and the zero DataType
// propagates, causing every later table lookup that touches it to
// miss in turn.
func (g *Generator) genVariableRef(n *ast.VariableRef) types.DataType {
	v, ok := g.vars.Resolve(n.Name)
	if !ok {
		g.log.Debugw("unresolved variable reference", "name", n.Name)
		return types.DataType{}
	}
	if v.Type.Lvalue {
		g.buf.Op(fmt.Sprintf("movq %d(%%rbp), %%rax", v.Offset))
	} else {
		g.buf.Op(fmt.Sprintf("leaq %d(%%rbp), %%rax", v.Offset))
	}
	return v.Type.AsLvalue()
}

// genMemberAccess evaluates the base to an address, collapsing one
// level of pointer indirection first if the base is itself a pointer
// to a struct (`.` is used for both, per spec.md's grammar — there is
// no separate `->`), then adds the field's offset.
func (g *Generator) genMemberAccess(n *ast.MemberAccess) types.DataType {
	bt := g.genExpr(n.Base)
	if bt.IsPointer() {
		bt = g.collapseLvalue(bt)
	}
	st, ok := g.structs.ByID(bt.ID)
	if !ok {
		g.log.Debugw("member access on a non-struct type", "field", n.Field)
		return types.DataType{}
	}
	field, ok := st.Field(n.Field)
	if !ok {
		g.log.Debugw("unknown struct field", "struct", st.Name, "field", n.Field)
		return types.DataType{}
	}
	if field.Offset != 0 {
		g.buf.Op(fmt.Sprintf("addq $%d, %%rax", field.Offset))
	}
	return field.Type.AsLvalue()
}

// genUnaryOp dispatches the structural operators (address-of,
// dereference, the load-modify-store of ++/--) and routes everything
// else (negation, complement, logical not) through the operator table
// once the operand is collapsed to a plain value.
func (g *Generator) genUnaryOp(n *ast.UnaryOp) types.DataType {
	switch n.Op {
	case token.AMP:
		return g.genAddressOf(n)
	case token.STAR:
		return g.genDereference(n)
	case token.INC, token.DEC:
		return g.genIncDec(n)
	}

	t := g.genExpr(n.Expr)
	t = g.collapseLvalue(t)
	entry, ok := g.tables.LookupUnary(t, n.Op)
	if !ok {
		g.log.Debugw("no operator table entry", "op", n.Op, "operand", t)
		return types.DataType{}
	}
	g.buf.Lines(entry.Emit)
	return entry.Result
}

// genAddressOf relies on the fact that evaluating an lvalue already
// leaves its address in %rax — '&' needs no instruction of its own,
// only a type change.
func (g *Generator) genAddressOf(n *ast.UnaryOp) types.DataType {
	t := g.genExpr(n.Expr)
	return t.AddressOf()
}

// genDereference collapses the pointer operand to its own value (the
// address it points to — collapsing a pointer-typed lvalue never
// changes Pointers, only loads the stored value), then strips one
// level of indirection to report that address as an lvalue of the
// pointee type. The load this produces happens wherever the result is
// next collapsed.
func (g *Generator) genDereference(n *ast.UnaryOp) types.DataType {
	t := g.genExpr(n.Expr)
	t = g.collapseLvalue(t)
	return t.Dereference(g.structs.SizeOf).AsLvalue()
}

// genIncDec implements prefix/postfix ++/-- as load-modify-store
// through a scratch address register, since the operator table's
// INC/DEC entries only know how to bump a value already sitting in the
// accumulator.
func (g *Generator) genIncDec(n *ast.UnaryOp) types.DataType {
	t := g.genExpr(n.Expr)
	g.buf.Op("movq %rax, %r9")

	rvalue := t.AsRvalue()
	width := regs.Size(rvalue.Size)
	ax := "%" + regs.Name(regs.AX, width)
	g.buf.Op(fmt.Sprintf("mov%s (%%r9), %s", width.Suffix(), ax))

	entry, ok := g.tables.LookupUnary(rvalue, n.Op)
	if !ok {
		g.log.Debugw("no operator table entry", "op", n.Op, "operand", rvalue)
		return types.DataType{}
	}

	saved := "%" + regs.Name(regs.CX, width)
	if n.Postfix {
		g.buf.Op(fmt.Sprintf("mov%s %s, %s", width.Suffix(), ax, saved))
	}
	g.buf.Lines(entry.Emit)
	g.buf.Op(fmt.Sprintf("mov%s %s, (%%r9)", width.Suffix(), ax))
	if n.Postfix {
		g.buf.Op(fmt.Sprintf("mov%s %s, %s", width.Suffix(), saved, ax))
	}
	return rvalue
}

// genBinaryOp implements the stack-based protocol spec.md §4.5
// describes: evaluate the right operand first and push it, evaluate
// the left (which ends up in %rax, the same register the push just
// vacated), then pop the right value into %rcx so the table lookup and
// emitted instructions always see left-in-%rax, right-in-%rcx. A table
// miss triggers the one-shot lvalue collapse on whichever side is
// still an address, then a single retry — never more than one collapse
// per side.
func (g *Generator) genBinaryOp(n *ast.BinaryOp) types.DataType {
	rt := g.genExpr(n.Right)
	g.buf.Push("%rax")
	lt := g.genExpr(n.Left)
	g.buf.Pop("%rcx")

	entry, result, ok := g.tables.LookupBinary(lt, n.Op, rt)
	if !ok {
		if lt.Lvalue {
			lt = g.collapseLvalue(lt)
		}
		if rt.Lvalue {
			rt = g.collapseLvalueIn(rt, regs.CX)
		}
		entry, result, ok = g.tables.LookupBinary(lt, n.Op, rt)
	}
	if !ok {
		g.log.Debugw("no operator table entry", "op", n.Op, "left", lt, "right", rt)
		return types.DataType{}
	}

	pointeeSize := 0
	if entry.ResultFromLeft {
		pointeeSize = lt.Dereference(g.structs.SizeOf).Size
	}
	g.buf.Lines(entry.Emit(pointeeSize))
	return result
}

// genAssign implements '=' and every compound assignment the same
// way: right operand first (pushed), then the left evaluated as an
// address (never collapsed — that address is exactly what the
// operator table's Emit needs in %rax), then the right value popped
// into %rcx and collapsed to an rvalue if it wasn't already one.
func (g *Generator) genAssign(n *ast.Assign) types.DataType {
	rt := g.genExpr(n.Right)
	g.buf.Push("%rax")
	lt := g.genExpr(n.Left)
	g.buf.Pop("%rcx")

	if rt.Lvalue {
		rt = g.collapseLvalueIn(rt, regs.CX)
	}

	entry, ok := g.tables.LookupAssign(lt, n.Op, rt)
	if !ok {
		g.log.Debugw("no assignment table entry", "op", n.Op, "left", lt, "right", rt)
		return types.DataType{}
	}
	g.buf.Lines(entry.Emit)
	return entry.Result
}

// genShortCircuit lowers && and || directly to branches rather than
// consulting the operator table (spec.md §4.6): the right operand must
// never be evaluated once the left side already decides the result.
// isOr distinguishes the two: || short-circuits on a true left operand
// and yields 1 immediately, && short-circuits on a false one and
// yields 0 immediately.
func (g *Generator) genShortCircuit(left, right ast.Expr, isOr bool) types.DataType {
	shortLabel, endLabel := g.labels.locLabels()

	lt := g.genExpr(left)
	lt = g.collapseLvalue(lt)
	g.buf.Op("cmp" + widthSuffix(lt) + " $0, " + accumulator(lt))
	if isOr {
		g.buf.Op("jne " + shortLabel)
	} else {
		g.buf.Op("je " + shortLabel)
	}

	rt := g.genExpr(right)
	rt = g.collapseLvalue(rt)
	g.buf.Op("cmp" + widthSuffix(rt) + " $0, " + accumulator(rt))
	if isOr {
		g.buf.Op("jne " + shortLabel)
	} else {
		g.buf.Op("je " + shortLabel)
	}

	if isOr {
		g.buf.Op("movl $0, %eax")
	} else {
		g.buf.Op("movl $1, %eax")
	}
	g.buf.Op("jmp " + endLabel)
	g.buf.Label(shortLabel)
	if isOr {
		g.buf.Op("movl $1, %eax")
	} else {
		g.buf.Op("movl $0, %eax")
	}
	g.buf.Label(endLabel)
	return types.Int()
}

// genTernary lowers `cond ? then : else` to the same compare-and-branch
// skeleton an if/else statement uses, but as an expression: both arms
// leave their value in %rax and converge on one end label.
func (g *Generator) genTernary(n *ast.Ternary) types.DataType {
	elseLabel, endLabel := g.labels.ternaryLabels()

	ct := g.genExpr(n.Cond)
	ct = g.collapseLvalue(ct)
	if ct.Size == 0 {
		g.log.Debug("ternary condition resolved to an unregistered type, skipping comparison")
	} else {
		g.buf.Op("cmp" + widthSuffix(ct) + " $0, " + accumulator(ct))
		g.buf.Op("je " + elseLabel)
	}

	tt := g.genExpr(n.Then)
	tt = g.collapseLvalue(tt)
	g.buf.Op("jmp " + endLabel)

	g.buf.Label(elseLabel)
	et := g.genExpr(n.Else)
	g.collapseLvalue(et)
	g.buf.Label(endLabel)

	return tt
}

// genConstantString allocates the decoded text on the heap at the
// point of evaluation (spec.md §4.7) rather than lifting it to a data
// section: a shadow-spaced call to malloc for len+1 bytes, then one
// store per byte plus a NUL terminator.
func (g *Generator) genConstantString(n *ast.ConstantString) types.DataType {
	s := n.Value
	g.buf.Op("subq $32, %rsp")
	g.buf.Op(fmt.Sprintf("movq $%d, %%rcx", len(s)+1))
	g.buf.Op("call malloc")
	g.buf.Op("addq $32, %rsp")
	for i := 0; i < len(s); i++ {
		g.buf.Op(fmt.Sprintf("movb $%d, %d(%%rax)", s[i], i))
	}
	g.buf.Op(fmt.Sprintf("movb $0, %d(%%rax)", len(s)))
	return types.Char().AddressOf()
}

// genFunctionCall reserves the larger of the 32-byte shadow space or
// 8 bytes per argument, stores each evaluated argument at its slot,
// loads the first four into the Microsoft x64 integer argument
// registers, calls, and frees the reserved space. A call to a name
// with no registered signature is a silent semantic miss: nothing is
// emitted and the call site's type is the zero DataType.
func (g *Generator) genFunctionCall(n *ast.FunctionCall) types.DataType {
	sig, ok := g.functions.Lookup(n.Name)
	if !ok {
		g.log.Debugw("call to undeclared function", "name", n.Name)
		return types.DataType{}
	}

	reserve := regs.ShadowSpace
	if needed := utils.Align8(len(n.Args) * 8); needed > reserve {
		reserve = needed
	}
	g.buf.Op(fmt.Sprintf("subq $%d, %%rsp", reserve))

	for i, argExpr := range n.Args {
		t := g.genExpr(argExpr)
		wantsAddress := i < len(sig.Params) && sig.Params[i].Lvalue
		if t.Lvalue && !wantsAddress {
			t = g.collapseLvalue(t)
		}
		g.buf.Op(fmt.Sprintf("movq %%rax, %d(%%rsp)", i*8))
	}
	for i := 0; i < len(n.Args) && i < len(regs.ArgRegs); i++ {
		g.buf.Op(fmt.Sprintf("movq %d(%%rsp), %%%s", i*8, regs.Name(regs.ArgRegs[i], regs.Qword)))
	}
	g.buf.Op("call " + n.Name)
	g.buf.Op(fmt.Sprintf("addq $%d, %%rsp", reserve))
	return sig.ReturnType
}
