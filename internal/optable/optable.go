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

// Package optable is the typed operator dispatch table: a map from
// (left type, operator, right type) to the assembly template that
// implements it and the type of the result. It is built once, at
// program start, as an append-only registry — the same shape as the
// C++ original's binary_operator_assembly / binary_operator_result_type
// maps in ast.cpp, generalized from the original's single (INT, op,
// INT) entries to all four primitive widths, comparisons, shifts,
// bitwise operators, and compound assignment. Cross-product
// construction over the four widths uses samber/lo's ForEach, per
// this repository's domain dependency stack.
package optable

import (
	"fmt"

	"github.com/samber/lo"

	"wincc/internal/regs"
	"wincc/internal/token"
	"wincc/internal/types"
	"wincc/internal/utils"
)

// BinaryKey is the lookup key for a plain (non-assigning) binary
// operator application.
type BinaryKey struct {
	Left  types.Key
	Op    token.Kind
	Right types.Key
}

// BinaryEntry carries the generated instructions for a binary
// operator. Emit assumes the generator's calling convention: the left
// operand's value in %rax (or the matching sub-register), the right
// operand's value in %rcx, and leaves the result in %rax. Division and
// modulo entries may additionally clobber %rdx.
//
// FixedResult is set for ordinary arithmetic/comparison entries whose
// result type never depends on the operands' exact identity (e.g. two
// ints always produce an int). ResultFromLeft is set instead for
// pointer arithmetic, whose result is "the same pointer type as the
// left operand" for any pointee — Size there comes from the pointee,
// which optable can't know statically, so the caller (codegen) derives
// the full DataType from the left operand it already has in hand.
type BinaryEntry struct {
	FixedResult    *types.DataType
	ResultFromLeft bool
	// Emit returns the instruction sequence. pointeeSize is only
	// consulted by the pointer-arithmetic entries; every other entry
	// ignores it.
	Emit func(pointeeSize int) []string
}

// UnaryKey/UnaryEntry is the same shape for the handful of unary
// operators the table drives: negation, bitwise complement, logical
// not, and the bare increment/decrement step (the load/store around it
// is structural and lives in codegen, not here).
type UnaryKey struct {
	Operand types.Key
	Op      token.Kind
}

type UnaryEntry struct {
	Result types.DataType
	Emit   []string
}

// AssignKey/AssignEntry covers '=' and every compound assignment
// operator. Emit assumes %rax already holds the destination address
// and %rcx already holds the right-hand value; it leaves the assigned
// value in %rax. The two division-based operators route through %r9
// as scratch because idiv needs the dividend in %rax/%rdx, which are
// occupied by the destination address and are about to be needed for
// the remainder.
type AssignKey struct {
	Left  types.Key
	Op    token.Kind
	Right types.Key
}

type AssignEntry struct {
	Result types.DataType
	Emit   []string
}

type Tables struct {
	Binary map[BinaryKey]BinaryEntry
	Unary  map[UnaryKey]UnaryEntry
	Assign map[AssignKey]AssignEntry
}

func (t *Tables) LookupBinary(left types.DataType, op token.Kind, right types.DataType) (BinaryEntry, types.DataType, bool) {
	e, ok := t.Binary[BinaryKey{Left: left.Key(), Op: op, Right: right.Key()}]
	if !ok {
		return BinaryEntry{}, types.DataType{}, false
	}
	if e.ResultFromLeft {
		result := left
		result.Lvalue = false
		return e, result, true
	}
	return e, *e.FixedResult, true
}

func (t *Tables) LookupUnary(operand types.DataType, op token.Kind) (UnaryEntry, bool) {
	e, ok := t.Unary[UnaryKey{Operand: operand.Key(), Op: op}]
	return e, ok
}

func (t *Tables) LookupAssign(left types.DataType, op token.Kind, right types.DataType) (AssignEntry, bool) {
	e, ok := t.Assign[AssignKey{Left: left.Key(), Op: op, Right: right.Key()}]
	return e, ok
}

var widths = []regs.Size{regs.Byte, regs.Word, regs.Dword, regs.Qword}

// idForWidth maps an operand byte width back to the primitive id that
// has that width — the inverse of the id -> size table in the types
// package.
func idForWidth(w regs.Size) int {
	switch w {
	case regs.Byte:
		return types.CharID
	case regs.Word:
		return types.ShortID
	case regs.Dword:
		return types.IntID
	case regs.Qword:
		return types.LongID
	default:
		panic("optable: invalid width")
	}
}

func primitiveOf(w regs.Size) types.DataType {
	return types.DataType{ID: idForWidth(w), Size: int(w)}
}

// reg formats a register operand, e.g. reg(regs.CX, regs.Dword) == "%ecx".
func reg(r regs.Reg, w regs.Size) string {
	return "%" + regs.Name(r, w)
}

// Build constructs the full operator table: the arithmetic,
// comparison, shift and bitwise cross product over all four primitive
// widths, the handful of unary operators, the compound-assignment
// table, and pointer arithmetic. It panics on an internal
// inconsistency (a key registered twice) since this only ever runs
// once at process start and such a bug is a programming error, not
// recoverable input.
func Build() *Tables {
	t := &Tables{
		Binary: make(map[BinaryKey]BinaryEntry),
		Unary:  make(map[UnaryKey]UnaryEntry),
		Assign: make(map[AssignKey]AssignEntry),
	}
	lo.ForEach(widths, func(w regs.Size, _ int) {
		registerArithmetic(t, w)
		registerComparisons(t, w)
		registerShifts(t, w)
		registerBitwise(t, w)
		registerUnary(t, w)
		registerAssign(t, w)
	})
	registerPointerArithmetic(t)
	registerPointerAssign(t)
	return t
}

func putBinary(t *Tables, w regs.Size, op token.Kind, emit func(pointeeSize int) []string) {
	result := primitiveOf(w)
	k := BinaryKey{Left: result.Key(), Op: op, Right: result.Key()}
	_, exists := t.Binary[k]
	utils.Assert(!exists, "optable: duplicate binary key %+v", k)
	t.Binary[k] = BinaryEntry{FixedResult: &result, Emit: emit}
}

func registerArithmetic(t *Tables, w regs.Size) {
	suf := w.Suffix()
	ax, cx := reg(regs.AX, w), reg(regs.CX, w)

	putBinary(t, w, token.PLUS, lines1("add"+suf+" "+cx+", "+ax))
	putBinary(t, w, token.MINUS, lines1("sub"+suf+" "+cx+", "+ax))
	putBinary(t, w, token.STAR, lines1("imul"+suf+" "+cx+", "+ax))

	signExtend := signExtendMnemonic(w)
	dividend, divisor := reg(regs.AX, w), reg(regs.CX, w)
	putBinary(t, w, token.SLASH, lines1(signExtend, "idiv"+suf+" "+divisor))
	_ = dividend

	modMove := modMoveInstruction(w)
	putBinary(t, w, token.PERCENT, lines1(signExtend, "idiv"+suf+" "+divisor, modMove))
}

// signExtendMnemonic returns the instruction that sign-extends the
// dividend before idiv, generalizing the C++ original's int-only
// `movl $0, %edx` (which only works for non-negative dividends) to a
// correct sign-extension at every width: cbtw/cwtd/cltd/cqto.
func signExtendMnemonic(w regs.Size) string {
	switch w {
	case regs.Byte:
		return "cbtw"
	case regs.Word:
		return "cwtd"
	case regs.Dword:
		return "cltd"
	case regs.Qword:
		return "cqto"
	default:
		panic("optable: invalid width")
	}
}

// modMoveInstruction copies the remainder idiv leaves behind into the
// quotient register, 'ax's home for the result. Byte division is the
// one irregular case: idivb leaves its remainder in %ah, which has no
// wider-width counterpart the way dx/edx/rdx do.
func modMoveInstruction(w regs.Size) string {
	switch w {
	case regs.Byte:
		return "movb %ah, %al"
	case regs.Word:
		return "movw " + reg(regs.DX, w) + ", " + reg(regs.AX, w)
	case regs.Dword:
		return "movl " + reg(regs.DX, w) + ", " + reg(regs.AX, w)
	case regs.Qword:
		return "movq " + reg(regs.DX, w) + ", " + reg(regs.AX, w)
	default:
		panic("optable: invalid width")
	}
}

// registerComparisons follows the exact lowering spec.md §4.1 names:
// cmp, then zero the full result register, then set the low byte from
// the flags — cheaper than a separate movzbl and correct because mov
// doesn't touch the flags cmp just set.
func registerComparisons(t *Tables, w regs.Size) {
	suf := w.Suffix()
	ax, cx := reg(regs.AX, w), reg(regs.CX, w)
	al, eax := reg(regs.AX, regs.Byte), reg(regs.AX, regs.Dword)

	cmp := func(mnemonic string) func(int) []string {
		return lines1("cmp"+suf+" "+cx+", "+ax, "movl $0, "+eax, mnemonic+" "+al)
	}
	putBinary(t, w, token.EQ, cmp("sete"))
	putBinary(t, w, token.NE, cmp("setne"))
	putBinary(t, w, token.LT, cmp("setl"))
	putBinary(t, w, token.LE, cmp("setle"))
	putBinary(t, w, token.GT, cmp("setg"))
	putBinary(t, w, token.GE, cmp("setge"))
}

func registerShifts(t *Tables, w regs.Size) {
	suf := w.Suffix()
	ax, cl := reg(regs.AX, w), reg(regs.CX, regs.Byte)
	putBinary(t, w, token.LSHIFT, lines1("sal"+suf+" "+cl+", "+ax))
	putBinary(t, w, token.RSHIFT, lines1("sar"+suf+" "+cl+", "+ax))
}

func registerBitwise(t *Tables, w regs.Size) {
	suf := w.Suffix()
	ax, cx := reg(regs.AX, w), reg(regs.CX, w)
	putBinary(t, w, token.AMP, lines1("and"+suf+" "+cx+", "+ax))
	putBinary(t, w, token.PIPE, lines1("or"+suf+" "+cx+", "+ax))
	putBinary(t, w, token.CARET, lines1("xor"+suf+" "+cx+", "+ax))
}

func registerUnary(t *Tables, w regs.Size) {
	suf := w.Suffix()
	ax := reg(regs.AX, w)
	result := primitiveOf(w)

	put := func(op token.Kind, asm ...string) {
		k := UnaryKey{Operand: result.Key(), Op: op}
		_, exists := t.Unary[k]
		utils.Assert(!exists, "optable: duplicate unary key %+v", k)
		t.Unary[k] = UnaryEntry{Result: result, Emit: asm}
	}

	put(token.MINUS, "neg"+suf+" "+ax)
	put(token.TILDE, "not"+suf+" "+ax)
	put(token.BANG, "cmp"+suf+" $0, "+ax, "movl $0, "+reg(regs.AX, regs.Dword), "sete "+reg(regs.AX, regs.Byte))
	put(token.INC, "add"+suf+" $1, "+ax)
	put(token.DEC, "sub"+suf+" $1, "+ax)
}

func registerAssign(t *Tables, w regs.Size) {
	suf := w.Suffix()
	addr := "(" + reg(regs.AX, regs.Qword) + ")"
	rhs := reg(regs.CX, w)
	ax := reg(regs.AX, w)
	result := primitiveOf(w)

	put := func(op token.Kind, asm ...string) {
		k := AssignKey{Left: result.AsLvalue().Key(), Op: op, Right: result.Key()}
		_, exists := t.Assign[k]
		utils.Assert(!exists, "optable: duplicate assign key %+v", k)
		t.Assign[k] = AssignEntry{Result: result, Emit: asm}
	}

	put(token.ASSIGN, "mov"+suf+" "+rhs+", "+addr, "mov"+suf+" "+rhs+", "+ax)
	put(token.PLUS_EQ, "add"+suf+" "+rhs+", "+addr, "mov"+suf+" "+addr+", "+ax)
	put(token.MINUS_EQ, "sub"+suf+" "+rhs+", "+addr, "mov"+suf+" "+addr+", "+ax)
	put(token.AMP_EQ, "and"+suf+" "+rhs+", "+addr, "mov"+suf+" "+addr+", "+ax)
	put(token.PIPE_EQ, "or"+suf+" "+rhs+", "+addr, "mov"+suf+" "+addr+", "+ax)
	put(token.CARET_EQ, "xor"+suf+" "+rhs+", "+addr, "mov"+suf+" "+addr+", "+ax)
	put(token.LSHIFT_EQ, "sal"+suf+" "+reg(regs.CX, regs.Byte)+", "+addr, "mov"+suf+" "+addr+", "+ax)
	put(token.RSHIFT_EQ, "sar"+suf+" "+reg(regs.CX, regs.Byte)+", "+addr, "mov"+suf+" "+addr+", "+ax)

	scratch := reg(regs.R9, regs.Qword)
	scratchAddr := "(" + scratch + ")"
	put(token.STAR_EQ,
		"movq "+reg(regs.AX, regs.Qword)+", "+scratch,
		"mov"+suf+" "+scratchAddr+", "+ax,
		"imul"+suf+" "+rhs+", "+ax,
		"mov"+suf+" "+ax+", "+scratchAddr,
	)

	signExtend := signExtendMnemonic(w)
	put(token.SLASH_EQ,
		"movq "+reg(regs.AX, regs.Qword)+", "+scratch,
		"mov"+suf+" "+scratchAddr+", "+ax,
		signExtend,
		"idiv"+suf+" "+rhs,
		"mov"+suf+" "+ax+", "+scratchAddr,
	)
	put(token.PERCENT_EQ,
		"movq "+reg(regs.AX, regs.Qword)+", "+scratch,
		"mov"+suf+" "+scratchAddr+", "+ax,
		signExtend,
		"idiv"+suf+" "+rhs,
		modMoveInstruction(w),
		"mov"+suf+" "+ax+", "+scratchAddr,
	)
}

// registerPointerArithmetic registers pointer+integer and
// pointer-integer as entries whose result is "the left operand's
// pointer type". Only the pointer-on-the-left form is registered:
// integer+pointer has no entry and misses the table. Every integer
// width may be added to or subtracted from a pointer; the scale factor
// is the pointee's byte size, which optable cannot know until codegen
// supplies it.
func registerPointerArithmetic(t *Tables) {
	lo.ForEach(widths, func(w regs.Size, _ int) {
		intOperand := primitiveOf(w)
		ax, cx := reg(regs.AX, regs.Qword), reg(regs.CX, w)
		cxq := reg(regs.CX, regs.Qword)

		scaleAndAdd := func(pointeeSize int) []string {
			return []string{
				"movslq " + cx + ", " + cxq,
				fmt.Sprintf("imulq $%d, %s", pointeeSize, cxq),
				"addq " + cxq + ", " + ax,
			}
		}
		scaleAndSub := func(pointeeSize int) []string {
			return []string{
				"movslq " + cx + ", " + cxq,
				fmt.Sprintf("imulq $%d, %s", pointeeSize, cxq),
				"subq " + cxq + ", " + ax,
			}
		}

		// pointer (left, %rax) + integer (right, %rcx).
		// Pointee identity (struct id vs primitive id) doesn't affect the
		// instruction sequence, only the scale factor codegen supplies, so
		// entries are keyed on pointer-ness via Pointers>=1 against every
		// primitive id 1..4 (struct-pointer arithmetic is out of scope,
		// per spec's pointer-arithmetic examples being over primitive
		// pointees) and registered for one level of indirection, the only
		// level function parameters and locals in this language use.
		for ptrID := types.CharID; ptrID <= types.LongID; ptrID++ {
			ptrKey := types.Key{ID: ptrID, Pointers: 1, Lvalue: false}
			t.Binary[BinaryKey{Left: ptrKey, Op: token.PLUS, Right: intOperand.Key()}] = BinaryEntry{ResultFromLeft: true, Emit: scaleAndAdd}
			t.Binary[BinaryKey{Left: ptrKey, Op: token.MINUS, Right: intOperand.Key()}] = BinaryEntry{ResultFromLeft: true, Emit: scaleAndSub}
		}
	})
}

// registerPointerAssign registers `ptr += n` / `ptr -= n` the same way
// compound assignment is registered for primitives: %rax holds the
// destination address, %rcx holds the integer operand. It also
// registers plain `ptr = ptr` as a quadword store, spec.md §4.1's
// "reference assignment" entry — without it, `p = &a;` misses the
// table and is silently dropped as an unregistered operator triple.
func registerPointerAssign(t *Tables) {
	lo.ForEach(widths, func(w regs.Size, _ int) {
		intOperand := primitiveOf(w)
		cx, cxq := reg(regs.CX, w), reg(regs.CX, regs.Qword)
		scratch := reg(regs.R9, regs.Qword)
		scratchAddr := "(" + scratch + ")"
		rax := reg(regs.AX, regs.Qword)

		emit := func(op string) []string {
			return []string{
				"movq " + rax + ", " + scratch,
				"movq " + scratchAddr + ", " + rax,
				"movslq " + cx + ", " + cxq,
				op + "q " + cxq + ", " + rax,
				"movq " + rax + ", " + scratchAddr,
			}
		}
		for ptrID := types.CharID; ptrID <= types.LongID; ptrID++ {
			ptrKey := types.Key{ID: ptrID, Pointers: 1, Lvalue: true}
			result := types.DataType{ID: ptrID, Pointers: 1, Size: 8, Lvalue: false}
			t.Assign[AssignKey{Left: ptrKey, Op: token.PLUS_EQ, Right: intOperand.Key()}] = AssignEntry{Result: result, Emit: emit("add")}
			t.Assign[AssignKey{Left: ptrKey, Op: token.MINUS_EQ, Right: intOperand.Key()}] = AssignEntry{Result: result, Emit: emit("sub")}
		}
	})

	for ptrID := types.CharID; ptrID <= types.LongID; ptrID++ {
		ptrKey := types.Key{ID: ptrID, Pointers: 1, Lvalue: true}
		rhsKey := types.Key{ID: ptrID, Pointers: 1, Lvalue: false}
		result := types.DataType{ID: ptrID, Pointers: 1, Size: 8, Lvalue: false}
		t.Assign[AssignKey{Left: ptrKey, Op: token.ASSIGN, Right: rhsKey}] = AssignEntry{
			Result: result,
			Emit:   []string{"movq %rcx, (%rax)", "movq %rcx, %rax"},
		}
	}
}

func lines1(lines ...string) func(int) []string {
	return func(int) []string { return append([]string(nil), lines...) }
}
