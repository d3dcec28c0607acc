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

// Package compiler wires the lexer, parser and code generator into the
// single entry point the CLI driver calls. Grounded on
// y1yang0-falcon's compile/compiler.go, which strings its own
// lex -> parse -> codegen stages together behind one Compile-shaped
// function and a set of Debug* switches; this version replaces the
// teacher's ad hoc fmt.Printf diagnostics with structured zap logging,
// per SPEC_FULL.md's ambient stack.
package compiler

import (
	"fmt"

	"go.uber.org/zap"

	"wincc/internal/ast"
	"wincc/internal/codegen"
	"wincc/internal/lexer"
	"wincc/internal/parser"
	"wincc/internal/types"
)

// Result is what a successful compile produces: the generated
// assembly text and the parsed program, kept around so a verbose
// driver can print the AST without re-parsing.
type Result struct {
	Assembly string
	Program  *ast.Program
}

// Compile runs the full pipeline over source. The only error it can
// return wraps a *parser.SyntaxError (spec.md §7's one fatal error kind);
// every other irregularity — an unresolved name, an operator triple the
// table doesn't cover, a break outside a loop — is a silent semantic
// miss the generator logs at debug level and otherwise ignores.
func Compile(source string, log *zap.SugaredLogger) (*Result, error) {
	log.Debug("tokenizing source")
	tokens := lexer.Tokenize(source)

	structs := types.NewRegistry()
	p := parser.New(tokens, structs)

	log.Debug("parsing token stream")
	prog, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("wincc: %w", err)
	}

	log.Debugw("parsed program", "functions", len(prog.Functions), "structs", len(prog.Structs))

	gen := codegen.New(structs)
	gen.SetLogger(log)
	asm := gen.Generate(prog)

	return &Result{Assembly: asm, Program: prog}, nil
}
