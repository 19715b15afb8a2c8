// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package template

import (
	"strings"
	"testing"

	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/consensys/go-xt/pkg/xt/diag"
	"github.com/consensys/go-xt/pkg/xt/lexer"
	"github.com/consensys/go-xt/pkg/xt/parser"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Empty(t *testing.T) {
	checkGenerate(t, "", ".data", ".code")
}

func TestTemplate_Sections(t *testing.T) {
	checkGenerate(t, "#data\n.x 5\n.y ?\nenum e a b 5 end\n#code\n:top\nadd .x 1\nmov $r .y\nsub $r 2\njmp :top\nexit .x",
		".data",
		"  x: .word 5",
		"  y: .zero",
		"  .equ e.a, 0",
		"  .equ e.b, 5",
		".code",
		"top:",
		"  add [x], 1",
		"  mov r, [y]",
		"  sub r, 2",
		"  jmp top",
		"  exit [x]")
}

func TestTemplate_IfElse(t *testing.T) {
	checkCode(t, "if $a == 1 in exit 0 else exit 1 end",
		"  cmp a, 1",
		"  jne .L2",
		"  exit 0",
		"  jmp .L1",
		".L2:",
		"  exit 1",
		".L1:")
}

func TestTemplate_If(t *testing.T) {
	checkCode(t, "if $a == 1 && .x < 2 in exit 0 end",
		"  cmp a, 1",
		"  jne .L1",
		"  cmp [x], 2",
		"  jge .L1",
		"  exit 0",
		".L1:")
}

func TestTemplate_Or(t *testing.T) {
	checkCode(t, "if $a == 1 || $b != 2 in exit 0 end",
		"  cmp a, 1",
		"  je .L2",
		"  cmp b, 2",
		"  je .L1",
		".L2:",
		"  exit 0",
		".L1:")
}

// Connectives associate to the left, so this is (a || b) && c.
func TestTemplate_LeftAssociative(t *testing.T) {
	checkCode(t, "if $a > 1 || $b <= 2 && $c >= 3 in exit 0 end",
		"  cmp a, 1",
		"  jg .L2",
		"  cmp b, 2",
		"  jg .L1",
		".L2:",
		"  cmp c, 3",
		"  jl .L1",
		"  exit 0",
		".L1:")
}

func TestTemplate_AndWithinOr(t *testing.T) {
	// (a && b) || c
	checkCode(t, "while $a == 1 && $b == 2 || $c == 3 in break end",
		".L1:",
		"  cmp a, 1",
		"  jne .L4",
		"  cmp b, 2",
		"  je .L3",
		".L4:",
		"  cmp c, 3",
		"  jne .L2",
		".L3:",
		"  jmp .L2",
		"  jmp .L1",
		".L2:")
}

func TestTemplate_While(t *testing.T) {
	checkCode(t, "while .x > 0 in sub .x 1 end",
		".L1:",
		"  cmp [x], 0",
		"  jle .L2",
		"  sub [x], 1",
		"  jmp .L1",
		".L2:")
}

func TestTemplate_For(t *testing.T) {
	checkCode(t, "for $i;10;1 in add $r $i end",
		".L1:",
		"  cmp i, 10",
		"  jge .L2",
		"  add r, i",
		"  add i, 1",
		"  jmp .L1",
		".L2:")
}

func TestTemplate_NestedBreak(t *testing.T) {
	checkCode(t, "loop loop break end if $a == 0 in break end end",
		".L1:",
		".L3:",
		"  jmp .L4",
		"  jmp .L3",
		".L4:",
		"  cmp a, 0",
		"  jne .L5",
		"  jmp .L2",
		".L5:",
		"  jmp .L1",
		".L2:")
}

func TestTemplate_BreakOutsideLoop(t *testing.T) {
	_, err := Generate(checkParse(t, "#code\nif $a == 0 in break end"))
	require.EqualError(t, err, "break outside of loop")
}

func TestTemplate_MalformedCondition(t *testing.T) {
	program := ast.NewProgram(&ast.Data{}, &ast.Code{Instructions: []ast.Instr{&ast.While{}}})
	//
	_, err := Generate(program)
	require.EqualError(t, err, "malformed condition (0 comparisons, 0 connectives)")
}

// Labels restart for each program.
func TestTemplate_Fresh(t *testing.T) {
	program := checkParse(t, "#code\nloop break end")
	//
	first, err := Generate(program)
	require.NoError(t, err)
	second, err := Generate(program)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// ============================================================================
// Helpers
// ============================================================================

func checkParse(t *testing.T, input string) ast.Program {
	t.Helper()
	//
	tokens, err := lexer.New(diag.Discard).Lex(source.NewSourceFile("test.xt", []byte(input)))
	require.NoError(t, err)
	program, err := parser.New(diag.Discard).ParseTokens(tokens)
	require.NoError(t, err)
	//
	return program
}

func checkGenerate(t *testing.T, input string, expected ...string) {
	t.Helper()
	//
	output, err := Generate(checkParse(t, input))
	require.NoError(t, err)
	require.Equal(t, strings.Join(expected, "\n")+"\n", output)
}

// Check the generated code for a code section, without any data.
func checkCode(t *testing.T, input string, expected ...string) {
	t.Helper()
	//
	checkGenerate(t, "#code\n"+input, append([]string{".data", ".code"}, expected...)...)
}
