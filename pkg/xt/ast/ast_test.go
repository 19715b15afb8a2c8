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
package ast

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Records the order in which the visitor is invoked.
type traceVisitor struct {
	NopVisitor
	trace []string
}

func (p *traceVisitor) CompileCode(instructions []Instr) string {
	var results []string
	//
	for _, insn := range instructions {
		results = append(results, insn.Compile(p))
	}
	//
	return strings.Join(results, ";")
}

func (p *traceVisitor) CompileAdd(dst string, src string) string {
	p.trace = append(p.trace, "add")
	return fmt.Sprintf("(%s+=%s)", dst, src)
}

func (p *traceVisitor) CompileVar(name string, value string, isDecl bool) string {
	p.trace = append(p.trace, "var "+name)
	return name
}

func (p *traceVisitor) CompileExit(value string) string {
	p.trace = append(p.trace, "exit")
	return "exit(" + value + ")"
}

func (p *traceVisitor) CompileLoop(body []Instr) string {
	p.trace = append(p.trace, "loop")
	// descend twice, which simple nodes could not do
	return p.CompileCode(body) + "|" + p.CompileCode(body)
}

func TestCompile_PostOrder(t *testing.T) {
	var (
		v    traceVisitor
		code = &Code{[]Instr{
			&Add{&Var{"x", "", false}, &Var{"y", "", false}},
			&Exit{NewLiteral("0")},
		}}
	)
	//
	require.Equal(t, "(x+=y);exit(0)", code.Compile(&v))
	require.Equal(t, []string{"var x", "var y", "add", "exit"}, v.trace)
}

func TestCompile_ControlDefersToVisitor(t *testing.T) {
	var (
		v    traceVisitor
		loop = &Loop{[]Instr{&Exit{NewReg("a")}}}
	)
	//
	require.Equal(t, "exit(a)|exit(a)", loop.Compile(&v))
	require.Equal(t, []string{"loop", "exit", "exit"}, v.trace)
}

func TestCompile_Txt(t *testing.T) {
	// Txt never consults the visitor
	require.Equal(t, "r1", NewReg("r1").Compile(nil))
}

func TestCompile_NopVisitor(t *testing.T) {
	var v NopVisitor
	//
	for _, node := range sampleProgram().Nodes() {
		require.Equal(t, "", node.Compile(v))
	}
	//
	require.Equal(t, "", (&If{IfBody: []Instr{&Break{}}}).Compile(v))
	require.Equal(t, "", (&Cond{EQU, NewReg("a"), NewLiteral("1")}).Compile(v))
}

func TestCondOp_Negate(t *testing.T) {
	for _, op := range []CondOp{EQU, NEQU, LTH, LTE, GT, GTE} {
		require.NotEqual(t, op, op.Negate())
		require.Equal(t, op, op.Negate().Negate())
	}
}

func TestProgram_Nodes(t *testing.T) {
	p := sampleProgram()
	nodes := p.Nodes()
	//
	require.Len(t, nodes, 2)
	require.Same(t, p.Data, nodes[0])
	require.Same(t, p.Code, nodes[1])
	require.False(t, p.IsEmpty())
	require.True(t, Program{}.IsEmpty())
}

// A program which has been handed off still renders, as empty sections.
func TestProgram_Empty(t *testing.T) {
	nodes := Program{}.Nodes()
	//
	require.Equal(t, []Instr{&Data{}, &Code{}}, nodes)
	require.Equal(t, "#data\n#code\n", Program{}.String())
}

// Registers and literals are distinguished by kind, not by their text.
func TestTxt_String(t *testing.T) {
	require.Equal(t, "$0", NewReg("0").String())
	require.Equal(t, "0", NewLiteral("0").String())
	require.Equal(t, "$r", NewReg("r").String())
	require.Equal(t, "0", NewReg("0").Compile(nil))
}

func TestProgram_String(t *testing.T) {
	expected := `#data
.x 5
.y ?
enum e a 0 b 5 c 6 end
#code
:top
if $a == 1 && .x < 2 in
  exit 0
else if $b != .y in
  loop
    break
  end
else
  jmp :top
end
while .x >= 0 in
  sub .x 1
end
for .i;10;1 in
  add $r .i
  mov $s $r
end
exit .x
`
	require.Equal(t, expected, sampleProgram().String())
}

func TestEnumVar_Member(t *testing.T) {
	enum := &EnumVar{"e.f", []*Var{{"e.f.a", "0", true}}}
	require.Equal(t, "a", enum.Member(0))
}

func sampleProgram() Program {
	data := &Data{[]Instr{
		&Var{"x", "5", true},
		&Var{"y", "", true},
		&EnumVar{"e", []*Var{{"e.a", "0", true}, {"e.b", "5", true}, {"e.c", "6", true}}},
	}}
	elseIf := &If{
		Conditions: []*Cond{{NEQU, NewReg("b"), &Var{"y", "", false}}},
		IfBody:     []Instr{&Loop{[]Instr{&Break{}}}},
		ElseBody:   []Instr{&Jmp{"top"}},
	}
	code := &Code{[]Instr{
		&Label{"top"},
		&If{
			Conditions: []*Cond{{EQU, NewReg("a"), NewLiteral("1")}, {LTH, &Var{"x", "", false}, NewLiteral("2")}},
			BoolOps:    []BoolOp{BAND},
			IfBody:     []Instr{&Exit{NewLiteral("0")}},
			ElseBody:   []Instr{elseIf},
		},
		&While{
			Conditions: []*Cond{{GTE, &Var{"x", "", false}, NewLiteral("0")}},
			Body:       []Instr{&Sub{&Var{"x", "", false}, NewLiteral("1")}},
		},
		&For{&Var{"i", "", false}, NewLiteral("10"), NewLiteral("1"), []Instr{
			&Add{NewReg("r"), &Var{"i", "", false}},
			&Mov{NewReg("s"), NewReg("r")},
		}},
		&Exit{&Var{"x", "", false}},
	}}
	//
	return NewProgram(data, code)
}
