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
)

// Instr represents any node in the abstract syntax tree of an xt program.  The
// set of implementations is closed: only the node types of this package
// implement it.  Every node exclusively owns its children.
type Instr interface {
	fmt.Stringer
	// Compile this node against a visitor, returning the generated text.
	Compile(v Visitor) string
	// Prevents implementations outside this package.
	instr()
}

// Data is the root of the "#data" section, holding variable declarations and
// enumerations in declaration order.
type Data struct {
	Variables []Instr
}

// Compile hands the raw variables to the visitor.
func (p *Data) Compile(v Visitor) string {
	return v.CompileData(p.Variables)
}

func (p *Data) String() string {
	var builder strings.Builder
	//
	builder.WriteString("#data")
	//
	for _, v := range p.Variables {
		builder.WriteString("\n")
		builder.WriteString(v.String())
	}
	//
	return builder.String()
}

// Code is the root of the "#code" section, holding statements in program
// order.
type Code struct {
	Instructions []Instr
}

// Compile hands the raw instructions to the visitor.
func (p *Code) Compile(v Visitor) string {
	return v.CompileCode(p.Instructions)
}

func (p *Code) String() string {
	var builder strings.Builder
	//
	builder.WriteString("#code")
	//
	for _, insn := range p.Instructions {
		builder.WriteString("\n")
		builder.WriteString(insn.String())
	}
	//
	return builder.String()
}

// Label marks a jump target.  The name excludes the ':' sigil.
type Label struct {
	Name string
}

// Compile a label.
func (p *Label) Compile(v Visitor) string {
	return v.CompileLabel(p.Name)
}

func (p *Label) String() string {
	return ":" + p.Name
}

// Exit terminates the program with a given value.
type Exit struct {
	Value Instr
}

// Compile an exit.
func (p *Exit) Compile(v Visitor) string {
	return v.CompileExit(p.Value.Compile(v))
}

func (p *Exit) String() string {
	return "exit " + p.Value.String()
}

// Add assigns the sum of Dst and Src to Dst.
type Add struct {
	Dst Instr
	Src Instr
}

// Compile an addition.
func (p *Add) Compile(v Visitor) string {
	dst := p.Dst.Compile(v)
	src := p.Src.Compile(v)
	//
	return v.CompileAdd(dst, src)
}

func (p *Add) String() string {
	return fmt.Sprintf("add %s %s", p.Dst.String(), p.Src.String())
}

// Sub assigns the difference of Dst and Src to Dst.
type Sub struct {
	Dst Instr
	Src Instr
}

// Compile a subtraction.
func (p *Sub) Compile(v Visitor) string {
	dst := p.Dst.Compile(v)
	src := p.Src.Compile(v)
	//
	return v.CompileSub(dst, src)
}

func (p *Sub) String() string {
	return fmt.Sprintf("sub %s %s", p.Dst.String(), p.Src.String())
}

// Mov assigns Src to Dst.
type Mov struct {
	Dst Instr
	Src Instr
}

// Compile a move.
func (p *Mov) Compile(v Visitor) string {
	dst := p.Dst.Compile(v)
	src := p.Src.Compile(v)
	//
	return v.CompileMov(dst, src)
}

func (p *Mov) String() string {
	return fmt.Sprintf("mov %s %s", p.Dst.String(), p.Src.String())
}

// Break exits the innermost enclosing loop.
type Break struct{}

// Compile a break.
func (p *Break) Compile(v Visitor) string {
	return v.CompileBreak()
}

func (p *Break) String() string {
	return "break"
}

// Jmp transfers control to a label.  The target excludes the ':' sigil.
type Jmp struct {
	Target string
}

// Compile a jump.
func (p *Jmp) Compile(v Visitor) string {
	return v.CompileJmp(p.Target)
}

func (p *Jmp) String() string {
	return "jmp :" + p.Target
}

// EnumVar declares an enumeration.  Each value is a declared Var whose name is
// qualified by the enumeration's name.
type EnumVar struct {
	Name   string
	Values []*Var
}

// Compile hands the raw members to the visitor.
func (p *EnumVar) Compile(v Visitor) string {
	return v.CompileEnum(p.Name, p.Values)
}

// Member returns the unqualified name of the ith member.
func (p *EnumVar) Member(i int) string {
	return strings.TrimPrefix(p.Values[i].Name, p.Name+".")
}

func (p *EnumVar) String() string {
	var builder strings.Builder
	//
	builder.WriteString("enum ")
	builder.WriteString(p.Name)
	//
	for i, v := range p.Values {
		builder.WriteString(fmt.Sprintf(" %s %s", p.Member(i), v.Value))
	}
	//
	builder.WriteString(" end")
	//
	return builder.String()
}

// Var is either the declaration of a variable (in which case Value holds its
// initialiser, or "" when uninitialised) or a use of one.  The name excludes
// the '.' sigil.
type Var struct {
	Name   string
	Value  string
	IsDecl bool
}

// Compile a variable.
func (p *Var) Compile(v Visitor) string {
	return v.CompileVar(p.Name, p.Value, p.IsDecl)
}

func (p *Var) String() string {
	switch {
	case !p.IsDecl:
		return "." + p.Name
	case p.Value == "":
		return "." + p.Name + " ?"
	default:
		return "." + p.Name + " " + p.Value
	}
}

// Txt is an opaque operand, either a register (whose name excludes the '$'
// sigil) or an integer literal, which compiles to itself.
type Txt struct {
	Value string
	IsReg bool
}

// NewReg constructs a register operand.
func NewReg(name string) *Txt {
	return &Txt{name, true}
}

// NewLiteral constructs an integer literal operand.
func NewLiteral(value string) *Txt {
	return &Txt{value, false}
}

// Compile returns the text as is, without consulting the visitor.
func (p *Txt) Compile(v Visitor) string {
	return p.Value
}

func (p *Txt) String() string {
	if p.IsReg {
		return "$" + p.Value
	}
	//
	return p.Value
}

func (*Data) instr()    {}
func (*Code) instr()    {}
func (*Label) instr()   {}
func (*Exit) instr()    {}
func (*Add) instr()     {}
func (*Sub) instr()     {}
func (*Mov) instr()     {}
func (*Break) instr()   {}
func (*Jmp) instr()     {}
func (*EnumVar) instr() {}
func (*Var) instr()     {}
func (*Txt) instr()     {}
