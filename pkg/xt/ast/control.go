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

// CondOp identifies the comparison made by a condition.
type CondOp uint8

const (
	// EQU is "=="
	EQU CondOp = iota
	// NEQU is "!="
	NEQU
	// LTH is "<"
	LTH
	// LTE is "<="
	LTE
	// GT is ">"
	GT
	// GTE is ">="
	GTE
)

var condOpText = [...]string{EQU: "==", NEQU: "!=", LTH: "<", LTE: "<=", GT: ">", GTE: ">="}

func (op CondOp) String() string {
	if int(op) < len(condOpText) {
		return condOpText[op]
	}
	//
	return fmt.Sprintf("CondOp(%d)", uint8(op))
}

// Negate returns the comparison which holds exactly when this one does not.
func (op CondOp) Negate() CondOp {
	switch op {
	case EQU:
		return NEQU
	case NEQU:
		return EQU
	case LTH:
		return GTE
	case LTE:
		return GT
	case GT:
		return LTE
	default:
		return LTH
	}
}

// BoolOp identifies the connective between two consecutive conditions.
type BoolOp uint8

const (
	// BAND is "&&"
	BAND BoolOp = iota
	// BOR is "||"
	BOR
)

func (op BoolOp) String() string {
	switch op {
	case BAND:
		return "&&"
	case BOR:
		return "||"
	default:
		return fmt.Sprintf("BoolOp(%d)", uint8(op))
	}
}

// Cond compares two operands.  At least one of them is a variable or register.
type Cond struct {
	Op  CondOp
	Lhs Instr
	Rhs Instr
}

// Compile a condition.
func (p *Cond) Compile(v Visitor) string {
	lhs := p.Lhs.Compile(v)
	rhs := p.Rhs.Compile(v)
	//
	return v.CompileCond(p.Op, lhs, rhs)
}

func (p *Cond) String() string {
	return fmt.Sprintf("%s %s %s", p.Lhs.String(), p.Op.String(), p.Rhs.String())
}

// If executes IfBody when its conditions hold, otherwise ElseBody.  An else-if
// chain is represented by an ElseBody holding exactly one If.  There is always
// one fewer BoolOp than Conditions.
type If struct {
	Conditions []*Cond
	BoolOps    []BoolOp
	IfBody     []Instr
	ElseBody   []Instr
}

// Compile hands the raw conditions and bodies to the visitor.
func (p *If) Compile(v Visitor) string {
	return v.CompileIf(p.Conditions, p.BoolOps, p.IfBody, p.ElseBody)
}

// ElseIf returns the nested conditional when this is an else-if chain, or nil
// otherwise.
func (p *If) ElseIf() *If {
	if len(p.ElseBody) == 1 {
		if nested, ok := p.ElseBody[0].(*If); ok {
			return nested
		}
	}
	//
	return nil
}

func (p *If) String() string {
	var builder strings.Builder
	//
	builder.WriteString("if ")
	builder.WriteString(conditionsString(p.Conditions, p.BoolOps))
	builder.WriteString(" in")
	writeBody(&builder, p.IfBody)
	//
	if nested := p.ElseIf(); nested != nil {
		builder.WriteString("\nelse ")
		builder.WriteString(nested.String())
		//
		return builder.String()
	} else if len(p.ElseBody) > 0 {
		builder.WriteString("\nelse")
		writeBody(&builder, p.ElseBody)
	}
	//
	builder.WriteString("\nend")
	//
	return builder.String()
}

// While repeats its body for as long as its conditions hold.  There is always
// one fewer BoolOp than Conditions.
type While struct {
	Conditions []*Cond
	BoolOps    []BoolOp
	Body       []Instr
}

// Compile hands the raw conditions and body to the visitor.
func (p *While) Compile(v Visitor) string {
	return v.CompileWhile(p.Conditions, p.BoolOps, p.Body)
}

func (p *While) String() string {
	var builder strings.Builder
	//
	builder.WriteString("while ")
	builder.WriteString(conditionsString(p.Conditions, p.BoolOps))
	builder.WriteString(" in")
	writeBody(&builder, p.Body)
	builder.WriteString("\nend")
	//
	return builder.String()
}

// For counts RangeLeft up towards RangeRight, in steps of Increment.
type For struct {
	RangeLeft  Instr
	RangeRight Instr
	Increment  Instr
	Body       []Instr
}

// Compile hands the raw operands and body to the visitor.
func (p *For) Compile(v Visitor) string {
	return v.CompileFor(p.RangeLeft, p.RangeRight, p.Increment, p.Body)
}

func (p *For) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("for %s;%s;%s in", p.RangeLeft.String(), p.RangeRight.String(),
		p.Increment.String()))
	writeBody(&builder, p.Body)
	builder.WriteString("\nend")
	//
	return builder.String()
}

// Loop repeats its body until a break.
type Loop struct {
	Body []Instr
}

// Compile hands the raw body to the visitor.
func (p *Loop) Compile(v Visitor) string {
	return v.CompileLoop(p.Body)
}

func (p *Loop) String() string {
	var builder strings.Builder
	//
	builder.WriteString("loop")
	writeBody(&builder, p.Body)
	builder.WriteString("\nend")
	//
	return builder.String()
}

func (*Cond) instr()  {}
func (*If) instr()    {}
func (*While) instr() {}
func (*For) instr()   {}
func (*Loop) instr()  {}

func conditionsString(conds []*Cond, ops []BoolOp) string {
	var builder strings.Builder
	//
	for i, c := range conds {
		if i > 0 {
			builder.WriteString(fmt.Sprintf(" %s ", ops[i-1].String()))
		}
		//
		builder.WriteString(c.String())
	}
	//
	return builder.String()
}

// Write each instruction of a body on its own line(s), indented by two spaces.
func writeBody(builder *strings.Builder, body []Instr) {
	for _, insn := range body {
		for _, line := range strings.Split(insn.String(), "\n") {
			builder.WriteString("\n  ")
			builder.WriteString(line)
		}
	}
}
