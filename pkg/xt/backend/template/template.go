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
	"fmt"
	"strings"

	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/pkg/errors"
)

// Generate a listing for a complete program.  Each top-level node is followed
// by a newline.
func Generate(program ast.Program) (string, error) {
	var (
		builder strings.Builder
		visitor = NewVisitor()
	)
	//
	for _, node := range program.Nodes() {
		builder.WriteString(node.Compile(visitor))
		builder.WriteString("\n")
	}
	//
	if visitor.err != nil {
		return "", visitor.err
	}
	//
	return builder.String(), nil
}

// Visitor is the reference code generator.  It emits a two-operand assembly
// listing, in which control flow is lowered into compares and conditional
// jumps between synthesised labels of the form ".L<n>".  Variables are
// referenced as memory operands "[name]".
type Visitor struct {
	// Number of labels allocated so far.
	labels int
	// Exit labels of the enclosing loops, innermost last.
	exits []string
	// First error encountered, if any.
	err error
}

var _ ast.Visitor = &Visitor{}

// NewVisitor constructs a visitor with no labels allocated.
func NewVisitor() *Visitor {
	return &Visitor{}
}

// CompileData emits the data section.
func (p *Visitor) CompileData(variables []ast.Instr) string {
	return lines(".data", p.block(variables))
}

// CompileCode emits the code section.
func (p *Visitor) CompileCode(instructions []ast.Instr) string {
	return lines(".code", p.block(instructions))
}

// CompileLabel emits a jump target.
func (p *Visitor) CompileLabel(name string) string {
	return name + ":"
}

// CompileExit emits an exit.
func (p *Visitor) CompileExit(value string) string {
	return insn("exit %s", value)
}

// CompileAdd emits an addition.
func (p *Visitor) CompileAdd(dst string, src string) string {
	return insn("add %s, %s", dst, src)
}

// CompileSub emits a subtraction.
func (p *Visitor) CompileSub(dst string, src string) string {
	return insn("sub %s, %s", dst, src)
}

// CompileMov emits a move.
func (p *Visitor) CompileMov(dst string, src string) string {
	return insn("mov %s, %s", dst, src)
}

// CompileJmp emits an unconditional jump.
func (p *Visitor) CompileJmp(target string) string {
	return insn("jmp %s", target)
}

// CompileBreak emits a jump to the exit of the innermost loop.
func (p *Visitor) CompileBreak() string {
	if len(p.exits) == 0 {
		p.fail(errors.New("break outside of loop"))
		return ""
	}
	//
	return insn("jmp %s", p.exits[len(p.exits)-1])
}

// CompileEnum emits each member as a named constant.
func (p *Visitor) CompileEnum(name string, values []*ast.Var) string {
	var members []string
	//
	for _, v := range values {
		members = append(members, insn(".equ %s, %s", v.Name, v.Value))
	}
	//
	return lines(members...)
}

// CompileVar emits either a declaration or a memory operand.
func (p *Visitor) CompileVar(name string, value string, isDecl bool) string {
	switch {
	case !isDecl:
		return "[" + name + "]"
	case value == "":
		return insn("%s: .zero", name)
	default:
		return insn("%s: .word %s", name, value)
	}
}

// CompileCond emits the comparison of a condition.  The jump which follows it
// depends upon the context.
func (p *Visitor) CompileCond(op ast.CondOp, lhs string, rhs string) string {
	return insn("cmp %s, %s", lhs, rhs)
}

// CompileIf emits the conditions, falling through into the if body or jumping
// to the else body.
func (p *Visitor) CompileIf(conds []*ast.Cond, ops []ast.BoolOp, ifBody []ast.Instr, elseBody []ast.Instr) string {
	var (
		end     = p.label()
		elseLab = end
	)
	//
	if len(elseBody) > 0 {
		elseLab = p.label()
	}
	//
	code := []string{p.branchFalse(p.chain(conds, ops), elseLab), p.block(ifBody)}
	//
	if len(elseBody) > 0 {
		code = append(code, insn("jmp %s", end), elseLab+":", p.block(elseBody))
	}
	//
	return lines(append(code, end+":")...)
}

// CompileWhile emits a loop which tests its conditions on every iteration.
func (p *Visitor) CompileWhile(conds []*ast.Cond, ops []ast.BoolOp, body []ast.Instr) string {
	top, end := p.label(), p.label()
	//
	return lines(
		top+":",
		p.branchFalse(p.chain(conds, ops), end),
		p.loopBody(end, body),
		insn("jmp %s", top),
		end+":",
	)
}

// CompileFor emits a loop which runs while left < right, adding the increment
// to left after every iteration.
func (p *Visitor) CompileFor(left ast.Instr, right ast.Instr, increment ast.Instr, body []ast.Instr) string {
	var (
		top, end = p.label(), p.label()
		counter  = left.Compile(p)
	)
	//
	return lines(
		top+":",
		insn("cmp %s, %s", counter, right.Compile(p)),
		insn("jge %s", end),
		p.loopBody(end, body),
		insn("add %s, %s", counter, increment.Compile(p)),
		insn("jmp %s", top),
		end+":",
	)
}

// CompileLoop emits an unconditional loop, which only a break can leave.
func (p *Visitor) CompileLoop(body []ast.Instr) string {
	top, end := p.label(), p.label()
	//
	return lines(
		top+":",
		p.loopBody(end, body),
		insn("jmp %s", top),
		end+":",
	)
}

// ============================================================================
// Conditions
// ============================================================================

// A tree of conditions, where connectives associate to the left.
type condition struct {
	// Set for leaves only
	leaf *ast.Cond
	op   ast.BoolOp
	lhs  *condition
	rhs  *condition
}

// Build the condition tree, or nil if the connectives do not fit the
// conditions.
func (p *Visitor) chain(conds []*ast.Cond, ops []ast.BoolOp) *condition {
	if len(conds) == 0 || len(ops) != len(conds)-1 {
		p.fail(errors.Errorf("malformed condition (%d comparisons, %d connectives)", len(conds), len(ops)))
		return nil
	}
	//
	tree := &condition{leaf: conds[0]}
	//
	for i, op := range ops {
		tree = &condition{op: op, lhs: tree, rhs: &condition{leaf: conds[i+1]}}
	}
	//
	return tree
}

// Jump to target if the condition does not hold, otherwise fall through.
func (p *Visitor) branchFalse(c *condition, target string) string {
	switch {
	case c == nil:
		return ""
	case c.leaf != nil:
		return lines(c.leaf.Compile(p), insn("%s %s", jump(c.leaf.Op.Negate()), target))
	case c.op == ast.BAND:
		return lines(p.branchFalse(c.lhs, target), p.branchFalse(c.rhs, target))
	default:
		pass := p.label()
		return lines(p.branchTrue(c.lhs, pass), p.branchFalse(c.rhs, target), pass+":")
	}
}

// Jump to target if the condition holds, otherwise fall through.
func (p *Visitor) branchTrue(c *condition, target string) string {
	switch {
	case c.leaf != nil:
		return lines(c.leaf.Compile(p), insn("%s %s", jump(c.leaf.Op), target))
	case c.op == ast.BOR:
		return lines(p.branchTrue(c.lhs, target), p.branchTrue(c.rhs, target))
	default:
		fail := p.label()
		return lines(p.branchFalse(c.lhs, fail), p.branchTrue(c.rhs, target), fail+":")
	}
}

func jump(op ast.CondOp) string {
	switch op {
	case ast.EQU:
		return "je"
	case ast.NEQU:
		return "jne"
	case ast.LTH:
		return "jl"
	case ast.LTE:
		return "jle"
	case ast.GT:
		return "jg"
	default:
		return "jge"
	}
}

// ============================================================================
// Helpers
// ============================================================================

// Compile a loop body, within which break exits to the given label.
func (p *Visitor) loopBody(exit string, body []ast.Instr) string {
	p.exits = append(p.exits, exit)
	code := p.block(body)
	p.exits = p.exits[:len(p.exits)-1]
	//
	return code
}

func (p *Visitor) block(body []ast.Instr) string {
	var code []string
	//
	for _, node := range body {
		code = append(code, node.Compile(p))
	}
	//
	return lines(code...)
}

func (p *Visitor) label() string {
	p.labels++
	return fmt.Sprintf(".L%d", p.labels)
}

func (p *Visitor) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Join lines of code, skipping any which are empty.
func lines(code ...string) string {
	var nonempty []string
	//
	for _, line := range code {
		if line != "" {
			nonempty = append(nonempty, line)
		}
	}
	//
	return strings.Join(nonempty, "\n")
}

func insn(format string, args ...any) string {
	return "  " + fmt.Sprintf(format, args...)
}
