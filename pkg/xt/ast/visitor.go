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

// Visitor generates target code, with one operation per kind of node.  Simple
// nodes compile their operands first (left to right) and pass the results.
// Sections, enumerations and control constructs instead pass their children
// untouched, leaving the visitor to decide when (and how often) to descend.
// Txt never reaches the visitor.
type Visitor interface {
	CompileData(variables []Instr) string
	CompileCode(instructions []Instr) string
	CompileLabel(name string) string
	CompileExit(value string) string
	CompileAdd(dst string, src string) string
	CompileSub(dst string, src string) string
	CompileMov(dst string, src string) string
	CompileJmp(target string) string
	CompileBreak() string
	CompileEnum(name string, values []*Var) string
	CompileWhile(conditions []*Cond, ops []BoolOp, body []Instr) string
	CompileFor(left Instr, right Instr, increment Instr, body []Instr) string
	CompileLoop(body []Instr) string
	CompileIf(conditions []*Cond, ops []BoolOp, ifBody []Instr, elseBody []Instr) string
	CompileCond(op CondOp, lhs string, rhs string) string
	CompileVar(name string, value string, isDecl bool) string
}

// NopVisitor generates nothing for every node.  Embedding it allows a visitor
// to implement only those operations its target needs.
type NopVisitor struct{}

var _ Visitor = NopVisitor{}

// CompileData returns "".
func (NopVisitor) CompileData([]Instr) string { return "" }

// CompileCode returns "".
func (NopVisitor) CompileCode([]Instr) string { return "" }

// CompileLabel returns "".
func (NopVisitor) CompileLabel(string) string { return "" }

// CompileExit returns "".
func (NopVisitor) CompileExit(string) string { return "" }

// CompileAdd returns "".
func (NopVisitor) CompileAdd(string, string) string { return "" }

// CompileSub returns "".
func (NopVisitor) CompileSub(string, string) string { return "" }

// CompileMov returns "".
func (NopVisitor) CompileMov(string, string) string { return "" }

// CompileJmp returns "".
func (NopVisitor) CompileJmp(string) string { return "" }

// CompileBreak returns "".
func (NopVisitor) CompileBreak() string { return "" }

// CompileEnum returns "".
func (NopVisitor) CompileEnum(string, []*Var) string { return "" }

// CompileWhile returns "".
func (NopVisitor) CompileWhile([]*Cond, []BoolOp, []Instr) string { return "" }

// CompileFor returns "".
func (NopVisitor) CompileFor(Instr, Instr, Instr, []Instr) string { return "" }

// CompileLoop returns "".
func (NopVisitor) CompileLoop([]Instr) string { return "" }

// CompileIf returns "".
func (NopVisitor) CompileIf([]*Cond, []BoolOp, []Instr, []Instr) string { return "" }

// CompileCond returns "".
func (NopVisitor) CompileCond(CondOp, string, string) string { return "" }

// CompileVar returns "".
func (NopVisitor) CompileVar(string, string, bool) string { return "" }
