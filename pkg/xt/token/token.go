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
package token

import (
	"fmt"

	"github.com/consensys/go-xt/pkg/util/source"
)

// Kind identifies the lexical class of a token.
type Kind uint

// INVALID is never produced by the lexer, and marks a zeroed token.
const INVALID Kind = 0

// CODE signals "#code"
const CODE Kind = 1

// DATA signals "#data"
const DATA Kind = 2

// INT signals an integer literal
const INT Kind = 3

// REG signals a register "$name"
const REG Kind = 4

// VAR signals a variable ".name"
const VAR Kind = 5

// NAME signals any other identifier
const NAME Kind = 6

// SEMICOLON signals ";"
const SEMICOLON Kind = 7

// QMARK signals "?"
const QMARK Kind = 8

// IF signals "if"
const IF Kind = 9

// IN signals "in"
const IN Kind = 10

// ELSE signals "else"
const ELSE Kind = 11

// END signals "end"
const END Kind = 12

// WHILE signals "while"
const WHILE Kind = 13

// FOR signals "for"
const FOR Kind = 14

// LOOP signals "loop"
const LOOP Kind = 15

// BREAK signals "break"
const BREAK Kind = 16

// JMP signals "jmp"
const JMP Kind = 17

// LABEL signals a label ":name"
const LABEL Kind = 18

// EQ signals "=="
const EQ Kind = 19

// NEQ signals "!="
const NEQ Kind = 20

// GT signals ">"
const GT Kind = 21

// GTE signals ">="
const GTE Kind = 22

// LT signals "<"
const LT Kind = 23

// LTE signals "<="
const LTE Kind = 24

// AND signals "&&"
const AND Kind = 25

// OR signals "||"
const OR Kind = 26

// EXIT signals "exit"
const EXIT Kind = 27

// ADD signals "add"
const ADD Kind = 28

// SUB signals "sub"
const SUB Kind = 29

// MOV signals "mov"
const MOV Kind = 30

// ENUM signals "enum"
const ENUM Kind = 31

var kindNames = [...]string{
	INVALID:   "INVALID",
	CODE:      "CODE",
	DATA:      "DATA",
	INT:       "INT",
	REG:       "REG",
	VAR:       "VAR",
	NAME:      "NAME",
	SEMICOLON: "SEMICOLON",
	QMARK:     "QMARK",
	IF:        "IF",
	IN:        "IN",
	ELSE:      "ELSE",
	END:       "END",
	WHILE:     "WHILE",
	FOR:       "FOR",
	LOOP:      "LOOP",
	BREAK:     "BREAK",
	JMP:       "JMP",
	LABEL:     "LABEL",
	EQ:        "EQ",
	NEQ:       "NEQ",
	GT:        "GT",
	GTE:       "GTE",
	LT:        "LT",
	LTE:       "LTE",
	AND:       "AND",
	OR:        "OR",
	EXIT:      "EXIT",
	ADD:       "ADD",
	SUB:       "SUB",
	MOV:       "MOV",
	ENUM:      "ENUM",
}

// Keywords maps the text of each reserved word onto its kind.
var Keywords = map[string]Kind{
	"exit":  EXIT,
	"add":   ADD,
	"sub":   SUB,
	"mov":   MOV,
	"enum":  ENUM,
	"if":    IF,
	"in":    IN,
	"else":  ELSE,
	"end":   END,
	"while": WHILE,
	"for":   FOR,
	"loop":  LOOP,
	"break": BREAK,
	"jmp":   JMP,
}

// String returns a human-readable name for this kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	//
	return fmt.Sprintf("Kind(%d)", uint(k))
}

// IsComparator determines whether this kind is one of the comparison
// operators.
func (k Kind) IsComparator() bool {
	return k >= EQ && k <= LTE
}

// IsOperand determines whether this kind can appear as an instruction operand,
// namely a variable, a register or an integer literal.
func (k Kind) IsOperand() bool {
	return k == VAR || k == REG || k == INT
}

// Token is an immutable lexeme together with the location at which it began.
// Sigils (".", "$" and ":") have already been stripped from the text of VAR,
// REG and LABEL tokens.
type Token struct {
	// Kind of this token.
	Kind Kind
	// Text of this token.
	Text string
	// Pos identifies the first character of the lexeme.
	Pos source.Position
	// Span of the complete lexeme (including any sigil) in the source file.
	Span source.Span
}

// New constructs a token of the given kind.
func New(kind Kind, text string, pos source.Position, span source.Span) Token {
	return Token{kind, text, pos, span}
}

// Location returns the stringified location of this token, as used for
// diagnostics.
func (t Token) Location() string {
	return t.Pos.String()
}

// SyntaxError constructs a syntax error which covers this token.
func (t Token) SyntaxError(msg string) *source.SyntaxError {
	return source.NewSyntaxError(t.Pos, t.Span.Length(), msg)
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind.String(), t.Text, t.Pos.String())
}
