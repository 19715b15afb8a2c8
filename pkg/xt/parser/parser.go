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
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/consensys/go-xt/pkg/util"
	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/consensys/go-xt/pkg/xt/diag"
	"github.com/consensys/go-xt/pkg/xt/token"
)

// Parser turns a token sequence into an abstract syntax tree.  A parser can be
// reused for any number of token sequences, though not concurrently.  Parsing
// halts at the first malformed construct.
type Parser struct {
	sink diag.Sink
	// Tokens being parsed.  These are never modified.
	tokens []token.Token
	// Index of the next unread token.
	cursor int
}

// New constructs a parser which reports progress on the given sink.
func New(sink diag.Sink) *Parser {
	return &Parser{sink: sink}
}

// ParseTokens parses a complete program.  Either section may be omitted, in
// which case it is empty, but neither may be repeated.
func (p *Parser) ParseTokens(tokens []token.Token) (ast.Program, error) {
	var (
		data *ast.Data
		code *ast.Code
		err  *source.SyntaxError
	)
	//
	p.tokens = tokens
	p.cursor = 0
	// Release the tokens once done
	defer func() { p.tokens = nil }()
	//
	for p.peek(0).HasValue() {
		tok := p.advance().Unwrap()
		//
		switch tok.Kind {
		case token.DATA:
			if data != nil {
				return ast.Program{}, tok.SyntaxError("duplicate #data section")
			} else if data, err = p.parseData(tok); err != nil {
				return ast.Program{}, err
			}
		case token.CODE:
			if code != nil {
				return ast.Program{}, tok.SyntaxError("duplicate #code section")
			} else if code, err = p.parseCode(tok); err != nil {
				return ast.Program{}, err
			}
		default:
			return ast.Program{}, tok.SyntaxError(fmt.Sprintf("unexpected token '%s' (not a valid section)", tok.Text))
		}
	}
	// Absent sections are empty
	if data == nil {
		data = &ast.Data{}
	}
	//
	if code == nil {
		code = &ast.Code{}
	}
	//
	return ast.NewProgram(data, code), nil
}

// ============================================================================
// Data
// ============================================================================

func (p *Parser) parseData(section token.Token) (*ast.Data, *source.SyntaxError) {
	var (
		variables []ast.Instr
		variable  ast.Instr
		err       *source.SyntaxError
	)
	//
	for p.peek(0).HasValue() {
		switch tok := p.peek(0).Unwrap(); tok.Kind {
		case token.VAR:
			p.advance()
			variable, err = p.parseVariable(tok)
		case token.ENUM:
			p.advance()
			variable, err = p.parseEnum(tok)
		default:
			// Anything else ends the section
			p.report(section, "parsed #data section (%d declarations)", len(variables))
			//
			return &ast.Data{Variables: variables}, nil
		}
		//
		if err != nil {
			return nil, err
		}
		//
		variables = append(variables, variable)
	}
	//
	p.report(section, "parsed #data section (%d declarations)", len(variables))
	//
	return &ast.Data{Variables: variables}, nil
}

// Parse ".name INT" or ".name ?", where the name has already been consumed.
func (p *Parser) parseVariable(name token.Token) (ast.Instr, *source.SyntaxError) {
	next := p.advance()
	//
	if next.IsEmpty() {
		return nil, name.SyntaxError(fmt.Sprintf("missing value for variable '%s'", name.Text))
	}
	//
	switch tok := next.Unwrap(); tok.Kind {
	case token.INT:
		return &ast.Var{Name: name.Text, Value: tok.Text, IsDecl: true}, nil
	case token.QMARK:
		return &ast.Var{Name: name.Text, Value: "", IsDecl: true}, nil
	default:
		return nil, found(tok, "invalid value for variable '%s'", name.Text)
	}
}

// Parse "NAME (member INT?)* end", where the enum keyword has already been
// consumed.  Members are numbered from zero, and an explicit index resets the
// count.
func (p *Parser) parseEnum(keyword token.Token) (ast.Instr, *source.SyntaxError) {
	var (
		values []*ast.Var
		index  int
		err    error
	)
	//
	next := p.advance()
	if next.IsEmpty() {
		return nil, keyword.SyntaxError("missing name for ENUM declaration")
	}
	//
	name := next.Unwrap()
	if name.Kind != token.NAME {
		return nil, found(name, "invalid name for ENUM declaration")
	}
	//
	for {
		next = p.advance()
		//
		if next.IsEmpty() {
			return nil, keyword.SyntaxError(fmt.Sprintf("missing END for ENUM declaration '%s'", name.Text))
		}
		//
		member := next.Unwrap()
		//
		if member.Kind == token.END {
			break
		} else if member.Kind != token.VAR && member.Kind != token.NAME {
			return nil, found(member, "invalid member for ENUM declaration '%s'", name.Text)
		}
		// Check for explicit index
		if p.peek(0).HasValueAnd(isKind(token.INT)) {
			tok := p.advance().Unwrap()
			//
			if index, err = strconv.Atoi(tok.Text); err != nil {
				return nil, found(tok, "invalid index for ENUM member '%s'", member.Text)
			}
		}
		//
		values = append(values, &ast.Var{Name: name.Text + "." + member.Text, Value: strconv.Itoa(index), IsDecl: true})
		index++
	}
	//
	return &ast.EnumVar{Name: name.Text, Values: values}, nil
}

// ============================================================================
// Code
// ============================================================================

// Parse statements up to the start of a data section, or the end of input.
func (p *Parser) parseCode(section token.Token) (*ast.Code, *source.SyntaxError) {
	var instructions []ast.Instr
	//
	for p.peek(0).HasValueAnd(func(t token.Token) bool { return t.Kind != token.DATA }) {
		insn, err := p.parseStatement(p.advance().Unwrap())
		if err != nil {
			return nil, err
		}
		//
		instructions = append(instructions, insn)
	}
	//
	p.report(section, "parsed #code section (%d instructions)", len(instructions))
	//
	return &ast.Code{Instructions: instructions}, nil
}

// Parse a single statement whose leading token has already been consumed.
func (p *Parser) parseStatement(tok token.Token) (ast.Instr, *source.SyntaxError) {
	switch tok.Kind {
	case token.LABEL:
		return &ast.Label{Name: tok.Text}, nil
	case token.WHILE:
		return p.parseWhile(tok)
	case token.FOR:
		return p.parseFor(tok)
	case token.LOOP:
		return p.parseLoop(tok)
	case token.IF:
		return p.parseIf(tok)
	case token.EXIT:
		return p.parseExit(tok)
	case token.ADD:
		return p.parseBinary(tok, "left hand side", "right hand side", func(dst, src ast.Instr) ast.Instr {
			return &ast.Add{Dst: dst, Src: src}
		})
	case token.SUB:
		return p.parseBinary(tok, "left hand side", "right hand side", func(dst, src ast.Instr) ast.Instr {
			return &ast.Sub{Dst: dst, Src: src}
		})
	case token.MOV:
		return p.parseBinary(tok, "destination", "source", func(dst, src ast.Instr) ast.Instr {
			return &ast.Mov{Dst: dst, Src: src}
		})
	case token.JMP:
		return p.parseJmp(tok)
	case token.BREAK:
		return &ast.Break{}, nil
	default:
		return nil, tok.SyntaxError(fmt.Sprintf("unexpected token '%s' (not a valid instruction)", tok.Text))
	}
}

// Parse statements up to (and including) one of the given terminators.  The
// opening token identifies the block in errors.
func (p *Parser) parseBlock(open token.Token, terminators ...token.Kind) ([]ast.Instr, token.Token,
	*source.SyntaxError) {
	var body []ast.Instr
	//
	for {
		next := p.advance()
		//
		if next.IsEmpty() {
			return nil, open, open.SyntaxError(fmt.Sprintf("missing END for %s block", upper(open)))
		}
		//
		tok := next.Unwrap()
		//
		for _, kind := range terminators {
			if tok.Kind == kind {
				return body, tok, nil
			}
		}
		//
		insn, err := p.parseStatement(tok)
		if err != nil {
			return nil, tok, err
		}
		//
		body = append(body, insn)
	}
}

func (p *Parser) parseExit(keyword token.Token) (ast.Instr, *source.SyntaxError) {
	value, _, err := p.parseOperand(keyword, "value for EXIT instruction", true)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Exit{Value: value}, nil
}

// Parse the two operands of an instruction.  The first is assigned to, so
// cannot be a literal.
func (p *Parser) parseBinary(keyword token.Token, first string, second string,
	constructor func(ast.Instr, ast.Instr) ast.Instr) (ast.Instr, *source.SyntaxError) {
	var (
		name = upper(keyword)
		lhs  ast.Instr
		rhs  ast.Instr
		tok  token.Token
		err  *source.SyntaxError
	)
	//
	if lhs, tok, err = p.parseOperand(keyword, fmt.Sprintf("%s for %s instruction", first, name), false); err != nil {
		return nil, err
	} else if rhs, _, err = p.parseOperand(tok, fmt.Sprintf("%s for %s instruction", second, name), true); err != nil {
		return nil, err
	}
	//
	return constructor(lhs, rhs), nil
}

func (p *Parser) parseJmp(keyword token.Token) (ast.Instr, *source.SyntaxError) {
	next := p.advance()
	//
	if next.IsEmpty() {
		return nil, keyword.SyntaxError("missing label for JMP instruction")
	} else if tok := next.Unwrap(); tok.Kind != token.LABEL {
		return nil, found(tok, "invalid label for JMP instruction")
	}
	//
	return &ast.Jmp{Target: next.Unwrap().Text}, nil
}

// Parse a single operand following a given token.  Variables become uses,
// whilst registers and (if permitted) literals become opaque text.
func (p *Parser) parseOperand(prev token.Token, slot string, literal bool) (ast.Instr, token.Token,
	*source.SyntaxError) {
	next := p.advance()
	//
	if next.IsEmpty() {
		return nil, prev, prev.SyntaxError("missing " + slot)
	}
	//
	switch tok := next.Unwrap(); {
	case !tok.Kind.IsOperand() || (!literal && tok.Kind == token.INT):
		return nil, tok, found(tok, "invalid %s", slot)
	case tok.Kind == token.VAR:
		return &ast.Var{Name: tok.Text}, tok, nil
	case tok.Kind == token.REG:
		return ast.NewReg(tok.Text), tok, nil
	default:
		return ast.NewLiteral(tok.Text), tok, nil
	}
}

// ============================================================================
// Control Flow
// ============================================================================

func (p *Parser) parseIf(keyword token.Token) (ast.Instr, *source.SyntaxError) {
	var (
		node ast.If
		term token.Token
		err  *source.SyntaxError
	)
	//
	if node.Conditions, node.BoolOps, err = p.parseConditions(keyword); err != nil {
		return nil, err
	} else if node.IfBody, term, err = p.parseBlock(keyword, token.ELSE, token.END); err != nil {
		return nil, err
	} else if term.Kind == token.END {
		return &node, nil
	}
	// Else-if chains share a single END
	if p.peek(0).HasValueAnd(isKind(token.IF)) {
		nested, err := p.parseIf(p.advance().Unwrap())
		if err != nil {
			return nil, err
		}
		//
		node.ElseBody = []ast.Instr{nested}
		//
		return &node, nil
	}
	//
	if node.ElseBody, _, err = p.parseBlock(term, token.END); err != nil {
		return nil, err
	}
	//
	return &node, nil
}

func (p *Parser) parseWhile(keyword token.Token) (ast.Instr, *source.SyntaxError) {
	var (
		node ast.While
		err  *source.SyntaxError
	)
	//
	if node.Conditions, node.BoolOps, err = p.parseConditions(keyword); err != nil {
		return nil, err
	} else if node.Body, _, err = p.parseBlock(keyword, token.END); err != nil {
		return nil, err
	}
	//
	return &node, nil
}

// Parse "left ; right ; increment in body end".
func (p *Parser) parseFor(keyword token.Token) (ast.Instr, *source.SyntaxError) {
	var (
		node ast.For
		tok  token.Token
		err  *source.SyntaxError
	)
	//
	if node.RangeLeft, tok, err = p.parseOperand(keyword, "start of FOR range", true); err != nil {
		return nil, err
	} else if tok, err = p.expect(tok, token.SEMICOLON, "';' in FOR statement"); err != nil {
		return nil, err
	} else if node.RangeRight, tok, err = p.parseOperand(tok, "end of FOR range", true); err != nil {
		return nil, err
	} else if tok, err = p.expect(tok, token.SEMICOLON, "';' in FOR statement"); err != nil {
		return nil, err
	} else if node.Increment, tok, err = p.parseOperand(tok, "increment for FOR statement", true); err != nil {
		return nil, err
	} else if _, err = p.expect(tok, token.IN, "IN for FOR statement"); err != nil {
		return nil, err
	} else if node.Body, _, err = p.parseBlock(keyword, token.END); err != nil {
		return nil, err
	}
	//
	return &node, nil
}

func (p *Parser) parseLoop(keyword token.Token) (ast.Instr, *source.SyntaxError) {
	body, _, err := p.parseBlock(keyword, token.END)
	if err != nil {
		return nil, err
	}
	//
	return &ast.Loop{Body: body}, nil
}

// Parse one or more conditions separated by boolean connectives, up to and
// including IN.
func (p *Parser) parseConditions(keyword token.Token) ([]*ast.Cond, []ast.BoolOp, *source.SyntaxError) {
	var (
		conds []*ast.Cond
		ops   []ast.BoolOp
		prev  = keyword
	)
	//
	for {
		cond, last, err := p.parseCond(prev)
		if err != nil {
			return nil, nil, err
		}
		//
		conds = append(conds, cond)
		//
		next := p.advance()
		if next.IsEmpty() {
			return nil, nil, last.SyntaxError(fmt.Sprintf("missing IN for %s statement", upper(keyword)))
		}
		//
		switch prev = next.Unwrap(); prev.Kind {
		case token.AND:
			ops = append(ops, ast.BAND)
		case token.OR:
			ops = append(ops, ast.BOR)
		case token.IN:
			return conds, ops, nil
		default:
			return nil, nil, found(prev, "unexpected token after condition in %s statement", upper(keyword))
		}
	}
}

// Parse "lhs op rhs", returning the last token consumed.
func (p *Parser) parseCond(prev token.Token) (*ast.Cond, token.Token, *source.SyntaxError) {
	var (
		lhs, rhs       ast.Instr
		lhsTok, rhsTok token.Token
		op             ast.CondOp
		err            *source.SyntaxError
	)
	//
	if lhs, lhsTok, err = p.parseOperand(prev, "left hand side of condition", true); err != nil {
		return nil, lhsTok, err
	}
	//
	next := p.advance()
	if next.IsEmpty() {
		return nil, lhsTok, lhsTok.SyntaxError("missing comparison in condition")
	}
	//
	opTok := next.Unwrap()
	if op, err = comparison(opTok); err != nil {
		return nil, opTok, err
	} else if rhs, rhsTok, err = p.parseOperand(opTok, "right hand side of condition", true); err != nil {
		return nil, rhsTok, err
	}
	//
	if lhsTok.Kind == token.INT && rhsTok.Kind == token.INT {
		length := rhsTok.Span.End() - lhsTok.Span.Start()
		return nil, rhsTok, source.NewSyntaxError(lhsTok.Pos, length, "both sides can't be values")
	}
	//
	return &ast.Cond{Op: op, Lhs: lhs, Rhs: rhs}, rhsTok, nil
}

func comparison(tok token.Token) (ast.CondOp, *source.SyntaxError) {
	if !tok.Kind.IsComparator() {
		return 0, found(tok, "invalid comparison in condition")
	}
	//
	switch tok.Kind {
	case token.EQ:
		return ast.EQU, nil
	case token.NEQ:
		return ast.NEQU, nil
	case token.LT:
		return ast.LTH, nil
	case token.LTE:
		return ast.LTE, nil
	case token.GT:
		return ast.GT, nil
	default:
		return ast.GTE, nil
	}
}

// ============================================================================
// Helpers
// ============================================================================

// Consume a token of the given kind following a given token.
func (p *Parser) expect(prev token.Token, kind token.Kind, what string) (token.Token, *source.SyntaxError) {
	next := p.advance()
	//
	if next.IsEmpty() {
		return prev, prev.SyntaxError("missing " + what)
	} else if tok := next.Unwrap(); tok.Kind != kind {
		return tok, found(tok, "expected %s", what)
	}
	//
	return next.Unwrap(), nil
}

func (p *Parser) peek(offset int) util.Option[token.Token] {
	if index := p.cursor + offset; index >= 0 && index < len(p.tokens) {
		return util.Some(p.tokens[index])
	}
	//
	return util.None[token.Token]()
}

func (p *Parser) advance() util.Option[token.Token] {
	if p.cursor >= len(p.tokens) {
		return util.None[token.Token]()
	}
	//
	p.cursor++
	//
	return util.Some(p.tokens[p.cursor-1])
}

func (p *Parser) report(at token.Token, format string, args ...any) {
	p.sink.Report(diag.DEBUG, fmt.Sprintf(format, args...), at.Pos)
}

// Construct an error on a token which names its text.
func found(tok token.Token, format string, args ...any) *source.SyntaxError {
	return tok.SyntaxError(fmt.Sprintf(format, args...) + fmt.Sprintf(" (found '%s')", tok.Text))
}

func isKind(kind token.Kind) func(token.Token) bool {
	return func(t token.Token) bool { return t.Kind == kind }
}

func upper(tok token.Token) string {
	return strings.ToUpper(tok.Text)
}
