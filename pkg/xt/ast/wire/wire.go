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
package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/pkg/errors"
)

// ============================================================================
// Wire Format
// ============================================================================
//
// A program is encoded as the identifier "XTAST", a version byte and then its
// data and code sections.  Each node is a tag byte followed by its fields, in
// declaration order.  Strings and lists are prefixed by their length as an
// unsigned varint; booleans and operators occupy a single byte.

// IDENTIFIER opens every encoded program.
var IDENTIFIER = [5]byte{'X', 'T', 'A', 'S', 'T'}

// VERSION of the encoding produced by Encode.
const VERSION byte = 2

const (
	tagData byte = iota + 1
	tagCode
	tagLabel
	tagExit
	tagAdd
	tagSub
	tagMov
	tagBreak
	tagJmp
	tagEnum
	tagWhile
	tagFor
	tagLoop
	tagIf
	tagCond
	tagVar
	tagTxt
)

// Encode a program into its flat wire representation.
func Encode(program ast.Program) []byte {
	var buffer bytes.Buffer
	//
	buffer.Write(IDENTIFIER[:])
	buffer.WriteByte(VERSION)
	//
	enc := encoder{&buffer}
	// Absent sections are encoded as empty ones
	for _, node := range program.Nodes() {
		enc.node(node)
	}
	//
	return buffer.Bytes()
}

type encoder struct {
	buffer *bytes.Buffer
}

//nolint:gocyclo
func (p encoder) node(node ast.Instr) {
	switch n := node.(type) {
	case *ast.Data:
		p.buffer.WriteByte(tagData)
		p.nodes(n.Variables)
	case *ast.Code:
		p.buffer.WriteByte(tagCode)
		p.nodes(n.Instructions)
	case *ast.Label:
		p.buffer.WriteByte(tagLabel)
		p.string(n.Name)
	case *ast.Exit:
		p.buffer.WriteByte(tagExit)
		p.node(n.Value)
	case *ast.Add:
		p.buffer.WriteByte(tagAdd)
		p.node(n.Dst)
		p.node(n.Src)
	case *ast.Sub:
		p.buffer.WriteByte(tagSub)
		p.node(n.Dst)
		p.node(n.Src)
	case *ast.Mov:
		p.buffer.WriteByte(tagMov)
		p.node(n.Dst)
		p.node(n.Src)
	case *ast.Break:
		p.buffer.WriteByte(tagBreak)
	case *ast.Jmp:
		p.buffer.WriteByte(tagJmp)
		p.string(n.Target)
	case *ast.EnumVar:
		p.buffer.WriteByte(tagEnum)
		p.string(n.Name)
		p.uint(len(n.Values))
		//
		for _, v := range n.Values {
			p.node(v)
		}
	case *ast.While:
		p.buffer.WriteByte(tagWhile)
		p.conditions(n.Conditions, n.BoolOps)
		p.nodes(n.Body)
	case *ast.For:
		p.buffer.WriteByte(tagFor)
		p.node(n.RangeLeft)
		p.node(n.RangeRight)
		p.node(n.Increment)
		p.nodes(n.Body)
	case *ast.Loop:
		p.buffer.WriteByte(tagLoop)
		p.nodes(n.Body)
	case *ast.If:
		p.buffer.WriteByte(tagIf)
		p.conditions(n.Conditions, n.BoolOps)
		p.nodes(n.IfBody)
		p.nodes(n.ElseBody)
	case *ast.Cond:
		p.buffer.WriteByte(tagCond)
		p.buffer.WriteByte(byte(n.Op))
		p.node(n.Lhs)
		p.node(n.Rhs)
	case *ast.Var:
		p.buffer.WriteByte(tagVar)
		p.string(n.Name)
		p.string(n.Value)
		p.bool(n.IsDecl)
	case *ast.Txt:
		p.buffer.WriteByte(tagTxt)
		p.string(n.Value)
		p.bool(n.IsReg)
	}
}

func (p encoder) nodes(nodes []ast.Instr) {
	p.uint(len(nodes))
	//
	for _, n := range nodes {
		p.node(n)
	}
}

func (p encoder) conditions(conds []*ast.Cond, ops []ast.BoolOp) {
	p.uint(len(conds))
	//
	for _, c := range conds {
		p.node(c)
	}
	//
	p.uint(len(ops))
	//
	for _, op := range ops {
		p.buffer.WriteByte(byte(op))
	}
}

func (p encoder) string(s string) {
	p.uint(len(s))
	p.buffer.WriteString(s)
}

func (p encoder) uint(n int) {
	p.buffer.Write(binary.AppendUvarint(nil, uint64(n)))
}

func (p encoder) bool(b bool) {
	if b {
		p.buffer.WriteByte(1)
	} else {
		p.buffer.WriteByte(0)
	}
}

// ============================================================================
// Decoding
// ============================================================================

// Decode a program from its wire representation.  This fails if the input is
// truncated, was produced by an unsupported version, or is otherwise malformed.
func Decode(data []byte) (ast.Program, error) {
	var (
		dec  = decoder{bytes.NewReader(data)}
		id   [5]byte
		prog ast.Program
	)
	//
	if n, _ := dec.reader.Read(id[:]); n != len(id) || id != IDENTIFIER {
		return prog, errors.New("wire: missing identifier")
	}
	//
	version, err := dec.reader.ReadByte()
	if err != nil {
		return prog, errors.New("wire: missing version")
	} else if version != VERSION {
		return prog, errors.Errorf("wire: unsupported version %d", version)
	}
	//
	section, err := decodeAs[*ast.Data](dec)
	if err != nil {
		return prog, err
	}
	//
	code, err := decodeAs[*ast.Code](dec)
	if err != nil {
		return prog, err
	} else if dec.reader.Len() != 0 {
		return prog, errors.Errorf("wire: %d trailing bytes", dec.reader.Len())
	}
	//
	return ast.NewProgram(section, code), nil
}

type decoder struct {
	reader *bytes.Reader
}

// Decode a node which must have a specific type.
func decodeAs[T ast.Instr](p decoder) (T, error) {
	var empty T
	//
	node, err := p.node()
	if err != nil {
		return empty, err
	} else if n, ok := node.(T); ok {
		return n, nil
	}
	//
	return empty, errors.Errorf("wire: unexpected %T (expected %T)", node, empty)
}

//nolint:gocyclo
func (p decoder) node() (ast.Instr, error) {
	tag, err := p.reader.ReadByte()
	if err != nil {
		return nil, errors.New("wire: truncated input")
	}
	//
	switch tag {
	case tagData:
		vars, err := p.nodes()
		return &ast.Data{Variables: vars}, err
	case tagCode:
		insns, err := p.nodes()
		return &ast.Code{Instructions: insns}, err
	case tagLabel:
		name, err := p.string()
		return &ast.Label{Name: name}, err
	case tagExit:
		value, err := p.node()
		return &ast.Exit{Value: value}, err
	case tagAdd:
		dst, src, err := p.pair()
		return &ast.Add{Dst: dst, Src: src}, err
	case tagSub:
		dst, src, err := p.pair()
		return &ast.Sub{Dst: dst, Src: src}, err
	case tagMov:
		dst, src, err := p.pair()
		return &ast.Mov{Dst: dst, Src: src}, err
	case tagBreak:
		return &ast.Break{}, nil
	case tagJmp:
		target, err := p.string()
		return &ast.Jmp{Target: target}, err
	case tagEnum:
		return p.enum()
	case tagWhile:
		var node ast.While
		//
		if node.Conditions, node.BoolOps, err = p.conditions(); err != nil {
			return nil, err
		}
		//
		node.Body, err = p.nodes()
		//
		return &node, err
	case tagFor:
		return p.forLoop()
	case tagLoop:
		body, err := p.nodes()
		return &ast.Loop{Body: body}, err
	case tagIf:
		var node ast.If
		//
		if node.Conditions, node.BoolOps, err = p.conditions(); err != nil {
			return nil, err
		} else if node.IfBody, err = p.nodes(); err != nil {
			return nil, err
		}
		//
		node.ElseBody, err = p.nodes()
		//
		return &node, err
	case tagCond:
		return p.condition()
	case tagVar:
		return p.variable()
	case tagTxt:
		return p.text()
	default:
		return nil, errors.Errorf("wire: unknown tag %d", tag)
	}
}

func (p decoder) nodes() ([]ast.Instr, error) {
	n, err := p.uint()
	if err != nil {
		return nil, err
	}
	//
	var nodes []ast.Instr
	//
	for i := uint64(0); i < n; i++ {
		node, err := p.node()
		if err != nil {
			return nil, err
		}
		//
		nodes = append(nodes, node)
	}
	//
	return nodes, nil
}

func (p decoder) pair() (ast.Instr, ast.Instr, error) {
	lhs, err := p.node()
	if err != nil {
		return nil, nil, err
	}
	//
	rhs, err := p.node()
	//
	return lhs, rhs, err
}

func (p decoder) enum() (ast.Instr, error) {
	var node ast.EnumVar
	//
	name, err := p.string()
	if err != nil {
		return nil, err
	}
	//
	n, err := p.uint()
	if err != nil {
		return nil, err
	}
	//
	node.Name = name
	//
	for i := uint64(0); i < n; i++ {
		v, err := decodeAs[*ast.Var](p)
		if err != nil {
			return nil, err
		}
		//
		node.Values = append(node.Values, v)
	}
	//
	return &node, nil
}

func (p decoder) forLoop() (ast.Instr, error) {
	var (
		node ast.For
		err  error
	)
	//
	if node.RangeLeft, err = p.node(); err != nil {
		return nil, err
	} else if node.RangeRight, err = p.node(); err != nil {
		return nil, err
	} else if node.Increment, err = p.node(); err != nil {
		return nil, err
	}
	//
	node.Body, err = p.nodes()
	//
	return &node, err
}

func (p decoder) conditions() ([]*ast.Cond, []ast.BoolOp, error) {
	var (
		conds []*ast.Cond
		ops   []ast.BoolOp
	)
	//
	n, err := p.uint()
	if err != nil {
		return nil, nil, err
	}
	//
	for i := uint64(0); i < n; i++ {
		c, err := decodeAs[*ast.Cond](p)
		if err != nil {
			return nil, nil, err
		}
		//
		conds = append(conds, c)
	}
	//
	if n, err = p.uint(); err != nil {
		return nil, nil, err
	}
	//
	for i := uint64(0); i < n; i++ {
		op, err := p.reader.ReadByte()
		if err != nil {
			return nil, nil, errors.New("wire: truncated input")
		} else if ast.BoolOp(op) > ast.BOR {
			return nil, nil, errors.Errorf("wire: unknown boolean operator %d", op)
		}
		//
		ops = append(ops, ast.BoolOp(op))
	}
	//
	return conds, ops, nil
}

func (p decoder) condition() (ast.Instr, error) {
	op, err := p.reader.ReadByte()
	if err != nil {
		return nil, errors.New("wire: truncated input")
	} else if ast.CondOp(op) > ast.GTE {
		return nil, errors.Errorf("wire: unknown comparison %d", op)
	}
	//
	lhs, rhs, err := p.pair()
	if err != nil {
		return nil, err
	}
	//
	return &ast.Cond{Op: ast.CondOp(op), Lhs: lhs, Rhs: rhs}, nil
}

func (p decoder) variable() (ast.Instr, error) {
	name, err := p.string()
	if err != nil {
		return nil, err
	}
	//
	value, err := p.string()
	if err != nil {
		return nil, err
	}
	//
	decl, err := p.reader.ReadByte()
	if err != nil {
		return nil, errors.New("wire: truncated input")
	}
	//
	return &ast.Var{Name: name, Value: value, IsDecl: decl != 0}, nil
}

func (p decoder) text() (ast.Instr, error) {
	value, err := p.string()
	if err != nil {
		return nil, err
	}
	//
	reg, err := p.reader.ReadByte()
	if err != nil {
		return nil, errors.New("wire: truncated input")
	}
	//
	return &ast.Txt{Value: value, IsReg: reg != 0}, nil
}

func (p decoder) string() (string, error) {
	n, err := p.uint()
	if err != nil {
		return "", err
	} else if n > uint64(p.reader.Len()) {
		return "", errors.New("wire: truncated input")
	}
	//
	buf := make([]byte, n)
	// Cannot fail, since sufficient bytes remain
	_, _ = p.reader.Read(buf)
	//
	return string(buf), nil
}

func (p decoder) uint() (uint64, error) {
	n, err := binary.ReadUvarint(p.reader)
	if err != nil {
		return 0, errors.New("wire: truncated input")
	}
	//
	return n, nil
}
