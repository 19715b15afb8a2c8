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

// Program is the root of a parsed source file, always consisting of exactly
// one data section followed by one code section.
type Program struct {
	Data *Data
	Code *Code
}

// NewProgram constructs a program from its two sections.
func NewProgram(data *Data, code *Code) Program {
	return Program{data, code}
}

// Nodes returns the top-level nodes of this program, in order.  A section
// which is absent, as in a program which has been handed off, is returned as
// an empty one.
func (p Program) Nodes() []Instr {
	var (
		data = p.Data
		code = p.Code
	)
	//
	if data == nil {
		data = &Data{}
	}
	//
	if code == nil {
		code = &Code{}
	}
	//
	return []Instr{data, code}
}

// IsEmpty determines whether this program holds no sections, as happens after
// it has been handed off to a backend.
func (p Program) IsEmpty() bool {
	return p.Data == nil && p.Code == nil
}

func (p Program) String() string {
	nodes := p.Nodes()
	//
	return nodes[0].String() + "\n" + nodes[1].String() + "\n"
}
