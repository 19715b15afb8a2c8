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
package compiler

import (
	"fmt"

	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/consensys/go-xt/pkg/xt/backend"
	"github.com/consensys/go-xt/pkg/xt/backend/template"
	"github.com/consensys/go-xt/pkg/xt/diag"
	"github.com/consensys/go-xt/pkg/xt/lexer"
	"github.com/consensys/go-xt/pkg/xt/parser"
	"github.com/consensys/go-xt/pkg/xt/token"
	"github.com/pkg/errors"
)

// Config determines which backend generates code.
type Config struct {
	// Path of the backend module to load.  When empty, the built-in template
	// backend is used.
	Backend string
	// Calling convention of the backend module.
	ABI backend.ABI
}

// Compiler drives the pipeline from source file, through tokens and syntax
// tree, to generated code.  Like the lexer and parser it uses, a compiler is
// reusable but not concurrently.
type Compiler struct {
	sink    diag.Sink
	lexer   *lexer.Lexer
	parser  *parser.Parser
	backend backend.Backend
}

// New constructs a compiler for a given backend.
func New(sink diag.Sink, b backend.Backend) *Compiler {
	return &Compiler{sink, lexer.New(sink), parser.New(sink), b}
}

// Load constructs a compiler whose backend is determined by a given
// configuration.
func Load(config Config, sink diag.Sink) (*Compiler, error) {
	if config.Backend == "" {
		sink.Report(diag.DEBUG, "using built-in template backend", source.Position{})
		//
		return New(sink, backend.Func(template.Generate)), nil
	}
	//
	b, err := backend.Load(config.Backend, config.ABI)
	if err != nil {
		diag.ReportError(sink, err)
		return nil, err
	}
	//
	sink.Report(diag.DEBUG, fmt.Sprintf("loaded %s backend '%s'", config.ABI, config.Backend), source.Position{})
	//
	return New(sink, b), nil
}

// Lex tokenises a source file.  Any error is also reported on the sink, as are
// those of every other stage.
func (c *Compiler) Lex(path string) ([]token.Token, error) {
	tokens, err := c.lexer.LexFile(path)
	if err != nil {
		return nil, c.fail(err)
	}
	//
	return tokens, nil
}

// Parse lexes and parses a source file.
func (c *Compiler) Parse(path string) (ast.Program, error) {
	tokens, err := c.Lex(path)
	if err != nil {
		return ast.Program{}, err
	}
	//
	program, err := c.parser.ParseTokens(tokens)
	if err != nil {
		return ast.Program{}, c.fail(err)
	}
	//
	return program, nil
}

// CompileFile lexes, parses and generates code for a source file.  The syntax
// tree is handed off to the backend, and is not retained.
func (c *Compiler) CompileFile(path string) (string, error) {
	program, err := c.Parse(path)
	if err != nil {
		return "", err
	}
	//
	return c.CompileProgram(&program)
}

// CompileProgram generates code for a program, which is moved into the backend
// and thus left empty.
func (c *Compiler) CompileProgram(program *ast.Program) (string, error) {
	output, err := c.backend.Compile(backend.Transfer(program))
	if err != nil {
		return "", c.fail(errors.Wrap(err, "code generation failed"))
	}
	//
	c.sink.Report(diag.DEBUG, fmt.Sprintf("generated %d bytes", len(output)), source.Position{})
	//
	return output, nil
}

func (c *Compiler) fail(err error) error {
	diag.ReportError(c.sink, err)
	return err
}
