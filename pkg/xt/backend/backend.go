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
package backend

import (
	"fmt"
	"plugin"

	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/pkg/errors"
)

// Backend generates target code for a complete program.  A backend takes
// ownership of the program it is given.
type Backend interface {
	Compile(program ast.Program) (string, error)
}

// Func adapts an ordinary function into a backend.
type Func func(ast.Program) (string, error)

// Compile calls the function itself.
func (f Func) Compile(program ast.Program) (string, error) {
	return f(program)
}

// ABI identifies the calling convention of a backend module.
type ABI uint8

const (
	// ABI_GO is a Go plugin (built with -buildmode=plugin) exporting the
	// function "Compile", which accepts an ast.Program directly.
	ABI_GO ABI = iota
	// ABI_C is a shared library exporting the C function "compile", which
	// accepts the wire encoding of a program and returns a NUL-terminated
	// string (or NULL on failure).
	ABI_C
)

// GO_SYMBOL is the entry point of a Go plugin backend.
const GO_SYMBOL = "Compile"

// C_SYMBOL is the entry point of a C backend.
const C_SYMBOL = "compile"

func (abi ABI) String() string {
	switch abi {
	case ABI_GO:
		return "go"
	case ABI_C:
		return "c"
	default:
		return fmt.Sprintf("ABI(%d)", uint8(abi))
	}
}

// ParseABI converts the name of an ABI (as given by String) back into an ABI.
func ParseABI(name string) (ABI, error) {
	switch name {
	case "go":
		return ABI_GO, nil
	case "c":
		return ABI_C, nil
	default:
		return 0, errors.Errorf("unknown backend ABI '%s' (expected go or c)", name)
	}
}

// Load opens the backend module at the given path.  Modules are never
// unloaded, hence a backend remains valid for the lifetime of the process.
func Load(path string, abi ABI) (Backend, error) {
	switch abi {
	case ABI_GO:
		return loadPlugin(path)
	case ABI_C:
		return loadShared(path)
	default:
		return nil, errors.Errorf("unable to open backend '%s': unknown ABI %s", path, abi)
	}
}

// Transfer moves a program out of its owner, which is left empty.  Passing the
// result to a backend guarantees it holds the only reference to the tree.
func Transfer(program *ast.Program) ast.Program {
	moved := *program
	*program = ast.Program{}
	//
	return moved
}

func loadPlugin(path string) (Backend, error) {
	module, err := plugin.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open backend '%s'", path)
	}
	//
	symbol, err := module.Lookup(GO_SYMBOL)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to find symbol '%s'", GO_SYMBOL)
	}
	//
	switch fn := symbol.(type) {
	case func(ast.Program) (string, error):
		return Func(fn), nil
	case *func(ast.Program) (string, error):
		// Exported as a variable
		return Func(*fn), nil
	default:
		return nil, errors.Errorf("symbol '%s' in backend '%s' has unexpected type %T", GO_SYMBOL, path, symbol)
	}
}
