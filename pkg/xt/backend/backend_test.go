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
	"path/filepath"
	"testing"

	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/stretchr/testify/require"
)

func TestFunc_Compile(t *testing.T) {
	var seen ast.Program
	//
	backend := Func(func(p ast.Program) (string, error) {
		seen = p
		return "ok", nil
	})
	//
	program := ast.NewProgram(&ast.Data{}, &ast.Code{Instructions: []ast.Instr{&ast.Break{}}})
	output, err := backend.Compile(program)
	//
	require.NoError(t, err)
	require.Equal(t, "ok", output)
	require.Same(t, program.Code, seen.Code)
}

func TestTransfer(t *testing.T) {
	var (
		data    = &ast.Data{}
		code    = &ast.Code{}
		program = ast.NewProgram(data, code)
	)
	//
	moved := Transfer(&program)
	//
	require.True(t, program.IsEmpty())
	require.Same(t, data, moved.Data)
	require.Same(t, code, moved.Code)
}

func TestParseABI(t *testing.T) {
	for _, abi := range []ABI{ABI_GO, ABI_C} {
		parsed, err := ParseABI(abi.String())
		require.NoError(t, err)
		require.Equal(t, abi, parsed)
	}
	//
	_, err := ParseABI("rust")
	require.EqualError(t, err, "unknown backend ABI 'rust' (expected go or c)")
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.so")
	//
	for _, abi := range []ABI{ABI_GO, ABI_C} {
		_, err := Load(path, abi)
		require.ErrorContains(t, err, "unable to open backend '"+path+"'", abi.String())
	}
}

func TestLoad_UnknownABI(t *testing.T) {
	_, err := Load("x.so", ABI(7))
	require.EqualError(t, err, "unable to open backend 'x.so': unknown ABI ABI(7)")
}
