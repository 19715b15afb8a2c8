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
package util

import (
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/consensys/go-xt/pkg/xt/backend/template"
	"github.com/consensys/go-xt/pkg/xt/diag"
	"github.com/consensys/go-xt/pkg/xt/lexer"
	"github.com/consensys/go-xt/pkg/xt/parser"
	"github.com/stretchr/testify/require"
)

// CheckValid checks that a given source file compiles, using the template
// backend, to exactly the listing held in the corresponding ".out" file.  The
// canonical form of the parsed program must also parse back to the same
// program.
func CheckValid(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/%s.xt", TestDir, test)
		outname  = fmt.Sprintf("%s/%s.out", TestDir, test)
	)
	// Enable testing each file in parallel
	t.Parallel()
	//
	program := parseSourceFile(t, readSourceFile(t, filename))
	// Check generated listing
	expected, err := os.ReadFile(outname)
	require.NoError(t, err)
	//
	actual, err := template.Generate(program)
	require.NoError(t, err, filename)
	require.Equal(t, string(expected), actual, filename)
	// Check canonical form is stable
	reparsed := parseSourceFile(t, source.NewSourceFile(filename, []byte(program.String())))
	require.Equal(t, program, reparsed, filename)
}

func parseSourceFile(t *testing.T, srcfile *source.File) ast.Program {
	t.Helper()
	//
	tokens, err := lexer.New(diag.Discard).Lex(srcfile)
	require.NoError(t, err, srcfile.Filename())
	//
	program, err := parser.New(diag.Discard).ParseTokens(tokens)
	require.NoError(t, err, srcfile.Filename())
	//
	return program
}
