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
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/consensys/go-xt/pkg/util/termio"
	"github.com/consensys/go-xt/pkg/xt/backend"
	"github.com/consensys/go-xt/pkg/xt/compiler"
	"github.com/consensys/go-xt/pkg/xt/diag"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Configure logging and construct a compiler from the command-line flags.
// Diagnostics from the pipeline are routed through the standard logger.
func newCompiler(cmd *cobra.Command) *compiler.Compiler {
	var config compiler.Config
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	if cmd.Flags().Lookup("backend") != nil {
		abi, err := backend.ParseABI(GetString(cmd, "abi"))
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		config.Backend = GetString(cmd, "backend")
		config.ABI = abi
	}
	//
	// Load failures have already been logged
	c, err := compiler.Load(config, diag.NewLogSink(log.StandardLogger()))
	if err != nil {
		os.Exit(3)
	}
	//
	return c
}

// Exit after an error arising from the pipeline, which the compiler has already
// logged.  Syntax errors are additionally highlighted in the source text.
func reportError(err error) {
	var serr *source.SyntaxError
	//
	if errors.As(err, &serr) {
		printSyntaxError(os.Stderr, serr, termio.IsTerminal(os.Stderr))
		os.Exit(4)
	}
	//
	os.Exit(3)
}

// Print the line on which a syntax error occurred, with the offending span
// highlighted beneath it.
func printSyntaxError(w io.Writer, err *source.SyntaxError, colour bool) {
	var (
		pos    = err.Position()
		length = max(1, err.Length())
		marker = termio.NewAnsiEscape()
	)
	//
	if colour {
		marker = termio.BoldAnsiEscape().FgColour(termio.TERM_RED)
	}
	// Print the offending line, when it can be recovered.
	if line, ok := sourceLine(pos); ok {
		fmt.Fprintln(w, line)
		fmt.Fprint(w, strings.Repeat(" ", pos.Column-1))
		fmt.Fprintln(w, marker.Wrap(strings.Repeat("^", length)))
	}
}

// Recover the text of the line on which a given position lies.
func sourceLine(pos source.Position) (string, bool) {
	files, err := source.ReadFiles(pos.File)
	if err != nil {
		return "", false
	}
	//
	lines := files[0].Lines()
	//
	if pos.Line < 1 || pos.Line > len(lines) {
		return "", false
	}
	//
	return lines[pos.Line-1].String(), true
}
