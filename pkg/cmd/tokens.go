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
	"os"

	"github.com/consensys/go-xt/pkg/util/termio"
	"github.com/consensys/go-xt/pkg/xt/token"
	"github.com/spf13/cobra"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] source_file",
	Short: "print the tokens of an xt source file.",
	Long:  `Lex a given xt source file, and print the resulting tokens as a table.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tokens, err := newCompiler(cmd).Lex(args[0])
		if err != nil {
			reportError(err)
		}
		//
		table := tokenTable(tokens)
		table.AnsiEscapes(termio.IsTerminal(os.Stdout))
		//
		if err := table.Print(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

// Layout tokens with one row per token, headed by a row of titles.
func tokenTable(tokens []token.Token) *termio.TablePrinter {
	var (
		table = termio.NewTablePrinter(3)
		title = termio.BoldAnsiEscape()
		kind  = termio.NewAnsiEscape().FgColour(termio.TERM_CYAN)
	)
	//
	row := table.AddRow("POSITION", "KIND", "TEXT")
	//
	for i := range uint(3) {
		table.SetEscape(i, row, title)
	}
	//
	for _, tok := range tokens {
		row = table.AddRow(tok.Location(), tok.Kind.String(), tok.Text)
		table.SetEscape(1, row, kind)
	}
	//
	return table
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
