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

	"github.com/consensys/go-xt/pkg/xt/backend"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] source_file",
	Short: "compile an xt source file.",
	Long: `Compile a given xt source file using either the built-in template backend, or
	a backend module loaded at runtime.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		compiler := newCompiler(cmd)
		output := GetString(cmd, "output")
		//
		code, err := compiler.CompileFile(args[0])
		if err != nil {
			reportError(err)
		}
		//
		if output == "" || output == "-" {
			fmt.Print(code)
		} else if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing '%s': %s\n", output, err.Error())
			os.Exit(1)
		}
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("backend", "b", "", "specify backend module (default is built-in template).")
	compileCmd.Flags().String("abi", backend.ABI_GO.String(), "specify backend calling convention (go or c).")
	compileCmd.Flags().StringP("output", "o", "-", "specify output file.")
}
