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

	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] source_file",
	Short: "print the syntax tree of an xt source file.",
	Long: `Parse a given xt source file, and print the resulting syntax tree in its
	canonical source form.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		program, err := newCompiler(cmd).Parse(args[0])
		if err != nil {
			reportError(err)
		}
		//
		fmt.Print(program.String())
	},
}

func init() {
	rootCmd.AddCommand(astCmd)
}
