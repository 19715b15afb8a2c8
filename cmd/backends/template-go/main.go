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

// Package main is a sample backend, built with -buildmode=plugin and loaded by
// xtc using the go ABI.  It forwards to the built-in template generator.
package main

import (
	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/consensys/go-xt/pkg/xt/backend/template"
)

// Compile is the entry point looked up by the loader.
func Compile(program ast.Program) (string, error) {
	return template.Generate(program)
}

func main() {}
