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
package source

import "fmt"

// Position identifies a single character within a named source file.  Lines
// and columns are both numbered from 1.
type Position struct {
	// File is the path of the source file.
	File string
	// Line number (counting from 1).
	Line int
	// Column number (counting from 1).
	Column int
}

// NewPosition constructs a position for the given file, line and column.
func NewPosition(file string, line int, column int) Position {
	return Position{file, line, column}
}

// IsValid reports whether this position refers to an actual location, rather
// than being the zero value.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String renders a position as "file:line:column".
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
