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
package termio

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// TablePrinter lays out rows of cells into aligned columns.  Rows are appended
// one at a time, and the table is only rendered once all rows are known.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]AnsiEscape
	enableEscapes bool
}

// NewTablePrinter constructs an empty table with a given number of columns.
func NewTablePrinter(width uint) *TablePrinter {
	return &TablePrinter{make([]uint, width), nil, nil, false}
}

// AddRow appends a row to this table, returning its index.  The number of
// values must match the number of columns.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i, val := range vals {
		p.widths[i] = max(p.widths[i], uint(utf8.RuneCountInString(val)))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]AnsiEscape, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// SetEscape set the escape to use when printing the contents of a given cell
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Escapes are disabled by default, since they are unreadable when
// the output is not a terminal.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// Print the table to a given writer.  Cells are left-aligned and separated by
// " | ".
func (p *TablePrinter) Print(w io.Writer) error {
	for i, row := range p.rows {
		for j, col := range row {
			text := fmt.Sprintf("%-*s", int(p.widths[j]), col)
			//
			if p.enableEscapes {
				text = p.escapes[i][j].Wrap(text)
			}
			//
			if j != 0 {
				text = " | " + text
			}
			//
			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
		}
		//
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	//
	return nil
}
