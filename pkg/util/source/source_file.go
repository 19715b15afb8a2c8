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

import (
	"fmt"
	"strings"

	"github.com/consensys/go-xt/pkg/mmap"
)

// ReadFiles reads a given set of source files, or produces an error.  Files
// are memory mapped rather than read through a buffer.
func ReadFiles(filenames ...string) ([]File, error) {
	files := make([]File, len(filenames))
	//
	for i, n := range filenames {
		bytes, err := mmap.ReadFile(n)
		if err != nil {
			return nil, err
		}
		//
		files[i] = *NewSourceFile(n, bytes)
	}
	//
	return files, nil
}

// Line provides information about a given line within the original string.
// This includes the line number (counting from 1), and the span of the line
// within the original string.
type Line struct {
	// Original text
	text []rune
	// Span within original text of this line.
	span Span
	// Line number of this line (counting from 1).
	number int
}

// Get the string representing this line.
func (p *Line) String() string {
	return string(p.text[p.span.start:p.span.end])
}

// Number gets the line number of this line, where the first line in a string
// has line number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the starting index of this line in the original string.
func (p *Line) Start() int {
	return p.span.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return p.span.Length()
}

// File represents a given source file (typically stored on disk).  The
// contents are normalised so that every line, including the last, is
// terminated by a newline.  This keeps line and column bookkeeping exact
// right up to the end of the file.
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.
	contents []rune
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	var builder strings.Builder
	//
	builder.Grow(len(bytes) + 1)
	// Re-append a newline to every line, including an unterminated final one.
	for text := string(bytes); len(text) > 0; {
		line, rest, _ := strings.Cut(text, "\n")
		builder.WriteString(line)
		builder.WriteByte('\n')
		//
		text = rest
	}
	//
	return &File{filename, []rune(builder.String())}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// Lines splits this file into its physical lines (without their newline
// characters).
func (s *File) Lines() []Line {
	var (
		lines []Line
		start = 0
	)
	//
	for i, c := range s.contents {
		if c == '\n' {
			lines = append(lines, Line{s.contents, Span{start, i}, len(lines) + 1})
			start = i + 1
		}
	}
	//
	if start < len(s.contents) {
		lines = append(lines, Line{s.contents, Span{start, len(s.contents)}, len(lines) + 1})
	}
	//
	return lines
}

// PositionOf determines the line and column of the character at the given
// offset.  Offsets beyond the end of the file map onto the end of the last
// line.
func (s *File) PositionOf(offset int) Position {
	line := s.FindFirstEnclosingLine(NewSpan(offset, offset))
	column := min(offset, len(s.contents)) - line.Start() + 1
	//
	return Position{s.filename, line.Number(), column}
}

// FindFirstEnclosingLine determines the first line  in this source file which
// encloses the start of a span.  Observe that, if the position is beyond the
// bounds of the source file then the last physical line is returned.  Also,
// the returned line is not guaranteed to enclose the entire span, as these can
// cross multiple lines.
func (s *File) FindFirstEnclosingLine(span Span) Line {
	// Index identifies the current position within the original text.
	index := span.start
	// Num records the line number, counting from 1.
	num := 1
	// Start records the starting offset of the current line.
	start := 0
	// Find the line.
	for i := 0; i < len(s.contents); i++ {
		if i == index {
			end := findEndOfLine(index, s.contents)
			return Line{s.contents, Span{start, end}, num}
		} else if s.contents[i] == '\n' && i+1 < len(s.contents) {
			num++
			start = i + 1
		}
	}
	//
	return Line{s.contents, Span{start, findEndOfLine(start, s.contents)}, num}
}

// SyntaxError is a structured error which retains the position in the original
// file where an error occurred, along with an error message.  Lexical and
// syntactic errors are both reported this way.
type SyntaxError struct {
	// Position of the first character on which the error is reported.
	pos Position
	// Number of characters covered by the error.
	length int
	// Error message being reported
	msg string
}

// NewSyntaxError constructs a syntax error at a given position covering a
// given number of characters.
func NewSyntaxError(pos Position, length int, msg string) *SyntaxError {
	return &SyntaxError{pos, length, msg}
}

// Position returns the position at which this error is reported.
func (p *SyntaxError) Position() Position {
	return p.pos
}

// Length returns the number of characters covered by this error.
func (p *SyntaxError) Length() int {
	return p.length
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%s - %s", p.pos.String(), p.msg)
}

// Find the end of the enclosing line
func findEndOfLine(index int, text []rune) int {
	for i := index; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	// No end in sight!
	return len(text)
}
