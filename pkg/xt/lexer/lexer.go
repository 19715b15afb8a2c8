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
package lexer

import (
	"fmt"
	"path/filepath"

	"github.com/consensys/go-xt/pkg/util"
	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/consensys/go-xt/pkg/util/source/lex"
	"github.com/consensys/go-xt/pkg/xt/diag"
	"github.com/consensys/go-xt/pkg/xt/token"
	"github.com/pkg/errors"
)

// Extension is the only file extension accepted for source files.
const Extension = ".xt"

var (
	letter = lex.Or(lex.Within('a', 'z'), lex.Within('A', 'Z'))
	digit  = lex.Within('0', '9')
	// Identifiers continue with letters, digits, '_' or '.'
	identifierRest = lex.Many(lex.Or(letter, digit, lex.Unit('_'), lex.Unit('.')))
	// Numbers continue with digits or '.', though the result is always an INT.
	numberRest = lex.Many(lex.Or(digit, lex.Unit('.')))
	// Section markers run to the next whitespace.
	sectionRest = lex.Many(lex.Not(' ', '\t', '\r', '\n'))
	// Registers and labels run to the next whitespace or separator.
	operandRest = lex.Many(lex.Not(' ', '\t', '\r', '\n', ';'))
	// Comments run up to the end of the line.
	commentRest = lex.Until('\n')
)

// Lexer turns the contents of a source file into a sequence of tokens.  A
// lexer can be reused for any number of files, though not concurrently.
type Lexer struct {
	sink diag.Sink
	// Name of the file being lexed.
	filename string
	// Source being lexed.
	src []rune
	// Offset of the next unread character.
	cursor int
	// Offset of the start of the token being assembled.
	oldCursor int
	// Line and column of oldCursor, both counting from 1.
	line   int
	column int
}

// New constructs a lexer which reports progress on the given sink.
func New(sink diag.Sink) *Lexer {
	return &Lexer{sink: sink}
}

// LexFile reads and tokenises the source file at the given path.  This fails
// if the file cannot be read, or does not have the expected extension.
func (l *Lexer) LexFile(path string) ([]token.Token, error) {
	if ext := filepath.Ext(path); ext != Extension {
		return nil, errors.Errorf("unable to lex '%s': unrecognised extension '%s' (expected %s)", path, ext, Extension)
	}
	//
	files, err := source.ReadFiles(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open '%s'", path)
	}
	//
	return l.Lex(&files[0])
}

// Lex tokenises a source file which has already been read.  Lexing stops at
// the first lexical error.
func (l *Lexer) Lex(srcfile *source.File) ([]token.Token, error) {
	var tokens []token.Token
	//
	l.reset()
	l.filename = srcfile.Filename()
	l.src = srcfile.Contents()
	//
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		} else if tok.IsEmpty() {
			break
		}
		//
		tokens = append(tokens, tok.Unwrap())
	}
	//
	l.sink.Report(diag.DEBUG, fmt.Sprintf("lexed %d tokens", len(tokens)), source.NewPosition(l.filename, 1, 1))
	//
	return tokens, nil
}

// Read the next token, returning None at the end of input.
//
//nolint:gocyclo
func (l *Lexer) next() (util.Option[token.Token], error) {
	for l.peek(0).HasValue() {
		c := l.advance().Unwrap()
		//
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.skip()
		case c == '\n':
			l.skip()
			l.newLine()
		case c == '#':
			return l.section()
		case c == '$':
			l.scan(operandRest)
			return l.stripped(token.REG)
		case c == ':':
			l.scan(operandRest)
			return l.stripped(token.LABEL)
		case c == '?':
			return l.token(token.QMARK), nil
		case c == ';':
			return l.token(token.SEMICOLON), nil
		case c == '=':
			return l.pair('=', token.EQ, "unterminated boolean equals")
		case c == '!':
			return l.pair('=', token.NEQ, "unterminated boolean not-equals")
		case c == '&':
			return l.pair('&', token.AND, "unterminated boolean and")
		case c == '|':
			return l.pair('|', token.OR, "unterminated boolean or")
		case c == '<':
			return l.optionalPair('=', token.LTE, token.LT), nil
		case c == '>':
			return l.optionalPair('=', token.GTE, token.GT), nil
		case c == '-':
			if !l.peek(0).HasValueAnd(func(x rune) bool { return x == '-' }) {
				return util.None[token.Token](), l.syntaxError("unterminated comment prefix")
			}
			//
			l.comment()
		case c == '.' || letter([]rune{c}) > 0:
			l.scan(identifierRest)
			return l.identifier()
		case digit([]rune{c}) > 0:
			l.scan(numberRest)
			return l.token(token.INT), nil
		default:
			return util.None[token.Token](), l.syntaxError(fmt.Sprintf("unknown character '%c'", c))
		}
	}
	//
	return util.None[token.Token](), nil
}

func (l *Lexer) section() (util.Option[token.Token], error) {
	l.scan(sectionRest)
	//
	switch text := l.text(); text {
	case "#code":
		return l.token(token.CODE), nil
	case "#data":
		return l.token(token.DATA), nil
	default:
		return util.None[token.Token](), l.syntaxError(fmt.Sprintf("unknown section '%s'", text[1:]))
	}
}

// Consume a comment, including its terminating newline.
func (l *Lexer) comment() {
	l.scan(commentRest)
	// Comment text is discarded
	l.skipText()
	//
	if l.advance().HasValue() {
		l.skip()
		l.newLine()
	}
}

func (l *Lexer) identifier() (util.Option[token.Token], error) {
	text := l.text()
	//
	if kind, ok := token.Keywords[text]; ok {
		return l.token(kind), nil
	} else if text[0] == '.' {
		return l.stripped(token.VAR)
	}
	//
	return l.token(token.NAME), nil
}

// Match the second character of a two-character operator, which must be
// present.
func (l *Lexer) pair(second rune, kind token.Kind, msg string) (util.Option[token.Token], error) {
	if !l.peek(0).HasValueAnd(func(x rune) bool { return x == second }) {
		return util.None[token.Token](), l.syntaxError(msg)
	}
	//
	l.advance()
	//
	return l.token(kind), nil
}

// Match the second character of an operator which may be either one or two
// characters long.
func (l *Lexer) optionalPair(second rune, long token.Kind, short token.Kind) util.Option[token.Token] {
	if l.peek(0).HasValueAnd(func(x rune) bool { return x == second }) {
		l.advance()
		return l.token(long)
	}
	//
	return l.token(short)
}

// Construct a token from the text between oldCursor and cursor, and move past
// it.
func (l *Lexer) token(kind token.Kind) util.Option[token.Token] {
	return l.tokenWithText(kind, l.text())
}

// Construct a token whose leading sigil is removed from its text.  The sigil
// must be followed by a name.
func (l *Lexer) stripped(kind token.Kind) (util.Option[token.Token], error) {
	text := l.text()
	//
	if len(text) == 1 {
		return util.None[token.Token](), l.syntaxError(fmt.Sprintf("missing name after '%s'", text))
	}
	//
	return l.tokenWithText(kind, text[1:]), nil
}

func (l *Lexer) tokenWithText(kind token.Kind, text string) util.Option[token.Token] {
	var (
		pos  = source.NewPosition(l.filename, l.line, l.column)
		span = source.NewSpan(l.oldCursor, l.cursor)
	)
	//
	l.skipText()
	//
	return util.Some(token.New(kind, text, pos, span))
}

// Text of the token currently being assembled.
func (l *Lexer) text() string {
	return string(l.src[l.oldCursor:l.cursor])
}

// Construct an error covering the token currently being assembled.
func (l *Lexer) syntaxError(msg string) error {
	pos := source.NewPosition(l.filename, l.line, l.column)
	return source.NewSyntaxError(pos, l.cursor-l.oldCursor, msg)
}

// Advance the cursor by however many characters the scanner accepts.
func (l *Lexer) scan(scanner lex.Scanner[rune]) {
	l.cursor += int(scanner(l.src[l.cursor:]))
}

func (l *Lexer) peek(offset int) util.Option[rune] {
	if index := l.cursor + offset; index >= 0 && index < len(l.src) {
		return util.Some(l.src[index])
	}
	//
	return util.None[rune]()
}

func (l *Lexer) advance() util.Option[rune] {
	if l.cursor >= len(l.src) {
		return util.None[rune]()
	}
	//
	c := l.src[l.cursor]
	l.cursor++
	//
	return util.Some(c)
}

// Discard the single character just consumed.
func (l *Lexer) skip() {
	l.oldCursor++
	l.column++
}

// Discard all the characters consumed since the last token.
func (l *Lexer) skipText() {
	l.column += l.cursor - l.oldCursor
	l.oldCursor = l.cursor
}

func (l *Lexer) newLine() {
	l.line++
	l.column = 1
}

func (l *Lexer) reset() {
	l.filename = ""
	l.src = nil
	l.cursor = 0
	l.oldCursor = 0
	l.line = 1
	l.column = 1
}
