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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-xt/pkg/util/source"
	"github.com/consensys/go-xt/pkg/xt/diag"
	"github.com/consensys/go-xt/pkg/xt/token"
	"github.com/stretchr/testify/require"
)

func TestLexer_DataAndCode(t *testing.T) {
	tokens := checkLex(t, "#data\n.x 5\n#code\nexit .x\n")
	//
	require.Equal(t, []token.Token{
		token.New(token.DATA, "#data", source.NewPosition("test.xt", 1, 1), source.NewSpan(0, 5)),
		token.New(token.VAR, "x", source.NewPosition("test.xt", 2, 1), source.NewSpan(6, 8)),
		token.New(token.INT, "5", source.NewPosition("test.xt", 2, 4), source.NewSpan(9, 10)),
		token.New(token.CODE, "#code", source.NewPosition("test.xt", 3, 1), source.NewSpan(11, 16)),
		token.New(token.EXIT, "exit", source.NewPosition("test.xt", 4, 1), source.NewSpan(17, 21)),
		token.New(token.VAR, "x", source.NewPosition("test.xt", 4, 6), source.NewSpan(22, 24)),
	}, tokens)
}

func TestLexer_Kinds(t *testing.T) {
	checkKinds(t, "add $a 1", token.ADD, token.REG, token.INT)
	checkKinds(t, "sub .x $b", token.SUB, token.VAR, token.REG)
	checkKinds(t, "mov $r .v", token.MOV, token.REG, token.VAR)
	checkKinds(t, "jmp :top", token.JMP, token.LABEL)
	checkKinds(t, ":top break", token.LABEL, token.BREAK)
	checkKinds(t, "enum e a b 5 c end", token.ENUM, token.NAME, token.NAME, token.NAME, token.INT, token.NAME, token.END)
	checkKinds(t, ".v ?", token.VAR, token.QMARK)
	checkKinds(t, "if $a == 1 in else end", token.IF, token.REG, token.EQ, token.INT, token.IN, token.ELSE, token.END)
	checkKinds(t, "while loop for", token.WHILE, token.LOOP, token.FOR)
}

func TestLexer_Operators(t *testing.T) {
	checkKinds(t, "== != < <= > >=", token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE)
	checkKinds(t, "&& ||", token.AND, token.OR)
	checkKinds(t, "$a<$b", token.REG)
	checkKinds(t, "1<2", token.INT, token.LT, token.INT)
	checkKinds(t, ".i;.i<10;1", token.VAR, token.SEMICOLON, token.VAR, token.LT, token.INT, token.SEMICOLON, token.INT)
}

func TestLexer_Sigils(t *testing.T) {
	tokens := checkLex(t, "$reg .var :label")
	//
	require.Equal(t, "reg", tokens[0].Text)
	require.Equal(t, "var", tokens[1].Text)
	require.Equal(t, "label", tokens[2].Text)
	// Spans still cover the sigil
	require.Equal(t, 4, tokens[0].Span.Length())
	require.Equal(t, 4, tokens[1].Span.Length())
	require.Equal(t, 6, tokens[2].Span.Length())
}

func TestLexer_RegisterStopsAtSeparator(t *testing.T) {
	tokens := checkLex(t, "for $i;$i;1")
	//
	require.Equal(t, "i", tokens[1].Text)
	require.Equal(t, token.SEMICOLON, tokens[2].Kind)
	require.Equal(t, "i", tokens[3].Text)
}

func TestLexer_Keywords(t *testing.T) {
	for text, kind := range token.Keywords {
		tokens := checkLex(t, text)
		require.Len(t, tokens, 1)
		require.Equal(t, kind, tokens[0].Kind)
	}
	// Keywords must match exactly
	checkKinds(t, "exits add2 If", token.NAME, token.NAME, token.NAME)
}

func TestLexer_DottedNumber(t *testing.T) {
	tokens := checkLex(t, "1.5")
	//
	require.Len(t, tokens, 1)
	require.Equal(t, token.INT, tokens[0].Kind)
	require.Equal(t, "1.5", tokens[0].Text)
}

func TestLexer_Comments(t *testing.T) {
	tokens := checkLex(t, "-- first\n-- second\nexit 0 -- trailing\n  exit 1")
	//
	require.Len(t, tokens, 4)
	require.Equal(t, source.NewPosition("test.xt", 3, 1), tokens[0].Pos)
	require.Equal(t, source.NewPosition("test.xt", 3, 6), tokens[1].Pos)
	require.Equal(t, source.NewPosition("test.xt", 4, 3), tokens[2].Pos)
	require.Equal(t, source.NewPosition("test.xt", 4, 8), tokens[3].Pos)
}

func TestLexer_Whitespace(t *testing.T) {
	tokens := checkLex(t, "\texit\r\n 0")
	//
	require.Len(t, tokens, 2)
	require.Equal(t, source.NewPosition("test.xt", 1, 2), tokens[0].Pos)
	require.Equal(t, source.NewPosition("test.xt", 2, 2), tokens[1].Pos)
}

func TestLexer_Empty(t *testing.T) {
	require.Empty(t, checkLex(t, ""))
	require.Empty(t, checkLex(t, "  \n\n-- nothing\n"))
}

// Every token begins at the position it reports.
func TestLexer_Positions(t *testing.T) {
	input := "#data\n  .x ?\nenum e\n  a 3 b\nend\n#code\n:top\nif $a == .x && $b != 2 in\n  add $a 1\nend\njmp :top\n"
	srcfile := source.NewSourceFile("test.xt", []byte(input))
	tokens, err := New(diag.Discard).Lex(srcfile)
	require.NoError(t, err)
	//
	for _, tok := range tokens {
		require.Equal(t, tok.Pos, srcfile.PositionOf(tok.Span.Start()), tok.String())
	}
}

// Spans cover the source exactly, leaving out only comments and whitespace.
func TestLexer_SpansCoverSource(t *testing.T) {
	input := "-- header\n#data\n  .x 1.5 -- value\n  .y ?\n#code\n:loop\nif $0 >= .x || $a != 2 && $b < 3; in\n\tsub $0 1\nend\njmp :loop\n"
	srcfile := source.NewSourceFile("test.xt", []byte(input))
	tokens, err := New(diag.Discard).Lex(srcfile)
	require.NoError(t, err)
	//
	var (
		contents = srcfile.Contents()
		actual   strings.Builder
		expected strings.Builder
	)
	//
	for _, tok := range tokens {
		actual.WriteString(string(contents[tok.Span.Start():tok.Span.End()]))
	}
	//
	for _, line := range strings.Split(input, "\n") {
		line, _, _ = strings.Cut(line, "--")
		expected.WriteString(strings.Join(strings.Fields(line), ""))
	}
	//
	require.Equal(t, expected.String(), actual.String())
}

func TestLexer_Reuse(t *testing.T) {
	lexer := New(diag.Discard)
	//
	first, err := lexer.Lex(source.NewSourceFile("a.xt", []byte("\n\nexit 1")))
	require.NoError(t, err)
	second, err := lexer.Lex(source.NewSourceFile("b.xt", []byte("exit 1")))
	require.NoError(t, err)
	//
	require.Equal(t, source.NewPosition("a.xt", 3, 1), first[0].Pos)
	require.Equal(t, source.NewPosition("b.xt", 1, 1), second[0].Pos)
}

func TestLexer_Reports(t *testing.T) {
	var recorder diag.Recorder
	//
	_, err := New(&recorder).Lex(source.NewSourceFile("test.xt", []byte("exit 0")))
	require.NoError(t, err)
	require.Equal(t, []diag.Report{
		{Severity: diag.DEBUG, Message: "lexed 2 tokens", Location: source.NewPosition("test.xt", 1, 1)},
	}, recorder.Reports)
}

// ============================================================================
// Invalid
// ============================================================================

func TestLexer_Invalid_01(t *testing.T) {
	checkLexError(t, "#sekshun", 1, 1, "unknown section 'sekshun'")
}

func TestLexer_Invalid_02(t *testing.T) {
	checkLexError(t, "#code\nif $a = 1", 2, 7, "unterminated boolean equals")
}

func TestLexer_Invalid_03(t *testing.T) {
	checkLexError(t, "exit 0 - comment", 1, 8, "unterminated comment prefix")
}

func TestLexer_Invalid_04(t *testing.T) {
	checkLexError(t, "if $a ! 1", 1, 7, "unterminated boolean not-equals")
	checkLexError(t, "if $a & $b", 1, 7, "unterminated boolean and")
	checkLexError(t, "if $a | $b", 1, 7, "unterminated boolean or")
}

func TestLexer_Invalid_05(t *testing.T) {
	checkLexError(t, "\n  exit @", 2, 8, "unknown character '@'")
}

func TestLexer_Invalid_06(t *testing.T) {
	checkLexError(t, "mov $ 1", 1, 5, "missing name after '$'")
	checkLexError(t, "jmp :", 1, 5, "missing name after ':'")
	checkLexError(t, "exit .", 1, 6, "missing name after '.'")
}

func TestLexer_LexFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.xt")
	require.NoError(t, os.WriteFile(path, []byte("#code\nexit 0\n"), 0o600))
	//
	tokens, err := New(diag.Discard).LexFile(path)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	require.Equal(t, path, tokens[0].Pos.File)
}

func TestLexer_LexFile_Extension(t *testing.T) {
	_, err := New(diag.Discard).LexFile("prog.asm")
	require.ErrorContains(t, err, "unrecognised extension '.asm'")
}

func TestLexer_LexFile_Missing(t *testing.T) {
	_, err := New(diag.Discard).LexFile(filepath.Join(t.TempDir(), "missing.xt"))
	require.ErrorContains(t, err, "unable to open")
	require.ErrorIs(t, err, os.ErrNotExist)
}

// ============================================================================
// Helpers
// ============================================================================

func checkLex(t *testing.T, input string) []token.Token {
	t.Helper()
	//
	tokens, err := New(diag.Discard).Lex(source.NewSourceFile("test.xt", []byte(input)))
	require.NoError(t, err, input)
	//
	return tokens
}

func checkKinds(t *testing.T, input string, kinds ...token.Kind) {
	t.Helper()
	//
	var actual []token.Kind
	//
	for _, tok := range checkLex(t, input) {
		actual = append(actual, tok.Kind)
	}
	//
	require.Equal(t, kinds, actual, input)
}

func checkLexError(t *testing.T, input string, line int, column int, msg string) {
	t.Helper()
	//
	var serr *source.SyntaxError
	//
	_, err := New(diag.Discard).Lex(source.NewSourceFile("test.xt", []byte(input)))
	require.ErrorAs(t, err, &serr, input)
	require.Equal(t, msg, serr.Message())
	require.Equal(t, source.NewPosition("test.xt", line, column), serr.Position())
}
