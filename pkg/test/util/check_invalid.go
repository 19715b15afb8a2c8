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
package util

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-xt/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the xt source files, and their expected listings, are found.
const TestDir = "../../testdata"

// ErrorCompiler compiles a source file, producing the error it should fail
// with (or nil).
type ErrorCompiler func(*source.File) error

// CheckInvalid checks that a given source file fails to compile with exactly
// the error described by its "--error" annotation.
func CheckInvalid(t *testing.T, test string, compiler ErrorCompiler) {
	var filename = fmt.Sprintf("%s/%s.xt", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	// Extract expected errors for comparison
	expected, errs := ExtractAttributes(srcfile, extractSyntaxError)
	//
	if len(errs) > 0 {
		// Report any errors encountered parsing the attributes themselves.
		t.Fatal(errors.Join(errs...))
	} else if len(expected) != 1 {
		t.Fatalf("Error %s should have exactly one expected error (found %d)\n", filename, len(expected))
	}
	// Compile source file to produce error
	checkExpectedError(t, srcfile, compiler(srcfile), expected[0])
}

func checkExpectedError(t *testing.T, srcfile *source.File, actual error, expected *source.SyntaxError) {
	var serr *source.SyntaxError
	//
	switch {
	case actual == nil:
		t.Fatalf("Error %s should not have compiled\n", srcfile.Filename())
	case !errors.As(actual, &serr):
		t.Fatalf("Error %s\n unexpected error %s\n   expected error %s\n", srcfile.Filename(), actual,
			errorToString(expected))
	case serr.Message() != expected.Message() || serr.Position() != expected.Position() ||
		serr.Length() != expected.Length():
		t.Fatalf("Error %s\n unexpected error %s\n   expected error %s\n", srcfile.Filename(), errorToString(serr),
			errorToString(expected))
	}
}

func readSourceFile(t *testing.T, filename string) *source.File {
	// Read source file
	bytes, err := os.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	// Package up as source file
	return source.NewSourceFile(filename, bytes)
}

// Convert a syntax error into a useful human readable string.
func errorToString(err *source.SyntaxError) string {
	pos := err.Position()
	//
	return fmt.Sprintf("%s:%d:%d-%d %s", pos.File, pos.Line, pos.Column, pos.Column+err.Length(), err.Message())
}
