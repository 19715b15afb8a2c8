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

// Package main is a sample backend, built with -buildmode=c-shared and loaded
// by xtc using the c ABI.  The syntax tree arrives in wire encoding.
package main

/*
#include <stdlib.h>
#include <stdint.h>
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/consensys/go-xt/pkg/xt/ast/wire"
	"github.com/consensys/go-xt/pkg/xt/backend/template"
)

// Result of the most recent call, released on the next call.
var last *C.char

//export compile
func compile(data *C.uint8_t, length C.size_t) *C.char {
	if last != nil {
		C.free(unsafe.Pointer(last))
		last = nil
	}
	//
	program, err := wire.Decode(C.GoBytes(unsafe.Pointer(data), C.int(length)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	//
	output, err := template.Generate(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	//
	last = C.CString(output)
	//
	return last
}

func main() {}
