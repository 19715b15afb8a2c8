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
package test

import (
	"testing"

	"github.com/consensys/go-xt/pkg/test/util"
)

// ===================================================================
// Valid Tests
// ===================================================================

func Test_Valid_Arithmetic(t *testing.T) {
	util.CheckValid(t, "valid/valid_01")
}

func Test_Valid_Enum(t *testing.T) {
	util.CheckValid(t, "valid/valid_02")
}

func Test_Valid_IfElse(t *testing.T) {
	util.CheckValid(t, "valid/valid_03")
}

func Test_Valid_Loops(t *testing.T) {
	util.CheckValid(t, "valid/valid_04")
}

func Test_Valid_Break(t *testing.T) {
	util.CheckValid(t, "valid/valid_05")
}

func Test_Valid_SectionOrder(t *testing.T) {
	util.CheckValid(t, "valid/valid_06")
}

func Test_Valid_NumberedRegisters(t *testing.T) {
	util.CheckValid(t, "valid/valid_07")
}
