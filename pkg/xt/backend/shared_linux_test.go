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

//go:build linux

package backend

import (
	"testing"

	"github.com/ebitengine/purego"
	"github.com/stretchr/testify/require"
)

// Any glibc system has a C library, but none has a compile entry point.
const LIBC = "libc.so.6"

func TestLoad_SharedWithoutCompile(t *testing.T) {
	requireLibc(t)
	//
	_, err := Load(LIBC, ABI_C)
	require.ErrorContains(t, err, "unable to find symbol 'compile'")
}

func TestLoad_PluginNotGo(t *testing.T) {
	requireLibc(t)
	//
	_, err := Load(LIBC, ABI_GO)
	require.ErrorContains(t, err, "unable to open backend '"+LIBC+"'")
}

func requireLibc(t *testing.T) {
	t.Helper()
	//
	if _, err := purego.Dlopen(LIBC, purego.RTLD_NOW|purego.RTLD_GLOBAL); err != nil {
		t.Skipf("%s unavailable: %v", LIBC, err)
	}
}
