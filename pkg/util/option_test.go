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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOption_Some(t *testing.T) {
	opt := Some(5)
	//
	require.True(t, opt.HasValue())
	require.False(t, opt.IsEmpty())
	require.Equal(t, 5, opt.Unwrap())
}

func TestOption_None(t *testing.T) {
	opt := None[string]()
	//
	require.False(t, opt.HasValue())
	require.True(t, opt.IsEmpty())
	require.Panics(t, func() { opt.Unwrap() })
}

func TestOption_HasValueAnd(t *testing.T) {
	even := func(x int) bool { return x%2 == 0 }
	//
	require.True(t, Some(4).HasValueAnd(even))
	require.False(t, Some(3).HasValueAnd(even))
	require.False(t, None[int]().HasValueAnd(even))
}

// Options hold their value by copy.
func TestOption_Copy(t *testing.T) {
	arr := [2]int{1, 2}
	opt := Some(arr)
	arr[0] = 3
	//
	require.Equal(t, [2]int{1, 2}, opt.Unwrap())
}
