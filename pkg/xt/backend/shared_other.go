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

//go:build !(darwin || freebsd || linux)

package backend

import (
	"runtime"

	"github.com/pkg/errors"
)

func loadShared(path string) (Backend, error) {
	return nil, errors.Errorf("unable to open backend '%s': C backends are not supported on %s", path, runtime.GOOS)
}
