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

//go:build darwin || freebsd || linux

package backend

import (
	"github.com/consensys/go-xt/pkg/xt/ast"
	"github.com/consensys/go-xt/pkg/xt/ast/wire"
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

// Backend loaded from a shared library through its C entry point.
type sharedBackend struct {
	path string
	// const char *compile(const uint8_t *ast, size_t len)
	compile func(data *byte, length uintptr) string
}

func loadShared(path string) (Backend, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open backend '%s'", path)
	}
	//
	symbol, err := purego.Dlsym(handle, C_SYMBOL)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to find symbol '%s'", C_SYMBOL)
	}
	//
	backend := &sharedBackend{path: path}
	purego.RegisterFunc(&backend.compile, symbol)
	//
	return backend, nil
}

func (p *sharedBackend) Compile(program ast.Program) (string, error) {
	// Never empty, since it always holds the header
	bytes := wire.Encode(program)
	//
	if output := p.compile(&bytes[0], uintptr(len(bytes))); output != "" {
		return output, nil
	}
	//
	return "", errors.Errorf("backend '%s' failed to compile", p.path)
}
