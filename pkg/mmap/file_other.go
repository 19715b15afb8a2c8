//go:build !unix

package mmap

import (
	"os"

	pkgErrors "github.com/pkg/errors"
)

// ReadFile reads the entire contents of a file.  Platforms without mmap(2)
// fall back to an ordinary read.
func ReadFile(path string) ([]byte, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to open file %#v", path)
	}

	return bytes, nil
}
