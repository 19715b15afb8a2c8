//go:build unix

package mmap

import (
	"errors"
	"runtime/debug"

	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// File represents a read-only memory-mapped file.
type File struct {
	FileDescriptor int
	Data           []byte
}

// Open maps the whole of the file at the given path into memory for reading.
// Empty files are not mapped, and have no data.
func Open(path string) (*File, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to open file %#v", path)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		_ = unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to obtain size of file %#v", path)
	} else if stat.Mode&unix.S_IFMT == unix.S_IFDIR {
		_ = unix.Close(fd)
		return nil, pkgErrors.Errorf("failed to open file %#v: is a directory", path)
	}

	if stat.Size == 0 {
		return &File{fd, nil}, nil
	}

	data, err := unix.Mmap(fd, 0, int(stat.Size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, pkgErrors.Wrapf(err, "failed to memory map file %#v", path)
	}

	return &File{fd, data}, nil
}

// Bytes copies the mapped contents out of the memory map, so that they
// remain valid after the file is closed.
func (f *File) Bytes() (bytes []byte, err error) {
	// Install a page fault handler, so that I/O errors against the
	// memory map (e.g., due to disk failure or truncation) don't cause
	// us to crash.
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)

		if recover() != nil {
			bytes, err = nil, errors.New("page fault occurred while reading from memory map")
		}
	}()

	bytes = make([]byte, len(f.Data))
	copy(bytes, f.Data)

	return bytes, nil
}

// Close unmaps the file and releases its descriptor.
func (f *File) Close() error {
	if f.Data != nil {
		if err := unix.Munmap(f.Data); err != nil {
			return pkgErrors.Wrap(err, "failed to unmap file")
		}

		f.Data = nil
	}

	return unix.Close(f.FileDescriptor)
}

// ReadFile reads the entire contents of a file through a memory map.
func ReadFile(path string) ([]byte, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}

	bytes, err := f.Bytes()
	if cerr := f.Close(); err == nil && cerr != nil {
		err = pkgErrors.Wrapf(cerr, "failed to close file %#v", path)
	}

	return bytes, err
}
