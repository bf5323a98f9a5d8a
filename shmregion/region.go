// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package shmregion provides a named shared-memory region usable as the
// backing []byte for a bipring SPSC or SPMC buffer shared across
// processes. It implements bipring's shared-memory collaborator
// contract: open-or-create by name, map, and destroy by name.
//
// bipring never imports this package; it is a caller-side convenience
// for wiring peers in different processes to the same bytes.
package shmregion

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/sys/unix"
)

// Access selects whether a Region is mapped read-only or read-write.
type Access int

const (
	// ReadOnly maps the region for reading only.
	ReadOnly Access = iota
	// ReadWrite maps the region for reading and writing.
	ReadWrite
)

// ErrInvalidName indicates a region name is empty, too long, or contains
// a character other than a letter or digit.
var ErrInvalidName = errors.New("shmregion: invalid name")

const maxNameLen = 255

const shmDir = "/dev/shm/"

func validateName(name string) error {
	if len(name) == 0 || len(name) > maxNameLen {
		return ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return ErrInvalidName
		}
	}
	return nil
}

// Region is a named, memory-mapped byte range shared across processes.
type Region struct {
	name string
	fd   int
	m    []byte
}

// OpenOrCreate opens the named region if it already exists, creating it
// at size bytes otherwise. If the region exists but is larger than size,
// the whole existing file is mapped; Region.Bytes reflects the actual
// capacity, which may exceed size.
func OpenOrCreate(name string, size int, access Access) (*Region, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("shmregion: size must be positive, got %d", size)
	}

	path := shmDir + name
	openFlags := unix.O_CREAT | unix.O_RDWR
	fd, err := unix.Open(path, openFlags, 0600)
	if err != nil {
		return nil, fmt.Errorf("shmregion: open %s: %w", path, err)
	}

	st, err := unixFstat(fd)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("shmregion: stat %s: %w", path, err)
	}
	mapSize := size
	if int(st.Size) > mapSize {
		mapSize = int(st.Size)
	} else if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("shmregion: truncate %s: %w", path, err)
	}

	prot := unix.PROT_READ
	if access == ReadWrite {
		prot |= unix.PROT_WRITE
	}
	m, err := unix.Mmap(fd, 0, mapSize, prot, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("shmregion: mmap %s: %w", path, err)
	}

	return &Region{name: name, fd: fd, m: m}, nil
}

func unixFstat(fd int) (unix.Stat_t, error) {
	var st unix.Stat_t
	err := unix.Fstat(fd, &st)
	return st, err
}

// Bytes returns the mapped region. The slice is valid until Close.
func (r *Region) Bytes() []byte {
	return r.m
}

// Name returns the region's name as passed to OpenOrCreate.
func (r *Region) Name() string {
	return r.name
}

// Close unmaps the region and closes its file descriptor. It does not
// remove the backing file; use Destroy for that.
func (r *Region) Close() error {
	if r.m != nil {
		if err := unix.Munmap(r.m); err != nil {
			return fmt.Errorf("shmregion: munmap %s: %w", r.name, err)
		}
		r.m = nil
	}
	if err := unix.Close(r.fd); err != nil {
		return fmt.Errorf("shmregion: close %s: %w", r.name, err)
	}
	return nil
}

// Destroy removes the named region's backing file. It succeeds whether
// or not the region currently exists.
func Destroy(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	err := unix.Unlink(shmDir + name)
	if err != nil && !errors.Is(err, unix.ENOENT) {
		return fmt.Errorf("shmregion: unlink %s: %w", name, err)
	}
	return nil
}
