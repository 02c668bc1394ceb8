package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS defines a file system interface that supports creating files and directories.
// It extends basic file system operations with write capabilities for
// saving program images.
type CreateFS interface {
	// Sub returns a filesystem for a subdirectory.
	Sub(name string) (sub CreateFS, err error)
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a new directory with the specified permissions.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// DirFS is a host directory, usable both as an fs.FS and a CreateFS.
type DirFS string

var _ CreateFS = DirFS("")
var _ fs.FS = DirFS("")

// Open opens a file for reading.
func (dir DirFS) Open(name string) (fs.File, error) {
	return os.DirFS(string(dir)).Open(name)
}

// Sub returns the subdirectory as a DirFS.
func (dir DirFS) Sub(name string) (sub CreateFS, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "sub", Path: name, Err: fs.ErrInvalid}
		return
	}
	sub = DirFS(filepath.Join(string(dir), filepath.FromSlash(name)))
	return
}

// Create creates or truncates a file.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "create", Path: name, Err: fs.ErrInvalid}
		return
	}
	return os.Create(filepath.Join(string(dir), filepath.FromSlash(name)))
}

// Mkdir creates a directory.
func (dir DirFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrInvalid}
		return
	}
	return os.Mkdir(filepath.Join(string(dir), filepath.FromSlash(name)), filemode)
}
