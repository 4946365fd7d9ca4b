package store

import (
	"io"
	"io/fs"
	"os"
	"time"
)

// TempFile is the subset of *os.File used while staging an atomic write.
type TempFile interface {
	io.Writer
	Name() string
	Sync() error
	Close() error
}

// FileSystem abstracts the primitives the store mutates the disk with.
type FileSystem interface {
	CreateTemp(dir, pattern string) (TempFile, error)
	OpenExclusive(path string, perm fs.FileMode) (io.WriteCloser, error)
	Rename(oldPath, newPath string) error
	Remove(path string) error
	Chmod(path string, perm fs.FileMode) error
	Chtimes(path string, atime, mtime time.Time) error
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
}

// OSFileSystem implements FileSystem with the os package.
type OSFileSystem struct{}

func (OSFileSystem) CreateTemp(dir, pattern string) (TempFile, error) {
	return os.CreateTemp(dir, pattern)
}

// OpenExclusive creates path and fails if it already exists.
func (OSFileSystem) OpenExclusive(path string, perm fs.FileMode) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

func (OSFileSystem) Rename(oldPath, newPath string) error { return os.Rename(oldPath, newPath) }

func (OSFileSystem) Remove(path string) error { return os.Remove(path) }

func (OSFileSystem) Chmod(path string, perm fs.FileMode) error { return os.Chmod(path, perm) }

func (OSFileSystem) Chtimes(path string, atime, mtime time.Time) error {
	return os.Chtimes(path, atime, mtime)
}

func (OSFileSystem) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

func (OSFileSystem) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
