// Package store is the only place akeso mutates files on disk.
// Every write goes through a synced temporary sibling and an atomic rename.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/akeso/akeso/internal/domain"
	"github.com/akeso/akeso/internal/logging"
)

const (
	tempSuffix   = ".akeso.tmp"
	backupSuffix = ".akeso.backup"
	defaultPerm  = 0o644
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Store implements domain.Store for a single workspace root.
type Store struct {
	workspace string
	fs        FileSystem
	logger    *zap.Logger
}

// New creates a Store backed by the operating system.
func New(workspace string, logger *zap.Logger) *Store {
	return NewWithFileSystem(workspace, OSFileSystem{}, logger)
}

// NewWithFileSystem creates a Store on top of fsys.
func NewWithFileSystem(workspace string, fsys FileSystem, logger *zap.Logger) *Store {
	if abs, err := filepath.Abs(workspace); err == nil {
		workspace = abs
	}
	return &Store{workspace: filepath.Clean(workspace), fs: fsys, logger: logging.OrNop(logger)}
}

// Workspace returns the absolute workspace root.
func (s *Store) Workspace() string { return s.workspace }

// EnsureWorkspace creates the workspace directory when it is missing.
func (s *Store) EnsureWorkspace() error {
	info, err := s.fs.Stat(s.workspace)
	if err == nil {
		if !info.IsDir() {
			return &domain.WorkspaceCreationError{Path: s.workspace, Err: errors.New("not a directory")}
		}
		return nil
	}
	if err := s.fs.MkdirAll(s.workspace, 0o755); err != nil {
		return &domain.WorkspaceCreationError{Path: s.workspace, Err: err}
	}
	s.logger.Info("created workspace", zap.String("path", s.workspace))
	return nil
}

// ReadText returns the file content with a leading UTF-8 byte-order mark removed.
func (s *Store) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.ReadError{Path: path, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", &domain.ReadError{Path: path, Err: errors.New("content is not valid UTF-8")}
	}
	return string(data), nil
}

// AtomicWrite replaces path with content. The data is staged in a temporary
// sibling, synced to stable storage and renamed over the target. On failure
// the temporary file is removed and the target is left as it was.
func (s *Store) AtomicWrite(path, content string) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	perm := fs.FileMode(defaultPerm)
	if info, statErr := s.fs.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := s.fs.CreateTemp(dir, base+".*"+tempSuffix)
	if err != nil {
		return &domain.WriteError{Path: path, Op: "create temp", Err: err}
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if committed {
			return
		}
		if rmErr := s.fs.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.logger.Warn("temporary file left behind", zap.String("path", tmpPath), zap.Error(rmErr))
		}
	}()

	if _, err := tmp.Write([]byte(content)); err != nil {
		tmp.Close()
		return &domain.WriteError{Path: path, Op: "write", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &domain.WriteError{Path: path, Op: "sync", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.WriteError{Path: path, Op: "close", Err: err}
	}
	if err := s.fs.Chmod(tmpPath, perm); err != nil {
		return &domain.WriteError{Path: path, Op: "chmod", Err: err}
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		return &domain.WriteError{Path: path, Op: "rename", Err: err}
	}

	committed = true
	s.logger.Debug("wrote file", zap.String("path", path), zap.Int("bytes", len(content)))
	return nil
}

// CreateBackup copies the current content of path to a fresh sibling named
// <stem>.akeso.backup, or <stem>-<n>.akeso.backup when that name is taken.
// An existing backup is never overwritten.
func (s *Store) CreateBackup(path string) (string, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return "", &domain.WriteError{Path: path, Op: "backup", Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.WriteError{Path: path, Op: "backup", Err: err}
	}

	for n := 0; ; n++ {
		candidate := backupName(path, n)
		w, err := s.fs.OpenExclusive(candidate, info.Mode().Perm())
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", &domain.WriteError{Path: candidate, Op: "backup", Err: err}
		}

		_, werr := w.Write(data)
		cerr := w.Close()
		if werr != nil || cerr != nil {
			s.fs.Remove(candidate)
			return "", &domain.WriteError{Path: candidate, Op: "backup", Err: errors.Join(werr, cerr)}
		}
		if err := s.fs.Chtimes(candidate, info.ModTime(), info.ModTime()); err != nil {
			s.logger.Debug("backup timestamps not preserved", zap.String("path", candidate), zap.Error(err))
		}
		s.logger.Info("created backup", zap.String("target", path), zap.String("backup", candidate))
		return candidate, nil
	}
}

func backupName(path string, n int) string {
	dir, base := filepath.Split(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if n == 0 {
		return filepath.Join(dir, stem+backupSuffix)
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, backupSuffix))
}
