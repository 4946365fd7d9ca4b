package domain

import "fmt"

// ReadError means a target file is missing or unreadable.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("reading %s: %v", e.Path, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// WriteError means a temporary-file, backup or rename step failed.
// The target file is left untouched whenever this is returned.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s (%s): %v", e.Path, e.Op, e.Err)
}
func (e *WriteError) Unwrap() error { return e.Err }

// ConfigParseError is logged and never aborts a run; defaults are kept.
type ConfigParseError struct {
	File string
	Err  error
}

func (e *ConfigParseError) Error() string { return fmt.Sprintf("parsing %s: %v", e.File, e.Err) }
func (e *ConfigParseError) Unwrap() error { return e.Err }

// WorkspaceCreationError aborts the run before any scanning starts.
type WorkspaceCreationError struct {
	Path string
	Err  error
}

func (e *WorkspaceCreationError) Error() string {
	return fmt.Sprintf("workspace creation failed for %s: %v", e.Path, e.Err)
}
func (e *WorkspaceCreationError) Unwrap() error { return e.Err }
