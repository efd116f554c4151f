// Package txn provides a filesystem transaction scope: file and directory
// writes are journaled so a failed run can be undone in reverse order.
package txn

import (
	"fmt"
	"os"
	"path/filepath"
)

type undoKind int

const (
	undoRemoveFile undoKind = iota
	undoRemoveDir
	undoRestoreFile
)

type undoEntry struct {
	kind undoKind
	path string
	prev []byte
	mode os.FileMode
}

// Scope journals filesystem mutations for one transactional run. It is an
// explicit value handed to the executor and generators rather than
// process-wide state. A Scope is single-use per Run and not safe for
// concurrent writers.
type Scope struct {
	journal []undoEntry
}

// NewScope returns an empty transaction scope.
func NewScope() *Scope {
	return &Scope{}
}

// WriteFile writes a file through the scope, journaling either the file's
// creation or its previous content.
func (s *Scope) WriteFile(path string, data []byte, perm os.FileMode) error {
	prev, err := os.ReadFile(path)
	switch {
	case err == nil:
		info, statErr := os.Stat(path)
		mode := perm
		if statErr == nil {
			mode = info.Mode()
		}
		s.journal = append(s.journal, undoEntry{kind: undoRestoreFile, path: path, prev: prev, mode: mode})
	case os.IsNotExist(err):
		s.journal = append(s.journal, undoEntry{kind: undoRemoveFile, path: path})
	default:
		return fmt.Errorf("failed to read %s before write: %w", path, err)
	}

	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates a directory tree through the scope, journaling every
// directory that did not exist before.
func (s *Scope) MkdirAll(path string, perm os.FileMode) error {
	created := missingDirs(path)
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	// Journal top-down; rollback walks the journal in reverse, so the
	// deepest directory is removed first.
	for _, dir := range created {
		s.journal = append(s.journal, undoEntry{kind: undoRemoveDir, path: dir})
	}
	return nil
}

// missingDirs lists the directories MkdirAll would create, outermost first.
func missingDirs(path string) []string {
	var missing []string
	for p := filepath.Clean(path); ; {
		if _, err := os.Stat(p); err == nil || !os.IsNotExist(err) {
			break
		}
		missing = append([]string{p}, missing...)
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	return missing
}

// Run executes fn inside this scope. If fn returns an error, every journaled
// mutation is rolled back in reverse order and the original error is
// returned wrapped with a rollback note. On success the journal is cleared.
func (s *Scope) Run(name string, fn func() error) error {
	s.journal = s.journal[:0]

	if err := fn(); err != nil {
		s.rollback()
		return fmt.Errorf("transaction %q failed, changes rolled back: %w", name, err)
	}

	s.journal = s.journal[:0]
	return nil
}

// rollback undoes the journal in reverse order. Best effort: a failed undo
// does not stop the remaining entries.
func (s *Scope) rollback() {
	for i := len(s.journal) - 1; i >= 0; i-- {
		e := s.journal[i]
		switch e.kind {
		case undoRemoveFile:
			os.Remove(e.path)
		case undoRemoveDir:
			os.Remove(e.path)
		case undoRestoreFile:
			os.WriteFile(e.path, e.prev, e.mode)
		}
	}
	s.journal = s.journal[:0]
}
