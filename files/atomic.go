package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// AtomicWriter writes to a hidden sibling of path and renames it into place
// on Commit, so path never holds a partial file.
type AtomicWriter struct {
	path    string
	tmpPath string
	file    *os.File
}

func NewAtomicWriter(path string) (*AtomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.part", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &AtomicWriter{
		path:    path,
		tmpPath: tmpPath,
		file:    f,
	}, nil
}

func (w *AtomicWriter) Write(p []byte) (n int, err error) {
	return w.file.Write(p)
}

func (w *AtomicWriter) Commit() error {
	if err := w.file.Sync(); err != nil {
		_ = w.Abort()
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		_ = os.Remove(w.tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Abort discards the temporary file.
func (w *AtomicWriter) Abort() error {
	_ = w.file.Close()
	return os.Remove(w.tmpPath)
}

// WriteFileAtomic writes data to path through an AtomicWriter.
func WriteFileAtomic(path string, data []byte) error {
	w, err := NewAtomicWriter(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Abort()
		return fmt.Errorf("write: %w", err)
	}
	return w.Commit()
}
