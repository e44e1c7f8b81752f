package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// File is a slot kept in a single file on disk.
type File struct {
	nopCloser
	path string
}

// NewFile returns the slot stored in the file at path. The file is created on
// first save.
func NewFile(path string) *File { return &File{path: path} }

// Path returns the file path of the slot.
func (f *File) Path() string { return f.path }

// Load reads the whole file. A missing file is reported as fs.ErrNotExist.
func (f *File) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("could not read sets file %q: %w", f.path, err)
	}
	return data, nil
}

// Save replaces the file content. The data is written to a temporary file in
// the same directory first, then renamed over the previous one.
func (f *File) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	// Ensure the directory for the sets file exists.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for sets file %q: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("error opening sets file %q for writing: %w", f.path, err)
	}
	defer os.Remove(tmp.Name()) // a no-op once renamed.

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write sets file %q: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write sets file %q: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("could not replace sets file %q: %w", f.path, err)
	}
	return nil
}
