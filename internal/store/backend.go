package store

import (
	"errors"
	"io/fs"

	"fjacquet/expense-tracker/internal/fileutils"
	"fjacquet/expense-tracker/internal/parsererror"
)

// Backend provides the raw read/write of one persisted collection.
// Read returns parsererror.ErrNotFound when nothing has been persisted yet.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Location() string
}

// FileBackend persists a collection to a single file on disk.
type FileBackend struct {
	Path string
}

// NewFileBackend creates a backend for the file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// Read returns the file contents, or ErrNotFound if the file is absent.
func (b *FileBackend) Read() ([]byte, error) {
	data, err := fileutils.ReadFile(b.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, parsererror.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write replaces the file contents.
func (b *FileBackend) Write(data []byte) error {
	return fileutils.WriteFile(b.Path, data, 0600)
}

// Location returns the file path.
func (b *FileBackend) Location() string {
	return b.Path
}

// MemoryBackend keeps a collection in memory. It is used by tests and can
// simulate write failures.
type MemoryBackend struct {
	Data     []byte
	Present  bool
	WriteErr error
	Writes   int
}

// NewMemoryBackend returns a backend holding data. A nil data slice means
// nothing has been persisted.
func NewMemoryBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{Data: data, Present: data != nil}
}

func (b *MemoryBackend) Read() ([]byte, error) {
	if !b.Present {
		return nil, parsererror.ErrNotFound
	}
	return append([]byte(nil), b.Data...), nil
}

func (b *MemoryBackend) Write(data []byte) error {
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.Data = append([]byte(nil), data...)
	b.Present = true
	b.Writes++
	return nil
}

func (b *MemoryBackend) Location() string {
	return "memory"
}
