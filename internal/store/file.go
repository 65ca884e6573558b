package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps one JSON file per collection under a data directory.
// This is the default backend and matches the layout of the reference system
// (flights.json, customers.json, orders.json).
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Load(_ context.Context, collection string) ([]byte, bool, error) {
	doc, err := os.ReadFile(b.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (b *FileBackend) Save(_ context.Context, collection string, doc []byte) error {
	return os.WriteFile(b.path(collection), doc, 0o644)
}

func (b *FileBackend) path(collection string) string {
	return filepath.Join(b.dir, collection+".json")
}
