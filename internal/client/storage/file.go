package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/timeflow/internal/filex"
)

const filePerm = 0o600

// FileHandle is bound to a single data file.
type FileHandle struct {
	path string
}

func NewFileHandle(path string) *FileHandle {
	return &FileHandle{path: path}
}

func (h *FileHandle) Name() string { return filepath.Base(h.path) }

func (h *FileHandle) Path() string { return h.path }

func (h *FileHandle) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", h.path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", h.path, err)
	}
	return data, nil
}

func (h *FileHandle) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return filex.WriteFileAtomic(h.path, data, filePerm)
}
