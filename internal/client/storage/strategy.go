package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/timeflow/internal/filex"
)

type Kind string

const (
	KindFile  Kind = "file"
	KindLocal Kind = "local"
)

// Strategy decides where diary documents come from and go to.
type Strategy interface {
	Kind() Kind
	// Select lets the user choose an existing document.
	Select(ctx context.Context) (Backend, error)
	// Create returns the backend a new document should be written to.
	Create(ctx context.Context, suggestedName string) (Backend, error)
	// Resume reopens the document kept in the local store.
	Resume(ctx context.Context) (Backend, error)
	// Export writes a copy of data to a user-chosen file and returns its path.
	Export(ctx context.Context, suggestedName string, data []byte) (string, error)
}

// HandleStrategy binds the session to data files chosen through a picker.
type HandleStrategy struct {
	picker FilePicker
}

func NewHandleStrategy(picker FilePicker) *HandleStrategy {
	return &HandleStrategy{picker: picker}
}

func (s *HandleStrategy) Kind() Kind { return KindFile }

func (s *HandleStrategy) Select(ctx context.Context) (Backend, error) {
	path, err := s.picker.PickOpen(ctx)
	if err != nil {
		return nil, err
	}
	return NewFileHandle(path), nil
}

func (s *HandleStrategy) Create(ctx context.Context, suggestedName string) (Backend, error) {
	path, err := s.picker.PickSave(ctx, suggestedName)
	if err != nil {
		return nil, err
	}
	return NewFileHandle(path), nil
}

func (s *HandleStrategy) Resume(context.Context) (Backend, error) {
	return nil, ErrUnsupported
}

func (s *HandleStrategy) Export(ctx context.Context, suggestedName string, data []byte) (string, error) {
	return ExportTo(ctx, s.picker, suggestedName, data)
}

// LocalStrategy keeps the document in the local store and uses files only
// for upload and download.
type LocalStrategy struct {
	picker FilePicker
	local  *LocalBackend
}

func NewLocalStrategy(picker FilePicker, kv KV) *LocalStrategy {
	return &LocalStrategy{picker: picker, local: NewLocalBackend(kv)}
}

func (s *LocalStrategy) Kind() Kind { return KindLocal }

// Select uploads a file and stages it on the local backend.
func (s *LocalStrategy) Select(ctx context.Context) (Backend, error) {
	path, err := s.picker.PickOpen(ctx)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrInvalidDocument)
	}
	s.local.Stage(filepath.Base(path), data)
	return s.local, nil
}

// Create refuses to overwrite an existing local diary.
func (s *LocalStrategy) Create(ctx context.Context, _ string) (Backend, error) {
	data, err := s.local.kv.Get(ctx, LocalDataKey)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		return nil, ErrAlreadyExists
	}
	return s.local, nil
}

func (s *LocalStrategy) Resume(ctx context.Context) (Backend, error) {
	s.local.Unstage()
	if _, err := s.local.Read(ctx); err != nil {
		return nil, err
	}
	return s.local, nil
}

func (s *LocalStrategy) Export(ctx context.Context, suggestedName string, data []byte) (string, error) {
	return ExportTo(ctx, s.picker, suggestedName, data)
}

// ExportTo writes data to a path chosen through the save picker.
func ExportTo(ctx context.Context, picker FilePicker, suggestedName string, data []byte) (string, error) {
	path, err := picker.PickSave(ctx, suggestedName)
	if err != nil {
		return "", err
	}
	if err := filex.WriteFileAtomic(path, data, filePerm); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}

// IsDismissed reports whether err means the user backed out of a picker.
func IsDismissed(err error) bool {
	return errors.Is(err, ErrPickerDismissed)
}
