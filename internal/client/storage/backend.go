package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("no stored data")
	ErrPickerDismissed = errors.New("picker dismissed")
	ErrInvalidDocument = errors.New("file is not a JSON document")
	ErrAlreadyExists   = errors.New("local diary already exists")
	ErrUnsupported     = errors.New("operation not supported by this storage strategy")
)

// Backend is the place one diary document is read from and written to.
type Backend interface {
	// Name is a display name for the data source.
	Name() string
	// Read returns the raw document, or ErrNotFound.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the document.
	Write(ctx context.Context, data []byte) error
}

// Committer is implemented by backends that hold provisional data until
// the session accepts it.
type Committer interface {
	Commit(ctx context.Context) error
}

// FilePicker asks the user for a file path. Both methods return
// ErrPickerDismissed when the user backs out.
type FilePicker interface {
	PickOpen(ctx context.Context) (string, error)
	PickSave(ctx context.Context, suggestedName string) (string, error)
}

// KV is the subset of the key/value repository the package needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
