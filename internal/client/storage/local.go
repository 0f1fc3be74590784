package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/cryptox"
)

// LocalDataKey holds the diary document when the local strategy is active.
const LocalDataKey = "diaryLocalData"

const localName = "local storage"

// LocalBackend keeps the diary document in the key/value store. An uploaded
// file can be staged on top; while staged it shadows the stored document
// until Commit copies it into the store.
type LocalBackend struct {
	kv KV

	mu         sync.Mutex
	staged     []byte
	stagedName string
}

func NewLocalBackend(kv KV) *LocalBackend {
	return &LocalBackend{kv: kv}
}

// Stage places an uploaded document in front of the stored one.
func (b *LocalBackend) Stage(name string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.staged = append([]byte(nil), data...)
	b.stagedName = name
}

// Unstage drops a pending upload.
func (b *LocalBackend) Unstage() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.staged = nil
	b.stagedName = ""
}

// Staged reports whether an upload is pending.
func (b *LocalBackend) Staged() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.staged != nil
}

func (b *LocalBackend) Name() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.staged != nil {
		return b.stagedName
	}
	return localName
}

func (b *LocalBackend) Read(ctx context.Context) ([]byte, error) {
	b.mu.Lock()
	staged := b.staged
	b.mu.Unlock()
	if staged != nil {
		return append([]byte(nil), staged...), nil
	}

	data, err := b.kv.Get(ctx, LocalDataKey)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return upgradeLegacy(data)
}

// Write stores data and drops any staged upload.
func (b *LocalBackend) Write(ctx context.Context, data []byte) error {
	if err := b.kv.Set(ctx, LocalDataKey, data); err != nil {
		return err
	}
	b.Unstage()
	return nil
}

// Commit moves a staged upload into the store. Without one it does nothing.
func (b *LocalBackend) Commit(ctx context.Context) error {
	b.mu.Lock()
	staged := b.staged
	b.mu.Unlock()
	if staged == nil {
		return nil
	}
	return b.Write(ctx, staged)
}

// upgradeLegacy wraps a bare base64 payload, as older builds stored it, into
// a document without a password hash.
func upgradeLegacy(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] == '{' || !cryptox.IsValidBase64(string(trimmed)) {
		return data, nil
	}
	doc, err := json.Marshal(models.PersistedFile{EncryptedDiaries: string(trimmed)})
	if err != nil {
		return nil, fmt.Errorf("wrap legacy payload: %w", err)
	}
	return doc, nil
}
