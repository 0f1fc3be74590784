package diary

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
	"github.com/dmitrijs2005/timeflow/internal/cryptox"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	mu       sync.Mutex
	name     string
	data     []byte
	writeErr error
	writes   int
}

func (b *memBackend) Name() string { return b.name }

func (b *memBackend) Read(context.Context) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), b.data...), nil
}

func (b *memBackend) Write(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes++
	b.data = append([]byte(nil), data...)
	return nil
}

func (b *memBackend) doc(t *testing.T) models.PersistedFile {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	var doc models.PersistedFile
	require.NoError(t, json.Unmarshal(b.data, &doc))
	return doc
}

// memStrategy hands out one in-memory backend for every pick.
type memStrategy struct {
	backend  *memBackend
	pickErr  error
	exported []byte
}

func (s *memStrategy) Kind() storage.Kind { return storage.KindFile }

func (s *memStrategy) Select(context.Context) (storage.Backend, error) {
	if s.pickErr != nil {
		return nil, s.pickErr
	}
	return s.backend, nil
}

func (s *memStrategy) Create(context.Context, string) (storage.Backend, error) {
	if s.pickErr != nil {
		return nil, s.pickErr
	}
	return s.backend, nil
}

func (s *memStrategy) Resume(context.Context) (storage.Backend, error) {
	return nil, storage.ErrUnsupported
}

func (s *memStrategy) Export(_ context.Context, name string, data []byte) (string, error) {
	if s.pickErr != nil {
		return "", s.pickErr
	}
	s.exported = data
	return "/exports/" + name, nil
}

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

type pathPicker struct {
	open, save string
	err        error
}

func (p *pathPicker) PickOpen(context.Context) (string, error) { return p.open, p.err }

func (p *pathPicker) PickSave(context.Context, string) (string, error) { return p.save, p.err }

// sealedDoc builds a data file the way the browser app wrote them.
func sealedDoc(t *testing.T, entries []models.DiaryEntry, key string, hash *string) []byte {
	t.Helper()
	plain, err := json.Marshal(entries)
	require.NoError(t, err)
	sealed, err := cryptox.Seal(string(plain), key)
	require.NoError(t, err)
	data, err := json.MarshalIndent(models.PersistedFile{EncryptedDiaries: sealed, PasswordHash: hash}, "", "  ")
	require.NoError(t, err)
	return data
}

func strPtr(s string) *string { return &s }

func fixedClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newMemSession(t *testing.T) (*Session, *memStrategy) {
	t.Helper()
	strat := &memStrategy{backend: &memBackend{name: "diary.json"}}
	return NewSession(strat, WithClock(fixedClock())), strat
}

func createAndUnlock(t *testing.T, s *Session, password string) {
	t.Helper()
	ctx := context.Background()
	_, err := s.CreateFile(ctx, password, password)
	require.NoError(t, err)
	_, err = s.Unlock(ctx, password)
	require.NoError(t, err)
}
