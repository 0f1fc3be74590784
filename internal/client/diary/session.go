package diary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
	"github.com/dmitrijs2005/timeflow/internal/cryptox"
	"github.com/dmitrijs2005/timeflow/internal/logging"
	"github.com/dmitrijs2005/timeflow/internal/shared"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

// DefaultFileName is suggested when creating or exporting a data file.
const DefaultFileName = "my_diary_data.json"

// Confirmer asks the user a yes/no question. Returning ErrUserCancelled is
// treated like a "no".
type Confirmer func(ctx context.Context, question string) (bool, error)

// AlwaysConfirm approves every question.
func AlwaysConfirm(context.Context, string) (bool, error) { return true, nil }

// NeverConfirm declines every question.
func NeverConfirm(context.Context, string) (bool, error) { return false, nil }

type Option func(*Session)

func WithLogger(l logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithSidecar records the last used data file.
func WithSidecar(sc *storage.Sidecar) Option {
	return func(s *Session) { s.sidecar = sc }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is the diary state machine. It is safe for concurrent use.
type Session struct {
	strategy storage.Strategy
	sidecar  *storage.Sidecar
	log      logging.Logger
	now      func() time.Time

	slot pickSlot

	mu       sync.Mutex
	state    State
	key      []byte
	hash     *string
	backend  storage.Backend
	store    *EntryStore
	gen      uint64
	lastFile string
}

func NewSession(strategy storage.Strategy, opts ...Option) *Session {
	s := &Session{
		strategy: strategy,
		log:      logging.Discard(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.store = NewEntryStore(models.NewIDSourceAt(s.now), s.now)
	return s
}

// Init loads the last used file name so the selection view can show it.
// An unreadable record is logged and ignored.
func (s *Session) Init(ctx context.Context) error {
	if s.sidecar == nil {
		return nil
	}
	info, err := s.sidecar.Last(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load last file info", "error", err)
		return nil
	}
	if info != nil {
		s.mu.Lock()
		s.lastFile = info.Name
		s.mu.Unlock()
	}
	return nil
}

// SelectFile lets the user pick an existing data file (or upload one under
// the local strategy).
func (s *Session) SelectFile(ctx context.Context) (Outcome, error) {
	if _, err := Transition(s.State(), EventFileChosen); err != nil {
		return Outcome{}, err
	}

	op, err := s.slot.acquire("select", s.now())
	if err != nil {
		return Outcome{}, err
	}
	defer s.slot.release(op)

	backend, err := s.strategy.Select(ctx)
	if err != nil {
		return s.pickerFailure(ctx, "select", err)
	}
	return s.adopt(ctx, backend, nil, EventFileChosen, OutcomeFileSelected)
}

// CreateFile writes a new data file holding no entries and protected by
// password. The session then awaits that password.
func (s *Session) CreateFile(ctx context.Context, password, confirm string) (Outcome, error) {
	if password == "" {
		return Outcome{}, ErrEmptyPassword
	}
	if password != confirm {
		return Outcome{}, ErrPasswordMismatch
	}
	if _, err := Transition(s.State(), EventFileChosen); err != nil {
		return Outcome{}, err
	}

	op, err := s.slot.acquire("create", s.now())
	if err != nil {
		return Outcome{}, err
	}
	defer s.slot.release(op)

	backend, err := s.strategy.Create(ctx, DefaultFileName)
	if err != nil {
		return s.pickerFailure(ctx, "create", err)
	}

	hash := cryptox.HashPassword(password)
	data, err := encodeDocument([]models.DiaryEntry{}, password, models.PersistedFile{
		PasswordHash: &hash,
		CreatedAt:    timex.NewISOTime(s.stamp()),
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("password cannot be used: %w", err)
	}
	if err := backend.Write(ctx, data); err != nil {
		s.log.Error(ctx, "failed to write new data file", "file", backend.Name(), "error", err)
		return Outcome{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.log.Info(ctx, "data file created", "file", backend.Name())
	return s.adopt(ctx, backend, &hash, EventFileChosen, OutcomeFileCreated)
}

// UseLocalStore resumes the diary kept in the local store.
func (s *Session) UseLocalStore(ctx context.Context) (Outcome, error) {
	if _, err := Transition(s.State(), EventFileChosen); err != nil {
		return Outcome{}, err
	}
	backend, err := s.strategy.Resume(ctx)
	switch {
	case errors.Is(err, storage.ErrUnsupported):
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	case err != nil:
		return Outcome{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return s.adopt(ctx, backend, nil, EventFileChosen, OutcomeFileSelected)
}

// Import uploads a file over the current local diary. The entries in
// memory are dropped and the session waits for the uploaded file's
// password.
func (s *Session) Import(ctx context.Context) (Outcome, error) {
	if s.strategy.Kind() != storage.KindLocal {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidState, storage.ErrUnsupported)
	}

	op, err := s.slot.acquire("import", s.now())
	if err != nil {
		return Outcome{}, err
	}
	defer s.slot.release(op)

	backend, err := s.strategy.Select(ctx)
	if err != nil {
		return s.pickerFailure(ctx, "import", err)
	}
	return s.adopt(ctx, backend, nil, EventImported, OutcomeFileSelected)
}

// Unlock reads the selected data file and decodes its entries with
// password.
func (s *Session) Unlock(ctx context.Context, password string) (Outcome, error) {
	if password == "" {
		return Outcome{}, ErrEmptyPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Transition(s.state, EventUnlocked)
	if err != nil {
		return Outcome{}, err
	}

	raw, err := s.backend.Read(ctx)
	if err != nil {
		s.store.Clear()
		return Outcome{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	doc, err := parseDocument(raw)
	if err != nil {
		s.store.Clear()
		return Outcome{}, err
	}

	if doc.HasPasswordHash() && *doc.PasswordHash != cryptox.HashPassword(password) {
		s.store.Clear()
		s.log.Info(ctx, "unlock rejected", "file", s.backend.Name())
		return Outcome{}, ErrAuthentication
	}

	entries, warning, err := decodeEntries(doc, password)
	if err != nil {
		s.store.Clear()
		return Outcome{}, err
	}
	if warning != nil {
		s.log.Warn(ctx, "entry payload unreadable, starting empty", "file", s.backend.Name(), "error", warning)
	}

	s.wipeKey()
	s.key = []byte(password)
	s.hash = doc.PasswordHash
	s.store.Replace(entries)
	s.state = next
	s.gen++

	if c, ok := s.backend.(storage.Committer); ok {
		if err := c.Commit(ctx); err != nil {
			s.log.Warn(ctx, "failed to keep uploaded data", "error", err)
			warning = errors.Join(warning, fmt.Errorf("%w: %w", ErrStorageUnavailable, err))
		}
	}

	s.log.Info(ctx, "diary unlocked", "file", s.backend.Name(), "entries", s.store.Len())
	return Outcome{Kind: OutcomeUnlocked, Warning: warning, View: s.viewLocked()}, nil
}

// Lock forgets everything the session holds. Valid in every state.
func (s *Session) Lock() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, _ := Transition(s.state, EventLocked)
	if u, ok := s.backend.(interface{ Unstage() }); ok {
		u.Unstage()
	}
	s.resetLocked()
	s.state = next
	return Outcome{Kind: OutcomeLocked, View: s.viewLocked()}
}

// SaveEntry writes content for date. When the date already has an entry
// confirm decides whether it is overwritten.
func (s *Session) SaveEntry(ctx context.Context, date, content string, confirm Confirmer) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateUnlocked {
		s.mu.Unlock()
		return Outcome{}, ErrLocked
	}
	existing, exists := s.store.FindByDate(date)
	gen := s.gen
	s.mu.Unlock()

	if strings.TrimSpace(content) == "" {
		return Outcome{}, ErrEmptyContent
	}
	if !timex.ValidDate(date) {
		return Outcome{}, ErrInvalidDate
	}
	if exists {
		ok, err := ask(ctx, confirm, fmt.Sprintf("An entry for %s already exists. Overwrite it?", existing.Date))
		if err != nil {
			return Outcome{}, err
		}
		if !ok {
			return Outcome{Kind: OutcomeUnchanged, Entry: &existing, View: s.View()}, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkGenLocked(gen); err != nil {
		return Outcome{}, err
	}

	entry, created, _, err := s.store.Upsert(date, content, true)
	if err != nil {
		return Outcome{}, err
	}
	kind := OutcomeEntryUpdated
	if created {
		kind = OutcomeEntryCreated
	}

	out := Outcome{Kind: kind, Entry: &entry}
	err = s.persistLocked(ctx, "save entry")
	out.View = s.viewLocked()
	return out, err
}

// DeleteEntry removes the entry with id once confirm approves.
func (s *Session) DeleteEntry(ctx context.Context, id string, confirm Confirmer) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateUnlocked {
		s.mu.Unlock()
		return Outcome{}, ErrLocked
	}
	entry, ok := s.store.Get(id)
	gen := s.gen
	s.mu.Unlock()
	if !ok {
		return Outcome{}, ErrEntryNotFound
	}

	approved, err := ask(ctx, confirm, fmt.Sprintf("Delete the entry for %s?", entry.Date))
	if err != nil {
		return Outcome{}, err
	}
	if !approved {
		return Outcome{Kind: OutcomeUnchanged, Entry: &entry, View: s.View()}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkGenLocked(gen); err != nil {
		return Outcome{}, err
	}
	removed, err := s.store.Delete(id)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Kind: OutcomeEntryDeleted, Entry: &removed}
	err = s.persistLocked(ctx, "delete entry")
	out.View = s.viewLocked()
	return out, err
}

// Save rewrites the data file from memory.
func (s *Session) Save(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnlocked {
		return Outcome{}, ErrLocked
	}
	if err := s.persistLocked(ctx, "save"); err != nil {
		return Outcome{View: s.viewLocked()}, err
	}
	return Outcome{Kind: OutcomeSaved, View: s.viewLocked()}, nil
}

// Export writes a copy of the data file to a location chosen by the user.
func (s *Session) Export(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateUnlocked {
		s.mu.Unlock()
		return Outcome{}, ErrLocked
	}
	data, err := s.documentLocked()
	s.mu.Unlock()
	if err != nil {
		return Outcome{}, err
	}

	op, err := s.slot.acquire("export", s.now())
	if err != nil {
		return Outcome{}, err
	}
	defer s.slot.release(op)

	path, err := s.strategy.Export(ctx, DefaultFileName, data)
	if err != nil {
		return s.pickerFailure(ctx, "export", err)
	}
	s.log.Info(ctx, "diary exported", "path", path)
	return Outcome{Kind: OutcomeExported, Path: path, View: s.View()}, nil
}

// GetAllDiaries returns the entries newest first.
func (s *Session) GetAllDiaries() ([]models.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnlocked {
		return nil, ErrLocked
	}
	return s.store.ListDescending(), nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		State:     s.state,
		Strategy:  s.strategy.Kind(),
		LastFile:  s.lastFile,
		Protected: s.hash != nil && *s.hash != "",
		Busy:      s.slot.busy(),
		Entries:   []models.DiaryEntry{},
	}
	if s.backend != nil {
		v.FileName = s.backend.Name()
	}
	if s.state == StateUnlocked {
		v.Entries = s.store.ListDescending()
	}
	return v
}

// adopt installs a freshly chosen backend. hash is the hash of a file just
// created; for other files it is learnt on unlock.
func (s *Session) adopt(ctx context.Context, backend storage.Backend, hash *string, ev Event, kind OutcomeKind) (Outcome, error) {
	s.mu.Lock()
	next, err := Transition(s.state, ev)
	if err != nil {
		s.mu.Unlock()
		return Outcome{}, err
	}
	s.resetLocked()
	s.backend = backend
	s.hash = hash
	s.state = next
	s.mu.Unlock()

	s.remember(ctx, backend)

	s.log.Debug(ctx, "data source chosen", "file", backend.Name(), "state", next)
	return Outcome{Kind: kind, View: s.View()}, nil
}

func (s *Session) remember(ctx context.Context, backend storage.Backend) {
	if s.sidecar == nil || s.strategy.Kind() != storage.KindFile {
		return
	}
	if err := s.sidecar.Remember(ctx, backend.Name()); err != nil {
		s.log.Warn(ctx, "failed to record data file info", "error", err)
		return
	}
	s.mu.Lock()
	s.lastFile = backend.Name()
	s.mu.Unlock()
}

func (s *Session) pickerFailure(ctx context.Context, op string, err error) (Outcome, error) {
	switch {
	case storage.IsDismissed(err), errors.Is(err, ErrUserCancelled):
		s.log.Debug(ctx, "picker dismissed", "op", op)
		return Outcome{Kind: OutcomeCancelled, View: s.View()}, nil
	case errors.Is(err, storage.ErrInvalidDocument):
		return Outcome{}, fmt.Errorf("%w: %w", ErrMalformedData, err)
	case errors.Is(err, storage.ErrAlreadyExists), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Outcome{}, err
	}
	s.log.Error(ctx, "file operation failed", "op", op, "error", err)
	return Outcome{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

func (s *Session) persistLocked(ctx context.Context, op string) error {
	data, err := s.documentLocked()
	if err != nil {
		return &PartialFailureError{Op: op, Err: err}
	}
	if err := s.backend.Write(ctx, data); err != nil {
		s.log.Warn(ctx, "write failed, change kept in memory", "op", op, "file", s.backend.Name(), "error", err)
		return &PartialFailureError{Op: op, Err: fmt.Errorf("%w: %w", ErrStorageUnavailable, err)}
	}
	s.log.Debug(ctx, "data file written", "op", op, "entries", s.store.Len())
	return nil
}

func (s *Session) documentLocked() ([]byte, error) {
	return encodeDocument(s.store.All(), string(s.key), models.PersistedFile{
		PasswordHash: s.hash,
		LastUpdated:  timex.NewISOTime(s.stamp()),
	})
}

func (s *Session) checkGenLocked(gen uint64) error {
	if s.state != StateUnlocked {
		return ErrLocked
	}
	if s.gen != gen {
		return fmt.Errorf("%w: the diary was reloaded", ErrInvalidState)
	}
	return nil
}

func (s *Session) resetLocked() {
	s.store.Clear()
	s.wipeKey()
	s.hash = nil
	s.backend = nil
	s.gen++
}

func (s *Session) wipeKey() {
	shared.WipeByteArray(s.key)
	s.key = nil
}

func (s *Session) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func ask(ctx context.Context, confirm Confirmer, question string) (bool, error) {
	if confirm == nil {
		return false, nil
	}
	ok, err := confirm(ctx, question)
	if errors.Is(err, ErrUserCancelled) {
		return false, nil
	}
	return ok, err
}
