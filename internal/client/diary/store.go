package diary

import (
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

// EntryStore is the in-memory entry list of an unlocked diary. It is not
// safe for concurrent use; Session serializes access.
type EntryStore struct {
	entries []models.DiaryEntry
	ids     *models.IDSource
	now     func() time.Time
}

func NewEntryStore(ids *models.IDSource, now func() time.Time) *EntryStore {
	return &EntryStore{ids: ids, now: now}
}

// Replace swaps in a decoded entry list.
func (s *EntryStore) Replace(entries []models.DiaryEntry) {
	s.entries = append([]models.DiaryEntry(nil), entries...)
	for _, e := range s.entries {
		s.ids.Observe(e.ID)
	}
}

func (s *EntryStore) Clear() {
	for i := range s.entries {
		s.entries[i] = models.DiaryEntry{}
	}
	s.entries = nil
}

func (s *EntryStore) Len() int { return len(s.entries) }

// All returns the entries in insertion order. The result is never nil so it
// encodes as [] rather than null.
func (s *EntryStore) All() []models.DiaryEntry {
	out := make([]models.DiaryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ListDescending returns the entries newest date first; entries sharing a
// date keep insertion order.
func (s *EntryStore) ListDescending() []models.DiaryEntry {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (s *EntryStore) FindByDate(date string) (models.DiaryEntry, bool) {
	if i := s.indexBy(func(e models.DiaryEntry) bool { return e.Date == date }); i >= 0 {
		return s.entries[i], true
	}
	return models.DiaryEntry{}, false
}

func (s *EntryStore) Get(id string) (models.DiaryEntry, bool) {
	if i := s.indexBy(func(e models.DiaryEntry) bool { return e.ID == id }); i >= 0 {
		return s.entries[i], true
	}
	return models.DiaryEntry{}, false
}

// Upsert writes content for date. An existing entry is only replaced when
// overwrite is set; its ID and CreatedAt are kept. changed is false when an
// existing entry was left alone.
func (s *EntryStore) Upsert(date, content string, overwrite bool) (entry models.DiaryEntry, created, changed bool, err error) {
	if strings.TrimSpace(content) == "" {
		return models.DiaryEntry{}, false, false, ErrEmptyContent
	}
	if !timex.ValidDate(date) {
		return models.DiaryEntry{}, false, false, ErrInvalidDate
	}

	now := timex.NewISOTime(s.now().UTC().Truncate(time.Millisecond))
	if i := s.indexBy(func(e models.DiaryEntry) bool { return e.Date == date }); i >= 0 {
		if !overwrite {
			return s.entries[i], false, false, nil
		}
		s.entries[i].Content = content
		s.entries[i].UpdatedAt = now
		return s.entries[i], false, true, nil
	}

	entry = models.DiaryEntry{
		ID:        s.ids.Next(),
		Date:      date,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.entries = append(s.entries, entry)
	return entry, true, true, nil
}

func (s *EntryStore) Delete(id string) (models.DiaryEntry, error) {
	i := s.indexBy(func(e models.DiaryEntry) bool { return e.ID == id })
	if i < 0 {
		return models.DiaryEntry{}, ErrEntryNotFound
	}
	removed := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return removed, nil
}

func (s *EntryStore) indexBy(match func(models.DiaryEntry) bool) int {
	for i, e := range s.entries {
		if match(e) {
			return i
		}
	}
	return -1
}
