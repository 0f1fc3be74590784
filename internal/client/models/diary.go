package models

import "github.com/dmitrijs2005/timeflow/internal/timex"

// DiaryEntry is one dated diary record. ID is the decimal millisecond
// timestamp of creation.
type DiaryEntry struct {
	ID        string        `json:"id"`
	Date      string        `json:"date" validate:"required,datetime=2006-01-02"`
	Content   string        `json:"content" validate:"notblank"`
	CreatedAt timex.ISOTime `json:"createdAt,omitzero"`
	UpdatedAt timex.ISOTime `json:"updatedAt,omitzero"`
}

// PersistedFile is the on-disk diary document.
//
// EncryptedDiaries holds the sealed JSON array of entries. PasswordHash is
// nil for files that never had one recorded; such files open with any
// password. Diaries is the legacy plaintext list, honoured on read only.
type PersistedFile struct {
	EncryptedDiaries string        `json:"encryptedDiaries,omitempty"`
	PasswordHash     *string       `json:"passwordHash"`
	CreatedAt        timex.ISOTime `json:"createdAt,omitzero"`
	LastUpdated      timex.ISOTime `json:"lastUpdated,omitzero"`
	Diaries          []DiaryEntry  `json:"diaries,omitempty"`
}

// HasPasswordHash reports whether the file carries a usable hash.
func (f *PersistedFile) HasPasswordHash() bool {
	return f.PasswordHash != nil && *f.PasswordHash != ""
}

// FileInfo is the advisory record of the last data file used.
type FileInfo struct {
	Name         string        `json:"name"`
	LastModified timex.ISOTime `json:"lastModified"`
}
