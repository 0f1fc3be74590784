package diary

import (
	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
)

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeCancelled
	OutcomeFileSelected
	OutcomeFileCreated
	OutcomeUnlocked
	OutcomeLocked
	OutcomeEntryCreated
	OutcomeEntryUpdated
	OutcomeEntryDeleted
	OutcomeUnchanged
	OutcomeSaved
	OutcomeExported
)

// Outcome describes the effect of a session operation. Warning carries a
// non-fatal problem, such as an unreadable entry payload that was replaced
// by an empty list.
type Outcome struct {
	Kind    OutcomeKind
	Warning error
	// Path is set by Export.
	Path string
	// Entry is the entry touched by SaveEntry or DeleteEntry.
	Entry *models.DiaryEntry
	View  View
}

// View is a snapshot of the session for rendering.
type View struct {
	State    State
	Strategy storage.Kind
	// FileName is the current data source, empty when none is selected.
	FileName string
	// LastFile is the file used previously, from the sidecar record.
	LastFile string
	// Protected reports whether the data source carries a password hash.
	Protected bool
	Busy      bool
	// Entries is sorted by date, newest first. Empty unless unlocked.
	Entries []models.DiaryEntry
}
