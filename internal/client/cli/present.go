package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/timeflow/internal/client/diary"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
)

// describe maps the result of a diary operation to the one line shown to
// the user.
func describe(out diary.Outcome, err error) string {
	var partial *diary.PartialFailureError
	switch {
	case errors.As(err, &partial):
		return fmt.Sprintf("%s was applied but only kept in memory: %v", subject(out), partial.Err)
	case errors.Is(err, diary.ErrAuthentication):
		return "Wrong password."
	case errors.Is(err, diary.ErrMalformedData):
		return "The data file is damaged or was written with another password."
	case errors.Is(err, diary.ErrBusy):
		return "A file dialog is already open."
	case errors.Is(err, diary.ErrLocked):
		return "Unlock the diary first."
	case errors.Is(err, diary.ErrEntryNotFound):
		return "No such entry."
	case errors.Is(err, diary.ErrEmptyContent):
		return "Please write something first."
	case errors.Is(err, diary.ErrInvalidDate):
		return "Dates are written as YYYY-MM-DD."
	case errors.Is(err, diary.ErrEmptyPassword):
		return "The password must not be empty."
	case errors.Is(err, diary.ErrPasswordMismatch):
		return "The passwords do not match."
	case errors.Is(err, storage.ErrAlreadyExists):
		return "A diary already exists in local storage. Use 'local' to open it or 'import' to replace it."
	case errors.Is(err, storage.ErrUnsupported):
		return "Not available with the current storage."
	case errors.Is(err, diary.ErrInvalidState):
		return "Not possible right now. Lock the diary first."
	case errors.Is(err, diary.ErrStorageUnavailable):
		return fmt.Sprintf("Storage is unavailable: %v", err)
	case errors.Is(err, context.Canceled):
		return "Interrupted."
	case err != nil:
		return fmt.Sprintf("Error: %v", err)
	}

	msg := outcomeText(out)
	if out.Warning != nil {
		msg += warningText(out.Warning)
	}
	return msg
}

// warningText covers both warnings Unlock can raise; they may be joined.
func warningText(w error) string {
	var b strings.Builder
	if errors.Is(w, diary.ErrMalformedData) {
		b.WriteString(" Warning: the stored entries could not be read, starting with an empty diary.")
	}
	if errors.Is(w, diary.ErrStorageUnavailable) {
		b.WriteString(" Warning: the uploaded data could not be saved to local storage, export it before closing.")
	}
	if b.Len() == 0 {
		fmt.Fprintf(&b, " Warning: %v", w)
	}
	return b.String()
}

func outcomeText(out diary.Outcome) string {
	switch out.Kind {
	case diary.OutcomeCancelled:
		return "Cancelled."
	case diary.OutcomeFileSelected:
		return fmt.Sprintf("Opened %s. Enter the password with 'unlock'.", out.View.FileName)
	case diary.OutcomeFileCreated:
		return fmt.Sprintf("Created %s.", out.View.FileName)
	case diary.OutcomeUnlocked:
		return fmt.Sprintf("Diary unlocked, %d entries.", len(out.View.Entries))
	case diary.OutcomeLocked:
		return "Diary locked."
	case diary.OutcomeEntryCreated, diary.OutcomeEntryUpdated:
		return "Entry saved."
	case diary.OutcomeEntryDeleted:
		return "Entry deleted."
	case diary.OutcomeUnchanged:
		return "Nothing changed."
	case diary.OutcomeSaved:
		return "Data file saved."
	case diary.OutcomeExported:
		return fmt.Sprintf("Exported to %s.", out.Path)
	default:
		return ""
	}
}

func subject(out diary.Outcome) string {
	switch out.Kind {
	case diary.OutcomeEntryDeleted:
		return "The deletion"
	case diary.OutcomeEntryCreated, diary.OutcomeEntryUpdated:
		return "The entry"
	default:
		return "The change"
	}
}
