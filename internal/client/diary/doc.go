// Package diary implements the password-gated diary.
//
// A Session walks through three states: no data file selected, awaiting the
// password for the selected file, and unlocked. Entries live in memory while
// unlocked; every change rewrites the whole data file through the storage
// backend, sealing the entry list with the session password (see cryptox for
// how weak that sealing is).
//
// Operations return an Outcome describing what happened plus an error. User
// dismissals are outcomes, not errors. A write that fails after the
// in-memory change has been applied returns a *PartialFailureError so the
// caller can tell "saved in memory only" from "fully saved".
//
// Operations that wait on a file picker share one slot: while a picker is
// open any other picker operation fails fast with ErrBusy. Lock and the
// read-only accessors never wait for the slot.
package diary
