// Package kv persists string-keyed values in the local_storage table.
//
// It stands in for the browser's localStorage: callers store whole JSON
// documents under well-known keys (plans, calendarEvents, completedWorks,
// diaryLocalData, diaryDataFileInfo) and replace them wholesale on every
// change.
package kv
