// Package storage moves diary documents between the session and wherever
// they live.
//
// Two strategies exist, chosen once at start-up. The handle strategy binds
// the session to a data file picked by the user (FileHandle); every save
// rewrites that file in place. The local strategy keeps the document in the
// local key/value store (LocalBackend); files are only touched when the user
// imports one or exports a copy.
//
// File selection goes through a FilePicker so the session never knows
// whether paths come from a prompt, a dialog or a test.
package storage
