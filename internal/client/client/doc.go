// Package client bootstraps the local persistence used by the TimeFlow CLI.
//
// InitDatabase opens the SQLite state database (pure-Go modernc driver),
// applies the embedded goose migrations and returns the repositories built
// on top of it. The database plays the role the browser's localStorage
// played for the original application: plans, calendar data, the diary's
// local copy and the last-used file info all live in one key/value table.
package client
