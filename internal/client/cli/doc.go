// Package cli provides the interactive TimeFlow shell.
//
// The shell is a line-oriented REPL with three tabs: plans, calendar and
// diary. Each tab is registered as a Factory and built the first time it
// is activated. Global commands (help, tab, quote, exit) are handled by the
// REPL itself; everything else is passed to the active tab.
//
// Diary operations report a diary.Outcome or an error; describe maps each
// of them to the single line the user sees. Prompts go through Console,
// and PathPicker stands in for the open and save dialogs.
package cli
