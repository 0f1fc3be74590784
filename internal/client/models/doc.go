// Package models defines the JSON documents TimeFlow reads and writes: diary
// entries and the persisted diary file, plans, calendar events and completed
// work records. Field names follow the files produced by the original
// browser application so existing data keeps loading.
package models
