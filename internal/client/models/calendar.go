package models

import "github.com/dmitrijs2005/timeflow/internal/timex"

type Event struct {
	ID          string        `json:"id"`
	Date        string        `json:"date" validate:"required,datetime=2006-01-02"`
	Title       string        `json:"title" validate:"notblank"`
	Description string        `json:"description"`
	PlanID      string        `json:"planId"`
	Completed   bool          `json:"completed"`
	CreatedAt   timex.ISOTime `json:"createdAt,omitzero"`
}

type CompletedWork struct {
	ID        string        `json:"id"`
	Date      string        `json:"date" validate:"required,datetime=2006-01-02"`
	Content   string        `json:"content" validate:"notblank"`
	CreatedAt timex.ISOTime `json:"createdAt,omitzero"`
}

// CalendarExport is the document written by calendar export.
type CalendarExport struct {
	Events         []Event         `json:"events"`
	CompletedWorks []CompletedWork `json:"completedWorks"`
	ExportDate     timex.ISOTime   `json:"exportDate"`
}
