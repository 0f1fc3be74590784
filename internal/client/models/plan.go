package models

import "github.com/dmitrijs2005/timeflow/internal/timex"

type PlanType string

const (
	PlanLongTerm  PlanType = "long-term"
	PlanMidTerm   PlanType = "mid-term"
	PlanShortTerm PlanType = "short-term"
)

// PlanTypes lists the built-in plan types in display order.
var PlanTypes = []PlanType{PlanLongTerm, PlanMidTerm, PlanShortTerm}

// Label returns the human name of the type.
func (t PlanType) Label() string {
	switch t {
	case PlanLongTerm:
		return "Long-term"
	case PlanMidTerm:
		return "Mid-term"
	case PlanShortTerm:
		return "Short-term"
	default:
		return string(t)
	}
}

// ParsePlanType accepts the canonical names and the short aliases long, mid
// and short.
func ParsePlanType(s string) (PlanType, bool) {
	switch s {
	case "long-term", "long":
		return PlanLongTerm, true
	case "mid-term", "mid":
		return PlanMidTerm, true
	case "short-term", "short":
		return PlanShortTerm, true
	}
	return "", false
}

type Plan struct {
	ID          string        `json:"id"`
	Title       string        `json:"title" validate:"notblank"`
	Description string        `json:"description"`
	StartDate   string        `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string        `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt   timex.ISOTime `json:"createdAt,omitzero"`
}

// Plans groups plans by type. Unknown types found in imported data are kept.
type Plans map[PlanType][]Plan
