package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/repositories/kv"
	"github.com/dmitrijs2005/timeflow/internal/logging"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

const (
	eventsKey = "calendarEvents"
	worksKey  = "completedWorks"
)

// PlanFinder resolves the plan an event is linked to.
type PlanFinder interface {
	FindPlan(ctx context.Context, id string) (*models.Plan, error)
}

type EventDetail struct {
	models.Event
	PlanTitle string
}

type DayDetail struct {
	Date   string
	Events []EventDetail
	Works  []models.CompletedWork
}

type DaySummary struct {
	Date      string
	Day       int
	Events    int
	Completed int
	Works     int
}

type MonthView struct {
	Year  int
	Month time.Month
	// Offset is the weekday of the first day, Sunday = 0.
	Offset int
	Days   []DaySummary
}

type CalendarService interface {
	AddEvent(ctx context.Context, e models.Event) (models.Event, error)
	AddCompletedWork(ctx context.Context, w models.CompletedWork) (models.CompletedWork, error)
	DeleteEvent(ctx context.Context, id string) error
	DeleteCompletedWork(ctx context.Context, id string) error
	ToggleEvent(ctx context.Context, id string) (models.Event, error)
	DayDetail(ctx context.Context, date string) (DayDetail, error)
	Month(ctx context.Context, year int, month time.Month) (MonthView, error)
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	GetAllCompletedWorks(ctx context.Context) ([]models.CompletedWork, error)
	ImportEvents(ctx context.Context, raw []byte, merge bool) error
	Export(ctx context.Context) ([]byte, error)
}

type calendarService struct {
	db    *sql.DB
	kv    kv.Repository
	plans PlanFinder
	ids   *models.IDSource
	log   logging.Logger
}

// NewCalendarService builds the calendar. plans may be nil, in which case
// events are not linked to plan titles.
func NewCalendarService(db *sql.DB, plans PlanFinder, log logging.Logger) CalendarService {
	return &calendarService{
		db:    db,
		kv:    kv.NewSQLiteRepository(db),
		plans: plans,
		ids:   models.NewIDSource(),
		log:   log,
	}
}

type calendarData struct {
	events []models.Event
	works  []models.CompletedWork
}

func loadCalendar(ctx context.Context, repo kv.Repository) (calendarData, error) {
	var d calendarData
	if _, err := loadJSON(ctx, repo, eventsKey, &d.events); err != nil {
		return calendarData{}, err
	}
	if _, err := loadJSON(ctx, repo, worksKey, &d.works); err != nil {
		return calendarData{}, err
	}
	if d.events == nil {
		d.events = []models.Event{}
	}
	if d.works == nil {
		d.works = []models.CompletedWork{}
	}
	return d, nil
}

func (s *calendarService) update(ctx context.Context, fn func(*calendarData) error) error {
	return inTx(ctx, s.db, func(ctx context.Context, repo kv.Repository) error {
		d, err := loadCalendar(ctx, repo)
		if err != nil {
			return err
		}
		if err := fn(&d); err != nil {
			return err
		}
		if err := saveJSON(ctx, repo, eventsKey, d.events); err != nil {
			return err
		}
		return saveJSON(ctx, repo, worksKey, d.works)
	})
}

func (s *calendarService) load(ctx context.Context) (calendarData, error) {
	d, err := loadCalendar(ctx, s.kv)
	if err != nil {
		return calendarData{}, err
	}
	for _, e := range d.events {
		s.ids.Observe(e.ID)
	}
	for _, w := range d.works {
		s.ids.Observe(w.ID)
	}
	return d, nil
}

func (s *calendarService) AddEvent(ctx context.Context, e models.Event) (models.Event, error) {
	if err := models.Validate(e); err != nil {
		return models.Event{}, err
	}
	if e.PlanID != "" && s.plans != nil {
		p, err := s.plans.FindPlan(ctx, e.PlanID)
		if err != nil {
			return models.Event{}, err
		}
		if p == nil {
			return models.Event{}, fmt.Errorf("%w: %s", ErrPlanNotFound, e.PlanID)
		}
	}
	if _, err := s.load(ctx); err != nil {
		return models.Event{}, err
	}
	e.ID = s.ids.Next()
	e.Completed = false
	e.CreatedAt = timex.NewISOTime(timex.Now())

	err := s.update(ctx, func(d *calendarData) error {
		d.events = append(d.events, e)
		return nil
	})
	if err != nil {
		return models.Event{}, err
	}
	s.log.Debug(ctx, "event added", "id", e.ID, "date", e.Date)
	return e, nil
}

func (s *calendarService) AddCompletedWork(ctx context.Context, w models.CompletedWork) (models.CompletedWork, error) {
	if err := models.Validate(w); err != nil {
		return models.CompletedWork{}, err
	}
	if _, err := s.load(ctx); err != nil {
		return models.CompletedWork{}, err
	}
	w.ID = s.ids.Next()
	w.CreatedAt = timex.NewISOTime(timex.Now())

	err := s.update(ctx, func(d *calendarData) error {
		d.works = append(d.works, w)
		return nil
	})
	if err != nil {
		return models.CompletedWork{}, err
	}
	return w, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, id string) error {
	return s.update(ctx, func(d *calendarData) error {
		for i, e := range d.events {
			if e.ID == id {
				d.events = append(d.events[:i:i], d.events[i+1:]...)
				return nil
			}
		}
		return ErrEventNotFound
	})
}

func (s *calendarService) DeleteCompletedWork(ctx context.Context, id string) error {
	return s.update(ctx, func(d *calendarData) error {
		for i, w := range d.works {
			if w.ID == id {
				d.works = append(d.works[:i:i], d.works[i+1:]...)
				return nil
			}
		}
		return ErrWorkNotFound
	})
}

func (s *calendarService) ToggleEvent(ctx context.Context, id string) (models.Event, error) {
	var toggled models.Event
	err := s.update(ctx, func(d *calendarData) error {
		for i := range d.events {
			if d.events[i].ID == id {
				d.events[i].Completed = !d.events[i].Completed
				toggled = d.events[i]
				return nil
			}
		}
		return ErrEventNotFound
	})
	return toggled, err
}

func (s *calendarService) DayDetail(ctx context.Context, date string) (DayDetail, error) {
	if !timex.ValidDate(date) {
		return DayDetail{}, fmt.Errorf("%w: %q", models.ErrInvalid, date)
	}
	d, err := s.load(ctx)
	if err != nil {
		return DayDetail{}, err
	}

	out := DayDetail{Date: date, Events: []EventDetail{}, Works: []models.CompletedWork{}}
	for _, e := range d.events {
		if e.Date != date {
			continue
		}
		detail := EventDetail{Event: e}
		if e.PlanID != "" && s.plans != nil {
			p, err := s.plans.FindPlan(ctx, e.PlanID)
			if err != nil {
				return DayDetail{}, err
			}
			if p != nil {
				detail.PlanTitle = p.Title
			}
		}
		out.Events = append(out.Events, detail)
	}
	for _, w := range d.works {
		if w.Date == date {
			out.Works = append(out.Works, w)
		}
	}
	return out, nil
}

func (s *calendarService) Month(ctx context.Context, year int, month time.Month) (MonthView, error) {
	d, err := s.load(ctx)
	if err != nil {
		return MonthView{}, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	view := MonthView{Year: year, Month: month, Offset: int(first.Weekday()), Days: make([]DaySummary, days)}
	index := make(map[string]int, days)
	for i := range view.Days {
		date := first.AddDate(0, 0, i).Format(timex.DateLayout)
		view.Days[i] = DaySummary{Date: date, Day: i + 1}
		index[date] = i
	}
	for _, e := range d.events {
		if i, ok := index[e.Date]; ok {
			view.Days[i].Events++
			if e.Completed {
				view.Days[i].Completed++
			}
		}
	}
	for _, w := range d.works {
		if i, ok := index[w.Date]; ok {
			view.Days[i].Works++
		}
	}
	return view, nil
}

func (s *calendarService) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	d, err := s.load(ctx)
	return d.events, err
}

func (s *calendarService) GetAllCompletedWorks(ctx context.Context) ([]models.CompletedWork, error) {
	d, err := s.load(ctx)
	return d.works, err
}

// ImportEvents loads calendar data. A bare array is the older events-only
// format; an object carries events and completedWorks. Merging keeps the
// local completion flag of known events and only adds unknown works.
func (s *calendarService) ImportEvents(ctx context.Context, raw []byte, merge bool) error {
	events, works, err := parseCalendarImport(raw)
	if err != nil {
		return err
	}

	err = s.update(ctx, func(d *calendarData) error {
		if !merge {
			d.events, d.works = events, works
			return nil
		}
		d.events = mergeByID(d.events, events, func(e models.Event) string { return e.ID },
			func(existing, imported models.Event) models.Event {
				imported.Completed = existing.Completed
				return imported
			})
		d.works = mergeByID(d.works, works, func(w models.CompletedWork) string { return w.ID },
			func(existing, _ models.CompletedWork) models.CompletedWork { return existing })
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "calendar imported", "merge", merge, "events", len(events), "works", len(works))
	return nil
}

func parseCalendarImport(raw []byte) ([]models.Event, []models.CompletedWork, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, fmt.Errorf("%w: empty document", ErrInvalidImport)
	}

	events := []models.Event{}
	works := []models.CompletedWork{}
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
		}
	case '{':
		var doc struct {
			Events         json.RawMessage `json:"events"`
			CompletedWorks json.RawMessage `json:"completedWorks"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidImport, err)
		}
		if len(doc.Events) > 0 && string(doc.Events) != "null" {
			if err := json.Unmarshal(doc.Events, &events); err != nil {
				return nil, nil, fmt.Errorf("%w: events must be an array", ErrInvalidImport)
			}
		}
		if len(doc.CompletedWorks) > 0 && string(doc.CompletedWorks) != "null" {
			if err := json.Unmarshal(doc.CompletedWorks, &works); err != nil {
				return nil, nil, fmt.Errorf("%w: completedWorks must be an array", ErrInvalidImport)
			}
		}
	default:
		return nil, nil, fmt.Errorf("%w: expected an array or an object", ErrInvalidImport)
	}
	if events == nil {
		events = []models.Event{}
	}
	if works == nil {
		works = []models.CompletedWork{}
	}
	return events, works, nil
}

func (s *calendarService) Export(ctx context.Context) ([]byte, error) {
	d, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return indentJSON(models.CalendarExport{
		Events:         d.events,
		CompletedWorks: d.works,
		ExportDate:     timex.NewISOTime(timex.Now()),
	})
}
