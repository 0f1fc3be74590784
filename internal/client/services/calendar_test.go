package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalendar(t *testing.T) (CalendarService, PlanService) {
	t.Helper()
	_, log := ctxAndLog()
	db := setupDB(t)
	plans := NewPlanService(db, log)
	return NewCalendarService(db, plans, log), plans
}

func TestCalendar_AddToggleDelete(t *testing.T) {
	ctx, _ := ctxAndLog()
	cal, _ := newCalendar(t)

	e, err := cal.AddEvent(ctx, models.Event{Date: "2024-03-05", Title: "dentist", Completed: true})
	require.NoError(t, err)
	assert.False(t, e.Completed)
	assert.NotEmpty(t, e.ID)

	toggled, err := cal.ToggleEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	_, err = cal.ToggleEvent(ctx, "missing")
	require.ErrorIs(t, err, ErrEventNotFound)

	require.ErrorIs(t, cal.DeleteEvent(ctx, "missing"), ErrEventNotFound)
	require.NoError(t, cal.DeleteEvent(ctx, e.ID))

	events, err := cal.GetAllEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCalendar_Validation(t *testing.T) {
	ctx, _ := ctxAndLog()
	cal, _ := newCalendar(t)

	_, err := cal.AddEvent(ctx, models.Event{Date: "2024-3-5", Title: "x"})
	require.ErrorIs(t, err, models.ErrInvalid)
	_, err = cal.AddCompletedWork(ctx, models.CompletedWork{Date: "2024-03-05", Content: " "})
	require.ErrorIs(t, err, models.ErrInvalid)
	_, err = cal.AddEvent(ctx, models.Event{Date: "2024-03-05", Title: "x", PlanID: "no-such-plan"})
	require.ErrorIs(t, err, ErrPlanNotFound)
	_, err = cal.DayDetail(ctx, "yesterday")
	require.ErrorIs(t, err, models.ErrInvalid)
}

func TestCalendar_DayDetailLinksPlans(t *testing.T) {
	ctx, _ := ctxAndLog()
	cal, plans := newCalendar(t)

	p, err := plans.Add(ctx, models.PlanMidTerm, models.Plan{Title: "get fit"})
	require.NoError(t, err)
	_, err = cal.AddEvent(ctx, models.Event{Date: "2024-03-05", Title: "gym", PlanID: p.ID})
	require.NoError(t, err)
	_, err = cal.AddEvent(ctx, models.Event{Date: "2024-03-06", Title: "other day"})
	require.NoError(t, err)
	w, err := cal.AddCompletedWork(ctx, models.CompletedWork{Date: "2024-03-05", Content: "ran 5k"})
	require.NoError(t, err)

	day, err := cal.DayDetail(ctx, "2024-03-05")
	require.NoError(t, err)
	require.Len(t, day.Events, 1)
	assert.Equal(t, "gym", day.Events[0].Title)
	assert.Equal(t, "get fit", day.Events[0].PlanTitle)
	require.Len(t, day.Works, 1)

	require.ErrorIs(t, cal.DeleteCompletedWork(ctx, "missing"), ErrWorkNotFound)
	require.NoError(t, cal.DeleteCompletedWork(ctx, w.ID))
	day, err = cal.DayDetail(ctx, "2024-03-05")
	require.NoError(t, err)
	assert.Empty(t, day.Works)
}

func TestCalendar_Month(t *testing.T) {
	ctx, _ := ctxAndLog()
	cal, _ := newCalendar(t)

	e, err := cal.AddEvent(ctx, models.Event{Date: "2024-02-29", Title: "leap"})
	require.NoError(t, err)
	_, err = cal.ToggleEvent(ctx, e.ID)
	require.NoError(t, err)
	_, err = cal.AddEvent(ctx, models.Event{Date: "2024-03-01", Title: "next month"})
	require.NoError(t, err)
	_, err = cal.AddCompletedWork(ctx, models.CompletedWork{Date: "2024-02-01", Content: "x"})
	require.NoError(t, err)

	m, err := cal.Month(ctx, 2024, time.February)
	require.NoError(t, err)
	require.Len(t, m.Days, 29)
	assert.Equal(t, 4, m.Offset) // Thursday
	assert.Equal(t, DaySummary{Date: "2024-02-29", Day: 29, Events: 1, Completed: 1}, m.Days[28])
	assert.Equal(t, 1, m.Days[0].Works)
}

func TestCalendar_ImportFormats(t *testing.T) {
	ctx, _ := ctxAndLog()
	cal, _ := newCalendar(t)

	require.NoError(t, cal.ImportEvents(ctx, []byte(`[{"id":"1","date":"2024-01-01","title":"legacy"}]`), false))
	events, err := cal.GetAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	works, err := cal.GetAllCompletedWorks(ctx)
	require.NoError(t, err)
	assert.Empty(t, works)

	require.NoError(t, cal.ImportEvents(ctx, []byte(`{"events":[{"id":"2","date":"2024-01-02","title":"new"}],"completedWorks":[{"id":"w","date":"2024-01-02","content":"done"}]}`), false))
	events, err = cal.GetAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2", events[0].ID)
	works, err = cal.GetAllCompletedWorks(ctx)
	require.NoError(t, err)
	assert.Len(t, works, 1)

	for _, raw := range []string{`"x"`, `42`, ``, `{"events":{"id":"1"}}`} {
		require.ErrorIs(t, cal.ImportEvents(ctx, []byte(raw), true), ErrInvalidImport, raw)
	}
}

func TestCalendar_ImportMergeKeepsLocalCompletion(t *testing.T) {
	ctx, _ := ctxAndLog()
	cal, _ := newCalendar(t)

	seed := `{"events":[{"id":"1","date":"2024-01-01","title":"old","completed":true}],
	          "completedWorks":[{"id":"w1","date":"2024-01-01","content":"local"}]}`
	require.NoError(t, cal.ImportEvents(ctx, []byte(seed), false))

	incoming := `{"events":[{"id":"1","date":"2024-01-05","title":"moved","completed":false},
	                        {"id":"2","date":"2024-01-06","title":"added"}],
	              "completedWorks":[{"id":"w1","date":"2024-01-01","content":"remote"},
	                                {"id":"w2","date":"2024-01-02","content":"fresh"}]}`
	require.NoError(t, cal.ImportEvents(ctx, []byte(incoming), true))

	events, err := cal.GetAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "moved", events[0].Title)
	assert.Equal(t, "2024-01-05", events[0].Date)
	assert.True(t, events[0].Completed)
	assert.Equal(t, "added", events[1].Title)

	works, err := cal.GetAllCompletedWorks(ctx)
	require.NoError(t, err)
	require.Len(t, works, 2)
	assert.Equal(t, "local", works[0].Content)
	assert.Equal(t, "w2", works[1].ID)
}

func TestCalendar_Export(t *testing.T) {
	ctx, _ := ctxAndLog()
	cal, _ := newCalendar(t)
	_, err := cal.AddEvent(ctx, models.Event{Date: "2024-01-01", Title: "party"})
	require.NoError(t, err)

	out, err := cal.Export(ctx)
	require.NoError(t, err)

	var doc models.CalendarExport
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Len(t, doc.Events, 1)
	assert.NotNil(t, doc.CompletedWorks)
	assert.False(t, doc.ExportDate.IsZero())
	assert.Contains(t, string(out), `"completedWorks": []`)

	// an export imports back cleanly
	_, log := ctxAndLog()
	other := NewCalendarService(setupDBNamed(t, "other"), nil, log)
	require.NoError(t, other.ImportEvents(ctx, out, false))
	events, err := other.GetAllEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
