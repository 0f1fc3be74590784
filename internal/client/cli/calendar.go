package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/services"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

const calendarExportName = "calendar.json"

type calendarTab struct {
	svc     services.CalendarService
	console *Console
	picker  storage.FilePicker
	now     func() time.Time
	// cursor is the first day of the month on screen.
	cursor time.Time
}

// NewCalendarTab returns the factory of the calendar tab. now supplies
// "today"; nil means timex.Now.
func NewCalendarTab(svc services.CalendarService, picker storage.FilePicker, now func() time.Time) Factory {
	if now == nil {
		now = timex.Now
	}
	return func(ctx context.Context, c *Console) (Tab, error) {
		today := now()
		t := &calendarTab{
			svc:     svc,
			console: c,
			picker:  picker,
			now:     now,
			cursor:  time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
		}
		if err := t.month(ctx); err != nil {
			return nil, err
		}
		return t, nil
	}
}

func (t *calendarTab) Help() string {
	return "Calendar: month [YYYY-MM], next, prev, day [date], event [date], work [date], toggle <id>, rm-event <id>, rm-work <id>, export, import"
}

func (t *calendarTab) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "month", "m":
		if len(args) > 0 {
			m, err := time.Parse("2006-01", args[0])
			if err != nil {
				return fmt.Errorf("month must be YYYY-MM: %w", err)
			}
			t.cursor = m
		}
		return t.month(ctx)
	case "next":
		t.cursor = t.cursor.AddDate(0, 1, 0)
		return t.month(ctx)
	case "prev":
		t.cursor = t.cursor.AddDate(0, -1, 0)
		return t.month(ctx)
	case "day", "d":
		return t.day(ctx, t.date(args))
	case "event":
		return t.addEvent(ctx, t.date(args))
	case "work":
		return t.addWork(ctx, t.date(args))
	case "toggle":
		return t.toggle(ctx, args)
	case "rm-event":
		return t.remove(ctx, args, "Delete this event?", t.svc.DeleteEvent)
	case "rm-work":
		return t.remove(ctx, args, "Delete this completed work record?", t.svc.DeleteCompletedWork)
	case "export":
		return t.export(ctx)
	case "import":
		return t.importCalendar(ctx)
	default:
		return errUnknownCommand
	}
}

func (t *calendarTab) date(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return t.now().Format(timex.DateLayout)
}

func (t *calendarTab) month(ctx context.Context) error {
	view, err := t.svc.Month(ctx, t.cursor.Year(), t.cursor.Month())
	if err != nil {
		return err
	}
	t.console.Println(renderMonth(view))
	return nil
}

func (t *calendarTab) day(ctx context.Context, date string) error {
	detail, err := t.svc.DayDetail(ctx, date)
	if err != nil {
		return err
	}
	t.console.Println(renderDay(detail))
	return nil
}

func (t *calendarTab) addEvent(ctx context.Context, date string) error {
	e := models.Event{Date: date}
	var err error
	if e.Title, err = t.console.Ask("Event title for " + date); err != nil {
		return err
	}
	if e.Description, err = t.console.Ask("Description (optional)"); err != nil {
		return err
	}
	if e.PlanID, err = t.console.Ask("Linked plan id (optional)"); err != nil {
		return err
	}
	added, err := t.svc.AddEvent(ctx, e)
	if err != nil {
		return err
	}
	t.console.Println(successStyle.Render(fmt.Sprintf("Event added (#%s).", added.ID)))
	return nil
}

func (t *calendarTab) addWork(ctx context.Context, date string) error {
	content, err := t.console.AskMultiline("What did you get done on " + date + "?")
	if err != nil {
		return err
	}
	w, err := t.svc.AddCompletedWork(ctx, models.CompletedWork{Date: date, Content: content})
	if err != nil {
		return err
	}
	t.console.Println(successStyle.Render(fmt.Sprintf("Completed work recorded (#%s).", w.ID)))
	return nil
}

func (t *calendarTab) toggle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		t.console.Println("Usage: toggle <id>")
		return nil
	}
	e, err := t.svc.ToggleEvent(ctx, args[0])
	if err != nil {
		return err
	}
	state := "open"
	if e.Completed {
		state = "done"
	}
	t.console.Println(successStyle.Render(fmt.Sprintf("%s is now %s.", e.Title, state)))
	return nil
}

func (t *calendarTab) remove(ctx context.Context, args []string, question string, del func(context.Context, string) error) error {
	if len(args) == 0 {
		t.console.Println("Usage: rm-event <id> | rm-work <id>")
		return nil
	}
	ok, err := t.console.Confirm(ctx, question)
	if err != nil || !ok {
		return err
	}
	if err := del(ctx, args[0]); err != nil {
		return err
	}
	t.console.Println(successStyle.Render("Deleted."))
	return nil
}

func (t *calendarTab) export(ctx context.Context) error {
	data, err := t.svc.Export(ctx)
	if err != nil {
		return err
	}
	path, err := exportFile(ctx, t.picker, calendarExportName, data)
	if errors.Is(err, errCancelled) {
		t.console.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	t.console.Println(successStyle.Render("Calendar exported to " + path + "."))
	return nil
}

func (t *calendarTab) importCalendar(ctx context.Context) error {
	raw, merge, err := importFile(ctx, t.console, t.picker, "events")
	if errors.Is(err, errCancelled) {
		t.console.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	if err := t.svc.ImportEvents(ctx, raw, merge); err != nil {
		return fmt.Errorf("failed to import events: %w", err)
	}
	t.console.Println(successStyle.Render("Events " + importVerb(merge) + "."))
	return nil
}
