package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/diary"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
	"github.com/dmitrijs2005/timeflow/internal/timex"
)

type diaryTab struct {
	session *diary.Session
	console *Console
	now     func() time.Time
}

// NewDiaryTab returns the factory of the diary tab. The session is
// initialised when the tab is first opened.
func NewDiaryTab(session *diary.Session, now func() time.Time) Factory {
	if now == nil {
		now = timex.Now
	}
	return func(ctx context.Context, c *Console) (Tab, error) {
		if err := session.Init(ctx); err != nil {
			return nil, err
		}
		t := &diaryTab{session: session, console: c, now: now}
		t.showView(session.View())
		return t, nil
	}
}

func (t *diaryTab) Help() string {
	v := t.session.View()
	switch v.State {
	case diary.StateUnlocked:
		return "Diary: write [date], delete <id>, list, save, export, lock"
	case diary.StateAwaitingPassword:
		return "Diary: unlock, lock"
	default:
		if v.Strategy == storage.KindLocal {
			return "Diary: local, import, create"
		}
		return "Diary: select, create"
	}
}

func (t *diaryTab) Status() string {
	return t.session.State().String()
}

func (t *diaryTab) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "select", "open":
		t.report(t.session.SelectFile(ctx))
	case "create", "new":
		return t.create(ctx)
	case "local":
		t.report(t.session.UseLocalStore(ctx))
	case "import":
		t.report(t.session.Import(ctx))
	case "unlock":
		pw, err := t.console.Password("Password")
		if err != nil {
			return err
		}
		out, err := t.session.Unlock(ctx, pw)
		t.report(out, err)
		if err == nil {
			t.console.Println(renderEntries(out.View.Entries))
		}
	case "lock":
		t.report(t.session.Lock(), nil)
	case "write", "w":
		return t.write(ctx, args)
	case "delete", "rm":
		if len(args) == 0 {
			t.console.Println("Usage: delete <id>")
			return nil
		}
		t.report(t.session.DeleteEntry(ctx, args[0], t.console.Confirm))
	case "list", "l":
		entries, err := t.session.GetAllDiaries()
		if err != nil {
			t.report(diary.Outcome{}, err)
			return nil
		}
		t.console.Println(renderEntries(entries))
	case "save":
		t.report(t.session.Save(ctx))
	case "export":
		t.report(t.session.Export(ctx))
	case "status":
		t.showView(t.session.View())
	default:
		return errUnknownCommand
	}
	return nil
}

// create makes a new data file and unlocks it with the same password.
func (t *diaryTab) create(ctx context.Context) error {
	pw, err := t.console.Password("New password")
	if err != nil {
		return err
	}
	confirm, err := t.console.Password("Repeat password")
	if err != nil {
		return err
	}
	out, err := t.session.CreateFile(ctx, pw, confirm)
	t.report(out, err)
	if err != nil || out.Kind != diary.OutcomeFileCreated {
		return nil
	}
	t.report(t.session.Unlock(ctx, pw))
	return nil
}

func (t *diaryTab) write(ctx context.Context, args []string) error {
	if t.session.State() != diary.StateUnlocked {
		t.report(diary.Outcome{}, diary.ErrLocked)
		return nil
	}
	date := t.now().Format(timex.DateLayout)
	if len(args) > 0 {
		date = args[0]
	}
	content, err := t.console.AskMultiline("Diary for " + date)
	if err != nil {
		return err
	}
	t.report(t.session.SaveEntry(ctx, date, content, t.console.Confirm))
	return nil
}

func (t *diaryTab) report(out diary.Outcome, err error) {
	msg := describe(out, err)
	if msg == "" {
		return
	}
	var partial *diary.PartialFailureError
	switch {
	case errors.As(err, &partial):
		t.console.Println(noticeStyle.Render(msg))
	case err != nil:
		t.console.Println(errorStyle.Render(msg))
	case out.Warning != nil:
		t.console.Println(noticeStyle.Render(msg))
	default:
		t.console.Println(successStyle.Render(msg))
	}
}

func (t *diaryTab) showView(v diary.View) {
	switch v.State {
	case diary.StateUnlocked:
		t.console.Println(titleStyle.Render("Diary: " + v.FileName))
		t.console.Println(renderEntries(v.Entries))
	case diary.StateAwaitingPassword:
		t.console.Println("Data file " + v.FileName + " is selected. Use 'unlock' to enter the password.")
	default:
		if v.Strategy == storage.KindLocal {
			t.console.Println("Diary data lives in local storage. Use 'local' to open it, 'import' to upload a file, or 'create' to start one.")
		} else {
			t.console.Println("No data file selected. Use 'select' to open one or 'create' to start a new one.")
		}
		if v.LastFile != "" {
			t.console.Println(mutedStyle.Render("Last used file: " + v.LastFile))
		}
	}
}
