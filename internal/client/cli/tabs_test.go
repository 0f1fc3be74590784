package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/timeflow/internal/client/diary"
	"github.com/dmitrijs2005/timeflow/internal/client/models"
	"github.com/dmitrijs2005/timeflow/internal/client/services"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
	"github.com/dmitrijs2005/timeflow/internal/cryptox"
	"github.com/dmitrijs2005/timeflow/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlansTab(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	svc := services.NewPlanService(repos.DB, logging.Discard())
	dir := t.TempDir()

	importPath := filepath.Join(dir, "incoming.json")
	require.NoError(t, os.WriteFile(importPath,
		[]byte(`{"short-term":[{"id":"1","title":"Read a book"}]}`), 0o600))

	console, out := newTestConsole(
		"Learn Go\n\n2024-01-01\n2024-12-31\n" + // add long
			"\n" + // export to the default path
			importPath + "\ny\n" + // import and merge
			"y\n", // confirm delete
	)
	tab, err := NewPlansTab(svc, NewPathPicker(console, dir))(ctx, console)
	require.NoError(t, err)

	require.NoError(t, tab.Exec(ctx, "add", []string{"long"}))
	long, err := svc.GetPlansByType(ctx, models.PlanLongTerm)
	require.NoError(t, err)
	require.Len(t, long, 1)
	assert.Equal(t, "Learn Go", long[0].Title)
	assert.Equal(t, "2024-12-31", long[0].EndDate)

	require.NoError(t, tab.Exec(ctx, "export", nil))
	exported, err := os.ReadFile(filepath.Join(dir, plansExportName))
	require.NoError(t, err)
	assert.Contains(t, string(exported), "Learn Go")

	require.NoError(t, tab.Exec(ctx, "import", nil))
	all, err := svc.GetAllPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, all[models.PlanLongTerm], 1)
	assert.Len(t, all[models.PlanShortTerm], 1)
	assert.Contains(t, out.String(), "Plans merged.")

	require.NoError(t, tab.Exec(ctx, "delete", []string{"long", long[0].ID}))
	long, err = svc.GetPlansByType(ctx, models.PlanLongTerm)
	require.NoError(t, err)
	assert.Empty(t, long)

	require.NoError(t, tab.Exec(ctx, "list", []string{"short"}))
	assert.Contains(t, out.String(), "Read a book")

	assert.ErrorIs(t, tab.Exec(ctx, "list", []string{"weekly"}), services.ErrUnknownPlanType)
	assert.ErrorIs(t, tab.Exec(ctx, "fly", nil), errUnknownCommand)
}

func TestPlansTab_ImportRejectsArray(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	svc := services.NewPlanService(repos.DB, logging.Discard())
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[1,2]`), 0o600))

	console, _ := newTestConsole(bad + "\nn\n")
	tab, err := NewPlansTab(svc, NewPathPicker(console, dir))(ctx, console)
	require.NoError(t, err)

	assert.ErrorIs(t, tab.Exec(ctx, "import", nil), services.ErrInvalidImport)
}

func TestCalendarTab(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	plans := services.NewPlanService(repos.DB, logging.Discard())
	svc := services.NewCalendarService(repos.DB, plans, logging.Discard())
	dir := t.TempDir()

	console, out := newTestConsole(
		"Standup\nDaily sync\n\n" + // event for today
			"Shipped the release\n\n" + // completed work
			"\n" + // export
			"y\n", // confirm rm-event
	)
	tab, err := NewCalendarTab(svc, NewPathPicker(console, dir), fixedNow)(ctx, console)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "March 2024")

	require.NoError(t, tab.Exec(ctx, "event", nil))
	events, err := svc.GetAllEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2024-03-15", events[0].Date)

	require.NoError(t, tab.Exec(ctx, "work", nil))
	require.NoError(t, tab.Exec(ctx, "toggle", []string{events[0].ID}))
	assert.Contains(t, out.String(), "Standup is now done.")

	require.NoError(t, tab.Exec(ctx, "day", []string{"2024-03-15"}))
	assert.Contains(t, out.String(), "[x]")
	assert.Contains(t, out.String(), "Shipped the release")

	require.NoError(t, tab.Exec(ctx, "next", nil))
	assert.Contains(t, out.String(), "April 2024")
	require.NoError(t, tab.Exec(ctx, "month", []string{"2023-12"}))
	assert.Contains(t, out.String(), "December 2023")
	require.Error(t, tab.Exec(ctx, "month", []string{"Dec"}))

	require.NoError(t, tab.Exec(ctx, "export", nil))
	raw, err := os.ReadFile(filepath.Join(dir, calendarExportName))
	require.NoError(t, err)
	var doc models.CalendarExport
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Len(t, doc.Events, 1)
	assert.Len(t, doc.CompletedWorks, 1)

	require.NoError(t, tab.Exec(ctx, "rm-event", []string{events[0].ID}))
	events, err = svc.GetAllEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.ErrorIs(t, tab.Exec(ctx, "toggle", []string{"404"}), services.ErrEventNotFound)
}

func TestDiaryTab_FileWorkflow(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, diary.DefaultFileName)

	console, out := newTestConsole(
		"pw\npw\n\n" + // create: password twice, default save path
			"Hello diary\n\n" + // write
			"Changed\n\ny\n" + // overwrite, confirmed
			path + "\n" + // select
			"wrong\n" + // unlock
			"pw\n", // unlock
	)
	session := diary.NewSession(storage.NewHandleStrategy(NewPathPicker(console, dir)))
	tab, err := NewDiaryTab(session, fixedNow)(ctx, console)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "No data file selected.")

	require.NoError(t, tab.Exec(ctx, "create", nil))
	assert.Contains(t, out.String(), "Created my_diary_data.json.")
	assert.Contains(t, out.String(), "Diary unlocked, 0 entries.")

	require.NoError(t, tab.Exec(ctx, "write", []string{"2024-01-01"}))
	require.NoError(t, tab.Exec(ctx, "write", []string{"2024-01-01"}))
	assert.Contains(t, out.String(), "Entry saved.")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc models.PersistedFile
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.NotNil(t, doc.PasswordHash)
	assert.Equal(t, cryptox.HashPassword("pw"), *doc.PasswordHash)
	assert.NotContains(t, string(raw), "Changed")

	require.NoError(t, tab.Exec(ctx, "lock", nil))
	assert.Equal(t, diary.StateNoFileSelected, session.State())

	require.NoError(t, tab.Exec(ctx, "select", nil))
	assert.Contains(t, out.String(), "Opened my_diary_data.json.")

	require.NoError(t, tab.Exec(ctx, "unlock", nil))
	assert.Contains(t, out.String(), "Wrong password.")
	assert.Equal(t, diary.StateAwaitingPassword, session.State())

	require.NoError(t, tab.Exec(ctx, "unlock", nil))
	assert.Contains(t, out.String(), "Diary unlocked, 1 entries.")

	entries, err := session.GetAllDiaries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Changed", entries[0].Content)

	require.NoError(t, tab.Exec(ctx, "list", nil))
	assert.Contains(t, out.String(), "Changed")
	assert.Equal(t, "unlocked", tab.(statusReporter).Status())
}

func TestDiaryTab_LocalWorkflow(t *testing.T) {
	ctx := context.Background()
	repos := setupRepos(t)
	dir := t.TempDir()

	console, out := newTestConsole(
		"pw\npw\n" + // create
			"Local entry\n\n" + // write for today
			"pw\n" + // unlock after resuming
			"again\nagain\n", // second create
	)
	strategy := storage.NewLocalStrategy(NewPathPicker(console, dir), repos.KV)
	session := diary.NewSession(strategy)
	tab, err := NewDiaryTab(session, fixedNow)(ctx, console)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Diary data lives in local storage.")

	require.NoError(t, tab.Exec(ctx, "create", nil))
	require.NoError(t, tab.Exec(ctx, "write", nil))
	require.NoError(t, tab.Exec(ctx, "lock", nil))

	require.NoError(t, tab.Exec(ctx, "local", nil))
	require.NoError(t, tab.Exec(ctx, "unlock", nil))
	entries, err := session.GetAllDiaries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-15", entries[0].Date)

	require.NoError(t, tab.Exec(ctx, "lock", nil))
	require.NoError(t, tab.Exec(ctx, "create", nil))
	assert.Contains(t, out.String(), "A diary already exists in local storage.")

	stored, err := repos.KV.Get(ctx, storage.LocalDataKey)
	require.NoError(t, err)
	assert.True(t, json.Valid(stored))
}

func TestDiaryTab_WriteWhileLocked(t *testing.T) {
	ctx := context.Background()
	console, out := newTestConsole("")
	session := diary.NewSession(storage.NewHandleStrategy(NewPathPicker(console, t.TempDir())))
	tab, err := NewDiaryTab(session, fixedNow)(ctx, console)
	require.NoError(t, err)

	require.NoError(t, tab.Exec(ctx, "write", nil))
	require.NoError(t, tab.Exec(ctx, "list", nil))
	assert.Contains(t, out.String(), "Unlock the diary first.")

	require.NoError(t, tab.Exec(ctx, "select", nil))
	assert.Contains(t, out.String(), "Cancelled.")
}

func TestDiaryTab_CorruptLastFileRecord(t *testing.T) {
	capturePrintln(t)
	ctx := context.Background()
	repos := setupRepos(t)
	require.NoError(t, repos.KV.Set(ctx, storage.FileInfoKey, []byte("{broken")))

	dir := t.TempDir()
	path := filepath.Join(dir, "journal.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"encryptedDiaries":"","passwordHash":null}`), 0o600))

	console, out := newTestConsole(path + "\n")
	session := diary.NewSession(
		storage.NewHandleStrategy(NewPathPicker(console, dir)),
		diary.WithSidecar(storage.NewSidecar(repos.KV)),
	)
	sh := NewShell(console, nil)
	sh.Register("diary", NewDiaryTab(session, fixedNow))

	require.NoError(t, sh.Activate(ctx, "diary"))
	require.NoError(t, sh.Activate(ctx, "diary"))
	assert.Contains(t, out.String(), "No data file selected.")
	assert.NotContains(t, out.String(), "Last used file")

	require.NoError(t, sh.exec(ctx, "select", nil))
	assert.Contains(t, out.String(), "Opened journal.json.")
	assert.Equal(t, diary.StateAwaitingPassword, session.State())
}
