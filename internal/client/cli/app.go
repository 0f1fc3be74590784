package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dmitrijs2005/timeflow/internal/client/client"
	"github.com/dmitrijs2005/timeflow/internal/client/config"
	"github.com/dmitrijs2005/timeflow/internal/client/diary"
	"github.com/dmitrijs2005/timeflow/internal/client/quotes"
	"github.com/dmitrijs2005/timeflow/internal/client/services"
	"github.com/dmitrijs2005/timeflow/internal/client/storage"
	"github.com/dmitrijs2005/timeflow/internal/filex"
	"github.com/dmitrijs2005/timeflow/internal/logging"
	"golang.org/x/term"
)

// shutdownGrace bounds how long Run waits for a running command after an
// interrupt. A shell blocked on input is not waited for past it.
const shutdownGrace = 3 * time.Second

const localStorageNotice = "Local storage mode: diary data is kept in the local state database. " +
	"Use 'import' and 'export' in the diary tab to move data files in and out."

// App wires configuration, the local state database, the modules and the
// shell.
type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   *client.Repositories
	console *Console
	quotes  *quotes.Rotator
	shell   *Shell
}

// NewApp builds the application reading from in and writing to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel)
	if err != nil {
		return nil, err
	}

	if _, err := filex.EnsureDir(filepath.Dir(c.StateDB)); err != nil {
		return nil, fmt.Errorf("state directory: %w", err)
	}
	repos, err := client.InitDatabase(ctx, c.StateDB)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	console := NewConsole(in, out, isInteractive(in))
	picker := NewPathPicker(console, c.DownloadDir)

	var strategy storage.Strategy
	var opts []ShellOption
	switch c.EffectiveStorage() {
	case config.StorageLocal:
		strategy = storage.NewLocalStrategy(picker, repos.KV)
		opts = append(opts, WithNotice(localStorageNotice))
	default:
		strategy = storage.NewHandleStrategy(picker)
	}

	session := diary.NewSession(strategy,
		diary.WithLogger(logger.With("module", "diary")),
		diary.WithSidecar(storage.NewSidecar(repos.KV)),
	)
	plans := services.NewPlanService(repos.DB, logger.With("module", "plans"))
	calendar := services.NewCalendarService(repos.DB, plans, logger.With("module", "calendar"))

	rot := quotes.NewRotator()
	sh := NewShell(console, rot, append(opts, WithShellLogger(logger))...)
	sh.Register("plans", NewPlansTab(plans, picker))
	sh.Register("calendar", NewCalendarTab(calendar, picker, nil))
	sh.Register("diary", NewDiaryTab(session, nil))

	return &App{config: c, logger: logger, repos: repos, console: console, quotes: rot, shell: sh}, nil
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run starts the quote rotation and the shell, and returns when the user
// leaves or the process is interrupted.
func (a *App) Run(ctx context.Context) error {
	defer a.repos.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go a.quotes.Run(ctx, a.config.QuoteInterval)

	done := make(chan error, 1)
	go func() {
		done <- a.shell.Run(ctx, a.config.DefaultTab)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		a.logger.Info(ctx, "interrupted, shutting down")
	}

	// the database stays open until the command in flight is done
	select {
	case <-done:
	case <-time.After(shutdownGrace):
		a.logger.Warn(ctx, "shell did not stop in time")
	}
	a.console.Println()
	return nil
}
