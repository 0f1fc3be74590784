package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/timeflow/internal/client/quotes"
	"github.com/dmitrijs2005/timeflow/internal/logging"
	"github.com/google/uuid"
)

// Tab is one module of the shell.
type Tab interface {
	// Help lists the tab's commands.
	Help() string
	// Exec runs cmd. It returns errUnknownCommand for commands it does not know.
	Exec(ctx context.Context, cmd string, args []string) error
}

// statusReporter is implemented by tabs that add to the prompt.
type statusReporter interface {
	Status() string
}

// Factory builds a tab. It is called at most once, on first activation.
type Factory func(ctx context.Context, c *Console) (Tab, error)

type ShellOption func(*Shell)

// WithNotice sets a message printed once at start-up.
func WithNotice(msg string) ShellOption {
	return func(s *Shell) { s.notice = msg }
}

func WithShellLogger(l logging.Logger) ShellOption {
	return func(s *Shell) { s.log = l }
}

// Shell is the tabbed REPL. Tabs are registered as factories and built
// lazily, each exactly once.
type Shell struct {
	console   *Console
	quotes    *quotes.Rotator
	log       logging.Logger
	id        uuid.UUID
	notice    string
	order     []string
	factories map[string]Factory
	tabs      map[string]Tab
	active    string
	lastQuote string
}

func NewShell(console *Console, rot *quotes.Rotator, opts ...ShellOption) *Shell {
	s := &Shell{
		console:   console,
		quotes:    rot,
		log:       logging.Discard(),
		id:        uuid.New(),
		factories: map[string]Factory{},
		tabs:      map[string]Tab{},
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("shell", s.id.String())
	return s
}

// Register adds a tab under name. Tabs are listed in registration order.
func (s *Shell) Register(name string, f Factory) {
	if _, ok := s.factories[name]; !ok {
		s.order = append(s.order, name)
	}
	s.factories[name] = f
}

// Activate switches to the tab called name, building it if needed.
func (s *Shell) Activate(ctx context.Context, name string) error {
	f, ok := s.factories[name]
	if !ok {
		return fmt.Errorf("unknown tab %q, choose one of %s", name, strings.Join(s.order, ", "))
	}
	if _, built := s.tabs[name]; !built {
		t, err := f(ctx, s.console)
		if err != nil {
			s.log.Error(ctx, "failed to open tab", "tab", name, "error", err)
			return fmt.Errorf("failed to open %s: %w", name, err)
		}
		s.tabs[name] = t
		s.log.Debug(ctx, "tab built", "tab", name)
	}
	s.active = name
	return nil
}

// Active returns the name of the active tab.
func (s *Shell) Active() string { return s.active }

// Run starts on tab first and blocks until the user leaves or ctx is done.
func (s *Shell) Run(ctx context.Context, first string) error {
	if err := s.Activate(ctx, first); err != nil {
		return err
	}

	s.log.Info(ctx, "shell started", "tab", first)
	s.console.Println(titleStyle.Render("Welcome to TimeFlow (type 'help' for commands)"))
	if s.notice != "" {
		s.console.Println(noticeStyle.Render(s.notice))
	}
	s.console.Println(renderTabs(s.order, s.active))

	runREPL(ctx, s, s.status, s.console.in)
	return nil
}

func (s *Shell) status() string {
	st := s.active
	if r, ok := s.tabs[s.active].(statusReporter); ok {
		if extra := r.Status(); extra != "" {
			st += " " + extra
		}
	}
	if s.quotes != nil {
		if q := s.quotes.Current(); q != s.lastQuote {
			s.lastQuote = q
			printlnFn(quoteStyle.Render(q))
		}
	}
	return "[" + st + "]"
}

func (s *Shell) help() string {
	var b strings.Builder
	b.WriteString("Global commands: help, tab <" + strings.Join(s.order, "|") + ">, quote, exit")
	if t, ok := s.tabs[s.active]; ok {
		b.WriteString("\n")
		b.WriteString(t.Help())
	}
	return b.String()
}

func (s *Shell) switchTab(ctx context.Context, name string) error {
	if err := s.Activate(ctx, name); err != nil {
		return err
	}
	printlnFn(renderTabs(s.order, s.active))
	return nil
}

func (s *Shell) quote() string {
	if s.quotes == nil {
		return ""
	}
	q := s.quotes.Next()
	s.lastQuote = q
	return q
}

func (s *Shell) exec(ctx context.Context, cmd string, args []string) error {
	t, ok := s.tabs[s.active]
	if !ok {
		return errUnknownCommand
	}
	return t.Exec(ctx, cmd, args)
}
