package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/timeflow/internal/client/storage"
	"github.com/dmitrijs2005/timeflow/internal/shared"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(prompt string, w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Console is the shared terminal of the shell: one buffered reader over
// stdin and one writer for user-facing text.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	// interactive selects echo-free password entry.
	interactive bool
}

func NewConsole(in io.Reader, out io.Writer, interactive bool) *Console {
	return &Console{in: bufio.NewReader(in), out: out, interactive: interactive}
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Ask(prompt string) (string, error) {
	return GetSimpleText(c.in, prompt, c.out)
}

func (c *Console) AskMultiline(prompt string) (string, error) {
	return GetMultiline(c.in, prompt, c.out)
}

// Password reads a secret. Without a terminal it falls back to a plain line.
func (c *Console) Password(prompt string) (string, error) {
	if !c.interactive {
		return c.Ask(prompt)
	}
	pw, err := GetPassword(prompt, c.out)
	if err != nil {
		return "", err
	}
	s := string(pw)
	shared.WipeByteArray(pw)
	return s, nil
}

// Confirm asks a y/N question. It satisfies diary.Confirmer.
func (c *Console) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	answer, err := c.Ask(question + " [y/N]")
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PathPicker implements storage.FilePicker with path prompts. End of input
// dismisses either dialog. The open dialog is also dismissed by an empty
// answer; the save dialog takes it as the suggested path and is dismissed
// by "-". Bare file names are saved in dir.
type PathPicker struct {
	console *Console
	dir     string
}

func NewPathPicker(c *Console, dir string) *PathPicker {
	return &PathPicker{console: c, dir: dir}
}

func (p *PathPicker) PickOpen(ctx context.Context) (string, error) {
	return p.pick(ctx, "Path of the file to open (empty to cancel)", "")
}

func (p *PathPicker) PickSave(ctx context.Context, suggestedName string) (string, error) {
	def := filepath.Join(p.dir, suggestedName)
	path, err := p.pick(ctx, fmt.Sprintf("Save as (Enter for %s, '-' to cancel)", def), def)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(p.dir, path)
	}
	return path, nil
}

func (p *PathPicker) pick(ctx context.Context, prompt, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := p.console.Ask(prompt)
	switch {
	case errors.Is(err, io.EOF):
		return "", storage.ErrPickerDismissed
	case err != nil:
		return "", err
	}
	switch {
	case path == "-":
		return "", storage.ErrPickerDismissed
	case path == "" && def == "":
		return "", storage.ErrPickerDismissed
	case path == "":
		return def, nil
	}
	return path, nil
}
