package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errUnknownCommand is returned by a tab that does not handle a command.
var errUnknownCommand = errors.New("unknown command")

// execIface defines the minimal command surface the REPL needs to operate.
// Shell satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	help() string
	switchTab(ctx context.Context, name string) error
	quote() string
	exec(ctx context.Context, cmd string, args []string) error
}

// runREPL starts the read–eval–print loop of the shell.
//
// It reads a line from reader, parses the first token as the command and
// dispatches it. Global commands are handled here; everything else goes to
// the active tab. The loop exits on EOF, when ctx is done, or when the user
// types "exit" or "quit".
//
//	help          show global and tab commands
//	tab <name>    switch to plans, calendar or diary
//	quote         show the next motivational quote
//	exit | quit   leave the program
//
// Errors returned by tab handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tf %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(a.help())

		case "tab":
			if len(args) == 0 {
				printlnFn("Usage: tab <plans|calendar|diary>")
				continue
			}
			if err := a.switchTab(ctx, args[0]); err != nil {
				printlnFn(errorStyle.Render(err.Error()))
			}

		case "quote":
			printlnFn(quoteStyle.Render(a.quote()))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			err := a.exec(ctx, cmd, args)
			switch {
			case errors.Is(err, errUnknownCommand):
				printlnFn("Unknown command:", cmd)
			case err != nil:
				printlnFn(errorStyle.Render(err.Error()))
			}
		}
	}
}
