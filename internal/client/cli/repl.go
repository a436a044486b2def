package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/coursemanager/internal/client/media"
	"github.com/dmitrijs2005/coursemanager/internal/client/transfer"
	"github.com/dmitrijs2005/coursemanager/internal/common"
)

// access is the session level a command requires.
type access int

const (
	accessGuest access = iota // logged out only
	accessUser
	accessAdmin
)

type command struct {
	name    string
	args    string
	summary string
	access  access
	minArgs int
	run     func(ctx context.Context, args []string) error
}

func (c command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	status() string
	commands() []command
}

// runREPL starts the read-eval-print loop.
//
// It reads a line from reader, parses the first token as the command, and
// looks it up in the command table of a. "help" lists the commands available
// at the current session level, "exit" and "quit" leave the loop, as does the
// end of input. Commands that need a session (or an admin session) are
// refused before they run. Errors returned by commands are printed and the
// loop continues.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "cm %s> ", a.status())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			printHelp(a, w)
			continue
		}

		cmd, ok := lookup(a.commands(), name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if msg := denied(a, cmd); msg != "" {
			fmt.Fprintln(w, msg)
			continue
		}
		if len(args) < cmd.minArgs {
			fmt.Fprintln(w, "Usage:", cmd.usage())
			continue
		}

		if err := cmd.run(ctx, args); err != nil {
			fmt.Fprintln(w, "Error:", describe(err))
		}
	}
}

func lookup(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func denied(a execIface, c command) string {
	switch c.access {
	case accessGuest:
		if a.isLoggedIn() {
			return "Already logged in. Use 'logout' first."
		}
	case accessUser:
		if !a.isLoggedIn() {
			return "Please log in first."
		}
	case accessAdmin:
		if !a.isLoggedIn() {
			return "Please log in first."
		}
		if !a.isAdmin() {
			return "Admin access required."
		}
	}
	return ""
}

func printHelp(a execIface, w io.Writer) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range a.commands() {
		if denied(a, c) != "" {
			continue
		}
		fmt.Fprintf(w, "  %-34s %s\n", c.usage(), c.summary)
	}
	fmt.Fprintf(w, "  %-34s %s\n", "help", "show this list")
	fmt.Fprintf(w, "  %-34s %s\n", "exit | quit", "leave the program")
}

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrorInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, common.ErrorUserExists):
		return "a user with this email already exists"
	case errors.Is(err, transfer.ErrNothingToExport):
		return "there is nothing to export"
	case errors.Is(err, transfer.ErrInvalidBackup):
		return "the file is not a valid backup"
	case errors.Is(err, media.ErrUnsupportedImage):
		return "the file is not a supported image (jpeg, png, gif, webp)"
	default:
		return err.Error()
	}
}
