package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Feed(ctx context.Context) error
	Post(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Profile(ctx context.Context, id string) error
	Open(ctx context.Context, path string) error
	Notifications(ctx context.Context) error
	Dismiss(ctx context.Context, id string) error
}

const (
	helpGuest    = "Available commands: register, login, open <path>, notifications, dismiss <id>, exit"
	helpLoggedIn = "Available commands: feed, post, edit <id>, delete <id>, profile [id], whoami, open <path>, notifications, dismiss <id>, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first word of a line is the command, the second (if any) its
// argument. Errors returned by command handlers are ignored here; handlers
// report failures to the user themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("linkedin %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "feed":
			_ = a.Feed(ctx)

		case "post":
			_ = a.Post(ctx)

		case "edit":
			if arg == "" {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, arg)

		case "delete":
			if arg == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "profile":
			_ = a.Profile(ctx, arg)

		case "open":
			if arg == "" {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, arg)

		case "notifications":
			_ = a.Notifications(ctx)

		case "dismiss":
			if arg == "" {
				printlnFn("Usage: dismiss <id>")
				continue
			}
			_ = a.Dismiss(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
