package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Passwd(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Fetch(ctx context.Context, url string) error
	List(ctx context.Context) error
	Show(ctx context.Context, name string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: upload <path>, fetch <url>, (l)ist, show <name>, delete <id>, whoami, profile, passwd, logout, help, exit"
)

// runREPL reads commands from reader until EOF, "exit"/"quit" or ctx is done.
// Handlers report their own errors, so returned errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("docsim%s> ", withSpace(statusFn())))
		line, err := ReadLine(reader)
		if err != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "passwd":
			_ = a.Passwd(ctx)

		case "upload":
			if arg == "" {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, arg)

		case "fetch":
			if arg == "" {
				printlnFn("Usage: fetch <url>")
				continue
			}
			_ = a.Fetch(ctx, arg)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			if arg == "" {
				printlnFn("Usage: show <name>")
				continue
			}
			_ = a.Show(ctx, arg)

		case "delete":
			if arg == "" {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func withSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
