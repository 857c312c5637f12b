package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	Passwd(ctx context.Context) error
	Projects(ctx context.Context) error
	Balance(ctx context.Context) error
	Apply(ctx context.Context) error
	Certs(ctx context.Context) error
	Download(ctx context.Context) error
	ShowConfig(ctx context.Context) error
	SetConfig(ctx context.Context) error
	AddProject(ctx context.Context) error
	EditProject(ctx context.Context) error
	DeleteProject(ctx context.Context) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context) error
	SetUserPassword(ctx context.Context) error
	DeleteUser(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the certificate console.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Role checks live in the services, not here: issuing an admin command
// while logged in as a regular user reaches the service and is rejected
// there, so the REPL stays a thin dispatcher.
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				printlnFn("Available commands: login, adminlogin, exit")
			case a.isAdmin():
				printlnFn("Available commands: config, setconfig, projects, addproject, editproject, delproject, users, adduser, edituser, setpassword, deluser, reset, passwd, logout, exit")
			default:
				printlnFn("Available commands: projects, balance, apply, certs, download, passwd, logout, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "adminlogin":
			_ = a.AdminLogin(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "passwd":
			_ = a.Passwd(ctx)

		case "projects":
			_ = a.Projects(ctx)

		case "balance":
			_ = a.Balance(ctx)

		case "apply":
			_ = a.Apply(ctx)

		case "certs":
			_ = a.Certs(ctx)

		case "download":
			_ = a.Download(ctx)

		case "config":
			_ = a.ShowConfig(ctx)

		case "setconfig":
			_ = a.SetConfig(ctx)

		case "addproject":
			_ = a.AddProject(ctx)

		case "editproject":
			_ = a.EditProject(ctx)

		case "delproject":
			_ = a.DeleteProject(ctx)

		case "users":
			_ = a.Users(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "edituser":
			_ = a.EditUser(ctx)

		case "setpassword":
			_ = a.SetUserPassword(ctx)

		case "deluser":
			_ = a.DeleteUser(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
