package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/nexaboard/internal/client/tasklist"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	List(ctx context.Context, c tasklist.Criteria) error
	Add(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Done(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string, assumeYes bool) error
	ProfileShow(ctx context.Context) error
	ProfileEdit(ctx context.Context) error
	Browse(ctx context.Context) error
	Export(ctx context.Context, dest string, c tasklist.Criteria) error
}

// runREPL starts a simple read–eval–print loop for the NexaBoard CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Handlers prompt on the same reader, so
// nothing is read ahead. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  help, register, login, exit | quit
//
//	Logged in:
//	  dashboard, (l)ist [search...], add, show <id>, edit <id>, done <id>,
//	  status <id> <status>, delete <id>, profile, editprofile, browse,
//	  export [dest], whoami, logout, exit | quit
//
// Prompts and REPL messages go to out, the same writer the handlers use.
// Errors returned by command handlers are ignored here; handlers print
// their own.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader, out io.Writer) {
	printlnFn := func(args ...any) { fmt.Fprintln(out, args...) }

	for {
		printlnFn(promptFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		if ctx.Err() != nil {
			return
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: dashboard, (l)ist [search], add, show <id>, edit <id>, done <id>, status <id> <status>, delete <id>, profile, editprofile, browse, export [dest], whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "l", "list":
			c := tasklist.DefaultCriteria()
			c.Search = strings.Join(args, " ")
			_ = a.List(ctx, c)

		case "add":
			_ = a.Add(ctx)

		case "show", "edit", "done", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, args[0])
			case "edit":
				_ = a.Edit(ctx, args[0])
			case "done":
				_ = a.Done(ctx, args[0])
			case "delete":
				_ = a.Delete(ctx, args[0], false)
			}

		case "status":
			if len(args) != 2 {
				printlnFn("Usage: status <id> <pending|in-progress|completed>")
				continue
			}
			_ = a.SetStatus(ctx, args[0], args[1])

		case "profile":
			_ = a.ProfileShow(ctx)

		case "editprofile":
			_ = a.ProfileEdit(ctx)

		case "browse":
			_ = a.Browse(ctx)

		case "export":
			dest := "-"
			if len(args) > 0 {
				dest = args[0]
			}
			_ = a.Export(ctx, dest, tasklist.DefaultCriteria())

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// prompt shows the avatar and name of the signed-in user.
func (a *App) prompt() string {
	u, ok := a.currentUser()
	if !ok {
		return "nexa> "
	}
	return fmt.Sprintf("nexa (%s %s)> ", u.Avatar, u.DisplayName())
}

// Run starts the REPL on the App's input until exit or EOF.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to NexaBoard CLI (type 'help' for commands)")
	if u, ok := a.currentUser(); ok {
		a.println(fmt.Sprintf("Signed in as %s", u.DisplayName()))
	}
	runREPL(ctx, a, a.prompt, a.reader, a.out)
}
