package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/wghub/internal/client/lifecycle"
	"github.com/dmitrijs2005/wghub/internal/client/reconciler"
	"github.com/dmitrijs2005/wghub/internal/client/services"
	"github.com/dmitrijs2005/wghub/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Progress(ctx context.Context) error

	Household(ctx context.Context) error
	CreateHousehold(ctx context.Context) error
	Join(ctx context.Context, args []string) error
	Leave(ctx context.Context) error
	Members(ctx context.Context) error
	RemoveMember(ctx context.Context, args []string) error

	Tasks(ctx context.Context) error
	AddTask(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	DelTask(ctx context.Context, args []string) error

	Entries(ctx context.Context) error
	AddEntry(ctx context.Context) error
	DelEntry(ctx context.Context, args []string) error

	Absences(ctx context.Context) error
	AddAbsence(ctx context.Context) error
	DelAbsence(ctx context.Context, args []string) error

	Reconcile(ctx context.Context, args []string) error
	Sweep(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, progress, help, exit"
	helpSignedIn  = "Available commands:\n" +
		"  account:   logout, deleteaccount, progress\n" +
		"  household: household, createhousehold, join, leave, members, removemember\n" +
		"  tasks:     tasks, addtask, done, deltask\n" +
		"  calendar:  entries, addentry, delentry\n" +
		"  absences:  absences, addabsence, delabsence\n" +
		"  sync:      reconcile <family> <id>, sweep\n" +
		"  help, exit"
)

// runREPL reads a line from reader, parses the first token as the command,
// and dispatches to methods on a. The loop exits on EOF or when the user
// types "exit" or "quit". Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("wg %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpSignedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "progress":
		return a.Progress(ctx)
	}

	if !a.isLoggedIn() {
		if _, ok := signedInCommands[cmd]; ok {
			printlnFn("Please login first")
			return nil
		}
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "deleteaccount":
		return a.DeleteAccount(ctx)
	case "household":
		return a.Household(ctx)
	case "createhousehold":
		return a.CreateHousehold(ctx)
	case "join":
		return a.Join(ctx, args)
	case "leave":
		return a.Leave(ctx)
	case "members":
		return a.Members(ctx)
	case "removemember":
		return a.RemoveMember(ctx, args)
	case "tasks":
		return a.Tasks(ctx)
	case "addtask":
		return a.AddTask(ctx)
	case "done":
		return a.Done(ctx, args)
	case "deltask":
		return a.DelTask(ctx, args)
	case "entries":
		return a.Entries(ctx)
	case "addentry":
		return a.AddEntry(ctx)
	case "delentry":
		return a.DelEntry(ctx, args)
	case "absences":
		return a.Absences(ctx)
	case "addabsence":
		return a.AddAbsence(ctx)
	case "delabsence":
		return a.DelAbsence(ctx, args)
	case "reconcile":
		return a.Reconcile(ctx, args)
	case "sweep":
		return a.Sweep(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

var signedInCommands = map[string]struct{}{
	"logout": {}, "deleteaccount": {},
	"household": {}, "createhousehold": {}, "join": {}, "leave": {}, "members": {}, "removemember": {},
	"tasks": {}, "addtask": {}, "done": {}, "deltask": {},
	"entries": {}, "addentry": {}, "delentry": {},
	"absences": {}, "addabsence": {}, "delabsence": {},
	"reconcile": {}, "sweep": {},
}

// describe turns the error kinds a user can act on into short hints.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrNetworkUnavailable):
		return "backend unreachable, try again later"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "wrong email or password"
	case errors.Is(err, common.ErrWeakCredentials):
		return "password too weak"
	case errors.Is(err, common.ErrEmailInUse):
		return "email already registered"
	case errors.Is(err, common.ErrUnauthorized):
		return "session expired, please login again"
	case errors.Is(err, common.ErrRateLimited):
		return "too many requests, slow down"
	case errors.Is(err, services.ErrNoHousehold):
		return "you are not in a household"
	case errors.Is(err, lifecycle.ErrInProgress):
		return "another logout or deletion is running"
	case errors.Is(err, reconciler.ErrUnknownFamily):
		return err.Error()
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}
