package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/wghub/internal/client/lifecycle"
	"github.com/dmitrijs2005/wghub/internal/client/services"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls []string
	args  [][]string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(ctx context.Context) error { return f.rec("register", nil) }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.rec("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.rec("logout", nil)
}
func (f *fakeExec) DeleteAccount(ctx context.Context) error   { return f.rec("deleteaccount", nil) }
func (f *fakeExec) Progress(ctx context.Context) error        { return f.rec("progress", nil) }
func (f *fakeExec) Household(ctx context.Context) error       { return f.rec("household", nil) }
func (f *fakeExec) CreateHousehold(ctx context.Context) error { return f.rec("createhousehold", nil) }
func (f *fakeExec) Join(ctx context.Context, args []string) error {
	return f.rec("join", args)
}
func (f *fakeExec) Leave(ctx context.Context) error   { return f.rec("leave", nil) }
func (f *fakeExec) Members(ctx context.Context) error { return f.rec("members", nil) }
func (f *fakeExec) RemoveMember(ctx context.Context, args []string) error {
	return f.rec("removemember", args)
}
func (f *fakeExec) Tasks(ctx context.Context) error   { return f.rec("tasks", nil) }
func (f *fakeExec) AddTask(ctx context.Context) error { return f.rec("addtask", nil) }
func (f *fakeExec) Done(ctx context.Context, args []string) error {
	return f.rec("done", args)
}
func (f *fakeExec) DelTask(ctx context.Context, args []string) error {
	return f.rec("deltask", args)
}
func (f *fakeExec) Entries(ctx context.Context) error  { return f.rec("entries", nil) }
func (f *fakeExec) AddEntry(ctx context.Context) error { return f.rec("addentry", nil) }
func (f *fakeExec) DelEntry(ctx context.Context, args []string) error {
	return f.rec("delentry", args)
}
func (f *fakeExec) Absences(ctx context.Context) error   { return f.rec("absences", nil) }
func (f *fakeExec) AddAbsence(ctx context.Context) error { return f.rec("addabsence", nil) }
func (f *fakeExec) DelAbsence(ctx context.Context, args []string) error {
	return f.rec("delabsence", args)
}
func (f *fakeExec) Reconcile(ctx context.Context, args []string) error {
	return f.rec("reconcile", args)
}
func (f *fakeExec) Sweep(ctx context.Context) error { return f.rec("sweep", nil) }

// capturePrint swaps printlnFn for a recorder.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesEveryCommand(t *testing.T) {
	capturePrint(t)

	cmds := []string{
		"login", "deleteaccount", "progress",
		"household", "createhousehold", "join", "leave", "members", "removemember",
		"tasks", "addtask", "done", "deltask",
		"entries", "addentry", "delentry",
		"absences", "addabsence", "delabsence",
		"reconcile", "sweep", "logout", "register",
	}
	input := strings.Join(append(cmds, "exit", "tasks"), "\n") + "\n"

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	assert.Equal(t, cmds, exec.calls)
}

func TestRunREPL_ArgsAreForwarded(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("done t1\nreconcile task t2\n"))

	assert.Equal(t, []string{"done", "reconcile"}, exec.calls)
	assert.Equal(t, [][]string{{"t1"}, {"task", "t2"}}, exec.args)
}

func TestRunREPL_SignedOutGuards(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("help\ntasks\nfoobar\n\nquit\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, helpSignedOut)
	assert.Contains(t, *lines, "Please login first")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	lines := capturePrint(t)

	exec := &fakeExec{loggedIn: true, err: common.ErrNetworkUnavailable}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("tasks\nsweep"))

	assert.Equal(t, []string{"tasks", "sweep"}, exec.calls)
	assert.Contains(t, *lines, "Error: backend unreachable, try again later")
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrapped: %w", common.ErrInvalidCredentials), "wrong email or password"},
		{common.ErrEmailInUse, "email already registered"},
		{services.ErrNoHousehold, "you are not in a household"},
		{lifecycle.ErrInProgress, "another logout or deletion is running"},
		{common.ErrNotFound, "not found"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err))
	}
}
