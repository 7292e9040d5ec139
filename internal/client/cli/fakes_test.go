package cli

import (
	"context"
	"io"
	"sort"
	"strconv"
	"testing"

	"github.com/dmitrijs2005/wghub/internal/client/lifecycle"
	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/client/reconciler"
	"github.com/dmitrijs2005/wghub/internal/client/services"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

type fakeAuth struct {
	userID string
	err    error

	LastEmail, LastPassword string
	Calls                   []string
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) (string, error) {
	f.Calls = append(f.Calls, "register")
	f.LastEmail, f.LastPassword = email, password
	return f.userID, f.err
}
func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, error) {
	f.Calls = append(f.Calls, "login")
	f.LastEmail, f.LastPassword = email, password
	return f.userID, f.err
}
func (f *fakeAuth) Logout(ctx context.Context) error {
	f.Calls = append(f.Calls, "logout")
	return f.err
}
func (f *fakeAuth) DeleteAccount(ctx context.Context) error {
	f.Calls = append(f.Calls, "deleteaccount")
	return f.err
}
func (f *fakeAuth) CurrentUserID(ctx context.Context) (string, error) { return f.userID, f.err }
func (f *fakeAuth) Ping(ctx context.Context) error                    { return f.err }

type fakeHousehold struct {
	current *models.Household
	members []models.User
	err     error

	LastName, LastCode, LastRemoved string
	Left                            bool
}

func (f *fakeHousehold) Create(ctx context.Context, name string) (*models.Household, error) {
	f.LastName = name
	if f.err != nil {
		return nil, f.err
	}
	f.current = &models.Household{ID: "h-new", Name: name}
	return f.current, nil
}
func (f *fakeHousehold) Join(ctx context.Context, code string) (*models.Household, error) {
	f.LastCode = code
	if f.err != nil {
		return nil, f.err
	}
	return f.current, nil
}
func (f *fakeHousehold) Leave(ctx context.Context) error {
	f.Left = f.err == nil
	return f.err
}
func (f *fakeHousehold) RemoveMember(ctx context.Context, userID string) error {
	f.LastRemoved = userID
	return f.err
}
func (f *fakeHousehold) Current(ctx context.Context) (*models.Household, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.current == nil {
		return nil, services.ErrNoHousehold
	}
	return f.current, nil
}
func (f *fakeHousehold) Members(ctx context.Context) ([]models.User, error) { return f.members, f.err }
func (f *fakeHousehold) Refresh(ctx context.Context) error                  { return f.err }

// fakeCollection keeps entities by id.
type fakeCollection[T models.Entity] struct {
	items map[string]T
	err   error
}

func newFakeCollection[T models.Entity](items ...T) *fakeCollection[T] {
	c := &fakeCollection[T]{items: map[string]T{}}
	for _, e := range items {
		c.items[e.EntityID()] = e
	}
	return c
}

func (c *fakeCollection[T]) Create(ctx context.Context, e T) (T, error) {
	if c.err != nil {
		var zero T
		return zero, c.err
	}
	c.items[e.EntityID()] = e
	return e, nil
}
func (c *fakeCollection[T]) Update(ctx context.Context, e T) (T, error) { return c.Create(ctx, e) }
func (c *fakeCollection[T]) Delete(ctx context.Context, id string) error {
	if c.err != nil {
		return c.err
	}
	delete(c.items, id)
	return nil
}
func (c *fakeCollection[T]) Get(ctx context.Context, id string) (T, error) {
	e, ok := c.items[id]
	if !ok {
		return e, common.ErrNotFound
	}
	return e, nil
}
func (c *fakeCollection[T]) List(ctx context.Context, scopeID string) ([]T, error) {
	out := make([]T, 0, len(c.items))
	for _, e := range c.items {
		if e.ScopeID() == scopeID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out, c.err
}

type fakeSyncer struct {
	handled []reconciler.Notification
	swept   int
	err     error
}

func (f *fakeSyncer) Handle(ctx context.Context, n reconciler.Notification) error {
	f.handled = append(f.handled, n)
	return f.err
}
func (f *fakeSyncer) Sweep(ctx context.Context) error {
	f.swept++
	return f.err
}

type fakeProgress struct {
	p lifecycle.Progress
}

func (f *fakeProgress) Progress(ctx context.Context) (lifecycle.Progress, error) { return f.p, nil }

type fakeLocal struct{ id string }

func (f *fakeLocal) LocalUserID(ctx context.Context) (string, error) { return f.id, nil }

type testApp struct {
	*App
	auth      *fakeAuth
	household *fakeHousehold
	tasks     *fakeCollection[models.Task]
	entries   *fakeCollection[models.CalendarEntry]
	absences  *fakeCollection[models.Absence]
	syncer    *fakeSyncer
	progress  *fakeProgress
	lines     *[]string
}

// newTestApp builds a signed-in App reading input, with u1 in household h1.
func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	ta := &testApp{
		auth: &fakeAuth{userID: "u1"},
		household: &fakeHousehold{
			current: &models.Household{ID: "h1", Name: "Flat", InvitationCode: "ABC", MemberIDs: []string{"u1", "u2"}},
		},
		tasks:    newFakeCollection[models.Task](),
		entries:  newFakeCollection[models.CalendarEntry](),
		absences: newFakeCollection[models.Absence](),
		syncer:   &fakeSyncer{},
		progress: &fakeProgress{p: lifecycle.Progress{Logout: lifecycle.Step1, DeleteAccount: lifecycle.Step1}},
		lines:    capturePrint(t),
	}

	n := 0
	ta.App = &App{
		auth:      ta.auth,
		household: ta.household,
		tasks:     ta.tasks,
		entries:   ta.entries,
		absences:  ta.absences,
		syncer:    ta.syncer,
		progress:  ta.progress,
		local:     &fakeLocal{id: "u1"},
		logger:    logging.NewNop(),
		reader:    rdr(input),
		out:       io.Discard,
		newID: func() string {
			n++
			return "id-" + strconv.Itoa(n)
		},
		userID: "u1",
	}
	return ta
}
