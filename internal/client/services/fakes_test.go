package services

import (
	"context"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wghub/internal/client/repositories/records"
	"github.com/dmitrijs2005/wghub/internal/client/session"
	"github.com/dmitrijs2005/wghub/internal/client/syncrepo"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeRemote is the backend table of one family.
type fakeRemote[T models.Entity] struct {
	items map[string]T
}

func newFakeRemote[T models.Entity]() *fakeRemote[T] {
	return &fakeRemote[T]{items: map[string]T{}}
}

func (f *fakeRemote[T]) put(e T) { f.items[e.EntityID()] = e }

func (f *fakeRemote[T]) Create(ctx context.Context, e T) (T, error) {
	f.put(e)
	return e, nil
}

func (f *fakeRemote[T]) Update(ctx context.Context, e T) (T, error) {
	f.put(e)
	return e, nil
}

func (f *fakeRemote[T]) Get(ctx context.Context, id string) (T, error) {
	e, ok := f.items[id]
	if !ok {
		var zero T
		return zero, common.ErrNotFound
	}
	return e, nil
}

func (f *fakeRemote[T]) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

// fakeClient implements AuthClient and HouseholdClient on top of the fake
// backend tables.
type fakeClient struct {
	users       *fakeRemote[models.User]
	households  *fakeRemote[models.Household]
	memberships *fakeRemote[models.Membership]

	LoginErr       error
	RegisterErr    error
	AddTokenErr    error
	LeaveErr       error
	RemoveErr      error
	PingErr        error
	CurrentUserRet string

	LastLoginEmail string
	LastDeviceID   string
	LastPushToken  string
	LeaveCalls     int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	f.LastLoginEmail = email
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return &models.AuthResult{UserID: "u1", Token: "tok-" + email}, nil
}

func (f *fakeClient) Register(ctx context.Context, email, password string) (*models.AuthResult, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	f.users.put(models.User{ID: "u1", Email: email, AffectedUsers: []string{"u1"}})
	return &models.AuthResult{UserID: "u1", Token: "tok"}, nil
}

func (f *fakeClient) AddDeviceToken(ctx context.Context, deviceID, token string) error {
	f.LastDeviceID = deviceID
	f.LastPushToken = token
	return f.AddTokenErr
}

func (f *fakeClient) CurrentUserID(ctx context.Context) (string, error) {
	if f.CurrentUserRet == "" {
		return "", common.ErrUnauthorized
	}
	return f.CurrentUserRet, nil
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

// join makes userID a member of household h on the backend, the way the
// real backend resolves audiences.
func (f *fakeClient) join(h models.Household, userID string) models.Household {
	h.MemberIDs = append(slices.Clone(h.MemberIDs), userID)
	f.households.put(h)
	f.resolve(h)
	return h
}

func (f *fakeClient) resolve(h models.Household) {
	for _, id := range h.MemberIDs {
		u := f.users.items[id]
		u.ID = id
		u.HouseholdID = h.ID
		u.AffectedUsers = slices.Clone(h.MemberIDs)
		f.users.put(u)
		f.memberships.put(models.Membership{HouseholdID: h.ID, UserID: id, AffectedUsers: slices.Clone(h.MemberIDs)})
	}
}

func (f *fakeClient) CreateHousehold(ctx context.Context, name string) (*models.Household, error) {
	h := f.join(models.Household{ID: "h1", Name: name, InvitationCode: "JOIN-ME"}, "u1")
	return &h, nil
}

func (f *fakeClient) JoinHousehold(ctx context.Context, code string) (*models.Household, error) {
	for _, h := range f.households.items {
		if h.InvitationCode == code {
			h = f.join(h, "u1")
			return &h, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeClient) LeaveHousehold(ctx context.Context, householdID string) error {
	f.LeaveCalls++
	if f.LeaveErr != nil {
		return f.LeaveErr
	}
	return f.RemoveMember(ctx, householdID, "u1")
}

func (f *fakeClient) RemoveMember(ctx context.Context, householdID, userID string) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	h := f.households.items[householdID]
	h.MemberIDs = slices.DeleteFunc(slices.Clone(h.MemberIDs), func(id string) bool { return id == userID })
	f.households.put(h)
	f.resolve(h)

	delete(f.memberships.items, models.MembershipID(householdID, userID))
	u := f.users.items[userID]
	u.HouseholdID = ""
	u.AffectedUsers = []string{userID}
	f.users.put(u)
	return nil
}

type fakeLifecycle struct {
	logouts, deletions, resets int
	err                        error
	resetErr                   error
}

func (f *fakeLifecycle) Reset(ctx context.Context) error {
	f.resets++
	return f.resetErr
}

func (f *fakeLifecycle) Logout(ctx context.Context) error {
	f.logouts++
	return f.err
}

func (f *fakeLifecycle) DeleteAccount(ctx context.Context) error {
	f.deletions++
	return f.err
}

type env struct {
	client      *fakeClient
	cache       *records.Cache
	session     *session.Context
	lifecycle   *fakeLifecycle
	users       *syncrepo.Repository[models.User]
	households  *syncrepo.Repository[models.Household]
	memberships *syncrepo.Repository[models.Membership]
	household   HouseholdService
	auth        AuthService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db, err := records.OpenDatabase(ctx, filepath.Join(t.TempDir(), "wghub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logging.NewNop()
	hub := records.NewHub()
	cache := records.NewCache(db, hub)

	client := &fakeClient{
		users:       newFakeRemote[models.User](),
		households:  newFakeRemote[models.Household](),
		memberships: newFakeRemote[models.Membership](),
	}

	e := &env{
		client:    client,
		cache:     cache,
		session:   session.New(metadata.NewSQLiteRepository(db)),
		lifecycle: &fakeLifecycle{},
		users: syncrepo.New[models.User](models.FamilyUser, client.users,
			records.NewStore[models.User](db, models.FamilyUser, hub, log), cache, log),
		households: syncrepo.New[models.Household](models.FamilyHousehold, client.households,
			records.NewStore[models.Household](db, models.FamilyHousehold, hub, log), cache, log),
		memberships: syncrepo.New[models.Membership](models.FamilyMembership, client.memberships,
			records.NewStore[models.Membership](db, models.FamilyMembership, hub, log), cache, log),
	}
	e.household = NewHouseholdService(client, e.users, e.households, e.memberships, cache, cache, log)
	e.auth = NewAuthService(client, e.session, cache, e.lifecycle, e.household, "push-1", log)
	return e
}
