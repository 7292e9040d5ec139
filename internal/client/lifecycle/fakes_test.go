package lifecycle

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/common"
)

type fakeGateway struct {
	mu    sync.Mutex
	calls map[string]int
	order []string
	errs  map[string]error
	block chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: map[string]int{}, errs: map[string]error{}}
}

func (g *fakeGateway) hit(name string) error {
	g.mu.Lock()
	g.calls[name]++
	g.order = append(g.order, name)
	err := g.errs[name]
	block := g.block
	g.mu.Unlock()

	if block != nil {
		<-block
	}
	return err
}

func (g *fakeGateway) count(name string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[name]
}

func (g *fakeGateway) fail(name string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		delete(g.errs, name)
		return
	}
	g.errs[name] = err
}

func (g *fakeGateway) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	if err := g.hit("login"); err != nil {
		return nil, err
	}
	return &models.AuthResult{UserID: "u1", Token: "fresh-token"}, nil
}

func (g *fakeGateway) Logout(ctx context.Context) error        { return g.hit("logout") }
func (g *fakeGateway) DeleteAccount(ctx context.Context) error { return g.hit("delete_account") }
func (g *fakeGateway) PurgeUserData(ctx context.Context) error { return g.hit("purge_user_data") }

func (g *fakeGateway) LeaveHousehold(ctx context.Context, householdID string) error {
	return g.hit("leave_household:" + householdID)
}

func (g *fakeGateway) DeleteDeviceToken(ctx context.Context, deviceID string) error {
	return g.hit("delete_device_token:" + deviceID)
}

type fakeSession struct {
	token    string
	deviceID string
	creds    *models.Credentials
	err      error
	// credsErr fails the next ClearCredentials call only.
	credsErr error
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		token:    "stale-token",
		deviceID: "D1",
		creds:    &models.Credentials{Email: "a@b.c", Password: "pw"},
	}
}

func (s *fakeSession) SetAuthData(ctx context.Context, res *models.AuthResult) error {
	s.token = res.Token
	return nil
}

func (s *fakeSession) ClearAuthData(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.token = ""
	return nil
}

func (s *fakeSession) AuthData(ctx context.Context) (string, error) { return s.token, nil }
func (s *fakeSession) DeviceID(ctx context.Context) (string, error) { return s.deviceID, nil }

func (s *fakeSession) ClearDeviceID(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.deviceID = ""
	return nil
}

func (s *fakeSession) SavedCredentials(ctx context.Context) (models.Credentials, error) {
	if s.creds == nil {
		return models.Credentials{}, common.ErrNotFound
	}
	return *s.creds, nil
}

func (s *fakeSession) ClearCredentials(ctx context.Context) error {
	if err := s.credsErr; err != nil {
		s.credsErr = nil
		return err
	}
	s.creds = nil
	return nil
}

type fakeStore struct {
	userID string
	wiped  int
	err    error
}

func (s *fakeStore) LocalUserID(ctx context.Context) (string, error) { return s.userID, nil }

func (s *fakeStore) DeleteAllData(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	s.wiped++
	s.userID = ""
	return nil
}

type fakeUsers map[string]models.User

func (u fakeUsers) GetByID(ctx context.Context, id string) (models.User, error) {
	user, ok := u[id]
	if !ok {
		return models.User{}, common.ErrNotFound
	}
	return user, nil
}

type failingCursorStore struct {
	*MemoryCursorStore
}

func (s *failingCursorStore) Save(ctx context.Context, seq Sequence, step Step) error {
	return common.ErrPersistence
}
