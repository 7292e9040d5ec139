package gateway

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCGateway struct {
	conn    grpc.ClientConnInterface
	closer  io.Closer
	auth    AuthSource
	timeout time.Duration
	logger  logging.Logger

	mu       sync.Mutex
	userID   string
	watchers map[chan models.AuthState]struct{}
}

var _ Gateway = (*GRPCGateway)(nil)

// New dials the backend at addr. timeout bounds every call; zero disables it.
func New(addr string, auth AuthSource, timeout time.Duration, logger logging.Logger) (*GRPCGateway, error) {
	g := newGateway(nil, auth, timeout, logger)

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(g.authInterceptor),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	)
	if err != nil {
		return nil, err
	}
	g.conn = conn
	g.closer = conn
	return g, nil
}

// NewWithConn builds a gateway on an existing connection. Metadata is only
// stamped when conn was created with the gateway interceptor.
func NewWithConn(conn grpc.ClientConnInterface, auth AuthSource, timeout time.Duration, logger logging.Logger) *GRPCGateway {
	return newGateway(conn, auth, timeout, logger)
}

func newGateway(conn grpc.ClientConnInterface, auth AuthSource, timeout time.Duration, logger logging.Logger) *GRPCGateway {
	return &GRPCGateway{
		conn:     conn,
		auth:     auth,
		timeout:  timeout,
		logger:   logger.With("module", "gateway"),
		watchers: make(map[chan models.AuthState]struct{}),
	}
}

func (g *GRPCGateway) withAuth(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}

	if g.auth != nil {
		if token, err := g.auth.AuthData(ctx); err != nil {
			g.logger.Warn(ctx, "failed to read session token", "error", err)
		} else if token != "" {
			md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}

		if deviceID, err := g.auth.DeviceID(ctx); err != nil {
			g.logger.Warn(ctx, "failed to read device id", "error", err)
		} else if deviceID != "" {
			md.Set(common.DeviceIDHeaderName, deviceID)
		}
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (g *GRPCGateway) authInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(g.withAuth(ctx), method, req, reply, cc, opts...)
}

func (g *GRPCGateway) invoke(ctx context.Context, method string, req, reply any) error {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.conn.Invoke(ctx, method, req, reply, grpc.ForceCodec(jsonCodec{})); err != nil {
		g.logger.Debug(ctx, "rpc failed", "method", method, "error", err)
		return mapError(err)
	}
	return nil
}

func (g *GRPCGateway) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var resp authResponse
	if err := g.invoke(ctx, methodLogin, &credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	g.setUser(resp.UserID)
	return &models.AuthResult{UserID: resp.UserID, Token: resp.Token}, nil
}

func (g *GRPCGateway) Register(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var resp authResponse
	if err := g.invoke(ctx, methodRegister, &credentialsRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	g.setUser(resp.UserID)
	return &models.AuthResult{UserID: resp.UserID, Token: resp.Token}, nil
}

func (g *GRPCGateway) Logout(ctx context.Context) error {
	if err := g.invoke(ctx, methodLogout, &empty{}, &empty{}); err != nil {
		return err
	}
	g.setUser("")
	return nil
}

func (g *GRPCGateway) DeleteAccount(ctx context.Context) error {
	if err := g.invoke(ctx, methodDeleteAccount, &empty{}, &empty{}); err != nil {
		return err
	}
	g.setUser("")
	return nil
}

func (g *GRPCGateway) PurgeUserData(ctx context.Context) error {
	return g.invoke(ctx, methodPurgeUserData, &empty{}, &empty{})
}

// CurrentUserID asks the backend once per session and remembers the answer.
func (g *GRPCGateway) CurrentUserID(ctx context.Context) (string, error) {
	g.mu.Lock()
	id := g.userID
	g.mu.Unlock()
	if id != "" {
		return id, nil
	}

	var resp currentUserResponse
	if err := g.invoke(ctx, methodCurrentUser, &empty{}, &resp); err != nil {
		return "", err
	}
	if resp.UserID == "" {
		return "", common.ErrUnauthorized
	}
	g.setUser(resp.UserID)
	return resp.UserID, nil
}

func (g *GRPCGateway) ObserveAuthState(ctx context.Context) <-chan models.AuthState {
	ch := make(chan models.AuthState, 1)

	g.mu.Lock()
	ch <- models.AuthState{SignedIn: g.userID != "", UserID: g.userID}
	g.watchers[ch] = struct{}{}
	g.mu.Unlock()

	go func() {
		<-ctx.Done()
		g.mu.Lock()
		delete(g.watchers, ch)
		close(ch)
		g.mu.Unlock()
	}()

	return ch
}

// setUser records the signed-in user and notifies watchers of a change.
// Watchers that lag behind only see the latest state.
func (g *GRPCGateway) setUser(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.userID == userID {
		return
	}
	g.userID = userID

	state := models.AuthState{SignedIn: userID != "", UserID: userID}
	for ch := range g.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- state
	}
}

func (g *GRPCGateway) AddDeviceToken(ctx context.Context, deviceID, token string) error {
	return g.invoke(ctx, methodAddDeviceToken, &deviceTokenRequest{DeviceID: deviceID, Token: token}, &empty{})
}

func (g *GRPCGateway) DeleteDeviceToken(ctx context.Context, deviceID string) error {
	return g.invoke(ctx, methodDeleteDeviceToken, &deviceTokenRequest{DeviceID: deviceID}, &empty{})
}

func (g *GRPCGateway) CreateHousehold(ctx context.Context, name string) (*models.Household, error) {
	var resp householdResponse
	if err := g.invoke(ctx, methodCreateHousehold, &createHouseholdRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	return &resp.Household, nil
}

func (g *GRPCGateway) JoinHousehold(ctx context.Context, invitationCode string) (*models.Household, error) {
	var resp householdResponse
	if err := g.invoke(ctx, methodJoinHousehold, &joinHouseholdRequest{InvitationCode: invitationCode}, &resp); err != nil {
		return nil, err
	}
	return &resp.Household, nil
}

func (g *GRPCGateway) LeaveHousehold(ctx context.Context, householdID string) error {
	return g.invoke(ctx, methodLeaveHousehold, &householdRequest{HouseholdID: householdID}, &empty{})
}

func (g *GRPCGateway) RemoveMember(ctx context.Context, householdID, userID string) error {
	return g.invoke(ctx, methodRemoveMember, &householdRequest{HouseholdID: householdID, UserID: userID}, &empty{})
}

func (g *GRPCGateway) Ping(ctx context.Context) error {
	var resp pingResponse
	if err := g.invoke(ctx, methodPing, &empty{}, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return common.ErrNetworkUnavailable
	}
	return nil
}

func (g *GRPCGateway) Close() error {
	if g.closer == nil {
		return nil
	}
	return g.closer.Close()
}
