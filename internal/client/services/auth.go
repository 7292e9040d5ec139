package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

// AuthService defines the account operations of the client.
//
// Contract:
//   - Register / Login: authenticate, persist the session and the sealed
//     credentials, register the push token and pull the own user record and
//     household into the cache. They return the user id.
//   - Logout / DeleteAccount: run, or resume, the lifecycle sequences.
//   - CurrentUserID: the signed-in user, or common.ErrUnauthorized.
//   - Ping: backend liveness. The connection itself is owned by the caller
//     that dialed it.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	CurrentUserID(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type AuthClient interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, email, password string) (*models.AuthResult, error)
	AddDeviceToken(ctx context.Context, deviceID, token string) error
	CurrentUserID(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
}

type SessionStore interface {
	SetAuthData(ctx context.Context, res *models.AuthResult) error
	EnsureDeviceID(ctx context.Context) (string, error)
	SaveCredentials(ctx context.Context, email, password string) error
}

type LocalUserStore interface {
	LocalUserID(ctx context.Context) (string, error)
	SetLocalUserID(ctx context.Context, userID string) error
}

type Lifecycle interface {
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Refresher pulls the own user record and household into the cache.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type authService struct {
	client    AuthClient
	session   SessionStore
	local     LocalUserStore
	lifecycle Lifecycle
	refresher Refresher
	pushToken string
	logger    logging.Logger
}

// NewAuthService constructs an AuthService. pushToken is the push delivery
// token of this device; an empty token skips the registration.
func NewAuthService(client AuthClient, session SessionStore, local LocalUserStore, lifecycle Lifecycle, refresher Refresher, pushToken string, logger logging.Logger) AuthService {
	return &authService{
		client:    client,
		session:   session,
		local:     local,
		lifecycle: lifecycle,
		refresher: refresher,
		pushToken: pushToken,
		logger:    logger.With("module", "auth"),
	}
}

func (a *authService) Register(ctx context.Context, email, password string) (string, error) {
	res, err := a.client.Register(ctx, email, password)
	if err != nil {
		return "", err
	}
	return a.establish(ctx, res, email, password)
}

func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	return a.establish(ctx, res, email, password)
}

// establish persists a fresh session. Failing to register the push token or
// to pull the initial data does not undo the sign-in; a later sweep repairs it.
func (a *authService) establish(ctx context.Context, res *models.AuthResult, email, password string) (string, error) {
	if err := a.lifecycle.Reset(ctx); err != nil {
		return "", fmt.Errorf("reset lifecycle: %w", err)
	}
	if err := a.session.SetAuthData(ctx, res); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	deviceID, err := a.session.EnsureDeviceID(ctx)
	if err != nil {
		return "", fmt.Errorf("save device id: %w", err)
	}
	if err := a.session.SaveCredentials(ctx, email, password); err != nil {
		return "", fmt.Errorf("save credentials: %w", err)
	}
	if err := a.local.SetLocalUserID(ctx, res.UserID); err != nil {
		return "", fmt.Errorf("save local user: %w", err)
	}

	if a.pushToken != "" {
		if err := a.client.AddDeviceToken(ctx, deviceID, a.pushToken); err != nil {
			a.logger.Warn(ctx, "push token registration failed", "device_id", deviceID, "error", err)
		}
	}

	if err := a.refresher.Refresh(ctx); err != nil {
		a.logger.Warn(ctx, "initial refresh failed", "user_id", res.UserID, "error", err)
	}

	a.logger.Info(ctx, "signed in", "user_id", res.UserID, "device_id", deviceID)
	return res.UserID, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.lifecycle.Logout(ctx)
}

func (a *authService) DeleteAccount(ctx context.Context) error {
	return a.lifecycle.DeleteAccount(ctx)
}

// CurrentUserID prefers the locally recorded user and falls back to the backend.
func (a *authService) CurrentUserID(ctx context.Context) (string, error) {
	id, err := a.local.LocalUserID(ctx)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}
	return a.client.CurrentUserID(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
