package gateway

import (
	"context"

	"github.com/dmitrijs2005/wghub/internal/client/models"
)

// Gateway is the remote authority for accounts, households and devices.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, email, password string) (*models.AuthResult, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	// PurgeUserData removes every backend record owned by the signed-in user.
	PurgeUserData(ctx context.Context) error
	// CurrentUserID returns common.ErrUnauthorized when nobody is signed in.
	CurrentUserID(ctx context.Context) (string, error)
	// ObserveAuthState emits the current state, then every change, until ctx is done.
	ObserveAuthState(ctx context.Context) <-chan models.AuthState

	AddDeviceToken(ctx context.Context, deviceID, token string) error
	DeleteDeviceToken(ctx context.Context, deviceID string) error

	CreateHousehold(ctx context.Context, name string) (*models.Household, error)
	JoinHousehold(ctx context.Context, invitationCode string) (*models.Household, error)
	LeaveHousehold(ctx context.Context, householdID string) error
	RemoveMember(ctx context.Context, householdID, userID string) error

	Ping(ctx context.Context) error
	Close() error
}

// AuthSource provides the values stamped on every outgoing call.
type AuthSource interface {
	AuthData(ctx context.Context) (string, error)
	DeviceID(ctx context.Context) (string, error)
}
