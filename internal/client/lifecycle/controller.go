// Package lifecycle runs the logout and account deletion sequences.
//
// Both are ordered pipelines of irreversible actions. A cursor records the
// first step that has not completed; a failed run stops at the failing step
// and the next run resumes exactly there, so a step confirmed successful is
// never executed twice. The cursor returns to Step1 once the whole sequence
// succeeds.
package lifecycle

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/client/session"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

// ErrInProgress is returned when a sequence is already running.
var ErrInProgress = errors.New("lifecycle sequence already in progress")

type Gateway interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	PurgeUserData(ctx context.Context) error
	LeaveHousehold(ctx context.Context, householdID string) error
	DeleteDeviceToken(ctx context.Context, deviceID string) error
}

type Session interface {
	SetAuthData(ctx context.Context, res *models.AuthResult) error
	ClearAuthData(ctx context.Context) error
	AuthData(ctx context.Context) (string, error)
	DeviceID(ctx context.Context) (string, error)
	ClearDeviceID(ctx context.Context) error
	SavedCredentials(ctx context.Context) (models.Credentials, error)
	ClearCredentials(ctx context.Context) error
}

type LocalStore interface {
	LocalUserID(ctx context.Context) (string, error)
	DeleteAllData(ctx context.Context) error
}

type Users interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type Controller struct {
	gateway Gateway
	session Session
	store   LocalStore
	users   Users
	cursors CursorStore
	logger  logging.Logger

	running sync.Mutex

	mu     sync.Mutex
	loaded map[Sequence]Step
}

func NewController(gateway Gateway, sess Session, store LocalStore, users Users, cursors CursorStore, logger logging.Logger) *Controller {
	return &Controller{
		gateway: gateway,
		session: sess,
		store:   store,
		users:   users,
		cursors: cursors,
		logger:  logger.With("module", "lifecycle"),
		loaded:  make(map[Sequence]Step),
	}
}

type stepFunc func(ctx context.Context) error

// DeleteAccount runs, or resumes, the account deletion sequence:
//
//  1. leave the household, if any
//  2. purge the remote user data
//  3. re-authenticate and delete the remote account
//  4. forget the credentials, the device id and the session
//  5. wipe the local cache
func (c *Controller) DeleteAccount(ctx context.Context) error {
	return c.run(ctx, SequenceDeleteAccount, []stepFunc{
		c.leaveHousehold,
		c.gateway.PurgeUserData,
		func(ctx context.Context) error { return c.reauthenticated(ctx, c.gateway.DeleteAccount) },
		func(ctx context.Context) error {
			if err := c.session.ClearCredentials(ctx); err != nil {
				return err
			}
			return c.clearSession(ctx)
		},
		c.store.DeleteAllData,
	})
}

// Logout runs, or resumes, the logout sequence:
//
//  1. unregister the push token of this device
//  2. clear the device id and the session
//  3. re-authenticate and sign out remotely
//  4. forget the credentials and the fresh session, then wipe the local cache
func (c *Controller) Logout(ctx context.Context) error {
	return c.run(ctx, SequenceLogout, []stepFunc{
		c.deleteDeviceToken,
		c.clearSession,
		func(ctx context.Context) error { return c.reauthenticated(ctx, c.gateway.Logout) },
		func(ctx context.Context) error {
			if err := c.session.ClearCredentials(ctx); err != nil {
				return err
			}
			if err := c.session.ClearAuthData(ctx); err != nil {
				return err
			}
			return c.store.DeleteAllData(ctx)
		},
	})
}

// Reset puts both sequences back at Step1. A fresh sign-in calls it so a
// sequence interrupted for an earlier account is not resumed for the new one.
func (c *Controller) Reset(ctx context.Context) error {
	if !c.running.TryLock() {
		return ErrInProgress
	}
	defer c.running.Unlock()

	for _, seq := range []Sequence{SequenceLogout, SequenceDeleteAccount} {
		c.setCursor(ctx, seq, Step1)
	}
	return nil
}

// Progress reports where each sequence would resume.
func (c *Controller) Progress(ctx context.Context) (Progress, error) {
	logout, err := c.cursor(ctx, SequenceLogout)
	if err != nil {
		return Progress{}, err
	}
	del, err := c.cursor(ctx, SequenceDeleteAccount)
	if err != nil {
		return Progress{}, err
	}
	return Progress{Logout: logout, DeleteAccount: del}, nil
}

func (c *Controller) run(ctx context.Context, seq Sequence, steps []stepFunc) error {
	if !c.running.TryLock() {
		return ErrInProgress
	}
	defer c.running.Unlock()

	cur, err := c.cursor(ctx, seq)
	if err != nil {
		return err
	}
	if int(cur) > len(steps) {
		cur = Step1
	}

	for ; int(cur) <= len(steps); cur++ {
		if err := steps[cur-1](ctx); err != nil {
			c.logger.Warn(ctx, "sequence stopped", "sequence", seq, "step", int(cur), "error", err)
			return err
		}
		c.logger.Info(ctx, "step completed", "sequence", seq, "step", int(cur))
		if int(cur) < len(steps) {
			c.setCursor(ctx, seq, cur+1)
		}
	}

	c.setCursor(ctx, seq, Step1)
	c.logger.Info(ctx, "sequence completed", "sequence", seq)
	return nil
}

func (c *Controller) cursor(ctx context.Context, seq Sequence) (Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if step, ok := c.loaded[seq]; ok {
		return step, nil
	}
	step, err := c.cursors.Load(ctx, seq)
	if err != nil {
		return 0, err
	}
	c.loaded[seq] = step
	return step, nil
}

// setCursor updates the in-process cursor, which stays authoritative even
// when it cannot be persisted.
func (c *Controller) setCursor(ctx context.Context, seq Sequence, step Step) {
	c.mu.Lock()
	c.loaded[seq] = step
	c.mu.Unlock()

	if err := c.cursors.Save(ctx, seq, step); err != nil {
		c.logger.Warn(ctx, "failed to persist cursor", "sequence", seq, "step", int(step), "error", err)
	}
}

func (c *Controller) leaveHousehold(ctx context.Context) error {
	userID, err := c.store.LocalUserID(ctx)
	if err != nil {
		return err
	}
	if userID == "" {
		return nil
	}

	user, err := c.users.GetByID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.HouseholdID == "" {
		return nil
	}
	return c.gateway.LeaveHousehold(ctx, user.HouseholdID)
}

func (c *Controller) deleteDeviceToken(ctx context.Context) error {
	deviceID, err := c.session.DeviceID(ctx)
	if err != nil {
		return err
	}
	if deviceID == "" {
		return nil
	}
	return c.gateway.DeleteDeviceToken(ctx, deviceID)
}

func (c *Controller) clearSession(ctx context.Context) error {
	if err := c.session.ClearDeviceID(ctx); err != nil {
		return err
	}
	return c.session.ClearAuthData(ctx)
}

// reauthenticated signs in again with the cached credentials and runs action.
// The credentials are forgotten by the following step, so a confirmed remote
// action is not repeated when clearing them fails.
func (c *Controller) reauthenticated(ctx context.Context, action stepFunc) error {
	c.logTokenAge(ctx)

	creds, err := c.session.SavedCredentials(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrUnauthorized
	}
	if err != nil {
		return err
	}

	res, err := c.gateway.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}
	if err := c.session.SetAuthData(ctx, res); err != nil {
		return err
	}

	return action(ctx)
}

func (c *Controller) logTokenAge(ctx context.Context) {
	token, err := c.session.AuthData(ctx)
	if err != nil || token == "" {
		return
	}
	claims, err := session.TokenClaims(token)
	if err != nil || claims.IssuedAt.IsZero() {
		return
	}
	c.logger.Debug(ctx, "re-authenticating", "subject", claims.Subject, "token_age", time.Since(claims.IssuedAt).Round(time.Second))
}
