// Package session keeps the authentication context of this device: the
// session token, the device id and the credentials cached for
// re-authentication before destructive backend calls.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/cryptox"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	keyToken         = "session_token"
	keyUserID        = "session_user_id"
	keyDeviceID      = "device_id"
	keyCredentials   = "sealed_credentials"
	keyInstallSecret = "install_secret"
)

const saltSize = 16

// Context is the persisted session of this device.
type Context struct {
	meta metadata.Repository
}

func New(meta metadata.Repository) *Context {
	return &Context{meta: meta}
}

// SetAuthData stores the session issued by the backend.
func (c *Context) SetAuthData(ctx context.Context, res *models.AuthResult) error {
	if err := c.meta.SetString(ctx, keyToken, res.Token); err != nil {
		return err
	}
	return c.meta.SetString(ctx, keyUserID, res.UserID)
}

func (c *Context) ClearAuthData(ctx context.Context) error {
	return c.meta.Delete(ctx, keyToken, keyUserID)
}

// AuthData returns the session token, or "" when signed out.
func (c *Context) AuthData(ctx context.Context) (string, error) {
	return c.meta.GetString(ctx, keyToken)
}

// Session returns the full persisted session. UserID is empty when signed out.
func (c *Context) Session(ctx context.Context) (models.Session, error) {
	var s models.Session
	var err error
	if s.Token, err = c.meta.GetString(ctx, keyToken); err != nil {
		return s, err
	}
	if s.UserID, err = c.meta.GetString(ctx, keyUserID); err != nil {
		return s, err
	}
	if s.DeviceID, err = c.meta.GetString(ctx, keyDeviceID); err != nil {
		return s, err
	}
	return s, nil
}

func (c *Context) SaveDeviceID(ctx context.Context, id string) error {
	return c.meta.SetString(ctx, keyDeviceID, id)
}

func (c *Context) ClearDeviceID(ctx context.Context) error {
	return c.meta.Delete(ctx, keyDeviceID)
}

func (c *Context) DeviceID(ctx context.Context) (string, error) {
	return c.meta.GetString(ctx, keyDeviceID)
}

// EnsureDeviceID returns the stored device id, creating one if missing.
func (c *Context) EnsureDeviceID(ctx context.Context) (string, error) {
	id, err := c.DeviceID(ctx)
	if err != nil || id != "" {
		return id, err
	}
	id = uuid.NewString()
	if err := c.SaveDeviceID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

type sealedCredentials struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// SaveCredentials seals the credentials under a key derived from a random
// per-install secret.
func (c *Context) SaveCredentials(ctx context.Context, email, password string) error {
	secret, err := c.installSecret(ctx)
	if err != nil {
		return err
	}

	salt := common.GenerateRandByteArray(saltSize)
	key, err := cryptox.DeriveKey(secret, salt)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(key)

	ciphertext, nonce, err := cryptox.Seal(models.Credentials{Email: email, Password: password}, key)
	if err != nil {
		return fmt.Errorf("seal credentials: %w", err)
	}

	data, err := json.Marshal(sealedCredentials{Salt: salt, Nonce: nonce, Ciphertext: ciphertext})
	if err != nil {
		return err
	}
	return c.meta.Set(ctx, keyCredentials, data)
}

func (c *Context) ClearCredentials(ctx context.Context) error {
	return c.meta.Delete(ctx, keyCredentials)
}

// SavedCredentials returns the cached credentials or common.ErrNotFound.
func (c *Context) SavedCredentials(ctx context.Context) (models.Credentials, error) {
	var creds models.Credentials

	data, err := c.meta.Get(ctx, keyCredentials)
	if err != nil {
		return creds, err
	}
	if len(data) == 0 {
		return creds, common.ErrNotFound
	}

	var sealed sealedCredentials
	if err := json.Unmarshal(data, &sealed); err != nil {
		return creds, common.Persistence(fmt.Errorf("decode credentials: %w", err))
	}

	secret, err := c.installSecret(ctx)
	if err != nil {
		return creds, err
	}
	key, err := cryptox.DeriveKey(secret, sealed.Salt)
	if err != nil {
		return creds, err
	}
	defer common.WipeByteArray(key)

	if err := cryptox.Open(sealed.Ciphertext, sealed.Nonce, key, &creds); err != nil {
		return creds, common.Persistence(fmt.Errorf("open credentials: %w", err))
	}
	return creds, nil
}

func (c *Context) installSecret(ctx context.Context) ([]byte, error) {
	secret, err := c.meta.Get(ctx, keyInstallSecret)
	if err != nil {
		return nil, err
	}
	if len(secret) > 0 {
		return secret, nil
	}

	secret = []byte(uuid.NewString())
	if err := c.meta.Set(ctx, keyInstallSecret, secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// Claims is the readable part of a session token.
type Claims struct {
	Subject  string
	IssuedAt time.Time
}

// TokenClaims decodes the session token without verifying it. The result is
// only used for diagnostics.
func TokenClaims(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, err
	}

	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	return c, nil
}
