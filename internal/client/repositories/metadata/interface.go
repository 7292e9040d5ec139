// Package metadata stores small key/value settings of the local client:
// session data, sealed credentials, the local user id and lifecycle cursors.
package metadata

import (
	"context"
)

// Repository is a key/value store. Get returns (nil, nil) for absent keys.
// Every failure matches common.ErrPersistence.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
