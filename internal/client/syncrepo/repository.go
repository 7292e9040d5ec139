// Package syncrepo implements the write-through repository shared by every
// household entity family.
//
// Mutations go to the remote authority first. Only after the backend
// confirms them is the local cache touched, using the canonical entity the
// backend returned: it is cached if the current user is among its affected
// users and evicted otherwise. Reads and observation are served from the
// local cache only.
package syncrepo

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

// Remote is the backend API of one family. Every mutation returns the
// canonical entity.
type Remote[T models.Entity] interface {
	Create(ctx context.Context, e T) (T, error)
	Update(ctx context.Context, e T) (T, error)
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
}

// Local is the cache of one family.
type Local[T models.Entity] interface {
	Upsert(ctx context.Context, e T) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (T, error)
	ListByScope(ctx context.Context, scopeID string) ([]T, error)
	Observe(ctx context.Context, scopeID string) <-chan []T
	IDs(ctx context.Context) ([]string, error)
}

// UserResolver returns the user signed in on this device, or "".
type UserResolver interface {
	LocalUserID(ctx context.Context) (string, error)
}

type Repository[T models.Entity] struct {
	family models.Family
	remote Remote[T]
	local  Local[T]
	users  UserResolver
	logger logging.Logger
}

func New[T models.Entity](family models.Family, remote Remote[T], local Local[T], users UserResolver, logger logging.Logger) *Repository[T] {
	return &Repository[T]{
		family: family,
		remote: remote,
		local:  local,
		users:  users,
		logger: logger.With("module", "syncrepo", "family", string(family)),
	}
}

func (r *Repository[T]) Family() models.Family { return r.family }

// Create stores e remotely and caches the canonical result if the current
// user is affected by it. Otherwise, and on remote failures, the cache is
// left untouched.
func (r *Repository[T]) Create(ctx context.Context, e T) (T, error) {
	canonical, err := r.remote.Create(ctx, e)
	if err != nil {
		return canonical, err
	}
	affected, err := r.affected(ctx, canonical)
	if err != nil || !affected {
		return canonical, err
	}
	if err := r.local.Upsert(ctx, canonical); err != nil {
		return canonical, common.Persistence(err)
	}
	return canonical, nil
}

// Update stores e remotely. If the current user is no longer affected by
// the canonical result, the local copy is evicted.
func (r *Repository[T]) Update(ctx context.Context, e T) (T, error) {
	canonical, err := r.remote.Update(ctx, e)
	if err != nil {
		return canonical, err
	}
	return canonical, r.apply(ctx, canonical)
}

// Delete removes the entity remotely, then locally.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if err := r.remote.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.local.Delete(ctx, id); err != nil {
		return common.Persistence(err)
	}
	return nil
}

// FetchAndReconcile brings the cached copy of id in line with the backend.
// An entity the backend no longer knows is evicted, and so is one answered
// with a different or empty id.
func (r *Repository[T]) FetchAndReconcile(ctx context.Context, id string) error {
	canonical, err := r.remote.Get(ctx, id)
	if err == nil && canonical.EntityID() != id {
		r.logger.Warn(ctx, "backend answered with another id", "id", id, "got", canonical.EntityID())
		err = common.ErrNotFound
	}
	if errors.Is(err, common.ErrNotFound) {
		r.logger.Debug(ctx, "entity gone remotely, evicting", "id", id)
		if err := r.local.Delete(ctx, id); err != nil {
			return common.Persistence(err)
		}
		return nil
	}
	if err != nil {
		return err
	}
	return r.apply(ctx, canonical)
}

// Get reads one cached entity. A missing entity is common.ErrNotFound.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	return r.local.GetByID(ctx, id)
}

// List reads the cached entities of a household; "" lists all.
func (r *Repository[T]) List(ctx context.Context, scopeID string) ([]T, error) {
	return r.local.ListByScope(ctx, scopeID)
}

// Observe streams cache snapshots of a household until ctx is done.
func (r *Repository[T]) Observe(ctx context.Context, scopeID string) <-chan []T {
	return r.local.Observe(ctx, scopeID)
}

// CachedIDs lists the ids currently held in the cache.
func (r *Repository[T]) CachedIDs(ctx context.Context) ([]string, error) {
	return r.local.IDs(ctx)
}

func (r *Repository[T]) affected(ctx context.Context, canonical T) (bool, error) {
	userID, err := r.users.LocalUserID(ctx)
	if err != nil {
		return false, common.Persistence(err)
	}
	return models.IsAffected(canonical, userID), nil
}

func (r *Repository[T]) apply(ctx context.Context, canonical T) error {
	affected, err := r.affected(ctx, canonical)
	if err != nil {
		return err
	}

	if affected {
		if err := r.local.Upsert(ctx, canonical); err != nil {
			return common.Persistence(err)
		}
		return nil
	}

	r.logger.Debug(ctx, "current user not affected, evicting", "id", canonical.EntityID())
	if err := r.local.Delete(ctx, canonical.EntityID()); err != nil {
		return common.Persistence(err)
	}
	return nil
}
