package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/dbx"
	"github.com/dmitrijs2005/wghub/internal/logging"
)

// Store is the local cache of one entity family.
type Store[T models.Entity] struct {
	db     dbx.DBTX
	family models.Family
	hub    *Hub
	logger logging.Logger
}

func NewStore[T models.Entity](db dbx.DBTX, family models.Family, hub *Hub, logger logging.Logger) *Store[T] {
	return &Store[T]{
		db:     db,
		family: family,
		hub:    hub,
		logger: logger.With("module", "records", "family", string(family)),
	}
}

func (s *Store[T]) Family() models.Family { return s.family }

// Upsert stores e under its id, replacing any previous version.
func (s *Store[T]) Upsert(ctx context.Context, e T) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return common.Persistence(fmt.Errorf("encode %s[%s]: %w", s.family, e.EntityID(), err))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (family, id, scope_id, payload, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(family, id) DO UPDATE SET
			scope_id = excluded.scope_id,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, string(s.family), e.EntityID(), e.ScopeID(), payload)
	if err != nil {
		return common.Persistence(fmt.Errorf("failed to upsert %s[%s]: %w", s.family, e.EntityID(), err))
	}

	s.hub.Notify(s.family)
	return nil
}

// GetByID returns common.ErrNotFound when nothing is cached under id.
func (s *Store[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	var payload []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE family = ? AND id = ?`,
		string(s.family), id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, common.ErrNotFound
	}
	if err != nil {
		return zero, common.Persistence(fmt.Errorf("failed to get %s[%s]: %w", s.family, id, err))
	}

	return s.decode(id, payload)
}

// ListByScope returns the cached entities of a household ordered by id.
// An empty scopeID lists the whole family.
func (s *Store[T]) ListByScope(ctx context.Context, scopeID string) ([]T, error) {
	query := `SELECT id, payload FROM records WHERE family = ? AND scope_id = ? ORDER BY id`
	args := []any{string(s.family), scopeID}
	if scopeID == "" {
		query = `SELECT id, payload FROM records WHERE family = ? ORDER BY id`
		args = args[:1]
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.Persistence(fmt.Errorf("failed to list %s: %w", s.family, err))
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, common.Persistence(fmt.Errorf("failed to scan %s row: %w", s.family, err))
		}
		e, err := s.decode(id, payload)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Persistence(fmt.Errorf("failed to iterate %s rows: %w", s.family, err))
	}
	return result, nil
}

// IDs returns the ids of every cached entity of the family.
func (s *Store[T]) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM records WHERE family = ? ORDER BY id`, string(s.family))
	if err != nil {
		return nil, common.Persistence(fmt.Errorf("failed to list %s ids: %w", s.family, err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, common.Persistence(fmt.Errorf("failed to scan %s id: %w", s.family, err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, common.Persistence(fmt.Errorf("failed to iterate %s ids: %w", s.family, err))
	}
	return ids, nil
}

// Delete removes the entity. Deleting an absent id is not an error.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE family = ? AND id = ?`, string(s.family), id)
	if err != nil {
		return common.Persistence(fmt.Errorf("failed to delete %s[%s]: %w", s.family, id, err))
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.hub.Notify(s.family)
	}
	return nil
}

// DeleteAllForScope removes every entity of the family owned by scopeID.
func (s *Store[T]) DeleteAllForScope(ctx context.Context, scopeID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE family = ? AND scope_id = ?`, string(s.family), scopeID)
	if err != nil {
		return common.Persistence(fmt.Errorf("failed to delete %s of scope %s: %w", s.family, scopeID, err))
	}
	s.hub.Notify(s.family)
	return nil
}

// Observe streams snapshots of ListByScope(scopeID). The first snapshot is
// sent right away, then one after each change of the family. Changes that
// happen while the reader is busy are coalesced into one snapshot. The
// channel is closed when ctx is done.
func (s *Store[T]) Observe(ctx context.Context, scopeID string) <-chan []T {
	out := make(chan []T)
	signals, cancel := s.hub.Subscribe(s.family)

	go func() {
		defer close(out)
		defer cancel()

		for {
			snapshot, err := s.ListByScope(ctx, scopeID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Warn(ctx, "observe query failed", "scope", scopeID, "error", err)
			} else {
				select {
				case out <- snapshot:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-signals:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (s *Store[T]) decode(id string, payload []byte) (T, error) {
	var e T
	if err := json.Unmarshal(payload, &e); err != nil {
		return e, common.Persistence(fmt.Errorf("decode %s[%s]: %w", s.family, id, err))
	}
	return e, nil
}
