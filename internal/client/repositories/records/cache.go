package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/wghub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wghub/internal/common"
	"github.com/dmitrijs2005/wghub/internal/dbx"
)

const localUserIDKey = "local_user_id"

// Cache holds operations spanning every family of the local store.
type Cache struct {
	db  *sql.DB
	hub *Hub
}

func NewCache(db *sql.DB, hub *Hub) *Cache {
	return &Cache{db: db, hub: hub}
}

// DeleteAllData wipes every cached entity and the local user id.
func (c *Cache) DeleteAllData(ctx context.Context) error {
	err := dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
			return fmt.Errorf("failed to delete records: %w", err)
		}
		return metadata.NewSQLiteRepository(tx).Delete(ctx, localUserIDKey)
	})
	if err != nil {
		return common.Persistence(err)
	}

	c.hub.NotifyAll()
	return nil
}

// DeleteScope wipes every cached entity owned by household scopeID.
func (c *Cache) DeleteScope(ctx context.Context, scopeID string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM records WHERE scope_id = ?`, scopeID); err != nil {
		return common.Persistence(fmt.Errorf("failed to delete scope %s: %w", scopeID, err))
	}
	c.hub.NotifyAll()
	return nil
}

// LocalUserID returns "" when nobody is signed in on this device.
func (c *Cache) LocalUserID(ctx context.Context) (string, error) {
	return metadata.NewSQLiteRepository(c.db).GetString(ctx, localUserIDKey)
}

func (c *Cache) SetLocalUserID(ctx context.Context, userID string) error {
	return metadata.NewSQLiteRepository(c.db).SetString(ctx, localUserIDKey, userID)
}
