package records

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/wghub/internal/client/models"
	"github.com/dmitrijs2005/wghub/internal/logging"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "wghub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTaskStore(t *testing.T, db *sql.DB, hub *Hub) *Store[models.Task] {
	t.Helper()
	return NewStore[models.Task](db, models.FamilyTask, hub, logging.NewNop())
}

func task(id, scope string, users ...string) models.Task {
	return models.Task{ID: id, HouseholdID: scope, Title: "task " + id, AffectedUsers: users}
}
