package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/models"
	"medkb/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "medkb.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err, "get sql db")
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	st := store.New(db, zap.NewNop())
	require.NoError(t, st.AutoMigrate(), "auto migrate")
	return st
}

func TestAuditRecordWritesRow(t *testing.T) {
	st := newTestStore(t)
	audit := NewAudit(st, zap.NewNop())
	ctx := context.Background()

	audit.Record(ctx, Entry{
		EntityType: "document",
		EntityID:   "doc-1",
		Action:     models.AuditActionCreate,
		UserID:     "user-42",
		Changes:    map[string]interface{}{"title": "Paralen 500 SPC"},
		IPAddress:  "192.0.2.1",
		UserAgent:  "curl/8.0",
	})

	rows, err := st.ListAuditLogs(ctx, "document", "doc-1", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, models.AuditActionCreate, row.Action)
	assert.Equal(t, "user-42", row.UserID)
	assert.Equal(t, "192.0.2.1", row.IPAddress)
	assert.Equal(t, "curl/8.0", row.UserAgent)

	var changes map[string]interface{}
	require.NoError(t, json.Unmarshal(row.Changes, &changes))
	assert.Equal(t, "Paralen 500 SPC", changes["title"])
}

func TestAuditRecordSwallowsStoreFailure(t *testing.T) {
	st := store.New(nil, zap.NewNop())
	audit := NewAudit(st, zap.NewNop())

	// Must not panic or surface the unavailable store to the caller.
	audit.Record(context.Background(), Entry{
		EntityType: "document",
		EntityID:   "doc-1",
		Action:     models.AuditActionUpdate,
	})
}

func TestAuditRecordUnserializableChanges(t *testing.T) {
	st := newTestStore(t)
	audit := NewAudit(st, zap.NewNop())
	ctx := context.Background()

	audit.Record(ctx, Entry{
		EntityType: "document",
		EntityID:   "doc-2",
		Action:     models.AuditActionUpdate,
		Changes:    make(chan int), // not JSON-serializable
	})

	rows, err := st.ListAuditLogs(ctx, "document", "doc-2", 0)
	require.NoError(t, err)
	require.Len(t, rows, 1, "row still written, just without the snapshot")
	assert.Empty(t, rows[0].Changes)
}
