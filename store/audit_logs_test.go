package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medkb/models"
)

func TestAuditLogAppendAndFilter(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	entries := []models.AuditLog{
		{EntityType: "document", EntityID: "doc-1", Action: models.AuditActionCreate, UserID: "u1"},
		{EntityType: "document", EntityID: "doc-1", Action: models.AuditActionUpdate, UserID: "u2"},
		{EntityType: "document", EntityID: "doc-2", Action: models.AuditActionCreate, UserID: "u1"},
		{EntityType: "drug_product", EntityID: "drug-1", Action: models.AuditActionCreate, UserID: "u1"},
	}
	for i := range entries {
		require.NoError(t, st.AppendAuditLog(ctx, &entries[i]))
	}

	all, err := st.ListAuditLogs(ctx, "", "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "drug_product", all[0].EntityType, "newest first")

	docs, err := st.ListAuditLogs(ctx, "document", "", 0)
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	doc1, err := st.ListAuditLogs(ctx, "document", "doc-1", 0)
	require.NoError(t, err)
	require.Len(t, doc1, 2)
	assert.Equal(t, models.AuditActionUpdate, doc1[0].Action)
	assert.Equal(t, models.AuditActionCreate, doc1[1].Action)

	limited, err := st.ListAuditLogs(ctx, "", "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
