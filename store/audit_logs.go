package store

import (
	"context"

	"go.uber.org/zap"

	"medkb/models"
)

// AppendAuditLog stores one audit record. The log is append-only; rows
// are never updated or deleted.
func (s *Store) AppendAuditLog(ctx context.Context, entry *models.AuditLog) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(entry).Error; err != nil {
		s.log.Error("Failed to append audit log",
			zap.String("entity_type", entry.EntityType), zap.String("entity_id", entry.EntityID), zap.Error(err))
		return err
	}
	return nil
}

// ListAuditLogs returns audit records, newest first, optionally filtered
// by entity type and id.
func (s *Store) ListAuditLogs(ctx context.Context, entityType, entityID string, limit int) ([]models.AuditLog, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.AuditLog{})
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if entityID != "" {
		q = q.Where("entity_id = ?", entityID)
	}
	var entries []models.AuditLog
	if err := q.
		Order("id desc").
		Limit(normalizeLimit(limit, DefaultListLimit)).
		Find(&entries).Error; err != nil {
		s.log.Error("Database query for audit logs failed", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
