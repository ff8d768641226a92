package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/models"
)

// CreateKnowledgeUnit inserts a new knowledge unit, assigning an id when
// none is set.
func (s *Store) CreateKnowledgeUnit(ctx context.Context, unit *models.KnowledgeUnit) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}
	if err := db.Create(unit).Error; err != nil {
		s.log.Error("Failed to create knowledge unit", zap.String("title", unit.Title), zap.Error(err))
		return err
	}
	return nil
}

// GetKnowledgeUnit returns the unit or nil when no row matches.
func (s *Store) GetKnowledgeUnit(ctx context.Context, id string) (*models.KnowledgeUnit, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var unit models.KnowledgeUnit
	if err := db.Where("id = ?", id).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Error("Failed to fetch knowledge unit", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &unit, nil
}

// ListKnowledgeUnits returns active units, newest first.
func (s *Store) ListKnowledgeUnits(ctx context.Context, limit, offset int) ([]models.KnowledgeUnit, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var units []models.KnowledgeUnit
	if err := db.
		Where("status = ?", "ACTIVE").
		Order("created_at desc").
		Limit(normalizeLimit(limit, DefaultListLimit)).
		Offset(offset).
		Find(&units).Error; err != nil {
		s.log.Error("Database query for knowledge units failed", zap.Error(err))
		return nil, err
	}
	return units, nil
}

// SearchKnowledgeUnits matches active units whose title contains the query.
func (s *Store) SearchKnowledgeUnits(ctx context.Context, query string, limit int) ([]models.KnowledgeUnit, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var units []models.KnowledgeUnit
	if err := db.
		Where("status = ?", "ACTIVE").
		Where("lower(title) LIKE lower(?)", "%"+query+"%").
		Order("created_at desc").
		Limit(normalizeLimit(limit, DefaultSearchLimit)).
		Find(&units).Error; err != nil {
		s.log.Error("Knowledge unit search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return units, nil
}

// ListKnowledgeUnitsByCategory returns active units of one category,
// newest first.
func (s *Store) ListKnowledgeUnitsByCategory(ctx context.Context, category string, limit int) ([]models.KnowledgeUnit, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var units []models.KnowledgeUnit
	if err := db.
		Where("status = ?", "ACTIVE").
		Where("category = ?", category).
		Order("created_at desc").
		Limit(normalizeLimit(limit, DefaultSearchLimit)).
		Find(&units).Error; err != nil {
		s.log.Error("Knowledge unit category query failed", zap.String("category", category), zap.Error(err))
		return nil, err
	}
	return units, nil
}

// UpdateKnowledgeUnit applies the supplied fields only.
func (s *Store) UpdateKnowledgeUnit(ctx context.Context, id string, updates map[string]interface{}) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(&models.KnowledgeUnit{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.log.Error("Failed to update knowledge unit", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
