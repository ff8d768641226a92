package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/models"
)

// CreateDataSource inserts a new data source.
func (s *Store) CreateDataSource(ctx context.Context, ds *models.DataSource) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(ds).Error; err != nil {
		s.log.Error("Failed to create data source", zap.String("name", ds.Name), zap.Error(err))
		return err
	}
	return nil
}

// GetDataSource returns the data source or nil when no row matches.
func (s *Store) GetDataSource(ctx context.Context, id uint) (*models.DataSource, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var ds models.DataSource
	if err := db.First(&ds, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Error("Failed to fetch data source", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &ds, nil
}

// ListDataSources returns active data sources ordered by name.
func (s *Store) ListDataSources(ctx context.Context, limit, offset int) ([]models.DataSource, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var sources []models.DataSource
	if err := db.
		Where("is_active = ?", true).
		Order("name asc").
		Limit(normalizeLimit(limit, DefaultListLimit)).
		Offset(offset).
		Find(&sources).Error; err != nil {
		s.log.Error("Database query for data sources failed", zap.Error(err))
		return nil, err
	}
	return sources, nil
}

// UpdateDataSource applies the supplied fields only. A missing id
// affects zero rows and is not an error.
func (s *Store) UpdateDataSource(ctx context.Context, id uint, updates map[string]interface{}) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(&models.DataSource{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.log.Error("Failed to update data source", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}
