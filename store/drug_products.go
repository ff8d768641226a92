package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/models"
)

// CreateDrugProduct inserts a new drug product, assigning an id when none
// is set.
func (s *Store) CreateDrugProduct(ctx context.Context, drug *models.DrugProduct) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if drug.ID == "" {
		drug.ID = uuid.NewString()
	}
	if err := db.Create(drug).Error; err != nil {
		s.log.Error("Failed to create drug product", zap.String("sukl_id", drug.SUKLID), zap.Error(err))
		return err
	}
	return nil
}

// GetDrugProduct returns the product or nil when no row matches.
func (s *Store) GetDrugProduct(ctx context.Context, id string) (*models.DrugProduct, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var drug models.DrugProduct
	if err := db.Where("id = ?", id).First(&drug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Error("Failed to fetch drug product", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &drug, nil
}

// ListDrugProducts returns active products ordered by name.
func (s *Store) ListDrugProducts(ctx context.Context, limit, offset int) ([]models.DrugProduct, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var drugs []models.DrugProduct
	if err := db.
		Where("status = ?", models.DrugStatusActive).
		Order("name asc").
		Limit(normalizeLimit(limit, DefaultListLimit)).
		Offset(offset).
		Find(&drugs).Error; err != nil {
		s.log.Error("Database query for drug products failed", zap.Error(err))
		return nil, err
	}
	return drugs, nil
}

// SearchDrugProducts matches active products whose name contains the
// query, optionally narrowed to an ATC code prefix.
func (s *Store) SearchDrugProducts(ctx context.Context, query, atcCode string, limit int) ([]models.DrugProduct, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	q := db.
		Where("status = ?", models.DrugStatusActive).
		Where("lower(name) LIKE lower(?)", "%"+query+"%")
	if atcCode != "" {
		q = q.Where("atc_code LIKE ?", atcCode+"%")
	}
	var drugs []models.DrugProduct
	if err := q.
		Order("name asc").
		Limit(normalizeLimit(limit, DefaultSearchLimit)).
		Find(&drugs).Error; err != nil {
		s.log.Error("Drug product search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return drugs, nil
}

// UpdateDrugProduct applies the supplied fields only.
func (s *Store) UpdateDrugProduct(ctx context.Context, id string, updates map[string]interface{}) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(&models.DrugProduct{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.log.Error("Failed to update drug product", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
