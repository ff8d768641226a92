package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/models"
)

// severityRank orders interactions most severe first, with insertion
// order as the tie-break. The CASE expression keeps the ordering
// identical on PostgreSQL and the sqlite test databases.
const severityRank = "CASE severity " +
	"WHEN 'CONTRAINDICATED' THEN 4 " +
	"WHEN 'HIGH' THEN 3 " +
	"WHEN 'MODERATE' THEN 2 " +
	"WHEN 'LOW' THEN 1 ELSE 0 END DESC, created_at asc"

// CreateDrugInteraction inserts a new interaction, assigning an id when
// none is set.
func (s *Store) CreateDrugInteraction(ctx context.Context, ia *models.DrugInteraction) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if ia.ID == "" {
		ia.ID = uuid.NewString()
	}
	if err := db.Create(ia).Error; err != nil {
		s.log.Error("Failed to create drug interaction",
			zap.String("drug1_id", ia.Drug1ID), zap.String("drug2_id", ia.Drug2ID), zap.Error(err))
		return err
	}
	return nil
}

// GetDrugInteraction returns the interaction or nil when no row matches.
func (s *Store) GetDrugInteraction(ctx context.Context, id string) (*models.DrugInteraction, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var ia models.DrugInteraction
	if err := db.Where("id = ?", id).First(&ia).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Error("Failed to fetch drug interaction", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &ia, nil
}

// ListDrugInteractions returns active interactions, most severe first.
func (s *Store) ListDrugInteractions(ctx context.Context, limit, offset int) ([]models.DrugInteraction, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var interactions []models.DrugInteraction
	if err := db.
		Where("status = ?", "ACTIVE").
		Order(severityRank).
		Limit(normalizeLimit(limit, DefaultListLimit)).
		Offset(offset).
		Find(&interactions).Error; err != nil {
		s.log.Error("Database query for drug interactions failed", zap.Error(err))
		return nil, err
	}
	return interactions, nil
}

// GetDrugInteractionsByDrug returns every interaction where the drug
// appears on either side of the unordered pair.
func (s *Store) GetDrugInteractionsByDrug(ctx context.Context, drugID string) ([]models.DrugInteraction, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var interactions []models.DrugInteraction
	if err := db.
		Where("status = ?", "ACTIVE").
		Where("drug1_id = ? OR drug2_id = ?", drugID, drugID).
		Order(severityRank).
		Find(&interactions).Error; err != nil {
		s.log.Error("Drug interaction lookup failed", zap.String("drug_id", drugID), zap.Error(err))
		return nil, err
	}
	return interactions, nil
}

// UpdateDrugInteraction applies the supplied fields only.
func (s *Store) UpdateDrugInteraction(ctx context.Context, id string, updates map[string]interface{}) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(&models.DrugInteraction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.log.Error("Failed to update drug interaction", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
