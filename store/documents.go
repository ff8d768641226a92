package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/models"
)

// CreateDocument inserts a new document, assigning an id when none is set.
func (s *Store) CreateDocument(ctx context.Context, doc *models.Document) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if err := db.Create(doc).Error; err != nil {
		s.log.Error("Failed to create document", zap.String("title", doc.Title), zap.Error(err))
		return err
	}
	return nil
}

// GetDocument returns the document or nil when no row matches.
func (s *Store) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Error("Failed to fetch document", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns active documents, newest first.
func (s *Store) ListDocuments(ctx context.Context, limit, offset int) ([]models.Document, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var docs []models.Document
	if err := db.
		Where("status = ?", models.DocumentStatusActive).
		Order("created_at desc").
		Limit(normalizeLimit(limit, DefaultListLimit)).
		Offset(offset).
		Find(&docs).Error; err != nil {
		s.log.Error("Database query for documents failed", zap.Error(err))
		return nil, err
	}
	return docs, nil
}

// SearchDocuments matches active documents whose title contains the query
// (case-insensitive substring).
func (s *Store) SearchDocuments(ctx context.Context, query string, limit int) ([]models.Document, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var docs []models.Document
	if err := db.
		Where("status = ?", models.DocumentStatusActive).
		Where("lower(title) LIKE lower(?)", "%"+query+"%").
		Order("created_at desc").
		Limit(normalizeLimit(limit, DefaultSearchLimit)).
		Find(&docs).Error; err != nil {
		s.log.Error("Document search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return docs, nil
}

// UpdateDocument applies the supplied fields only.
func (s *Store) UpdateDocument(ctx context.Context, id string, updates map[string]interface{}) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(&models.Document{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.log.Error("Failed to update document", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
