package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medkb/models"
)

// ErrUnavailable is returned by every store call while no database
// connection is configured (degraded mode).
var ErrUnavailable = errors.New("store: database unavailable")

// Default result caps applied when a caller passes no limit.
const (
	DefaultListLimit   = 100
	DefaultSearchLimit = 50
	MaxLimit           = 500
)

// Store bundles all data access behind one injected connection. A nil
// handle puts the store into degraded mode where every call fails fast
// with ErrUnavailable instead of panicking on a missing connection.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New wraps an already opened connection. db may be nil (degraded mode).
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Open connects to PostgreSQL with a silent GORM logger.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// Available reports whether a database connection is configured.
func (s *Store) Available() bool {
	return s.db != nil
}

// AutoMigrate creates or updates the schema for all entities.
func (s *Store) AutoMigrate() error {
	if s.db == nil {
		return ErrUnavailable
	}
	return s.db.AutoMigrate(
		&models.DataSource{},
		&models.Document{},
		&models.KnowledgeUnit{},
		&models.DrugProduct{},
		&models.DrugInteraction{},
		&models.EtlJob{},
		&models.EtlJobLog{},
		&models.AuditLog{},
	)
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}
	return s.db.WithContext(ctx), nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
