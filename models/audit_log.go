package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
)

// AuditLog is one append-only record of a mutation: who changed which
// entity, when, and with what payload. Rows are never updated or deleted.
type AuditLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	EntityType string `json:"entity_type" gorm:"index;not null"`
	EntityID   string `json:"entity_id" gorm:"index;not null"`
	Action     string `json:"action" gorm:"not null"`

	UserID  string         `json:"user_id" gorm:"index"`
	Changes datatypes.JSON `json:"changes,omitempty"` // input payload snapshot

	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// TableName sets the explicit table name for GORM.
func (AuditLog) TableName() string {
	return "audit_logs"
}
