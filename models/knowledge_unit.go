package models

import (
	"time"

	"gorm.io/datatypes"
)

// Knowledge unit type values.
const (
	UnitTypeGuideline        = "GUIDELINE"
	UnitTypeRecommendation   = "RECOMMENDATION"
	UnitTypeProcedure        = "PROCEDURE"
	UnitTypeDefinition       = "DEFINITION"
	UnitTypeInteraction      = "INTERACTION"
	UnitTypeContraindication = "CONTRAINDICATION"
)

// Severity values for a knowledge unit.
const (
	UnitSeverityLow      = "LOW"
	UnitSeverityMedium   = "MEDIUM"
	UnitSeverityHigh     = "HIGH"
	UnitSeverityCritical = "CRITICAL"
)

// UnitReference points back into a document a knowledge unit was
// extracted from. Stored as a JSON list on the unit.
type UnitReference struct {
	DocumentID string `json:"document_id"`
	Section    string `json:"section,omitempty"`
	PageNumber int    `json:"page_number,omitempty"`
}

// KnowledgeUnit is one curated piece of clinical knowledge extracted
// from a document (a recommendation, definition, contraindication, ...).
type KnowledgeUnit struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	DocumentID string `json:"document_id" gorm:"index;not null"`
	Type       string `json:"type" gorm:"index;not null"`

	Title   string `json:"title" gorm:"not null"`
	Content string `json:"content" gorm:"type:text;not null"`
	Summary string `json:"summary,omitempty" gorm:"type:text"`

	Keywords datatypes.JSON `json:"keywords,omitempty"`
	Category string         `json:"category,omitempty" gorm:"index"`
	Severity string         `json:"severity,omitempty"`

	// Evidence grading (level A-D plus the grading source).
	EvidenceLevel  string `json:"evidence_level,omitempty" gorm:"size:1"`
	EvidenceSource string `json:"evidence_source,omitempty"`

	References   datatypes.JSON `json:"references,omitempty"`
	RelatedUnits datatypes.JSON `json:"related_units,omitempty"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`

	Status string `json:"status" gorm:"index;default:'ACTIVE'"`
}

// TableName sets the explicit table name for GORM.
func (KnowledgeUnit) TableName() string {
	return "knowledge_units"
}
