package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interaction type values.
const (
	InteractionTypePharmacokinetic = "PHARMACOKINETIC"
	InteractionTypePharmacodynamic = "PHARMACODYNAMIC"
	InteractionTypeDuplicity       = "DUPLICITY"
	InteractionTypeOther           = "OTHER"
)

// Interaction severity values, ordered from least to most severe.
const (
	InteractionSeverityLow             = "LOW"
	InteractionSeverityModerate        = "MODERATE"
	InteractionSeverityHigh            = "HIGH"
	InteractionSeverityContraindicated = "CONTRAINDICATED"
)

// DrugInteraction models a known interaction between two drug products.
// The (Drug1ID, Drug2ID) pair is unordered; lookups must match either side.
type DrugInteraction struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Drug1ID string `json:"drug1_id" gorm:"column:drug1_id;index;not null"`
	Drug2ID string `json:"drug2_id" gorm:"column:drug2_id;index;not null"`

	InteractionType string `json:"interaction_type" gorm:"not null"`
	Severity        string `json:"severity" gorm:"index;not null"`

	Mechanism      string         `json:"mechanism,omitempty" gorm:"type:text"`
	ClinicalEffect string         `json:"clinical_effect,omitempty" gorm:"type:text"`
	Management     string         `json:"management,omitempty" gorm:"type:text"`
	Evidence       string         `json:"evidence,omitempty" gorm:"type:text"`
	References     datatypes.JSON `json:"references,omitempty"`

	Status string `json:"status" gorm:"index;default:'ACTIVE'"`
}

// TableName sets the explicit table name for GORM.
func (DrugInteraction) TableName() string {
	return "drug_interactions"
}
