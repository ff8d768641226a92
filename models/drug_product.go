package models

import (
	"time"

	"gorm.io/datatypes"
)

// Registration states of a drug product in the SÚKL registry.
const (
	DrugStatusActive    = "ACTIVE"
	DrugStatusCancelled = "CANCELLED"
	DrugStatusSuspended = "SUSPENDED"
)

// ActiveIngredient is one ingredient of a drug product, stored as part
// of a JSON list on the product.
type ActiveIngredient struct {
	Name     string `json:"name"`
	Strength string `json:"strength,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// DrugProduct represents one registered medicinal product.
type DrugProduct struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SUKLID string `json:"sukl_id" gorm:"column:sukl_id;uniqueIndex;not null"`
	Name   string `json:"name" gorm:"index;not null"`

	GenericName       string         `json:"generic_name,omitempty" gorm:"index"`
	ActiveIngredients datatypes.JSON `json:"active_ingredients,omitempty"`
	DosageForm        string         `json:"dosage_form,omitempty"`
	Strength          string         `json:"strength,omitempty"`
	Route             string         `json:"route,omitempty"`
	ATCCode           string         `json:"atc_code,omitempty" gorm:"column:atc_code;index"`
	Manufacturer      string         `json:"manufacturer,omitempty"`

	RegistrationNumber string     `json:"registration_number,omitempty"`
	RegistrationDate   *time.Time `json:"registration_date,omitempty"`

	SPCURL string `json:"spc_url,omitempty" gorm:"column:spc_url"`
	PILURL string `json:"pil_url,omitempty" gorm:"column:pil_url"`

	Status string `json:"status" gorm:"index;default:'ACTIVE'"`
}

// TableName sets the explicit table name for GORM.
func (DrugProduct) TableName() string {
	return "drug_products"
}
