package models

import (
	"time"

	"gorm.io/datatypes"
)

// Source type values accepted for a DataSource.
const (
	SourceTypeSUKL        = "SUKL"
	SourceTypeNIKEZ       = "NIKEZ"
	SourceTypeWikiskripta = "WIKISKRIPTA"
	SourceTypeOther       = "OTHER"
)

// DataSource represents one upstream registry or society dataset
// (e.g. SÚKL, NIKEZ, WikiSkripta) that documents are imported from.
type DataSource struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	SourceType  string `json:"source_type" gorm:"index;not null"`
	URL         string `json:"url,omitempty"`
	APIEndpoint string `json:"api_endpoint,omitempty"`

	// Free-form scraper configuration, opaque to this service.
	ScrapeConfig datatypes.JSON `json:"scrape_config,omitempty"`

	// No column default: GORM would drop an explicit false on insert in
	// favor of it. Callers set the flag; the API defaults it to true.
	IsActive bool `json:"is_active"`
}

// TableName sets the explicit table name for GORM.
func (DataSource) TableName() string {
	return "data_sources"
}
