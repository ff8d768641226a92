package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document type values.
const (
	DocumentTypeSPC       = "SPC"
	DocumentTypePIL       = "PIL"
	DocumentTypeGuideline = "GUIDELINE"
	DocumentTypeArticle   = "ARTICLE"
	DocumentTypeDataset   = "DATASET"
	DocumentTypeOther     = "OTHER"
)

// Document lifecycle states.
const (
	DocumentStatusActive     = "ACTIVE"
	DocumentStatusSuperseded = "SUPERSEDED"
	DocumentStatusRetired    = "RETIRED"
)

// Document represents one source document (SPC, PIL, guideline, ...)
// imported from a DataSource.
type Document struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	DataSourceID uint   `json:"data_source_id" gorm:"index;not null"`
	SourceID     string `json:"source_id" gorm:"index"` // id within the upstream source

	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
	URL         string `json:"url"`
	DownloadURL string `json:"download_url,omitempty"`

	DocumentType string `json:"document_type" gorm:"index;not null"`
	Language     string `json:"language" gorm:"size:2;default:'cs'"`

	PublishedDate *time.Time     `json:"published_date,omitempty"`
	Version       string         `json:"version,omitempty"`
	Authors       datatypes.JSON `json:"authors,omitempty"`
	Categories    datatypes.JSON `json:"categories,omitempty"`
	Tags          datatypes.JSON `json:"tags,omitempty"`
	ContentHash   string         `json:"content_hash,omitempty" gorm:"index"`

	Status string `json:"status" gorm:"index;default:'ACTIVE'"`
}

// TableName sets the explicit table name for GORM.
func (Document) TableName() string {
	return "documents"
}
