package models

import (
	"time"

	"gorm.io/datatypes"
)

// ETL job types.
const (
	EtlJobTypeFullSync    = "FULL_SYNC"
	EtlJobTypeIncremental = "INCREMENTAL"
	EtlJobTypeBackfill    = "BACKFILL"
)

// ETL job states.
const (
	EtlJobStatusPending   = "PENDING"
	EtlJobStatusRunning   = "RUNNING"
	EtlJobStatusCompleted = "COMPLETED"
	EtlJobStatusFailed    = "FAILED"
)

// EtlJob records metadata of one ingestion run. The job runner itself is
// an external process; this service only stores and serves the records.
type EtlJob struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	DataSourceID uint   `json:"data_source_id" gorm:"index;not null"`
	JobType      string `json:"job_type" gorm:"not null"`
	Status       string `json:"status" gorm:"index;default:'PENDING'"`

	StartedAt  *time.Time     `json:"started_at,omitempty"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	Stats      datatypes.JSON `json:"stats,omitempty"` // rows fetched/inserted/skipped etc.
	Error      string         `json:"error,omitempty" gorm:"type:text"`
}

// TableName sets the explicit table name for GORM.
func (EtlJob) TableName() string {
	return "etl_jobs"
}

// ETL log levels.
const (
	EtlLogLevelDebug = "DEBUG"
	EtlLogLevelInfo  = "INFO"
	EtlLogLevelWarn  = "WARN"
	EtlLogLevelError = "ERROR"
)

// EtlJobLog is one timestamped log line emitted by an ETL job.
type EtlJobLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	JobID   uint   `json:"job_id" gorm:"index;not null"`
	Level   string `json:"level" gorm:"default:'INFO'"`
	Message string `json:"message" gorm:"type:text;not null"`
}

// TableName sets the explicit table name for GORM.
func (EtlJobLog) TableName() string {
	return "etl_job_logs"
}
