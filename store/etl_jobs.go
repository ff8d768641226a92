package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/models"
)

// CreateEtlJob inserts a new job record.
func (s *Store) CreateEtlJob(ctx context.Context, job *models.EtlJob) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(job).Error; err != nil {
		s.log.Error("Failed to create ETL job", zap.Uint("data_source_id", job.DataSourceID), zap.Error(err))
		return err
	}
	return nil
}

// GetEtlJob returns the job or nil when no row matches.
func (s *Store) GetEtlJob(ctx context.Context, id uint) (*models.EtlJob, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var job models.EtlJob
	if err := db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.log.Error("Failed to fetch ETL job", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &job, nil
}

// ListEtlJobs returns jobs, newest first.
func (s *Store) ListEtlJobs(ctx context.Context, limit, offset int) ([]models.EtlJob, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var jobs []models.EtlJob
	if err := db.
		Order("created_at desc").
		Limit(normalizeLimit(limit, DefaultListLimit)).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		s.log.Error("Database query for ETL jobs failed", zap.Error(err))
		return nil, err
	}
	return jobs, nil
}

// UpdateEtlJob applies the supplied fields only.
func (s *Store) UpdateEtlJob(ctx context.Context, id uint, updates map[string]interface{}) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Model(&models.EtlJob{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		s.log.Error("Failed to update ETL job", zap.Uint("id", id), zap.Error(err))
		return err
	}
	return nil
}

// AppendEtlJobLog stores one log line for a job.
func (s *Store) AppendEtlJobLog(ctx context.Context, entry *models.EtlJobLog) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(entry).Error; err != nil {
		s.log.Error("Failed to append ETL job log", zap.Uint("job_id", entry.JobID), zap.Error(err))
		return err
	}
	return nil
}

// ListEtlJobLogs returns the log lines of one job in emit order.
func (s *Store) ListEtlJobLogs(ctx context.Context, jobID uint, limit int) ([]models.EtlJobLog, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var logs []models.EtlJobLog
	if err := db.
		Where("job_id = ?", jobID).
		Order("id asc").
		Limit(normalizeLimit(limit, MaxLimit)).
		Find(&logs).Error; err != nil {
		s.log.Error("Database query for ETL job logs failed", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, err
	}
	return logs, nil
}

// FailStaleEtlJobs marks RUNNING jobs whose start exceeds the threshold
// as FAILED. Returns the number of jobs swept.
func (s *Store) FailStaleEtlJobs(ctx context.Context, olderThan time.Duration) (int64, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan)
	res := db.Model(&models.EtlJob{}).
		Where("status = ?", models.EtlJobStatusRunning).
		Where("started_at IS NOT NULL AND started_at < ?", cutoff).
		Updates(map[string]interface{}{
			"status":      models.EtlJobStatusFailed,
			"error":       "job exceeded running deadline",
			"finished_at": time.Now(),
		})
	if res.Error != nil {
		s.log.Error("Stale ETL job sweep failed", zap.Error(res.Error))
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
