package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medkb/models"
)

func TestEtlJobLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	job := models.EtlJob{
		DataSourceID: 1,
		JobType:      models.EtlJobTypeFullSync,
		Status:       models.EtlJobStatusPending,
	}
	require.NoError(t, st.CreateEtlJob(ctx, &job))
	require.NotZero(t, job.ID)

	started := time.Now().UTC()
	require.NoError(t, st.UpdateEtlJob(ctx, job.ID, map[string]interface{}{
		"status":     models.EtlJobStatusRunning,
		"started_at": started,
	}))

	got, err := st.GetEtlJob(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.EtlJobStatusRunning, got.Status)
	require.NotNil(t, got.StartedAt)
	assert.Equal(t, models.EtlJobTypeFullSync, got.JobType)
}

func TestListEtlJobsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		job := models.EtlJob{
			DataSourceID: uint(i + 1),
			JobType:      models.EtlJobTypeIncremental,
			Status:       models.EtlJobStatusPending,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, st.CreateEtlJob(ctx, &job))
	}

	jobs, err := st.ListEtlJobs(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, uint(3), jobs[0].DataSourceID)
	assert.Equal(t, uint(1), jobs[2].DataSourceID)
}

func TestEtlJobLogsEmitOrder(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	job := models.EtlJob{DataSourceID: 1, JobType: models.EtlJobTypeBackfill}
	require.NoError(t, st.CreateEtlJob(ctx, &job))
	other := models.EtlJob{DataSourceID: 1, JobType: models.EtlJobTypeBackfill}
	require.NoError(t, st.CreateEtlJob(ctx, &other))

	for _, msg := range []string{"fetching index", "downloaded 12 documents", "done"} {
		require.NoError(t, st.AppendEtlJobLog(ctx, &models.EtlJobLog{
			JobID:   job.ID,
			Level:   models.EtlLogLevelInfo,
			Message: msg,
		}))
	}
	require.NoError(t, st.AppendEtlJobLog(ctx, &models.EtlJobLog{
		JobID:   other.ID,
		Level:   models.EtlLogLevelError,
		Message: "unrelated",
	}))

	logs, err := st.ListEtlJobLogs(ctx, job.ID, 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "fetching index", logs[0].Message)
	assert.Equal(t, "downloaded 12 documents", logs[1].Message)
	assert.Equal(t, "done", logs[2].Message)
}

func TestFailStaleEtlJobs(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	staleStart := time.Now().Add(-3 * time.Hour)
	stale := models.EtlJob{
		DataSourceID: 1,
		JobType:      models.EtlJobTypeFullSync,
		Status:       models.EtlJobStatusRunning,
		StartedAt:    &staleStart,
	}
	require.NoError(t, st.CreateEtlJob(ctx, &stale))

	freshStart := time.Now().Add(-10 * time.Minute)
	fresh := models.EtlJob{
		DataSourceID: 1,
		JobType:      models.EtlJobTypeFullSync,
		Status:       models.EtlJobStatusRunning,
		StartedAt:    &freshStart,
	}
	require.NoError(t, st.CreateEtlJob(ctx, &fresh))

	pending := models.EtlJob{
		DataSourceID: 1,
		JobType:      models.EtlJobTypeFullSync,
		Status:       models.EtlJobStatusPending,
	}
	require.NoError(t, st.CreateEtlJob(ctx, &pending))

	swept, err := st.FailStaleEtlJobs(ctx, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	got, err := st.GetEtlJob(ctx, stale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.EtlJobStatusFailed, got.Status)
	assert.Equal(t, "job exceeded running deadline", got.Error)
	assert.NotNil(t, got.FinishedAt)

	got, err = st.GetEtlJob(ctx, fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.EtlJobStatusRunning, got.Status)

	got, err = st.GetEtlJob(ctx, pending.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.EtlJobStatusPending, got.Status)
}
