package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medkb/models"
)

func TestEtlJobLifecycleOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signToken(t, "editor-1", "editor")

	w := doRequest(router, http.MethodPost, "/etl-jobs", token, map[string]interface{}{
		"data_source_id": 1,
		"job_type":       "FULL_SYNC",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &created)
	require.NotZero(t, created.ID)
	jobPath := fmt.Sprintf("/etl-jobs/%d", created.ID)

	w = doRequest(router, http.MethodGet, jobPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var job models.EtlJob
	decodeBody(t, w, &job)
	assert.Equal(t, models.EtlJobStatusPending, job.Status, "status defaults")

	w = doRequest(router, http.MethodPut, jobPath, token, map[string]interface{}{
		"status":     "RUNNING",
		"started_at": time.Now().UTC().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(router, http.MethodGet, jobPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &job)
	assert.Equal(t, models.EtlJobStatusRunning, job.Status)
	assert.NotNil(t, job.StartedAt)
}

func TestEtlJobLogsOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signToken(t, "editor-1", "editor")

	w := doRequest(router, http.MethodPost, "/etl-jobs", token, map[string]interface{}{
		"data_source_id": 1,
		"job_type":       "INCREMENTAL",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &created)
	logsPath := fmt.Sprintf("/etl-jobs/%d/logs", created.ID)

	w = doRequest(router, http.MethodPost, logsPath, token, map[string]interface{}{
		"message": "fetching index",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(router, http.MethodPost, logsPath, token, map[string]interface{}{
		"level":   "ERROR",
		"message": "upstream timeout",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, logsPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []models.EtlJobLog
	decodeBody(t, w, &logs)
	require.Len(t, logs, 2)
	assert.Equal(t, "fetching index", logs[0].Message)
	assert.Equal(t, models.EtlLogLevelInfo, logs[0].Level, "level defaults")
	assert.Equal(t, models.EtlLogLevelError, logs[1].Level)
}

func TestEtlJobRejectsNonNumericID(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/etl-jobs/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, CodeValidation, body["code"])
}

func TestEtlJobRejectsUnknownJobType(t *testing.T) {
	router, _ := newTestRouter(t)
	token := signToken(t, "editor-1", "editor")

	w := doRequest(router, http.MethodPost, "/etl-jobs", token, map[string]interface{}{
		"data_source_id": 1,
		"job_type":       "SCRAPE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
