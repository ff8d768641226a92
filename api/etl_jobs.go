package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medkb/models"
	"medkb/services"
	"medkb/store"
)

type createEtlJobRequest struct {
	DataSourceID uint                   `json:"data_source_id" binding:"required"`
	JobType      string                 `json:"job_type" binding:"required,oneof=FULL_SYNC INCREMENTAL BACKFILL"`
	Status       string                 `json:"status" binding:"omitempty,oneof=PENDING RUNNING COMPLETED FAILED"`
	StartedAt    *time.Time             `json:"started_at"`
	Stats        map[string]interface{} `json:"stats"`
}

type updateEtlJobRequest struct {
	Status     *string                `json:"status" binding:"omitempty,oneof=PENDING RUNNING COMPLETED FAILED"`
	StartedAt  *time.Time             `json:"started_at"`
	FinishedAt *time.Time             `json:"finished_at"`
	Stats      map[string]interface{} `json:"stats"`
	Error      *string                `json:"error" binding:"omitempty,max=5000"`
}

func (r *updateEtlJobRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.StartedAt != nil {
		updates["started_at"] = *r.StartedAt
	}
	if r.FinishedAt != nil {
		updates["finished_at"] = *r.FinishedAt
	}
	if r.Stats != nil {
		updates["stats"] = toJSON(r.Stats)
	}
	if r.Error != nil {
		updates["error"] = *r.Error
	}
	return updates
}

type appendEtlJobLogRequest struct {
	Level   string `json:"level" binding:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	Message string `json:"message" binding:"required,max=5000"`
}

func parseJobID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, CodeValidation, "id must be an integer")
		return 0, false
	}
	return uint(id), true
}

func setupEtlJobRoutes(router *gin.Engine, st *store.Store, audit *services.Audit, log *zap.Logger) {
	rg := router.Group("/etl-jobs")

	rg.GET("", func(c *gin.Context) {
		limit, offset, ok := listParams(c)
		if !ok {
			return
		}
		jobs, err := st.ListEtlJobs(c.Request.Context(), limit, offset)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, jobs)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, ok := parseJobID(c)
		if !ok {
			return
		}
		job, err := st.GetEtlJob(c.Request.Context(), id)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		if job == nil {
			respondNotFound(c, "ETL job")
			return
		}
		c.JSON(http.StatusOK, job)
	})

	rg.GET("/:id/logs", func(c *gin.Context) {
		id, ok := parseJobID(c)
		if !ok {
			return
		}
		limit, ok := parseLimit(c, store.MaxLimit)
		if !ok {
			respondError(c, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
			return
		}
		logs, err := st.ListEtlJobLogs(c.Request.Context(), id, limit)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, logs)
	})

	writes := rg.Group("", requireEditor())

	writes.POST("", func(c *gin.Context) {
		var req createEtlJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		job := models.EtlJob{
			DataSourceID: req.DataSourceID,
			JobType:      req.JobType,
			Status:       req.Status,
			StartedAt:    req.StartedAt,
			Stats:        toJSON(req.Stats),
		}
		if job.Status == "" {
			job.Status = models.EtlJobStatusPending
		}
		if err := st.CreateEtlJob(c.Request.Context(), &job); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "etl_job", strconv.FormatUint(uint64(job.ID), 10), models.AuditActionCreate, req)
		respondCreated(c, job.ID, "ETL job created")
	})

	writes.PUT("/:id", func(c *gin.Context) {
		id, ok := parseJobID(c)
		if !ok {
			return
		}
		var req updateEtlJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		updates := req.updates()
		if len(updates) == 0 {
			respondError(c, http.StatusBadRequest, CodeValidation, "no updatable fields provided")
			return
		}
		if err := st.UpdateEtlJob(c.Request.Context(), id, updates); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "etl_job", c.Param("id"), models.AuditActionUpdate, updates)
		respondUpdated(c, id)
	})

	writes.POST("/:id/logs", func(c *gin.Context) {
		id, ok := parseJobID(c)
		if !ok {
			return
		}
		var req appendEtlJobLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		entry := models.EtlJobLog{
			JobID:   id,
			Level:   req.Level,
			Message: req.Message,
		}
		if entry.Level == "" {
			entry.Level = models.EtlLogLevelInfo
		}
		if err := st.AppendEtlJobLog(c.Request.Context(), &entry); err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "id": entry.ID, "message": "log line recorded"})
	})
}
