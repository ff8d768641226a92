package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medkb/store"
)

// Audit history is admin-only; it exposes user ids and raw payloads.
func setupAuditLogRoutes(router *gin.Engine, st *store.Store, log *zap.Logger) {
	rg := router.Group("/audit-logs", requireRole("admin"))

	rg.GET("", func(c *gin.Context) {
		limit, ok := parseLimit(c, store.DefaultListLimit)
		if !ok {
			respondError(c, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
			return
		}
		entries, err := st.ListAuditLogs(c.Request.Context(), c.Query("entity_type"), c.Query("entity_id"), limit)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	})
}
