package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medkb/store"
)

// Stable machine-readable error codes returned to clients. Raw storage
// error text never crosses this boundary.
const (
	CodeValidation  = "VALIDATION"
	CodeForbidden   = "FORBIDDEN"
	CodeNotFound    = "NOT_FOUND"
	CodeUnavailable = "UNAVAILABLE"
	CodeInternal    = "INTERNAL"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": message, "code": code})
}

func respondValidation(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, CodeValidation, "invalid request: "+err.Error())
}

func respondNotFound(c *gin.Context, what string) {
	respondError(c, http.StatusNotFound, CodeNotFound, what+" not found")
}

// respondStoreError maps storage failures to the client taxonomy.
func respondStoreError(c *gin.Context, log *zap.Logger, err error) {
	if errors.Is(err, store.ErrUnavailable) {
		respondError(c, http.StatusServiceUnavailable, CodeUnavailable, "storage unavailable")
		return
	}
	log.Error("Unhandled storage error", zap.String("path", c.FullPath()), zap.Error(err))
	respondError(c, http.StatusInternalServerError, CodeInternal, "internal error")
}
