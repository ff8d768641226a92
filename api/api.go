// Package api exposes the knowledge base as a JSON HTTP API: public
// list/get/search reads per entity and session-gated writes restricted
// to the admin and editor roles.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"medkb/services"
	"medkb/store"
)

// parseLimit reads an optional positive limit query parameter, falling
// back to def. The boolean is false when the value is malformed.
func parseLimit(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, false
	}
	return limit, true
}

func parseOffset(c *gin.Context) (int, bool) {
	raw := c.Query("offset")
	if raw == "" {
		return 0, true
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, false
	}
	return offset, true
}

// toJSON converts an already-validated request field into a JSON column
// value. Input came in as JSON, so marshalling cannot realistically fail.
func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// recordMutation writes the audit record and bumps the mutation counter
// after a successful create/update.
func recordMutation(c *gin.Context, audit *services.Audit, entityType, entityID, action string, payload interface{}) {
	user, _ := currentUser(c)
	userID := ""
	if user != nil {
		userID = user.ID
	}
	audit.Record(c.Request.Context(), services.Entry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     userID,
		Changes:    payload,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
	})
	mutationsCounter.WithLabelValues(entityType, action).Inc()
}

func respondCreated(c *gin.Context, id interface{}, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id, "message": message})
}

func respondUpdated(c *gin.Context, id interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id, "message": "updated"})
}

// searchQuery validates the mandatory non-empty q parameter and the
// optional limit, rejecting before any store work.
func searchQuery(c *gin.Context) (string, int, bool) {
	q := c.Query("q")
	if q == "" {
		respondError(c, http.StatusBadRequest, CodeValidation, "query parameter 'q' is required")
		return "", 0, false
	}
	limit, ok := parseLimit(c, store.DefaultSearchLimit)
	if !ok {
		respondError(c, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
		return "", 0, false
	}
	return q, limit, true
}

// listParams validates the optional limit/offset pagination parameters.
func listParams(c *gin.Context) (int, int, bool) {
	limit, ok := parseLimit(c, store.DefaultListLimit)
	if !ok {
		respondError(c, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
		return 0, 0, false
	}
	offset, ok := parseOffset(c)
	if !ok {
		respondError(c, http.StatusBadRequest, CodeValidation, "offset must be a non-negative integer")
		return 0, 0, false
	}
	return limit, offset, true
}
