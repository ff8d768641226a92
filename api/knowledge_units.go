package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medkb/models"
	"medkb/services"
	"medkb/store"
)

type createKnowledgeUnitRequest struct {
	DocumentID     string                 `json:"document_id" binding:"required,max=36"`
	Type           string                 `json:"type" binding:"required,oneof=GUIDELINE RECOMMENDATION PROCEDURE DEFINITION INTERACTION CONTRAINDICATION"`
	Title          string                 `json:"title" binding:"required,max=500"`
	Content        string                 `json:"content" binding:"required"`
	Summary        string                 `json:"summary" binding:"max=5000"`
	Keywords       []string               `json:"keywords"`
	Category       string                 `json:"category" binding:"max=100"`
	Severity       string                 `json:"severity" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	EvidenceLevel  string                 `json:"evidence_level" binding:"omitempty,oneof=A B C D"`
	EvidenceSource string                 `json:"evidence_source" binding:"max=500"`
	References     []models.UnitReference `json:"references"`
	RelatedUnits   []string               `json:"related_units"`
	Metadata       map[string]interface{} `json:"metadata"`
}

type updateKnowledgeUnitRequest struct {
	DocumentID     *string                `json:"document_id" binding:"omitempty,max=36"`
	Type           *string                `json:"type" binding:"omitempty,oneof=GUIDELINE RECOMMENDATION PROCEDURE DEFINITION INTERACTION CONTRAINDICATION"`
	Title          *string                `json:"title" binding:"omitempty,max=500"`
	Content        *string                `json:"content"`
	Summary        *string                `json:"summary" binding:"omitempty,max=5000"`
	Keywords       []string               `json:"keywords"`
	Category       *string                `json:"category" binding:"omitempty,max=100"`
	Severity       *string                `json:"severity" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	EvidenceLevel  *string                `json:"evidence_level" binding:"omitempty,oneof=A B C D"`
	EvidenceSource *string                `json:"evidence_source" binding:"omitempty,max=500"`
	References     []models.UnitReference `json:"references"`
	RelatedUnits   []string               `json:"related_units"`
	Metadata       map[string]interface{} `json:"metadata"`
	Status         *string                `json:"status" binding:"omitempty,oneof=ACTIVE RETIRED"`
}

func (r *updateKnowledgeUnitRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.DocumentID != nil {
		updates["document_id"] = *r.DocumentID
	}
	if r.Type != nil {
		updates["type"] = *r.Type
	}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Content != nil {
		updates["content"] = *r.Content
	}
	if r.Summary != nil {
		updates["summary"] = *r.Summary
	}
	if r.Keywords != nil {
		updates["keywords"] = toJSON(r.Keywords)
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.Severity != nil {
		updates["severity"] = *r.Severity
	}
	if r.EvidenceLevel != nil {
		updates["evidence_level"] = *r.EvidenceLevel
	}
	if r.EvidenceSource != nil {
		updates["evidence_source"] = *r.EvidenceSource
	}
	if r.References != nil {
		updates["references"] = toJSON(r.References)
	}
	if r.RelatedUnits != nil {
		updates["related_units"] = toJSON(r.RelatedUnits)
	}
	if r.Metadata != nil {
		updates["metadata"] = toJSON(r.Metadata)
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	return updates
}

func setupKnowledgeUnitRoutes(router *gin.Engine, st *store.Store, audit *services.Audit, log *zap.Logger) {
	rg := router.Group("/knowledge-units")

	rg.GET("", func(c *gin.Context) {
		limit, offset, ok := listParams(c)
		if !ok {
			return
		}
		units, err := st.ListKnowledgeUnits(c.Request.Context(), limit, offset)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, units)
	})

	rg.GET("/search", func(c *gin.Context) {
		q, limit, ok := searchQuery(c)
		if !ok {
			return
		}
		units, err := st.SearchKnowledgeUnits(c.Request.Context(), q, limit)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, units)
	})

	rg.GET("/category/:category", func(c *gin.Context) {
		limit, ok := parseLimit(c, store.DefaultSearchLimit)
		if !ok {
			respondError(c, http.StatusBadRequest, CodeValidation, "limit must be a positive integer")
			return
		}
		units, err := st.ListKnowledgeUnitsByCategory(c.Request.Context(), c.Param("category"), limit)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, units)
	})

	rg.GET("/:id", func(c *gin.Context) {
		unit, err := st.GetKnowledgeUnit(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		if unit == nil {
			respondNotFound(c, "knowledge unit")
			return
		}
		c.JSON(http.StatusOK, unit)
	})

	writes := rg.Group("", requireEditor())

	writes.POST("", func(c *gin.Context) {
		var req createKnowledgeUnitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		unit := models.KnowledgeUnit{
			DocumentID:     req.DocumentID,
			Type:           req.Type,
			Title:          req.Title,
			Content:        req.Content,
			Summary:        req.Summary,
			Keywords:       toJSON(req.Keywords),
			Category:       req.Category,
			Severity:       req.Severity,
			EvidenceLevel:  req.EvidenceLevel,
			EvidenceSource: req.EvidenceSource,
			References:     toJSON(req.References),
			RelatedUnits:   toJSON(req.RelatedUnits),
			Metadata:       toJSON(req.Metadata),
			Status:         "ACTIVE",
		}
		if err := st.CreateKnowledgeUnit(c.Request.Context(), &unit); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "knowledge_unit", unit.ID, models.AuditActionCreate, req)
		respondCreated(c, unit.ID, "knowledge unit created")
	})

	writes.PUT("/:id", func(c *gin.Context) {
		var req updateKnowledgeUnitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		updates := req.updates()
		if len(updates) == 0 {
			respondError(c, http.StatusBadRequest, CodeValidation, "no updatable fields provided")
			return
		}
		id := c.Param("id")
		if err := st.UpdateKnowledgeUnit(c.Request.Context(), id, updates); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "knowledge_unit", id, models.AuditActionUpdate, updates)
		respondUpdated(c, id)
	})
}
