package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medkb/models"
	"medkb/services"
	"medkb/store"
)

type createDocumentRequest struct {
	DataSourceID  uint       `json:"data_source_id" binding:"required"`
	SourceID      string     `json:"source_id" binding:"max=255"`
	Title         string     `json:"title" binding:"required,max=500"`
	Description   string     `json:"description" binding:"max=5000"`
	URL           string     `json:"url" binding:"required,url"`
	DownloadURL   string     `json:"download_url" binding:"omitempty,url"`
	DocumentType  string     `json:"document_type" binding:"required,oneof=SPC PIL GUIDELINE ARTICLE DATASET OTHER"`
	Language      string     `json:"language" binding:"omitempty,oneof=cs en"`
	PublishedDate *time.Time `json:"published_date"`
	Version       string     `json:"version" binding:"max=64"`
	Authors       []string   `json:"authors"`
	Categories    []string   `json:"categories"`
	Tags          []string   `json:"tags"`
	ContentHash   string     `json:"content_hash" binding:"max=128"`
	Status        string     `json:"status" binding:"omitempty,oneof=ACTIVE SUPERSEDED RETIRED"`
}

type updateDocumentRequest struct {
	DataSourceID  *uint      `json:"data_source_id"`
	SourceID      *string    `json:"source_id" binding:"omitempty,max=255"`
	Title         *string    `json:"title" binding:"omitempty,max=500"`
	Description   *string    `json:"description" binding:"omitempty,max=5000"`
	URL           *string    `json:"url" binding:"omitempty,url"`
	DownloadURL   *string    `json:"download_url" binding:"omitempty,url"`
	DocumentType  *string    `json:"document_type" binding:"omitempty,oneof=SPC PIL GUIDELINE ARTICLE DATASET OTHER"`
	Language      *string    `json:"language" binding:"omitempty,oneof=cs en"`
	PublishedDate *time.Time `json:"published_date"`
	Version       *string    `json:"version" binding:"omitempty,max=64"`
	Authors       []string   `json:"authors"`
	Categories    []string   `json:"categories"`
	Tags          []string   `json:"tags"`
	ContentHash   *string    `json:"content_hash" binding:"omitempty,max=128"`
	Status        *string    `json:"status" binding:"omitempty,oneof=ACTIVE SUPERSEDED RETIRED"`
}

func (r *updateDocumentRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.DataSourceID != nil {
		updates["data_source_id"] = *r.DataSourceID
	}
	if r.SourceID != nil {
		updates["source_id"] = *r.SourceID
	}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.URL != nil {
		updates["url"] = *r.URL
	}
	if r.DownloadURL != nil {
		updates["download_url"] = *r.DownloadURL
	}
	if r.DocumentType != nil {
		updates["document_type"] = *r.DocumentType
	}
	if r.Language != nil {
		updates["language"] = *r.Language
	}
	if r.PublishedDate != nil {
		updates["published_date"] = *r.PublishedDate
	}
	if r.Version != nil {
		updates["version"] = *r.Version
	}
	if r.Authors != nil {
		updates["authors"] = toJSON(r.Authors)
	}
	if r.Categories != nil {
		updates["categories"] = toJSON(r.Categories)
	}
	if r.Tags != nil {
		updates["tags"] = toJSON(r.Tags)
	}
	if r.ContentHash != nil {
		updates["content_hash"] = *r.ContentHash
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	return updates
}

func setupDocumentRoutes(router *gin.Engine, st *store.Store, audit *services.Audit, log *zap.Logger) {
	rg := router.Group("/documents")

	rg.GET("", func(c *gin.Context) {
		limit, offset, ok := listParams(c)
		if !ok {
			return
		}
		docs, err := st.ListDocuments(c.Request.Context(), limit, offset)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	rg.GET("/search", func(c *gin.Context) {
		q, limit, ok := searchQuery(c)
		if !ok {
			return
		}
		docs, err := st.SearchDocuments(c.Request.Context(), q, limit)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	})

	rg.GET("/:id", func(c *gin.Context) {
		doc, err := st.GetDocument(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		if doc == nil {
			respondNotFound(c, "document")
			return
		}
		c.JSON(http.StatusOK, doc)
	})

	writes := rg.Group("", requireEditor())

	writes.POST("", func(c *gin.Context) {
		var req createDocumentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		doc := models.Document{
			DataSourceID:  req.DataSourceID,
			SourceID:      req.SourceID,
			Title:         req.Title,
			Description:   req.Description,
			URL:           req.URL,
			DownloadURL:   req.DownloadURL,
			DocumentType:  req.DocumentType,
			Language:      req.Language,
			PublishedDate: req.PublishedDate,
			Version:       req.Version,
			Authors:       toJSON(req.Authors),
			Categories:    toJSON(req.Categories),
			Tags:          toJSON(req.Tags),
			ContentHash:   req.ContentHash,
			Status:        req.Status,
		}
		if doc.Language == "" {
			doc.Language = "cs"
		}
		if doc.Status == "" {
			doc.Status = models.DocumentStatusActive
		}
		if err := st.CreateDocument(c.Request.Context(), &doc); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "document", doc.ID, models.AuditActionCreate, req)
		respondCreated(c, doc.ID, "document created")
	})

	writes.PUT("/:id", func(c *gin.Context) {
		var req updateDocumentRequest
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
		if err := st.UpdateDocument(c.Request.Context(), id, updates); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "document", id, models.AuditActionUpdate, updates)
		respondUpdated(c, id)
	})
}
