package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medkb/models"
	"medkb/services"
	"medkb/store"
)

type createDataSourceRequest struct {
	Name         string                 `json:"name" binding:"required,max=255"`
	Description  string                 `json:"description" binding:"max=2000"`
	SourceType   string                 `json:"source_type" binding:"required,oneof=SUKL NIKEZ WIKISKRIPTA OTHER"`
	URL          string                 `json:"url" binding:"omitempty,url"`
	APIEndpoint  string                 `json:"api_endpoint" binding:"omitempty,url"`
	ScrapeConfig map[string]interface{} `json:"scrape_config"`
	IsActive     *bool                  `json:"is_active"`
}

type updateDataSourceRequest struct {
	Name         *string                `json:"name" binding:"omitempty,max=255"`
	Description  *string                `json:"description" binding:"omitempty,max=2000"`
	SourceType   *string                `json:"source_type" binding:"omitempty,oneof=SUKL NIKEZ WIKISKRIPTA OTHER"`
	URL          *string                `json:"url" binding:"omitempty,url"`
	APIEndpoint  *string                `json:"api_endpoint" binding:"omitempty,url"`
	ScrapeConfig map[string]interface{} `json:"scrape_config"`
	IsActive     *bool                  `json:"is_active"`
}

func (r *updateDataSourceRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.SourceType != nil {
		updates["source_type"] = *r.SourceType
	}
	if r.URL != nil {
		updates["url"] = *r.URL
	}
	if r.APIEndpoint != nil {
		updates["api_endpoint"] = *r.APIEndpoint
	}
	if r.ScrapeConfig != nil {
		updates["scrape_config"] = toJSON(r.ScrapeConfig)
	}
	if r.IsActive != nil {
		updates["is_active"] = *r.IsActive
	}
	return updates
}

func setupDataSourceRoutes(router *gin.Engine, st *store.Store, audit *services.Audit, log *zap.Logger) {
	rg := router.Group("/data-sources")

	rg.GET("", func(c *gin.Context) {
		limit, offset, ok := listParams(c)
		if !ok {
			return
		}
		sources, err := st.ListDataSources(c.Request.Context(), limit, offset)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, sources)
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, CodeValidation, "id must be an integer")
			return
		}
		ds, err := st.GetDataSource(c.Request.Context(), uint(id))
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		if ds == nil {
			respondNotFound(c, "data source")
			return
		}
		c.JSON(http.StatusOK, ds)
	})

	writes := rg.Group("", requireEditor())

	writes.POST("", func(c *gin.Context) {
		var req createDataSourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		ds := models.DataSource{
			Name:         req.Name,
			Description:  req.Description,
			SourceType:   req.SourceType,
			URL:          req.URL,
			APIEndpoint:  req.APIEndpoint,
			ScrapeConfig: toJSON(req.ScrapeConfig),
			IsActive:     true,
		}
		if req.IsActive != nil {
			ds.IsActive = *req.IsActive
		}
		if err := st.CreateDataSource(c.Request.Context(), &ds); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "data_source", strconv.FormatUint(uint64(ds.ID), 10), models.AuditActionCreate, req)
		respondCreated(c, ds.ID, "data source created")
	})

	writes.PUT("/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, CodeValidation, "id must be an integer")
			return
		}
		var req updateDataSourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		updates := req.updates()
		if len(updates) == 0 {
			respondError(c, http.StatusBadRequest, CodeValidation, "no updatable fields provided")
			return
		}
		if err := st.UpdateDataSource(c.Request.Context(), uint(id), updates); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "data_source", c.Param("id"), models.AuditActionUpdate, updates)
		respondUpdated(c, uint(id))
	})
}
