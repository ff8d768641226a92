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

type createDrugProductRequest struct {
	SUKLID             string                    `json:"sukl_id" binding:"required,max=64"`
	Name               string                    `json:"name" binding:"required,max=255"`
	GenericName        string                    `json:"generic_name" binding:"max=255"`
	ActiveIngredients  []models.ActiveIngredient `json:"active_ingredients"`
	DosageForm         string                    `json:"dosage_form" binding:"max=255"`
	Strength           string                    `json:"strength" binding:"max=100"`
	Route              string                    `json:"route" binding:"max=100"`
	ATCCode            string                    `json:"atc_code" binding:"max=8"`
	Manufacturer       string                    `json:"manufacturer" binding:"max=255"`
	RegistrationNumber string                    `json:"registration_number" binding:"max=64"`
	RegistrationDate   *time.Time                `json:"registration_date"`
	SPCURL             string                    `json:"spc_url" binding:"omitempty,url"`
	PILURL             string                    `json:"pil_url" binding:"omitempty,url"`
	Status             string                    `json:"status" binding:"omitempty,oneof=ACTIVE CANCELLED SUSPENDED"`
}

type updateDrugProductRequest struct {
	SUKLID             *string                   `json:"sukl_id" binding:"omitempty,max=64"`
	Name               *string                   `json:"name" binding:"omitempty,max=255"`
	GenericName        *string                   `json:"generic_name" binding:"omitempty,max=255"`
	ActiveIngredients  []models.ActiveIngredient `json:"active_ingredients"`
	DosageForm         *string                   `json:"dosage_form" binding:"omitempty,max=255"`
	Strength           *string                   `json:"strength" binding:"omitempty,max=100"`
	Route              *string                   `json:"route" binding:"omitempty,max=100"`
	ATCCode            *string                   `json:"atc_code" binding:"omitempty,max=8"`
	Manufacturer       *string                   `json:"manufacturer" binding:"omitempty,max=255"`
	RegistrationNumber *string                   `json:"registration_number" binding:"omitempty,max=64"`
	RegistrationDate   *time.Time                `json:"registration_date"`
	SPCURL             *string                   `json:"spc_url" binding:"omitempty,url"`
	PILURL             *string                   `json:"pil_url" binding:"omitempty,url"`
	Status             *string                   `json:"status" binding:"omitempty,oneof=ACTIVE CANCELLED SUSPENDED"`
}

func (r *updateDrugProductRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.SUKLID != nil {
		updates["sukl_id"] = *r.SUKLID
	}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.GenericName != nil {
		updates["generic_name"] = *r.GenericName
	}
	if r.ActiveIngredients != nil {
		updates["active_ingredients"] = toJSON(r.ActiveIngredients)
	}
	if r.DosageForm != nil {
		updates["dosage_form"] = *r.DosageForm
	}
	if r.Strength != nil {
		updates["strength"] = *r.Strength
	}
	if r.Route != nil {
		updates["route"] = *r.Route
	}
	if r.ATCCode != nil {
		updates["atc_code"] = *r.ATCCode
	}
	if r.Manufacturer != nil {
		updates["manufacturer"] = *r.Manufacturer
	}
	if r.RegistrationNumber != nil {
		updates["registration_number"] = *r.RegistrationNumber
	}
	if r.RegistrationDate != nil {
		updates["registration_date"] = *r.RegistrationDate
	}
	if r.SPCURL != nil {
		updates["spc_url"] = *r.SPCURL
	}
	if r.PILURL != nil {
		updates["pil_url"] = *r.PILURL
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	return updates
}

func setupDrugProductRoutes(router *gin.Engine, st *store.Store, audit *services.Audit, log *zap.Logger) {
	rg := router.Group("/drug-products")

	rg.GET("", func(c *gin.Context) {
		limit, offset, ok := listParams(c)
		if !ok {
			return
		}
		drugs, err := st.ListDrugProducts(c.Request.Context(), limit, offset)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, drugs)
	})

	// Optional atc parameter narrows the match to an ATC code prefix.
	rg.GET("/search", func(c *gin.Context) {
		q, limit, ok := searchQuery(c)
		if !ok {
			return
		}
		drugs, err := st.SearchDrugProducts(c.Request.Context(), q, c.Query("atc"), limit)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, drugs)
	})

	rg.GET("/:id", func(c *gin.Context) {
		drug, err := st.GetDrugProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		if drug == nil {
			respondNotFound(c, "drug product")
			return
		}
		c.JSON(http.StatusOK, drug)
	})

	writes := rg.Group("", requireEditor())

	writes.POST("", func(c *gin.Context) {
		var req createDrugProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		drug := models.DrugProduct{
			SUKLID:             req.SUKLID,
			Name:               req.Name,
			GenericName:        req.GenericName,
			ActiveIngredients:  toJSON(req.ActiveIngredients),
			DosageForm:         req.DosageForm,
			Strength:           req.Strength,
			Route:              req.Route,
			ATCCode:            req.ATCCode,
			Manufacturer:       req.Manufacturer,
			RegistrationNumber: req.RegistrationNumber,
			RegistrationDate:   req.RegistrationDate,
			SPCURL:             req.SPCURL,
			PILURL:             req.PILURL,
			Status:             req.Status,
		}
		if drug.Status == "" {
			drug.Status = models.DrugStatusActive
		}
		if err := st.CreateDrugProduct(c.Request.Context(), &drug); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "drug_product", drug.ID, models.AuditActionCreate, req)
		respondCreated(c, drug.ID, "drug product created")
	})

	writes.PUT("/:id", func(c *gin.Context) {
		var req updateDrugProductRequest
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
		if err := st.UpdateDrugProduct(c.Request.Context(), id, updates); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "drug_product", id, models.AuditActionUpdate, updates)
		respondUpdated(c, id)
	})
}
