package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medkb/models"
	"medkb/services"
	"medkb/store"
)

type createDrugInteractionRequest struct {
	Drug1ID         string   `json:"drug1_id" binding:"required,max=36"`
	Drug2ID         string   `json:"drug2_id" binding:"required,max=36,nefield=Drug1ID"`
	InteractionType string   `json:"interaction_type" binding:"required,oneof=PHARMACOKINETIC PHARMACODYNAMIC DUPLICITY OTHER"`
	Severity        string   `json:"severity" binding:"required,oneof=LOW MODERATE HIGH CONTRAINDICATED"`
	Mechanism       string   `json:"mechanism" binding:"max=5000"`
	ClinicalEffect  string   `json:"clinical_effect" binding:"max=5000"`
	Management      string   `json:"management" binding:"max=5000"`
	Evidence        string   `json:"evidence" binding:"max=5000"`
	References      []string `json:"references"`
}

type updateDrugInteractionRequest struct {
	InteractionType *string  `json:"interaction_type" binding:"omitempty,oneof=PHARMACOKINETIC PHARMACODYNAMIC DUPLICITY OTHER"`
	Severity        *string  `json:"severity" binding:"omitempty,oneof=LOW MODERATE HIGH CONTRAINDICATED"`
	Mechanism       *string  `json:"mechanism" binding:"omitempty,max=5000"`
	ClinicalEffect  *string  `json:"clinical_effect" binding:"omitempty,max=5000"`
	Management      *string  `json:"management" binding:"omitempty,max=5000"`
	Evidence        *string  `json:"evidence" binding:"omitempty,max=5000"`
	References      []string `json:"references"`
	Status          *string  `json:"status" binding:"omitempty,oneof=ACTIVE RETIRED"`
}

func (r *updateDrugInteractionRequest) updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.InteractionType != nil {
		updates["interaction_type"] = *r.InteractionType
	}
	if r.Severity != nil {
		updates["severity"] = *r.Severity
	}
	if r.Mechanism != nil {
		updates["mechanism"] = *r.Mechanism
	}
	if r.ClinicalEffect != nil {
		updates["clinical_effect"] = *r.ClinicalEffect
	}
	if r.Management != nil {
		updates["management"] = *r.Management
	}
	if r.Evidence != nil {
		updates["evidence"] = *r.Evidence
	}
	if r.References != nil {
		updates["references"] = toJSON(r.References)
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	return updates
}

func setupDrugInteractionRoutes(router *gin.Engine, st *store.Store, audit *services.Audit, log *zap.Logger) {
	rg := router.Group("/drug-interactions")

	rg.GET("", func(c *gin.Context) {
		limit, offset, ok := listParams(c)
		if !ok {
			return
		}
		interactions, err := st.ListDrugInteractions(c.Request.Context(), limit, offset)
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, interactions)
	})

	rg.GET("/by-drug/:drugId", func(c *gin.Context) {
		interactions, err := st.GetDrugInteractionsByDrug(c.Request.Context(), c.Param("drugId"))
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, interactions)
	})

	rg.GET("/:id", func(c *gin.Context) {
		ia, err := st.GetDrugInteraction(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondStoreError(c, log, err)
			return
		}
		if ia == nil {
			respondNotFound(c, "drug interaction")
			return
		}
		c.JSON(http.StatusOK, ia)
	})

	writes := rg.Group("", requireEditor())

	writes.POST("", func(c *gin.Context) {
		var req createDrugInteractionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		ia := models.DrugInteraction{
			Drug1ID:         req.Drug1ID,
			Drug2ID:         req.Drug2ID,
			InteractionType: req.InteractionType,
			Severity:        req.Severity,
			Mechanism:       req.Mechanism,
			ClinicalEffect:  req.ClinicalEffect,
			Management:      req.Management,
			Evidence:        req.Evidence,
			References:      toJSON(req.References),
			Status:          "ACTIVE",
		}
		if err := st.CreateDrugInteraction(c.Request.Context(), &ia); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "drug_interaction", ia.ID, models.AuditActionCreate, req)
		respondCreated(c, ia.ID, "drug interaction created")
	})

	writes.PUT("/:id", func(c *gin.Context) {
		var req updateDrugInteractionRequest
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
		if err := st.UpdateDrugInteraction(c.Request.Context(), id, updates); err != nil {
			respondStoreError(c, log, err)
			return
		}
		recordMutation(c, audit, "drug_interaction", id, models.AuditActionUpdate, updates)
		respondUpdated(c, id)
	})
}
