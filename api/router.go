package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"medkb/config"
	"medkb/services"
	"medkb/store"
)

var mutationsCounter *prometheus.CounterVec

func init() {
	mutationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_mutations_total",
			Help: "Total number of successful create/update mutations by entity and action.",
		},
		[]string{"entity", "action"},
	)
	prometheus.MustRegister(mutationsCounter)
}

// NewRouter assembles the full HTTP surface: public reads, role-gated
// writes, session endpoints, metrics and health.
func NewRouter(cfg *config.Config, st *store.Store, audit *services.Audit, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(sessionMiddleware(cfg))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if !st.Available() {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "store": st.Available()})
	})

	setupAuthRoutes(router, cfg)
	setupDataSourceRoutes(router, st, audit, log)
	setupDocumentRoutes(router, st, audit, log)
	setupKnowledgeUnitRoutes(router, st, audit, log)
	setupDrugProductRoutes(router, st, audit, log)
	setupDrugInteractionRoutes(router, st, audit, log)
	setupEtlJobRoutes(router, st, audit, log)
	setupAuditLogRoutes(router, st, log)

	return router
}
