package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medkb/api"
	"medkb/config"
	"medkb/models"
	"medkb/services"
	"medkb/store"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection. A failed connect does not kill the
	// process: the service keeps running degraded and every persistence
	// call fails fast with an unavailable error.
	db, err := store.Open(cfg.DSN())
	if err != nil {
		logging.Error("Failed to connect to database, running degraded", zap.Error(err))
		db = nil
	} else {
		logging.Info("Successfully connected to knowledge base database.")
	}

	st := store.New(db, logging)

	if st.Available() {
		logging.Info("Running database auto-migration...")
		if err := st.AutoMigrate(); err != nil {
			logging.Fatal("Auto-migration failed", zap.Error(err))
		}
		seedDefaultDataSources(db, logging)
	}

	audit := services.NewAudit(st, logging)

	// Setup Router
	router := api.NewRouter(cfg, st, audit, logging)

	// Setup Cron: fail ETL jobs stuck in RUNNING.
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.EtlSweepSchedule, func() {
		swept, err := st.FailStaleEtlJobs(context.Background(), cfg.EtlStaleAfter)
		if err != nil {
			logging.Error("Stale ETL job sweep failed", zap.Error(err))
		} else if swept > 0 {
			logging.Warn("Failed stale ETL jobs", zap.Int64("count", swept))
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// seedDefaultDataSources inserts the well-known upstream sources on an
// empty table so a fresh deployment is immediately usable.
func seedDefaultDataSources(db *gorm.DB, log *zap.Logger) {
	var count int64
	if err := db.Model(&models.DataSource{}).Count(&count).Error; err != nil {
		log.Error("Failed to count data sources for seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	defaults := []models.DataSource{
		{Name: "SÚKL", SourceType: models.SourceTypeSUKL, URL: "https://www.sukl.cz", Description: "Státní ústav pro kontrolu léčiv", IsActive: true},
		{Name: "NIKEZ", SourceType: models.SourceTypeNIKEZ, URL: "https://www.nikez.cz", Description: "Národní institut kvality a excelence zdravotnictví", IsActive: true},
		{Name: "WikiSkripta", SourceType: models.SourceTypeWikiskripta, URL: "https://www.wikiskripta.eu", Description: "Výukové texty lékařských fakult", IsActive: true},
	}
	for _, ds := range defaults {
		if err := db.Create(&ds).Error; err != nil {
			log.Error("Failed to seed data source", zap.String("name", ds.Name), zap.Error(err))
		}
	}
	log.Info("Seeded default data sources", zap.Int("count", len(defaults)))
}
