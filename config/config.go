package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime parameter, read from environment variables.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"4310"`

	// Secret used to verify the session JWT issued by the login service.
	SessionSecret string `envconfig:"SESSION_SECRET" required:"true"`
	SessionCookie string `envconfig:"SESSION_COOKIE" default:"session"`

	// ETL jobs stuck in RUNNING longer than EtlStaleAfter are failed by
	// the periodic sweep.
	EtlStaleAfter    time.Duration `envconfig:"ETL_STALE_AFTER" default:"2h"`
	EtlSweepSchedule string        `envconfig:"ETL_SWEEP_SCHEDULE" default:"*/15 * * * *"`

	BackupS3Key    string `envconfig:"BACKUP_S3_KEY"`
	BackupS3Secret string `envconfig:"BACKUP_S3_SECRET"`
	BackupS3URL    string `envconfig:"BACKUP_S3_URL"`
	BackupS3Region string `envconfig:"BACKUP_S3_REGION"`
	BackupS3Bucket string `envconfig:"BACKUP_S3_BUCKET"`
	KeepBackups    int    `envconfig:"KEEP_BACKUPS" default:"4"`
}

// DSN returns the Data Source Name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
