// Command backup dumps the knowledge base database, compresses it and
// uploads it to the configured S3 bucket, rotating old backups out.
package main

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strconv"
	"time"

	"medkb/config"
	"medkb/storage"
)

func main() {
	log.Println("Starting backup process...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.BackupS3Bucket == "" {
		log.Fatal("BACKUP_S3_BUCKET is not configured")
	}

	dumpData, err := createDump(cfg)
	if err != nil {
		log.Fatalf("Failed to create database dump: %v", err)
	}

	s3Client, err := storage.NewS3Client(cfg.BackupS3URL, cfg.BackupS3Region, cfg.BackupS3Key, cfg.BackupS3Secret)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}

	fileName := fmt.Sprintf("medkb-%s.sql.gz", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	link, err := storage.Upload(s3Client, cfg.BackupS3URL, cfg.BackupS3Bucket, fileName, dumpData)
	if err != nil {
		log.Fatalf("Failed to upload backup: %v", err)
	}
	log.Printf("Backup uploaded to %s", link)

	deleted, err := storage.Rotate(s3Client, cfg.BackupS3Bucket, cfg.KeepBackups)
	if err != nil {
		log.Fatalf("Failed to rotate old backups: %v", err)
	}
	for _, key := range deleted {
		log.Printf("Deleted old backup: %s", key)
	}

	log.Println("Backup process finished.")
}

func createDump(cfg *config.Config) ([]byte, error) {
	cmd := exec.Command("pg_dump",
		"-h", cfg.DBHost,
		"-p", strconv.Itoa(cfg.DBPort),
		"-U", cfg.DBUser,
		"-d", cfg.DBName,
		"-w", // password comes in via PGPASSWORD
	)
	cmd.Env = append(os.Environ(), fmt.Sprintf("PGPASSWORD=%s", cfg.DBPassword))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	if _, err := io.Copy(gzipWriter, stdout); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	if err := cmd.Wait(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
