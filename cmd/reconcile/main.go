package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vodomont/backend/internal/adapters/database"
	"github.com/vodomont/backend/internal/adapters/storage"
	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/infrastructure/clients/postgres"
	s3client "github.com/vodomont/backend/internal/infrastructure/clients/s3"
	"github.com/vodomont/backend/pkg/config"
)

func main() {
	var full bool
	var confirmation string

	flag.BoolVar(&full, "full", false, "Delete every photo record and every bucket object")
	flag.StringVar(&confirmation, "confirm", "", "Confirmation phrase required with -full")
	flag.Parse()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Setup DB
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	// Setup object storage
	s3Client, err := s3client.NewClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}

	photoRepo := database.NewPhotoAdapter(pgClient)
	objectStorage := storage.NewS3Adapter(s3Client, &cfg.Storage)

	svc := services.NewReconciliationService(photoRepo, objectStorage, cfg.Storage.GalleryPrefix)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()

	var report *services.ReconcileReport
	if full {
		log.Printf("Running full cleanup (records and objects)...")
		report, err = svc.FullCleanup(ctx, confirmation)
		if err != nil {
			log.Fatalf("Full cleanup refused: %v", err)
		}
	} else {
		log.Printf("Reconciling bucket against photo records...")
		report, err = svc.Reconcile(ctx)
		if err != nil {
			log.Fatalf("Reconcile failed: %v", err)
		}
	}

	log.Printf("Done in %s", time.Since(start))
	log.Printf("Objects listed: %d", report.ObjectsListed)
	log.Printf("Keys referenced: %d", report.KeysReferenced)
	log.Printf("Orphans deleted: %d", report.OrphansDeleted)
	for _, key := range report.DeletedKeys {
		log.Printf("  deleted %s", key)
	}
	for _, key := range report.FailedKeys {
		log.Printf("  FAILED %s", key)
	}
}
