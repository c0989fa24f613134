package main

import (
	"fmt"
	"log"

	"imidok/internal/config"
	"imidok/internal/extractor"
	"imidok/internal/handler"
	"imidok/internal/normalizer"
	"imidok/internal/port"
	"imidok/internal/repository/postgres"
	"imidok/internal/router"
	"imidok/internal/service"
	s3storage "imidok/internal/storage/s3"
	"imidok/internal/textextract"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	jobRepo := postgres.NewJobRepo(db)

	// Initialize artifact storage (optional)
	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize the extraction pipeline
	var texts port.TextExtractor
	if cfg.TextExtract.Endpoint != "" {
		texts = textextract.NewHTTPService(&cfg.TextExtract)
	} else {
		log.Printf("no text extraction endpoint configured; only plain text uploads will be handled")
		texts = textextract.Plain{}
	}
	dispatcher := extractor.NewDispatcher(normalizer.New())

	// Initialize services
	extractSvc := service.NewExtractService(texts, dispatcher)
	batchSvc := service.NewBatchService(dispatcher, jobRepo, cfg.Batch.Concurrency)

	// Initialize handlers
	extractH := handler.NewExtractHandler(extractSvc, batchSvc, storage, cfg.Export)
	jobH := handler.NewJobHandler(jobRepo, storage, cfg.S3.PresignExpiry)
	layoutH := handler.NewLayoutHandler()
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, extractH, jobH, layoutH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
