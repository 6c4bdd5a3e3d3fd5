package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"devonxona/internal/config"
	emailnoop "devonxona/internal/email/noop"
	emailses "devonxona/internal/email/ses"
	"devonxona/internal/handler"
	"devonxona/internal/port"
	"devonxona/internal/repository/postgres"
	"devonxona/internal/router"
	"devonxona/internal/service"
	s3storage "devonxona/internal/storage/s3"
)

// @title Devonxona API
// @version 1.0
// @description Correspondence workflow backend for a bank chancellery.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

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
	userRepo := postgres.NewUserRepo(db)
	corrRepo := postgres.NewCorrespondenceRepo(db)
	auditRepo := postgres.NewAuditRepo(db)
	attRepo := postgres.NewAttachmentRepo(db)
	statsRepo := postgres.NewStatsRepo(db)
	directory := postgres.NewReviewerDirectory(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize notifier
	var notifier port.Notifier
	if cfg.Email.Provider == "ses" {
		notifier, err = emailses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	} else {
		notifier = emailnoop.NewNoopNotifier()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	corrSvc := service.NewCorrespondenceService(corrRepo, userRepo, auditRepo, directory, notifier)
	attSvc := service.NewAttachmentService(attRepo, corrRepo, s3Client, &cfg.S3)
	statsSvc := service.NewStatsService(statsRepo)
	reportSvc := service.NewReportService(corrRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc)
	corrH := handler.NewCorrespondenceHandler(corrSvc)
	attH := handler.NewAttachmentHandler(attSvc)
	userH := handler.NewUserHandler(userSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, corrH, attH, userH, statsH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
