package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "khata/docs"
	"khata/internal/catalog"
	"khata/internal/config"
	"khata/internal/email/noop"
	"khata/internal/email/ses"
	"khata/internal/handler"
	"khata/internal/port"
	"khata/internal/repository/postgres"
	"khata/internal/router"
	"khata/internal/service"
	s3storage "khata/internal/storage/s3"
)

// @title Khata API
// @version 1.0
// @description Line-item and totals computation, submission and export for purchase orders, sales returns, payments and invoices.
// @BasePath /api/v1
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
	documentRepo := postgres.NewDocumentRepo(db)
	catalogRepo := postgres.NewCatalogRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)

	// HSN master is optional; without it items without a label bind as "None".
	hsnLookup, err := catalog.LoadHSNLookup(context.Background(), hsnRepo)
	if err != nil {
		log.Printf("HSN master not loaded: %v", err)
	}
	log.Printf("HSN master: %d codes", hsnLookup.Len())

	// Initialize storage
	exportStore, err := s3storage.NewExportStore(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(&cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	documentSvc := service.NewDocumentService(documentRepo, emailSender, &cfg.Email, &cfg.Billing)
	catalogSvc := service.NewCatalogService(catalogRepo, hsnLookup)
	exportSvc := service.NewExportService(documentRepo, exportStore, &cfg.S3, &cfg.Export)

	// Initialize handlers
	r := router.Setup(router.Handlers{
		Document: handler.NewDocumentHandler(documentSvc, exportSvc),
		Calc:     handler.NewCalcHandler(documentSvc, catalogSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Health:   handler.NewHealthHandler(db, cfg.Server.Environment),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		log.Printf("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}
