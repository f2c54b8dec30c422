package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ai-blog/api"
	"ai-blog/config"
	"ai-blog/services"
	"ai-blog/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("can't load config: %v", err)
	}

	logging, err := newLogger(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	if err := cfg.Validate(); err != nil {
		logging.Fatal("Invalid configuration", zap.Error(err))
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := storage.OpenDatabase(cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	store := storage.NewArticleStore(db, logging)

	// Generation
	generator, err := services.NewGeneratorFromConfig(cfg, logging)
	if err != nil {
		logging.Fatal("Failed to set up article generator", zap.Error(err))
	}
	logging.Info("Text provider ready", zap.String("provider", generator.Provider.Name()))

	location, _ := cfg.Location()
	job := services.NewArticleJob(generator, store, cfg.CronSchedule, location, logging)

	if cfg.ArchiveEnabled() {
		settings := storage.S3Settings{
			URL:    cfg.ArchiveS3URL,
			Key:    cfg.ArchiveS3Key,
			Secret: cfg.ArchiveS3Secret,
			Region: cfg.ArchiveS3Region,
			Bucket: cfg.ArchiveS3Bucket,
		}
		s3Client, err := storage.NewS3Client(ctx, settings)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		job.Archive = storage.NewArchive(s3Client, settings, logging)
		logging.Info("Article archive enabled", zap.String("bucket", cfg.ArchiveS3Bucket))
	}

	if err := job.Start(); err != nil {
		logging.Fatal("Failed to schedule article generation", zap.Error(err))
	}

	// Router
	router := api.NewRouter(api.RouterConfig{
		Store:       store,
		Generator:   job,
		CORSOrigin:  cfg.CORSOrigin,
		Development: cfg.IsDevelopment(),
		Logger:      logging,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      cfg.GenerationTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logging.Info("Starting server",
			zap.String("port", cfg.HTTPPort),
			zap.String("api", "http://localhost:"+cfg.HTTPPort+"/api/articles"),
			zap.String("health", "http://localhost:"+cfg.HTTPPort+"/health"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", zap.Error(err))
	}
	select {
	case <-job.Stop().Done():
	case <-shutdownCtx.Done():
		logging.Warn("Scheduled generation still running at shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logging.Info("Server stopped")
}
