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
	"ai-blog/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadWeb()
	if err != nil {
		log.Fatalf("can't load config: %v", err)
	}

	development := cfg.Environment == "development"
	var logging *zap.Logger
	if development {
		logging, err = zap.NewDevelopment()
	} else {
		logging, err = zap.NewProduction()
		gin.SetMode(gin.ReleaseMode)
	}
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	client := web.NewAPIClient(cfg.APIBaseURL, cfg.APITimeout, logging)
	server := web.NewServer(client, cfg.SiteURL, logging)
	router, err := server.Router(api.RequestLogger(logging))
	if err != nil {
		logging.Fatal("Failed to parse templates", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      cfg.APITimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info("Starting frontend", zap.String("port", cfg.WebPort), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", zap.Error(err))
	}
	logging.Info("Frontend stopped")
}
