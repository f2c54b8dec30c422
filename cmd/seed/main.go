package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"ai-blog/config"
	"ai-blog/services"
	"ai-blog/storage"

	"go.uber.org/zap"
)

func main() {
	sample := flag.Bool("sample", false, "insert the built-in sample articles instead of generating new ones")
	flag.Parse()

	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	// Beispielartikel brauchen keinen Text-Provider.
	validate := cfg.Validate
	if *sample {
		validate = cfg.ValidateDatabase
	}
	if err := validate(); err != nil {
		logging.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.OpenDatabase(cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()
	store := storage.NewArticleStore(db, logging)

	var created int
	if *sample {
		logging.Info("Starting article seeding with sample data...")
		articles, err := services.NewSeeder(store, nil, logging).SeedSamples(ctx)
		if err != nil {
			logging.Fatal("Error seeding articles", zap.Error(err))
		}
		created = len(articles)
	} else {
		logging.Info("Starting article seeding...")
		generator, err := services.NewGeneratorFromConfig(cfg, logging)
		if err != nil {
			logging.Fatal("Failed to set up article generator", zap.Error(err))
		}
		articles, err := services.NewSeeder(store, generator, logging).SeedGenerated(ctx)
		if err != nil {
			logging.Fatal("Error seeding articles", zap.Error(err), zap.Int("created", len(articles)))
		}
		created = len(articles)
	}
	logging.Info("Seeding complete", zap.Int("created", created))
}
