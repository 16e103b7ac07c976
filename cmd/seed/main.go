package main

import (
	"context"
	"log"
	"time"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/seed"
	"github.com/Skotchmaster/storefront/internal/service"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName+"-seed")
	ctx, cancel := context.WithTimeout(logging.IntoContext(context.Background(), logger), time.Minute)
	defer cancel()

	gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close(gdb)

	var idx service.ProductIndex
	if cfg.ESURL != "" {
		client, err := search.NewClient(ctx, search.Config{URL: cfg.ESURL, Username: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		products := &search.Products{ES: client, IndexName: cfg.ESIndex}
		if err := products.EnsureIndex(ctx); err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		idx = products
	}

	if _, err := seed.Run(ctx, &repo.GormRepo{DB: gdb}, idx); err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger.Info("database seeded successfully")
}
