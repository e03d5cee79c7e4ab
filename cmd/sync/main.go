package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go-shop/internal/clients/dummyjson"
	"go-shop/internal/clients/exchangerate"
	"go-shop/internal/config"
	"go-shop/internal/database"
	"go-shop/internal/features/history"
	"go-shop/internal/features/sync"

	"go.uber.org/zap"
)

// One-shot synchronization run, suitable for cron outside the server
// process. Exits non-zero when the run fails partway.
func main() {
	limit := flag.Int("limit", 0, "max products to sync (0 uses SYNC_LIMIT)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	mongodb, err := database.ConnectMongo(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongodb.Client.Disconnect(context.Background())

	db, err := database.OpenPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	historyService := history.NewHistoryService(history.NewHistoryRepository(mongodb), logger)
	products := dummyjson.NewClient(cfg, historyService, logger)
	rates := exchangerate.NewClient(cfg, historyService, logger)
	repo := sync.NewSyncedProductRepository(db)
	service := sync.NewSyncService(repo, products, rates, historyService, cfg, logger)

	result, err := service.Synchronize(ctx, *limit)
	if err != nil {
		log.Fatalf("Synchronization failed: %v", err)
	}

	fmt.Printf("Synchronization %s finished: %d created, %d updated (rate %s",
		result.RunID, result.Created, result.Updated, result.Rate)
	if result.FallbackRate {
		fmt.Print(", fallback")
	}
	fmt.Println(")")
}
