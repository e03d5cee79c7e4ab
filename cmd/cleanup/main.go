package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go-shop/internal/clients/dummyjson"
	"go-shop/internal/config"
	"go-shop/internal/database"
	"go-shop/internal/features/sync"
)

// Removes synced rows whose titles match the excluded-keyword list.
// Older runs synced before the list grew may have left such rows behind.
func main() {
	dryRun := flag.Bool("dry-run", false, "report matches without touching rows")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.OpenPostgres(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	repo := sync.NewSyncedProductRepository(db)

	products, err := repo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list synced products: %v", err)
	}

	removed := 0
	for _, p := range products {
		if !dummyjson.Excluded(p.Title) {
			continue
		}

		fmt.Printf("Excluded title found: %q (id %d)\n", p.Title, p.ID)
		if *dryRun {
			removed++
			continue
		}

		// Deactivate first so listings stop showing the row even if the
		// delete below fails.
		if err := repo.Deactivate(ctx, p.ID); err != nil {
			log.Printf("Failed to deactivate %d: %v\n", p.ID, err)
			continue
		}
		if err := repo.Delete(ctx, p.ID); err != nil {
			log.Printf("Failed to delete %d: %v\n", p.ID, err)
			continue
		}
		removed++
	}

	if *dryRun {
		fmt.Printf("Dry run: %d rows would be removed\n", removed)
		return
	}
	fmt.Printf("Removed %d rows\n", removed)
}
