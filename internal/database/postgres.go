package database

import (
	"context"
	"database/sql"
	"log"

	"go-shop/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
)

// NewPostgres opens the catalog store with lifecycle management.
// Postgres holds the rows of record (products, carts); unlike the audit
// store its writes are not allowed to be lost silently.
func NewPostgres(lc fx.Lifecycle, cfg *config.Config) (*sql.DB, error) {
	db, err := OpenPostgres(cfg)
	if err != nil {
		return nil, err
	}

	log.Println("Connected to PostgreSQL!")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Println("Closing PostgreSQL connection...")
			return db.Close()
		},
	})

	return db, nil
}

// OpenPostgres dials the catalog store without fx, for one-shot commands.
func OpenPostgres(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}
