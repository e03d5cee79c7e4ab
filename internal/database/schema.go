package database

import (
	"context"
	"database/sql"
)

// schema statements are idempotent so the app can bootstrap a fresh
// database at startup. synced_at is written once on insert; every
// subsequent upsert only touches updated_at.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS synced_products (
		id            BIGSERIAL PRIMARY KEY,
		external_id   BIGINT NOT NULL UNIQUE,
		title         TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL DEFAULT '',
		brand         TEXT NOT NULL DEFAULT '',
		price_usd     NUMERIC(10,2) NOT NULL,
		price_cop     NUMERIC(15,2),
		stock         INTEGER NOT NULL DEFAULT 0,
		rating        NUMERIC(3,2) NOT NULL DEFAULT 0,
		thumbnail_url TEXT NOT NULL DEFAULT '',
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		synced_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		price       NUMERIC(15,2) NOT NULL DEFAULT 0,
		image_url   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id         BIGSERIAL PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id         BIGSERIAL PRIMARY KEY,
		cart_id    BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity   INTEGER NOT NULL DEFAULT 1,
		UNIQUE (cart_id, product_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_synced_products_category ON synced_products (category)`,
	`CREATE INDEX IF NOT EXISTS idx_synced_products_active ON synced_products (active)`,
}

// EnsureSchema creates the catalog tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
