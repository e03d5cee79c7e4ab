package sync

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type SyncedProductRepository interface {
	// Upsert creates or updates the row matched on external_id and
	// reports whether a new row was created. The struct's ID, SyncedAt
	// and UpdatedAt are filled in from the database.
	Upsert(ctx context.Context, p *SyncedProduct) (bool, error)
	List(ctx context.Context, category, query string) ([]SyncedProduct, error)
	ListAll(ctx context.Context) ([]SyncedProduct, error)
	Get(ctx context.Context, id int64) (*SyncedProduct, error)
	UpdatePriceCOP(ctx context.Context, id int64, price decimal.Decimal) error
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type SyncedProductRepositoryImpl struct {
	DB *sql.DB
}

func NewSyncedProductRepository(db *sql.DB) SyncedProductRepository {
	return &SyncedProductRepositoryImpl{DB: db}
}

const syncedColumns = `id, external_id, title, description, category, brand,
	price_usd, price_cop, stock, rating, thumbnail_url, active, synced_at, updated_at`

func (r *SyncedProductRepositoryImpl) Upsert(ctx context.Context, p *SyncedProduct) (bool, error) {
	// xmax = 0 only holds for freshly inserted tuples, which is how we
	// tell created from updated in a single round trip.
	const query = `
		INSERT INTO synced_products
			(external_id, title, description, category, brand, price_usd,
			 price_cop, stock, rating, thumbnail_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		ON CONFLICT (external_id) DO UPDATE SET
			title         = EXCLUDED.title,
			description   = EXCLUDED.description,
			category      = EXCLUDED.category,
			brand         = EXCLUDED.brand,
			price_usd     = EXCLUDED.price_usd,
			price_cop     = EXCLUDED.price_cop,
			stock         = EXCLUDED.stock,
			rating        = EXCLUDED.rating,
			thumbnail_url = EXCLUDED.thumbnail_url,
			active        = TRUE,
			updated_at    = NOW()
		RETURNING id, synced_at, updated_at, (xmax = 0) AS created`

	var created bool
	err := r.DB.QueryRowContext(ctx, query,
		p.ExternalID, p.Title, p.Description, p.Category, p.Brand,
		p.PriceUSD, p.PriceCOP, p.Stock, p.Rating, p.ThumbnailURL,
	).Scan(&p.ID, &p.SyncedAt, &p.UpdatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("upsert synced product %d: %w", p.ExternalID, err)
	}
	p.Active = true

	return created, nil
}

// List returns active rows only, newest first. Inactive rows stay in
// the table until an explicit admin delete but are hidden from every
// listing surface.
func (r *SyncedProductRepositoryImpl) List(ctx context.Context, category, query string) ([]SyncedProduct, error) {
	sqlQuery := `SELECT ` + syncedColumns + `
		FROM synced_products
		WHERE active = TRUE
		  AND ($1 = '' OR category ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY synced_at DESC`

	rows, err := r.DB.QueryContext(ctx, sqlQuery, category, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSyncedProducts(rows)
}

// ListAll includes inactive rows; price refresh walks every row.
func (r *SyncedProductRepositoryImpl) ListAll(ctx context.Context) ([]SyncedProduct, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+syncedColumns+` FROM synced_products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSyncedProducts(rows)
}

func (r *SyncedProductRepositoryImpl) Get(ctx context.Context, id int64) (*SyncedProduct, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+syncedColumns+` FROM synced_products WHERE id = $1`, id)

	p, err := scanSyncedProduct(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("synced product %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SyncedProductRepositoryImpl) UpdatePriceCOP(ctx context.Context, id int64, price decimal.Decimal) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE synced_products SET price_cop = $1, updated_at = NOW() WHERE id = $2`,
		price, id,
	)
	return err
}

func (r *SyncedProductRepositoryImpl) Deactivate(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE synced_products SET active = FALSE, updated_at = NOW() WHERE id = $1`,
		id,
	)
	return err
}

func (r *SyncedProductRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM synced_products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("synced product %d not found", id)
	}
	return nil
}

func (r *SyncedProductRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM synced_products`).Scan(&count)
	return count, err
}

func (r *SyncedProductRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM synced_products WHERE active = TRUE`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSyncedProduct(row rowScanner) (*SyncedProduct, error) {
	var p SyncedProduct
	err := row.Scan(
		&p.ID, &p.ExternalID, &p.Title, &p.Description, &p.Category, &p.Brand,
		&p.PriceUSD, &p.PriceCOP, &p.Stock, &p.Rating, &p.ThumbnailURL,
		&p.Active, &p.SyncedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanSyncedProducts(rows *sql.Rows) ([]SyncedProduct, error) {
	products := []SyncedProduct{}
	for rows.Next() {
		p, err := scanSyncedProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
