package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// ErrNotFound is returned for lookups that match no row.
var ErrNotFound = fmt.Errorf("product not found")

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Get(ctx context.Context, id int64) (*Product, error)
	GetByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context, query string) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type ProductRepositoryImpl struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &ProductRepositoryImpl{DB: db}
}

const productColumns = `id, name, description, price, image_url, created_at`

func (r *ProductRepositoryImpl) Create(ctx context.Context, p *Product) error {
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO products (name, description, price, image_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		p.Name, p.Description, p.Price, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *ProductRepositoryImpl) Get(ctx context.Context, id int64) (*Product, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *ProductRepositoryImpl) GetByName(ctx context.Context, name string) (*Product, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE name = $1`, name)
	return scanProduct(row)
}

func (r *ProductRepositoryImpl) List(ctx context.Context, query string) ([]Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
		 ORDER BY name`, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, p *Product) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE products SET name = $1, description = $2, price = $3, image_url = $4
		 WHERE id = $5`,
		p.Name, p.Description, p.Price, p.ImageURL, p.ID,
	)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
