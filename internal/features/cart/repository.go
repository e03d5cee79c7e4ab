package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrCartNotFound = fmt.Errorf("cart not found")

type CartRepository interface {
	CreateCart(ctx context.Context) (*Cart, error)
	GetCart(ctx context.Context, id int64) (*Cart, error)
	ListItems(ctx context.Context, cartID int64) ([]CartItemView, error)
	// AddItem inserts the product into the cart or bumps its quantity
	// by one when it is already there.
	AddItem(ctx context.Context, cartID, productID int64) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
}

type CartRepositoryImpl struct {
	DB *sql.DB
}

func NewCartRepository(db *sql.DB) CartRepository {
	return &CartRepositoryImpl{DB: db}
}

func (r *CartRepositoryImpl) CreateCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO carts DEFAULT VALUES RETURNING id, created_at`,
	).Scan(&cart.ID, &cart.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepositoryImpl) GetCart(ctx context.Context, id int64) (*Cart, error) {
	var cart Cart
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, created_at FROM carts WHERE id = $1`, id,
	).Scan(&cart.ID, &cart.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepositoryImpl) ListItems(ctx context.Context, cartID int64) ([]CartItemView, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT i.id, i.quantity,
		        p.id, p.name, p.description, p.price, p.image_url, p.created_at
		 FROM cart_items i
		 JOIN products p ON p.id = i.product_id
		 WHERE i.cart_id = $1
		 ORDER BY i.id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []CartItemView{}
	for rows.Next() {
		var item CartItemView
		err := rows.Scan(
			&item.ID, &item.Quantity,
			&item.Product.ID, &item.Product.Name, &item.Product.Description,
			&item.Product.Price, &item.Product.ImageURL, &item.Product.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Subtotal = item.Product.Price.Mul(decimalFromInt(item.Quantity))
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepositoryImpl) AddItem(ctx context.Context, cartID, productID int64) error {
	// Same create-or-bump idiom as the product upsert, keyed on the
	// (cart_id, product_id) unique constraint.
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (cart_id, product_id)
		 DO UPDATE SET quantity = cart_items.quantity + 1`,
		cartID, productID,
	)
	return err
}

func (r *CartRepositoryImpl) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return fmt.Errorf("cart item %d not found", itemID)
	}
	return nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
