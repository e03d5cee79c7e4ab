package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a native storefront product. Price is already in COP;
// only synced products carry a USD source price.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
}
