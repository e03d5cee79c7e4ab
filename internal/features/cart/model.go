package cart

import (
	"time"

	"go-shop/internal/features/catalog"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type CartItem struct {
	ID        int64 `json:"id"`
	CartID    int64 `json:"cart_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CartItemView joins an item with its product and subtotal for display.
type CartItemView struct {
	ID       int64           `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	ID    int64           `json:"id"`
	Items []CartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ExternalItem is the payload for adding a remote catalog hit to the
// cart. The price arrives in USD and is converted before persisting.
type ExternalItem struct {
	Name        string          `json:"name"`
	PriceUSD    decimal.Decimal `json:"price_usd"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}
