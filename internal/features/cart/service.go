package cart

import (
	"context"
	"errors"
	"strings"

	"go-shop/internal/features/catalog"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// externalRate is the fixed USD to COP conversion applied when an
// external product is dropped into the cart. The cart deliberately
// does not call the live rate service for this; synced prices do.
var externalRate = decimal.NewFromInt(3800)

type CartService interface {
	// GetOrCreate resolves the session's cart, creating one when the
	// id is zero or points at a row that no longer exists.
	GetOrCreate(ctx context.Context, cartID int64) (*Cart, error)
	View(ctx context.Context, cartID int64) (*CartView, error)
	AddLocal(ctx context.Context, cartID, productID int64) error
	AddExternal(ctx context.Context, cartID int64, item ExternalItem) error
	RemoveItem(ctx context.Context, cartID, itemID int64) error
}

type CartServiceImpl struct {
	Repo     CartRepository
	Products catalog.ProductService
	Logger   *zap.Logger
}

func NewCartService(repo CartRepository, products catalog.ProductService, logger *zap.Logger) CartService {
	return &CartServiceImpl{
		Repo:     repo,
		Products: products,
		Logger:   logger,
	}
}

func (s *CartServiceImpl) GetOrCreate(ctx context.Context, cartID int64) (*Cart, error) {
	if cartID > 0 {
		cart, err := s.Repo.GetCart(ctx, cartID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, ErrCartNotFound) {
			return nil, err
		}
		// Stale session id, fall through and start a fresh cart
	}
	return s.Repo.CreateCart(ctx)
}

func (s *CartServiceImpl) View(ctx context.Context, cartID int64) (*CartView, error) {
	items, err := s.Repo.ListItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	return &CartView{
		ID:    cartID,
		Items: items,
		Total: total,
	}, nil
}

func (s *CartServiceImpl) AddLocal(ctx context.Context, cartID, productID int64) error {
	// Verify the product exists before touching the cart
	if _, err := s.Products.GetProduct(ctx, productID); err != nil {
		return err
	}
	return s.Repo.AddItem(ctx, cartID, productID)
}

// AddExternal materializes a remote catalog hit as a native product
// (converted to COP at the fixed rate) and adds it to the cart.
func (s *CartServiceImpl) AddExternal(ctx context.Context, cartID int64, item ExternalItem) error {
	description := strings.TrimSpace(item.Description)
	if description == "" {
		description = "External product from the remote catalog"
	}

	priceCOP := decimal.Zero
	if item.PriceUSD.IsPositive() {
		priceCOP = item.PriceUSD.Mul(externalRate)
	}

	product, created, err := s.Products.GetOrCreateByName(ctx, item.Name, catalog.Product{
		Description: description,
		Price:       priceCOP,
		ImageURL:    item.ImageURL,
	})
	if err != nil {
		return err
	}
	if created {
		s.Logger.Info("materialized external product",
			zap.String("name", product.Name),
			zap.String("price_cop", product.Price.String()),
		)
	}

	return s.Repo.AddItem(ctx, cartID, product.ID)
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	return s.Repo.RemoveItem(ctx, cartID, itemID)
}
