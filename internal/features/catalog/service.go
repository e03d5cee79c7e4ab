package catalog

import (
	"context"
	"errors"
	"strings"

	"go-shop/internal/clients/dummyjson"

	"go.uber.org/zap"
)

// RemoteFetcher is the slice of the DummyJSON client the storefront
// needs to show external products next to native ones.
type RemoteFetcher interface {
	FetchProducts(ctx context.Context, limit int) []dummyjson.Product
}

// StorefrontView is what the store page renders: native products from
// the database plus a live remote fetch.
type StorefrontView struct {
	Query  string              `json:"query"`
	Local  []Product           `json:"local"`
	Remote []dummyjson.Product `json:"remote"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, query string) ([]Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
	// GetOrCreateByName finds a product by exact name or creates it
	// from defaults, backfilling incomplete fields on an existing row.
	// Reports whether a new row was created.
	GetOrCreateByName(ctx context.Context, name string, defaults Product) (*Product, bool, error)
	Storefront(ctx context.Context, query string) (*StorefrontView, error)
}

type ProductServiceImpl struct {
	Repo   ProductRepository
	Remote RemoteFetcher
	Logger *zap.Logger
}

func NewProductService(repo ProductRepository, remote RemoteFetcher, logger *zap.Logger) ProductService {
	return &ProductServiceImpl{
		Repo:   repo,
		Remote: remote,
		Logger: logger,
	}
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, p *Product) error {
	return s.Repo.Create(ctx, p)
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context, query string) ([]Product, error) {
	return s.Repo.List(ctx, query)
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, p *Product) error {
	return s.Repo.Update(ctx, p)
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

func (s *ProductServiceImpl) GetOrCreateByName(ctx context.Context, name string, defaults Product) (*Product, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "External product"
	}

	existing, err := s.Repo.GetByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		defaults.Name = name
		if err := s.Repo.Create(ctx, &defaults); err != nil {
			return nil, false, err
		}
		return &defaults, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Backfill rows created earlier with incomplete external data
	changed := false
	if defaults.Price.IsPositive() && !existing.Price.Equal(defaults.Price) {
		existing.Price = defaults.Price
		changed = true
	}
	if defaults.Description != "" && existing.Description != defaults.Description {
		existing.Description = defaults.Description
		changed = true
	}
	if defaults.ImageURL != "" && existing.ImageURL == "" {
		existing.ImageURL = defaults.ImageURL
		changed = true
	}
	if changed {
		if err := s.Repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
	}

	return existing, false, nil
}

func (s *ProductServiceImpl) Storefront(ctx context.Context, query string) (*StorefrontView, error) {
	local, err := s.Repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	// Remote fetch is best-effort here; the client already degrades to
	// an empty slice on failure.
	remote := s.Remote.FetchProducts(ctx, 30)

	return &StorefrontView{
		Query:  query,
		Local:  local,
		Remote: remote,
	}, nil
}
