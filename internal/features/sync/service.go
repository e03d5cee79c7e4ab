package sync

import (
	"context"
	"fmt"

	"go-shop/internal/clients/dummyjson"
	"go-shop/internal/clients/exchangerate"
	"go-shop/internal/config"
	"go-shop/internal/features/history"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ProductFetcher is the slice of the DummyJSON client the engine needs.
type ProductFetcher interface {
	FetchProducts(ctx context.Context, limit int) []dummyjson.Product
	Search(ctx context.Context, query string) []dummyjson.Product
}

// RateFetcher is the slice of the exchange-rate client the engine needs.
type RateFetcher interface {
	GetRate(ctx context.Context) (*exchangerate.Rate, error)
}

type SyncService interface {
	Synchronize(ctx context.Context, limit int) (*SyncResult, error)
	RefreshPrices(ctx context.Context) (int, error)
	Search(ctx context.Context, query string) ([]RemoteListing, error)
	ListProducts(ctx context.Context, category, query string) ([]SyncedProduct, error)
	GetProduct(ctx context.Context, id int64) (*SyncedProduct, error)
	DeleteProduct(ctx context.Context, id int64) error
	ExportToExcel(ctx context.Context) ([]byte, error)
}

type SyncServiceImpl struct {
	Repo         SyncedProductRepository
	Products     ProductFetcher
	Rates        RateFetcher
	History      history.Recorder
	Logger       *zap.Logger
	fallbackRate decimal.Decimal
	defaultLimit int
}

func NewSyncService(repo SyncedProductRepository, products ProductFetcher, rates RateFetcher, recorder history.Recorder, cfg *config.Config, logger *zap.Logger) SyncService {
	return &SyncServiceImpl{
		Repo:         repo,
		Products:     products,
		Rates:        rates,
		History:      recorder,
		Logger:       logger,
		fallbackRate: cfg.FallbackCOPRate,
		defaultLimit: cfg.SyncLimit,
	}
}

// Synchronize pulls up to limit shoe products from the remote catalog,
// converts their prices at a single rate fetched once for the whole
// batch, and reconciles them into the local set by external_id upsert.
// A dead rate service degrades to the fallback rate; it never aborts
// the run. Rows upserted before a persistence failure stay committed.
func (s *SyncServiceImpl) Synchronize(ctx context.Context, limit int) (*SyncResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	runID := uuid.NewString()
	products := s.Products.FetchProducts(ctx, limit)

	// The rate is fetched once per run, never per product.
	rate, usedFallback := s.currentRate(ctx)

	result := &SyncResult{RunID: runID, Rate: rate, FallbackRate: usedFallback}
	for i := range products {
		p := products[i]
		row := &SyncedProduct{
			ExternalID:   p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Category:     p.Category,
			Brand:        p.Brand,
			PriceUSD:     p.Price,
			PriceCOP:     decimal.NewNullDecimal(p.Price.Mul(rate)),
			Stock:        p.Stock,
			Rating:       p.Rating,
			ThumbnailURL: p.Thumbnail,
			Active:       true,
		}

		created, err := s.Repo.Upsert(ctx, row)
		if err != nil {
			s.History.Record(ctx, history.CollectionQueries, history.QueryRecord{
				Type:    history.QueryTypeProductFetch,
				API:     "DummyJSON",
				Success: false,
				Detail:  err.Error(),
				Extra:   bson.M{"run_id": runID, "created": result.Created, "updated": result.Updated},
			})
			return nil, fmt.Errorf("synchronize: %w", err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.History.Record(ctx, history.CollectionQueries, history.QueryRecord{
		Type:    history.QueryTypeProductFetch,
		API:     "DummyJSON",
		Success: true,
		Detail:  fmt.Sprintf("created: %d, updated: %d", result.Created, result.Updated),
		Extra: bson.M{
			"run_id":        runID,
			"rate":          rate.String(),
			"fallback_rate": usedFallback,
		},
	})

	s.Logger.Info("synchronization finished",
		zap.String("run_id", runID),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Bool("fallback_rate", usedFallback),
	)

	return result, nil
}

// RefreshPrices recomputes price_cop for every persisted row at the
// current rate. Unlike Synchronize there is no fallback: the whole
// point of a refresh is accuracy, so an unavailable rate aborts with
// zero rows touched.
func (s *SyncServiceImpl) RefreshPrices(ctx context.Context) (int, error) {
	rate, err := s.Rates.GetRate(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh prices: %w", err)
	}
	if rate.COP.IsZero() {
		return 0, fmt.Errorf("refresh prices: %w", exchangerate.ErrNoCOPRate)
	}

	products, err := s.Repo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh prices: %w", err)
	}

	updated := 0
	for i := range products {
		p := products[i]
		if err := s.Repo.UpdatePriceCOP(ctx, p.ID, p.PriceUSD.Mul(rate.COP)); err != nil {
			return updated, fmt.Errorf("refresh prices: product %d: %w", p.ID, err)
		}
		updated++
	}

	s.History.Record(ctx, history.CollectionQueries, history.QueryRecord{
		Type:    history.QueryTypeConversion,
		API:     "ExchangeRate",
		Success: true,
		Detail:  fmt.Sprintf("updated %d products with rate %s", updated, rate.COP),
	})

	return updated, nil
}

// Search runs a remote catalog search and prices every hit in COP at
// one rate fetched for the whole result set. A dead rate service
// leaves PriceCOP at zero rather than failing the search.
func (s *SyncServiceImpl) Search(ctx context.Context, query string) ([]RemoteListing, error) {
	products := s.Products.Search(ctx, query)

	rate := decimal.Zero
	if r, err := s.Rates.GetRate(ctx); err == nil {
		rate = r.COP
	} else {
		s.Logger.Warn("search results will carry no COP price", zap.Error(err))
	}

	listings := make([]RemoteListing, 0, len(products))
	for _, p := range products {
		listing := RemoteListing{
			ExternalID:  p.ID,
			Title:       p.Title,
			Description: p.Description,
			PriceUSD:    p.Price,
			Category:    p.Category,
			Brand:       p.Brand,
			Stock:       p.Stock,
			Rating:      p.Rating,
			Thumbnail:   p.Thumbnail,
		}
		if !rate.IsZero() {
			listing.PriceCOP = p.Price.Mul(rate)
		}
		listings = append(listings, listing)
	}

	s.History.Record(ctx, history.CollectionQueries, history.QueryRecord{
		Type:    history.QueryTypeSearch,
		API:     "DummyJSON",
		Success: true,
		Detail:  fmt.Sprintf("search: %s, results: %d", query, len(listings)),
	})

	return listings, nil
}

func (s *SyncServiceImpl) ListProducts(ctx context.Context, category, query string) ([]SyncedProduct, error) {
	return s.Repo.List(ctx, category, query)
}

func (s *SyncServiceImpl) GetProduct(ctx context.Context, id int64) (*SyncedProduct, error) {
	return s.Repo.Get(ctx, id)
}

// DeleteProduct is the explicit administrative removal; the sync
// pipeline itself never deletes rows.
func (s *SyncServiceImpl) DeleteProduct(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}

func (s *SyncServiceImpl) currentRate(ctx context.Context) (decimal.Decimal, bool) {
	rate, err := s.Rates.GetRate(ctx)
	if err != nil {
		s.Logger.Warn("exchange rate unavailable, using fallback",
			zap.String("fallback", s.fallbackRate.String()),
			zap.Error(err),
		)
		return s.fallbackRate, true
	}
	if rate.COP.IsZero() {
		s.Logger.Warn("COP missing from rate table, using fallback",
			zap.String("fallback", s.fallbackRate.String()),
		)
		return s.fallbackRate, true
	}
	return rate.COP, false
}
