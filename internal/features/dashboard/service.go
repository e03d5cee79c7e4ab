package dashboard

import (
	"context"

	"go-shop/internal/features/catalog"
	"go-shop/internal/features/history"
	"go-shop/internal/features/sync"

	"go.uber.org/zap"
)

type Summary struct {
	LocalProducts  int64                 `json:"local_products"`
	SyncedProducts int64                 `json:"synced_products"`
	ActiveProducts int64                 `json:"active_products"`
	TotalQueries   int64                 `json:"total_queries"`
	RecentQueries  []history.QueryRecord `json:"recent_queries"`
}

type DashboardService interface {
	Summarize(ctx context.Context) (*Summary, error)
}

type DashboardServiceImpl struct {
	Products catalog.ProductRepository
	Synced   sync.SyncedProductRepository
	History  history.HistoryService
	Logger   *zap.Logger
}

func NewDashboardService(
	products catalog.ProductRepository,
	synced sync.SyncedProductRepository,
	historyService history.HistoryService,
	logger *zap.Logger,
) DashboardService {
	return &DashboardServiceImpl{
		Products: products,
		Synced:   synced,
		History:  historyService,
		Logger:   logger,
	}
}

func (s *DashboardServiceImpl) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{RecentQueries: []history.QueryRecord{}}

	var err error
	if summary.LocalProducts, err = s.Products.Count(ctx); err != nil {
		return nil, err
	}
	if summary.SyncedProducts, err = s.Synced.Count(ctx); err != nil {
		return nil, err
	}
	if summary.ActiveProducts, err = s.Synced.CountActive(ctx); err != nil {
		return nil, err
	}

	// Audit counters come from the best-effort store; a failure there
	// should not blank out the whole dashboard.
	if count, err := s.History.Count(ctx, history.CollectionQueries); err == nil {
		summary.TotalQueries = count
	} else {
		s.Logger.Warn("dashboard query count unavailable", zap.Error(err))
	}
	if recent, err := s.History.ListRecent(ctx, history.CollectionQueries, 5); err == nil {
		summary.RecentQueries = recent
	} else {
		s.Logger.Warn("dashboard recent queries unavailable", zap.Error(err))
	}

	return summary, nil
}
