package dashboard

import (
	"context"
	"errors"
	"testing"

	"go-shop/internal/features/catalog"
	"go-shop/internal/features/history"
	"go-shop/internal/features/sync"

	"go.uber.org/zap"
)

type stubProducts struct {
	catalog.ProductRepository
	count int64
}

func (s *stubProducts) Count(ctx context.Context) (int64, error) { return s.count, nil }

type stubSynced struct {
	sync.SyncedProductRepository
	count  int64
	active int64
}

func (s *stubSynced) Count(ctx context.Context) (int64, error)       { return s.count, nil }
func (s *stubSynced) CountActive(ctx context.Context) (int64, error) { return s.active, nil }

type stubHistory struct {
	history.HistoryService
	count   int64
	recent  []history.QueryRecord
	failing bool
}

func (s *stubHistory) Count(ctx context.Context, collection string) (int64, error) {
	if s.failing {
		return 0, errors.New("mongo down")
	}
	return s.count, nil
}

func (s *stubHistory) ListRecent(ctx context.Context, collection string, limit int64) ([]history.QueryRecord, error) {
	if s.failing {
		return nil, errors.New("mongo down")
	}
	return s.recent, nil
}

func TestSummarize(t *testing.T) {
	service := NewDashboardService(
		&stubProducts{count: 3},
		&stubSynced{count: 12, active: 10},
		&stubHistory{count: 40, recent: []history.QueryRecord{{API: "DummyJSON"}}},
		zap.NewNop(),
	)

	summary, err := service.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary.LocalProducts != 3 || summary.SyncedProducts != 12 || summary.ActiveProducts != 10 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.TotalQueries != 40 || len(summary.RecentQueries) != 1 {
		t.Errorf("unexpected audit section: %+v", summary)
	}
}

func TestSummarizeSurvivesAuditStoreOutage(t *testing.T) {
	service := NewDashboardService(
		&stubProducts{count: 3},
		&stubSynced{count: 12, active: 10},
		&stubHistory{failing: true},
		zap.NewNop(),
	)

	summary, err := service.Summarize(context.Background())
	if err != nil {
		t.Fatalf("audit outage should not fail the dashboard: %v", err)
	}
	if summary.TotalQueries != 0 || len(summary.RecentQueries) != 0 {
		t.Errorf("audit section should be empty during outage: %+v", summary)
	}
	if summary.LocalProducts != 3 {
		t.Errorf("catalog counts lost: %+v", summary)
	}
}
