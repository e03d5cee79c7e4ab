package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type mockHistoryRepo struct {
	appendErr   error
	collections []string
	records     []QueryRecord
	listLimit   int64
}

func (m *mockHistoryRepo) Append(ctx context.Context, collection string, record QueryRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.collections = append(m.collections, collection)
	m.records = append(m.records, record)
	return nil
}

func (m *mockHistoryRepo) ListRecent(ctx context.Context, collection string, limit int64) ([]QueryRecord, error) {
	m.listLimit = limit
	return []QueryRecord{}, nil
}

func (m *mockHistoryRepo) Count(ctx context.Context, collection string) (int64, error) {
	return int64(len(m.records)), nil
}

func TestRecordFillsTimestamp(t *testing.T) {
	repo := &mockHistoryRepo{}
	service := NewHistoryService(repo, zap.NewNop())

	service.Record(context.Background(), CollectionQueries, QueryRecord{
		Type:    QueryTypeSearch,
		API:     "DummyJSON",
		Success: true,
	})

	if len(repo.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.records))
	}
	if repo.records[0].Timestamp.IsZero() {
		t.Error("timestamp not filled")
	}
}

func TestRecordKeepsExplicitTimestamp(t *testing.T) {
	repo := &mockHistoryRepo{}
	service := NewHistoryService(repo, zap.NewNop())

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	service.Record(context.Background(), CollectionQueries, QueryRecord{Timestamp: at})

	if !repo.records[0].Timestamp.Equal(at) {
		t.Errorf("timestamp = %s, want %s", repo.records[0].Timestamp, at)
	}
}

func TestRecordAbsorbsStoreFailure(t *testing.T) {
	repo := &mockHistoryRepo{appendErr: errors.New("mongo down")}
	service := NewHistoryService(repo, zap.NewNop())

	// Must not panic or surface the error in any way.
	service.Record(context.Background(), CollectionQueries, QueryRecord{Type: QueryTypeSearch})
}

func TestListRecentClampsLimit(t *testing.T) {
	repo := &mockHistoryRepo{}
	service := NewHistoryService(repo, zap.NewNop())

	cases := []struct {
		in   int64
		want int64
	}{
		{0, 50},
		{-5, 50},
		{500, 50},
		{10, 10},
	}
	for _, tc := range cases {
		if _, err := service.ListRecent(context.Background(), CollectionQueries, tc.in); err != nil {
			t.Fatalf("ListRecent(%d): %v", tc.in, err)
		}
		if repo.listLimit != tc.want {
			t.Errorf("limit %d clamped to %d, want %d", tc.in, repo.listLimit, tc.want)
		}
	}
}
