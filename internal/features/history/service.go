package history

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Recorder is the fire-and-forget half of the service, consumed by the
// API clients and the sync pipeline. Record never returns an error:
// a lost audit record is accepted loss, not a pipeline failure.
type Recorder interface {
	Record(ctx context.Context, collection string, record QueryRecord)
}

type HistoryService interface {
	Recorder
	ListRecent(ctx context.Context, collection string, limit int64) ([]QueryRecord, error)
	Count(ctx context.Context, collection string) (int64, error)
}

type HistoryServiceImpl struct {
	Repo   HistoryRepository
	Logger *zap.Logger
}

func NewHistoryService(repo HistoryRepository, logger *zap.Logger) HistoryService {
	return &HistoryServiceImpl{
		Repo:   repo,
		Logger: logger,
	}
}

func (s *HistoryServiceImpl) Record(ctx context.Context, collection string, record QueryRecord) {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	if err := s.Repo.Append(ctx, collection, record); err != nil {
		// Surface only as a local diagnostic, never to the caller
		s.Logger.Warn("failed to append audit record",
			zap.String("collection", collection),
			zap.String("type", string(record.Type)),
			zap.Error(err),
		)
	}
}

func (s *HistoryServiceImpl) ListRecent(ctx context.Context, collection string, limit int64) ([]QueryRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Repo.ListRecent(ctx, collection, limit)
}

func (s *HistoryServiceImpl) Count(ctx context.Context, collection string) (int64, error) {
	return s.Repo.Count(ctx, collection)
}
