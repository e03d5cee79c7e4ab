package sync

import (
	"context"
	"fmt"

	"go-shop/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs periodic synchronizations when SYNC_SCHEDULE is set.
type Scheduler struct {
	service   SyncService
	scheduler *cron.Cron
	schedule  string
	limit     int
	logger    *zap.Logger
}

func NewScheduler(service SyncService, cfg *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		schedule: cfg.SyncSchedule,
		limit:    cfg.SyncLimit,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		s.logger.Info("sync scheduler disabled, no schedule configured")
		return nil
	}

	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.schedule, func() {
		result, err := s.service.Synchronize(context.Background(), s.limit)
		if err != nil {
			s.logger.Error("scheduled synchronization failed", zap.Error(err))
			return
		}
		s.logger.Info("scheduled synchronization finished",
			zap.String("run_id", result.RunID),
			zap.Int("created", result.Created),
			zap.Int("updated", result.Updated),
		)
	})
	if err != nil {
		return fmt.Errorf("register sync schedule %q: %w", s.schedule, err)
	}

	s.scheduler.Start()
	s.logger.Info("sync scheduler started", zap.String("schedule", s.schedule))
	return nil
}

func (s *Scheduler) Stop() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}
