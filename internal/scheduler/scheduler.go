package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/config"
	"github.com/akankshagoel28/masterlist/internal/service/masterlist"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron          *cron.Cron
	masterlistSvc *masterlist.Service
	cfg           config.Config
	logger        *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, masterlistSvc *masterlist.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:          cron.New(),
		masterlistSvc: masterlistSvc,
		cfg:           cfg,
		logger:        logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("cron", s.cfg.Refresh.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Refresh.CronSchedule, s.resyncCaches)
	if err != nil {
		s.logger.Error("failed to schedule cache resync", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// resyncCaches pulls fresh snapshots so edits made outside this service still
// show up in the derived views.
func (s *Scheduler) resyncCaches() {
	s.logger.Info("resyncing master data caches")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.masterlistSvc.RefreshAll(ctx); err != nil {
		s.logger.Error("cache resync failed", zap.Error(err))
		return
	}
	s.logger.Info("cache resync complete")
}
