package jobs

import (
	"context"
	"log/slog"

	"rentdesk/internal/pkg/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the sweepers on the configured cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(cfg config.JobsConfig, sweeper *Sweeper, overdue *OverdueSweeper) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(cfg.SweepSchedule, func() {
		ctx := context.Background()
		if err := overdue.RunOnce(ctx); err != nil {
			slog.Error("overdue sweep failed", "error", err)
		}
		if err := sweeper.RunOnce(ctx); err != nil {
			slog.Error("notification sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
