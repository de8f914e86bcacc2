package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/clock"
	"rentdesk/internal/pkg/config"

	"github.com/google/uuid"
)

// OverdueScanner finds delivered bookings past collection that have not been
// reminded yet.
type OverdueScanner interface {
	FindOverdueUnreminded(ctx context.Context, now time.Time, limit int32) ([]uuid.UUID, error)
}

type JobEnqueuer interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

// OverdueSweeper turns overdue bookings into return-reminder jobs. Sending is
// left to the notification sweeper.
type OverdueSweeper struct {
	scanner  OverdueScanner
	enqueuer JobEnqueuer
	db       db.DBTX
	clock    clock.Clock
	batch    int32
}

func NewOverdueSweeper(
	scanner OverdueScanner,
	enqueuer JobEnqueuer,
	pool db.DBTX,
	clk clock.Clock,
	cfg config.JobsConfig,
) *OverdueSweeper {
	return &OverdueSweeper{
		scanner:  scanner,
		enqueuer: enqueuer,
		db:       pool,
		clock:    clk,
		batch:    int32(cfg.SweepBatch),
	}
}

func (s *OverdueSweeper) RunOnce(ctx context.Context) error {
	now := s.clock.Now()

	overdue, err := s.scanner.FindOverdueUnreminded(ctx, now, s.batch)
	if err != nil {
		return err
	}

	for _, bookingID := range overdue {
		payload, err := json.Marshal(jobPayload{BookingID: bookingID, Type: "booking_overdue"})
		if err != nil {
			return err
		}
		if err := s.enqueuer.CreateJob(ctx, s.db, "email", "booking_overdue", payload, now); err != nil {
			slog.Error("failed to enqueue overdue reminder", "booking_id", bookingID, "error", err)
			continue
		}
		slog.Info("enqueued overdue reminder", "booking_id", bookingID)
	}
	return nil
}
