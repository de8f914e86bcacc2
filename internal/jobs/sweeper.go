package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"rentdesk/internal/infra/repository"
	"rentdesk/internal/notification"
	"rentdesk/internal/pkg/clock"
	"rentdesk/internal/pkg/config"
	"rentdesk/internal/usecase/queries"

	"github.com/google/uuid"
)

// JobStore is the outbox surface the sweeper drains.
type JobStore interface {
	ClaimDue(ctx context.Context, now time.Time, limit int32) ([]repository.NotificationJob, error)
	MarkDone(ctx context.Context, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, lastError string, maxAttempts int32, retryAt time.Time) error
}

type jobPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
	Type      string    `json:"type"`
}

var topicSubjects = map[string]string{
	"booking_created":   "Your rental booking is confirmed",
	"booking_delivered": "Your rental car has been delivered",
	"booking_returned":  "Thanks for returning your rental car",
	"booking_canceled":  "Your rental booking was canceled",
	"booking_overdue":   "Your rental return is overdue",
}

// Sweeper drains due notification jobs and emails the booking's client.
type Sweeper struct {
	store          JobStore
	bookingQueries queries.BookingQueries
	sender         notification.Sender
	clock          clock.Clock
	batch          int32
	maxAttempts    int32
}

func NewSweeper(
	store JobStore,
	bookingQueries queries.BookingQueries,
	sender notification.Sender,
	clk clock.Clock,
	cfg config.JobsConfig,
) *Sweeper {
	return &Sweeper{
		store:          store,
		bookingQueries: bookingQueries,
		sender:         sender,
		clock:          clk,
		batch:          int32(cfg.SweepBatch),
		maxAttempts:    int32(cfg.MaxAttempts),
	}
}

// RunOnce claims one batch and processes it. Failures requeue the individual
// job with a linear backoff; they never abort the rest of the batch.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	now := s.clock.Now()

	claimed, err := s.store.ClaimDue(ctx, now, s.batch)
	if err != nil {
		return err
	}

	for _, job := range claimed {
		if err := s.process(ctx, job); err != nil {
			retryAt := now.Add(time.Duration(job.Attempts+1) * time.Minute)
			if markErr := s.store.MarkFailed(ctx, job.ID, err.Error(), s.maxAttempts, retryAt); markErr != nil {
				slog.Error("failed to mark notification job failed", "job_id", job.ID, "error", markErr)
			}
			slog.Warn("notification job failed", "job_id", job.ID, "topic", job.Topic, "error", err)
			continue
		}
		if err := s.store.MarkDone(ctx, job.ID); err != nil {
			slog.Error("failed to mark notification job done", "job_id", job.ID, "error", err)
		}
	}
	return nil
}

func (s *Sweeper) process(ctx context.Context, job repository.NotificationJob) error {
	var payload jobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("malformed job payload: %w", err)
	}

	view, err := s.bookingQueries.GetByID(ctx, payload.BookingID)
	if err != nil {
		return fmt.Errorf("booking lookup failed: %w", err)
	}

	subject, ok := topicSubjects[job.Topic]
	if !ok {
		subject = "Rental booking update"
	}

	body := s.renderBody(job.Topic, view)
	return s.sender.Send(ctx, view.ClientName, view.ClientEmail, subject, body)
}

func (s *Sweeper) renderBody(topic string, view *queries.BookingView) string {
	switch topic {
	case "booking_overdue":
		return fmt.Sprintf(
			"Hello %s,\n\nThe %s (%s) was due back on %s. Please return it or contact us to extend your rental.\n",
			view.ClientName, view.VehicleModel, view.VehiclePlate,
			view.Collection.Format(time.RFC1123),
		)
	default:
		return fmt.Sprintf(
			"Hello %s,\n\nBooking %s for the %s (%s):\ndelivery %s, collection %s.\nRental duration: %s, billed as %s.\n",
			view.ClientName, view.ID, view.VehicleModel, view.VehiclePlate,
			view.Delivery.Format(time.RFC1123), view.Collection.Format(time.RFC1123),
			view.FormattedDuration, view.FormattedTotal,
		)
	}
}
