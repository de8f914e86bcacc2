//go:build unit

package jobs_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"rentdesk/internal/infra/db"
	"rentdesk/internal/infra/repository"
	"rentdesk/internal/jobs"
	"rentdesk/internal/notification"
	"rentdesk/internal/pkg/clock"
	"rentdesk/internal/pkg/config"
	"rentdesk/tests/common/builder"
	queriesmock "rentdesk/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type fakeJobStore struct {
	due        []repository.NotificationJob
	claimErr   error
	doneIDs    []uuid.UUID
	failedIDs  []uuid.UUID
	lastErrors []string
	retryAts   []time.Time
}

func (f *fakeJobStore) ClaimDue(_ context.Context, _ time.Time, _ int32) ([]repository.NotificationJob, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return f.due, nil
}

func (f *fakeJobStore) MarkDone(_ context.Context, jobID uuid.UUID) error {
	f.doneIDs = append(f.doneIDs, jobID)
	return nil
}

func (f *fakeJobStore) MarkFailed(_ context.Context, jobID uuid.UUID, lastError string, _ int32, retryAt time.Time) error {
	f.failedIDs = append(f.failedIDs, jobID)
	f.lastErrors = append(f.lastErrors, lastError)
	f.retryAts = append(f.retryAts, retryAt)
	return nil
}

type sentMail struct {
	toName    string
	toAddress string
	subject   string
	body      string
}

type fakeSender struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeSender) Send(_ context.Context, toName, toAddress, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{toName: toName, toAddress: toAddress, subject: subject, body: body})
	return nil
}

var _ jobs.JobStore = (*fakeJobStore)(nil)
var _ notification.Sender = (*fakeSender)(nil)

type SweeperTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	store       *fakeJobStore
	sender      *fakeSender
	clk         *clock.MockClock
}

func (s *SweeperTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.store = &fakeJobStore{}
	s.sender = &fakeSender{}
	s.clk = clock.NewMockClock(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
}

// SetupSubTest resets the fakes so each s.Run case starts from a clean store
// and sender. SetupTest only runs once per test method.
func (s *SweeperTestSuite) SetupSubTest() {
	s.store = &fakeJobStore{}
	s.sender = &fakeSender{}
}

func (s *SweeperTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSweeperSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}

func (s *SweeperTestSuite) newSweeper() *jobs.Sweeper {
	cfg := config.JobsConfig{SweepBatch: 20, MaxAttempts: 5}
	return jobs.NewSweeper(s.store, s.mockQueries, s.sender, s.clk, cfg)
}

func dueJob(t *testing.T, bookingID uuid.UUID, topic string, attempts int32) repository.NotificationJob {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"booking_id": bookingID, "type": topic})
	if err != nil {
		t.Fatal(err)
	}
	return repository.NotificationJob{
		ID:       uuid.New(),
		Kind:     "email",
		Topic:    topic,
		Payload:  payload,
		RunAt:    time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		Attempts: attempts,
	}
}

func (s *SweeperTestSuite) TestRunOnce() {
	s.Run("success: sends the mail and marks the job done", func() {
		view := builder.NewBookingBuilder().BuildReadModel()
		job := dueJob(s.T(), view.ID, "booking_created", 0)
		s.store.due = []repository.NotificationJob{job}

		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		err := s.newSweeper().RunOnce(context.Background())

		s.NoError(err)
		s.Require().Len(s.sender.sent, 1)
		s.Equal(view.ClientEmail, s.sender.sent[0].toAddress)
		s.Equal("Your rental booking is confirmed", s.sender.sent[0].subject)
		s.Contains(s.sender.sent[0].body, view.ClientName)
		s.Contains(s.sender.sent[0].body, view.FormattedDuration)
		s.Equal([]uuid.UUID{job.ID}, s.store.doneIDs)
		s.Empty(s.store.failedIDs)
	})

	s.Run("success: overdue topic uses the reminder body", func() {
		view := builder.NewBookingBuilder().BuildReadModel()
		job := dueJob(s.T(), view.ID, "booking_overdue", 0)
		s.store.due = []repository.NotificationJob{job}

		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		err := s.newSweeper().RunOnce(context.Background())

		s.NoError(err)
		s.Require().Len(s.sender.sent, 1)
		s.Equal("Your rental return is overdue", s.sender.sent[0].subject)
		s.Contains(s.sender.sent[0].body, "due back")
	})

	s.Run("failure: send error requeues the job with linear backoff", func() {
		view := builder.NewBookingBuilder().BuildReadModel()
		job := dueJob(s.T(), view.ID, "booking_created", 2)
		s.store.due = []repository.NotificationJob{job}
		s.sender.sendErr = errors.New("smtp unavailable")

		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).
			Return(view, nil).Times(1)

		err := s.newSweeper().RunOnce(context.Background())

		s.NoError(err)
		s.Empty(s.store.doneIDs)
		s.Require().Len(s.store.failedIDs, 1)
		s.Equal(job.ID, s.store.failedIDs[0])
		s.Contains(s.store.lastErrors[0], "smtp unavailable")
		s.Equal(s.clk.Now().Add(3*time.Minute), s.store.retryAts[0])
	})

	s.Run("failure: malformed payload never reaches the sender", func() {
		job := repository.NotificationJob{
			ID:      uuid.New(),
			Kind:    "email",
			Topic:   "booking_created",
			Payload: []byte("{not json"),
		}
		s.store.due = []repository.NotificationJob{job}

		err := s.newSweeper().RunOnce(context.Background())

		s.NoError(err)
		s.Empty(s.sender.sent)
		s.Require().Len(s.store.failedIDs, 1)
		s.Contains(s.store.lastErrors[0], "malformed job payload")
	})

	s.Run("failure: one bad job does not block the rest of the batch", func() {
		goodView := builder.NewBookingBuilder().BuildReadModel()
		goodJob := dueJob(s.T(), goodView.ID, "booking_returned", 0)
		missingID := uuid.New()
		badJob := dueJob(s.T(), missingID, "booking_created", 0)
		s.store.due = []repository.NotificationJob{badJob, goodJob}

		s.mockQueries.EXPECT().GetByID(gomock.Any(), missingID).
			Return(nil, errors.New("booking not found")).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), goodView.ID).
			Return(goodView, nil).Times(1)

		err := s.newSweeper().RunOnce(context.Background())

		s.NoError(err)
		s.Equal([]uuid.UUID{goodJob.ID}, s.store.doneIDs)
		s.Equal([]uuid.UUID{badJob.ID}, s.store.failedIDs)
	})

	s.Run("failure: claim error aborts the run", func() {
		s.store.claimErr = errors.New("connection refused")

		err := s.newSweeper().RunOnce(context.Background())

		s.Error(err)
		s.Empty(s.sender.sent)
	})
}

type fakeOverdueScanner struct {
	ids     []uuid.UUID
	scanErr error
}

func (f *fakeOverdueScanner) FindOverdueUnreminded(_ context.Context, _ time.Time, _ int32) ([]uuid.UUID, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	return f.ids, nil
}

type enqueuedJob struct {
	kind    string
	topic   string
	payload []byte
	runAt   time.Time
}

type fakeJobEnqueuer struct {
	jobs      []enqueuedJob
	createErr error
}

func (f *fakeJobEnqueuer) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.jobs = append(f.jobs, enqueuedJob{kind: kind, topic: topic, payload: payload, runAt: runAt})
	return nil
}

func TestOverdueSweeperRunOnce(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	cfg := config.JobsConfig{SweepBatch: 20, MaxAttempts: 5}

	t.Run("enqueues one reminder per overdue booking", func(t *testing.T) {
		first, second := uuid.New(), uuid.New()
		scanner := &fakeOverdueScanner{ids: []uuid.UUID{first, second}}
		enqueuer := &fakeJobEnqueuer{}
		sweeper := jobs.NewOverdueSweeper(scanner, enqueuer, nil, clock.NewMockClock(now), cfg)

		err := sweeper.RunOnce(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(enqueuer.jobs) != 2 {
			t.Fatalf("expected 2 enqueued jobs, got %d", len(enqueuer.jobs))
		}
		for i, id := range []uuid.UUID{first, second} {
			job := enqueuer.jobs[i]
			if job.topic != "booking_overdue" || job.kind != "email" {
				t.Errorf("unexpected job shape: kind=%q topic=%q", job.kind, job.topic)
			}
			if !job.runAt.Equal(now) {
				t.Errorf("reminder should be due immediately, got %v", job.runAt)
			}
			var payload struct {
				BookingID uuid.UUID `json:"booking_id"`
			}
			if err := json.Unmarshal(job.payload, &payload); err != nil {
				t.Fatalf("payload is not JSON: %v", err)
			}
			if payload.BookingID != id {
				t.Errorf("payload booking_id = %s, want %s", payload.BookingID, id)
			}
		}
	})

	t.Run("enqueue errors are skipped without aborting", func(t *testing.T) {
		scanner := &fakeOverdueScanner{ids: []uuid.UUID{uuid.New()}}
		enqueuer := &fakeJobEnqueuer{createErr: errors.New("insert failed")}
		sweeper := jobs.NewOverdueSweeper(scanner, enqueuer, nil, clock.NewMockClock(now), cfg)

		if err := sweeper.RunOnce(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(enqueuer.jobs) != 0 {
			t.Fatalf("expected no enqueued jobs, got %d", len(enqueuer.jobs))
		}
	})

	t.Run("scan error aborts the run", func(t *testing.T) {
		scanner := &fakeOverdueScanner{scanErr: errors.New("query failed")}
		sweeper := jobs.NewOverdueSweeper(scanner, &fakeJobEnqueuer{}, nil, clock.NewMockClock(now), cfg)

		if err := sweeper.RunOnce(context.Background()); err == nil {
			t.Fatal("expected an error")
		}
	})
}
