package repository

import (
	"context"
	"time"

	"rentdesk/internal/infra"
	"rentdesk/internal/infra/db"
	"rentdesk/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// NotificationJob is a claimed outbox row handed to the sweeper.
type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	RunAt    time.Time
	Attempts int32
}

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const createNotificationJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5, 'queued')`

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, createNotificationJobSQL,
		uuid.New(), kind, topic, payload, pgconv.TimeToPgtype(runAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

// ClaimDue flips due queued jobs to processing and returns them. SKIP LOCKED
// keeps concurrent sweepers from claiming the same rows.
const claimDueJobsSQL = `
UPDATE notification_jobs
SET status = 'processing', updated_at = now()
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE status = 'queued' AND run_at <= $1
    ORDER BY run_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, run_at, attempts`

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int32) ([]NotificationJob, error) {
	rows, err := r.db.Query(ctx, claimDueJobsSQL, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var (
			job   NotificationJob
			runAt pgtype.Timestamptz
		)
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &runAt, &job.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		job.RunAt = pgconv.TimeFromPgtype(runAt)
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

const markJobDoneSQL = `
UPDATE notification_jobs
SET status = 'done', updated_at = now()
WHERE id = $1`

func (r *NotificationRepository) MarkDone(ctx context.Context, jobID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, markJobDoneSQL, jobID); err != nil {
		return infra.WrapRepoErr("failed to mark notification job done", err)
	}
	return nil
}

// MarkFailed requeues with a backoff until maxAttempts, then parks the job as
// failed for manual inspection.
const markJobFailedSQL = `
UPDATE notification_jobs
SET attempts = attempts + 1,
    last_error = $2,
    status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'queued' END,
    run_at = CASE WHEN attempts + 1 >= $3 THEN run_at ELSE $4 END,
    updated_at = now()
WHERE id = $1`

func (r *NotificationRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, lastError string, maxAttempts int32, retryAt time.Time) error {
	if _, err := r.db.Exec(ctx, markJobFailedSQL, jobID, lastError, maxAttempts, pgconv.TimeToPgtype(retryAt)); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
