package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Job is a jobs table row.
type Job struct {
	ID          uuid.UUID
	JobType     string
	Payload     []byte
	Status      string
	Priority    int32
	Attempts    int32
	MaxAttempts int32
	LastError   sql.NullString
	ScheduledAt time.Time
	StartedAt   sql.NullTime
	FinishedAt  sql.NullTime
	CreatedAt   time.Time
}

// EnqueueJobParams contains the values for inserting a job.
type EnqueueJobParams struct {
	JobType     string
	Payload     []byte
	Priority    int32
	MaxAttempts int32
	ScheduledAt time.Time
}

const enqueueJob = `
INSERT INTO jobs (job_type, payload, priority, max_attempts, scheduled_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, job_type, payload, status, priority, attempts, max_attempts,
          last_error, scheduled_at, started_at, finished_at, created_at
`

// EnqueueJob inserts a pending job.
func (q *Queries) EnqueueJob(ctx context.Context, arg EnqueueJobParams) (Job, error) {
	row := q.db.QueryRowContext(ctx, enqueueJob,
		arg.JobType, arg.Payload, arg.Priority, arg.MaxAttempts, arg.ScheduledAt)
	return scanJob(row)
}

const dequeueJob = `
SELECT id, job_type, payload, status, priority, attempts, max_attempts,
       last_error, scheduled_at, started_at, finished_at, created_at
FROM jobs
WHERE status = 'pending' AND scheduled_at <= now()
ORDER BY priority DESC, scheduled_at
LIMIT 1
FOR UPDATE SKIP LOCKED
`

// DequeueJob locks and returns the next runnable job. Must be called inside
// a transaction; returns sql.ErrNoRows when the queue is empty.
func (q *Queries) DequeueJob(ctx context.Context) (Job, error) {
	row := q.db.QueryRowContext(ctx, dequeueJob)
	return scanJob(row)
}

const updateJobStarted = `
UPDATE jobs
SET status = 'running', attempts = attempts + 1, started_at = now()
WHERE id = $1
`

// UpdateJobStarted marks a job as running and counts the attempt.
func (q *Queries) UpdateJobStarted(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, updateJobStarted, id)
	return err
}

const updateJobCompleted = `
UPDATE jobs
SET status = 'completed', finished_at = now(), last_error = NULL
WHERE id = $1
`

// UpdateJobCompleted marks a job as successfully finished.
func (q *Queries) UpdateJobCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, updateJobCompleted, id)
	return err
}

// UpdateJobFailedParams records a job failure.
type UpdateJobFailedParams struct {
	ID           uuid.UUID
	ErrorMessage sql.NullString
}

const updateJobFailed = `
UPDATE jobs
SET status = CASE WHEN attempts >= max_attempts THEN 'failed' ELSE 'pending' END,
    scheduled_at = CASE WHEN attempts >= max_attempts THEN scheduled_at
                        ELSE now() + (interval '30 seconds' * power(2, attempts)) END,
    finished_at = CASE WHEN attempts >= max_attempts THEN now() ELSE NULL END,
    last_error = $2
WHERE id = $1
`

// UpdateJobFailed records an error. Jobs with attempts left are rescheduled
// with exponential backoff, exhausted jobs are marked failed.
func (q *Queries) UpdateJobFailed(ctx context.Context, arg UpdateJobFailedParams) error {
	_, err := q.db.ExecContext(ctx, updateJobFailed, arg.ID, arg.ErrorMessage)
	return err
}

const markJobFailedPermanently = `
UPDATE jobs
SET status = 'failed', finished_at = now(), last_error = $2
WHERE id = $1
`

// MarkJobFailedPermanently fails a job without consuming its remaining attempts.
func (q *Queries) MarkJobFailedPermanently(ctx context.Context, arg UpdateJobFailedParams) error {
	_, err := q.db.ExecContext(ctx, markJobFailedPermanently, arg.ID, arg.ErrorMessage)
	return err
}

const recoverStaleJobs = `
UPDATE jobs
SET status = 'pending', started_at = NULL
WHERE status = 'running' AND started_at < now() - make_interval(secs => $1)
`

// RecoverStaleJobs resets jobs stuck in 'running' longer than the threshold
// (in seconds), typically left behind by a crashed worker.
func (q *Queries) RecoverStaleJobs(ctx context.Context, thresholdSeconds float64) (int64, error) {
	res, err := q.db.ExecContext(ctx, recoverStaleJobs, thresholdSeconds)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanJob(row *sql.Row) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.JobType, &j.Payload, &j.Status, &j.Priority,
		&j.Attempts, &j.MaxAttempts, &j.LastError, &j.ScheduledAt,
		&j.StartedAt, &j.FinishedAt, &j.CreatedAt)
	return j, err
}
