package repository

import (
	"context"
	"time"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/pkg/pgconv"
	"restaurant-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db pgquery.DBTX, arg pgquery.CreateNotificationJobParams) error
	ClaimPendingNotificationJobs(ctx context.Context, db pgquery.DBTX, arg pgquery.ClaimPendingNotificationJobsParams) ([]pgquery.NotificationJob, error)
	MarkNotificationJobSent(ctx context.Context, db pgquery.DBTX, id uuid.UUID) error
	MarkNotificationJobFailed(ctx context.Context, db pgquery.DBTX, arg pgquery.MarkNotificationJobFailedParams) error
}

type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{queries: queries}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx pgquery.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	params := pgquery.CreateNotificationJobParams{
		Kind:    kind,
		Topic:   topic,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(runAt),
		Status:  shared.JobStatusQueued,
	}

	err := r.queries.CreateNotificationJob(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

func (r *NotificationRepository) ClaimPending(ctx context.Context, tx pgquery.DBTX, now time.Time, limit int32) ([]shared.NotificationJob, error) {
	rows, err := r.queries.ClaimPendingNotificationJobs(ctx, tx, pgquery.ClaimPendingNotificationJobsParams{
		Now:   pgconv.TimeToPgtype(now),
		Limit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim pending notification jobs", err)
	}

	jobs := make([]shared.NotificationJob, len(rows))
	for i, row := range rows {
		jobs[i] = shared.NotificationJob{
			ID:       row.ID,
			Kind:     row.Kind,
			Topic:    row.Topic,
			Payload:  row.Payload,
			RunAt:    row.RunAt.Time,
			Attempts: row.Attempts,
		}
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx pgquery.DBTX, jobID uuid.UUID) error {
	if err := r.queries.MarkNotificationJobSent(ctx, tx, jobID); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, tx pgquery.DBTX, jobID uuid.UUID, status, lastError string, retryAt time.Time) error {
	params := pgquery.MarkNotificationJobFailedParams{
		ID:        jobID,
		Status:    status,
		LastError: pgconv.NullableStringToPgtype(lastError),
		RunAt:     pgconv.TimeToPgtype(retryAt),
	}

	if err := r.queries.MarkNotificationJobFailed(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	return nil
}
