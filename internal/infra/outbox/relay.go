package outbox

import (
	"context"
	"log/slog"
	"time"

	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/shared"
)

const maxBackoff = time.Hour

type Publisher interface {
	Publish(ctx context.Context, job shared.NotificationJob) error
}

// Relay moves queued notification jobs to the broker. Jobs are claimed with
// FOR UPDATE SKIP LOCKED, so several relays may run against one database.
// Delivery is at-least-once: a crash between publish and commit republishes.
type Relay struct {
	uow       shared.UnitOfWork
	publisher Publisher
	clock     clock.Clock
	cfg       config.OutboxConfig
}

func NewRelay(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, cfg config.OutboxConfig) *Relay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	return &Relay{
		uow:       uow,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	t := time.NewTicker(r.cfg.PollInterval)
	defer t.Stop()

	for {
		if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			slog.Error("outbox relay pass failed", "error", err.Error())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// RelayOnce handles one batch and reports how many jobs were published.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	sent := 0
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := r.clock.Now()
		repo := tx.Notifications()

		jobs, err := repo.ClaimPending(ctx, tx.DB(), now, r.cfg.BatchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if pubErr := r.publisher.Publish(ctx, job); pubErr != nil {
				if err := r.recordFailure(ctx, tx, job, pubErr, now); err != nil {
					return err
				}
				continue
			}
			if err := repo.MarkSent(ctx, tx.DB(), job.ID); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, errs.Wrap(err, "relay notification jobs")
	}
	if sent > 0 {
		slog.Debug("notification jobs relayed", "count", sent)
	}
	return sent, nil
}

func (r *Relay) recordFailure(ctx context.Context, tx shared.Tx, job shared.NotificationJob, cause error, now time.Time) error {
	attempts := job.Attempts + 1
	status := shared.JobStatusQueued
	if attempts >= r.cfg.MaxAttempts {
		status = shared.JobStatusFailed
	}

	slog.Warn("notification publish failed",
		"job_id", job.ID.String(),
		"kind", job.Kind,
		"attempts", attempts,
		"status", status,
		"error", cause.Error(),
	)
	return tx.Notifications().MarkFailed(ctx, tx.DB(), job.ID, status, cause.Error(), now.Add(Backoff(r.cfg.PollInterval, attempts)))
}

// Backoff doubles base per attempt, capped at one hour.
func Backoff(base time.Duration, attempts int32) time.Duration {
	d := base
	for i := int32(1); i < attempts; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
