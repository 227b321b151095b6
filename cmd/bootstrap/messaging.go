package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"restaurant-booking/internal/infra/messaging"
	"restaurant-booking/internal/infra/outbox"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Invoke(
		StartOutboxRelay,
	),
)

// StartOutboxRelay runs the relay for the lifetime of the app. Without
// AMQP_URL jobs stay queued in the database.
func StartOutboxRelay(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, loc *time.Location) {
	if cfg.AMQP.URL == "" {
		slog.Info("AMQP_URL not set, outbox relay disabled")
		return
	}

	publisher := messaging.NewPublisher(cfg.AMQP)
	relay := outbox.NewRelay(uow, publisher, clock.NewRealClock(loc), cfg.Outbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("outbox relay stopped", "error", err.Error())
				}
			}()
			slog.Info("outbox relay started", "exchange", cfg.AMQP.Exchange, "interval", cfg.Outbox.PollInterval.String())
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return publisher.Close()
		},
	})
}
