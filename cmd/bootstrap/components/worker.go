package components

import (
	"context"

	"salonbook/internal/infra/queue"
	"salonbook/internal/jobs/handlers"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		handlers.NewEmailHandler,
		handlers.NewReminderHandler,
		handlers.NewExpirationHandler,
		handlers.NewPaymentsHandler,
		handlers.NewAnalyticsHandler,
		handlers.NewCalendarSyncHandler,
		handlers.NewCacheWarmHandler,
	),
	fx.Invoke(
		handlers.RegisterAll,
		startWorkers,
	),
)

func startWorkers(lc fx.Lifecycle, m *queue.Manager) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := handlers.ScheduleRecurring(ctx, m); err != nil {
				cancel()
				return err
			}
			go func() {
				defer close(done)
				m.Run(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}
