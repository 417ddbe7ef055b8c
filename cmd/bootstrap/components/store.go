package components

import (
	"salonbook/internal/infra/eventstore"
	"salonbook/internal/infra/gateway"
	"salonbook/internal/infra/queue"
	"salonbook/internal/infra/readstore"
	"salonbook/internal/infra/snapshotstore"
	"salonbook/internal/jobs/handlers"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		// Event log
		fx.Annotate(
			eventstore.NewPostgresStore,
			fx.As(new(commands.EventStore)),
			fx.As(new(queries.EventReader)),
		),
		// Snapshots
		fx.Annotate(
			snapshotstore.NewPostgresStore,
			fx.As(new(commands.SnapshotStore)),
			fx.As(new(queries.SnapshotReader)),
		),
		// Directory projection
		fx.Annotate(
			readstore.NewBookingDirectory,
			fx.As(new(commands.BookingDirectory)),
			fx.As(new(queries.DirectoryReader)),
		),
		// Job store
		fx.Annotate(
			queue.NewPostgresStore,
			fx.As(new(queue.Store)),
		),
		// Gateways
		fx.Annotate(
			gateway.NewStubPaymentGateway,
			fx.As(new(handlers.PaymentGateway)),
		),
		fx.Annotate(
			gateway.NewLogMailer,
			fx.As(new(handlers.Mailer)),
		),
		fx.Annotate(
			gateway.NewLogCalendar,
			fx.As(new(handlers.CalendarGateway)),
		),
		fx.Annotate(
			gateway.NewLogAnalytics,
			fx.As(new(handlers.AnalyticsSink)),
		),
	),
)
