package components

import (
	"salonbook/internal/infra/queue"
	"salonbook/internal/usecase/commands"

	"go.uber.org/fx"
)

var QueueModule = fx.Module("queue",
	fx.Provide(
		queue.NewManager,
		func(m *queue.Manager) commands.Enqueuer { return m },
	),
)
