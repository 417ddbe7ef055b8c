package bootstrap

import (
	"salonbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.StoreModule,
	components.QueueModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
