package components

import (
	"salonbook/internal/handler"
	"salonbook/internal/handler/api"
	"salonbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAdminHandler,
		api.NewQueueHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
