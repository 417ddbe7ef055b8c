package components

import (
	"salonbook/internal/pkg/clock"
	"salonbook/internal/usecase"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewBookingUseCase,
		commands.NewAdminUseCase,
		queries.NewBookingQueries,
		usecase.NewTokenValidator,
	),
)
