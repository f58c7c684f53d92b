package components

import (
	"tutorbook/internal/domain/schedule"
	"tutorbook/internal/pkg/clock"
	"tutorbook/internal/pkg/config"
	"tutorbook/internal/usecase"
	"tutorbook/internal/usecase/commands"
	"tutorbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBusinessCalendar,
)

// NewBusinessCalendar pins the single timezone every recurring slot is
// interpreted in. An unknown zone name fails startup.
func NewBusinessCalendar(cfg config.Config) (schedule.Calendar, error) {
	return schedule.NewCalendar(cfg.Schedule.BusinessTimeZone)
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewAppointmentCommands,
		commands.NewAvailabilityCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewAvailabilityQueries,
		queries.NewPricingQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
