package components

import (
	"tutorbook/internal/infra/cache"
	"tutorbook/internal/infra/db"
	"tutorbook/internal/infra/readstore"
	"tutorbook/internal/infra/uow"
	"tutorbook/internal/pkg/config"
	"tutorbook/internal/usecase/commands"
	"tutorbook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,

		// Schedule: redis cache over postgres, also the invalidator the
		// admin template rewrite uses
		fx.Annotate(
			NewScheduleReadStore,
			fx.As(new(queries.ScheduleReadStore)),
			fx.As(new(commands.ScheduleCacheInvalidator)),
		),
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentViewRepo)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		fx.Annotate(
			readstore.NewCouponReadStore,
			fx.As(new(queries.CouponReadStore)),
		),
		fx.Annotate(
			readstore.NewDiscountRuleReadStore,
			fx.As(new(queries.DiscountRuleReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewScheduleReadStore(client *redis.Client, dbtx db.DBTX, cfg config.Config) *cache.ScheduleCache {
	return cache.NewScheduleCache(client, readstore.NewPostgresScheduleReadStore(dbtx), cfg.Redis.CacheTTL)
}
