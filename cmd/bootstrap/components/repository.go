package components

import (
	"cappa-booking/internal/infra/readstore"
	"cappa-booking/internal/infra/snapshot"
	"cappa-booking/internal/infra/writerepo"
	"cappa-booking/internal/pkg/config"
	"cappa-booking/internal/usecase/commands"
	"cappa-booking/internal/usecase/queries"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			writerepo.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			writerepo.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			NewSnapshotStore,
			fx.As(new(commands.SnapshotStore)),
		),
		// Read-side stores for queries
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewSnapshotStore(client *redis.Client, cfg config.Config) *snapshot.RedisStore {
	return snapshot.NewRedisStore(client, cfg.Payment.SnapshotTTL)
}
