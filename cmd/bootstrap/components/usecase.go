package components

import (
	"cappa-booking/internal/domain/room"
	"cappa-booking/internal/infra/gateway"
	"cappa-booking/internal/infra/mail"
	"cappa-booking/internal/pkg/clock"
	"cappa-booking/internal/pkg/config"
	"cappa-booking/internal/usecase/commands"
	"cappa-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	room.DefaultCatalog,
	NewGatewayResolver,
	fx.Annotate(
		mail.NewLogMailer,
		fx.As(new(commands.Mailer)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewReservationCommands,
		commands.NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
	),
)

func NewGatewayResolver(cfg config.Config, clk clock.Clock) commands.GatewayResolver {
	return gateway.NewResolver(
		gateway.NewPaystackClient(cfg.Payment, clk),
		gateway.NewFlutterwaveClient(cfg.Payment, clk),
	)
}
