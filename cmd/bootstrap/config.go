package bootstrap

import (
	"cappa-booking/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads the full environment config once; the gateway keys
// and snapshot TTL live here alongside the usual server settings.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
