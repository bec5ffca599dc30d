package bootstrap

import (
	"time"

	"cappa-booking/internal/pkg/config"
	"cappa-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

// JWTModule provides the token service guarding guest accounts and every
// booking-flow step past intake.
var JWTModule = fx.Module("jwt",
	fx.Provide(
		newJWTService,
	),
)

// Token lifetimes are parsed at startup; a bad duration aborts boot.
func newJWTService(cfg config.Config) *jwt.Service {
	access, err := time.ParseDuration(cfg.JWT.AccessTokenDuration)
	if err != nil {
		panic("invalid JWT_ACCESS_TOKEN_DURATION: " + err.Error())
	}

	refresh, err := time.ParseDuration(cfg.JWT.RefreshTokenDuration)
	if err != nil {
		panic("invalid JWT_REFRESH_TOKEN_DURATION: " + err.Error())
	}

	return jwt.NewService(cfg.JWT.Secret, access, refresh)
}
