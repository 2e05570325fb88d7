package bootstrap

import (
	"party-rental/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.StoreModule,
	components.UseCaseModule,
	components.HandlerModule,
)
