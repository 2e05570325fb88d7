package components

import (
	"log/slog"

	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/order"
	"party-rental/internal/pkg/clock"
	"party-rental/internal/pkg/config"
	"party-rental/internal/usecase"
	"party-rental/internal/usecase/commands"
	"party-rental/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	usecaseSessionsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCatalog,
	NewTransitionPolicy,
	fx.Annotate(
		func(cfg config.Config) *order.DefaultIDGenerator {
			return order.NewDefaultIDGenerator(cfg.Order.IDPrefix)
		},
		fx.As(new(order.IDGenerator)),
	),
	order.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

var usecaseSessionsModule = fx.Module("usecase/sessions",
	fx.Provide(
		NewCartSessions,
		usecase.NewOrderBoard,
	),
)

// NewCatalog loads CATALOG_PATH when set and falls back to the built-in items.
func NewCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.Catalog.Path)
}

func NewTransitionPolicy(cfg config.Config) order.TransitionPolicy {
	if cfg.Order.StrictTransitions {
		return order.NewWorkflowPolicy()
	}
	return order.PermissivePolicy{}
}

func NewCartSessions(
	cat *catalog.Catalog,
	orders commands.OrderCommands,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *usecase.CartSessions {
	return usecase.NewCartSessions(cat, orders, clk, cfg.Cart.IdleTTL, logger)
}
