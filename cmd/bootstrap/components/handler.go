package components

import (
	"party-rental/internal/handler"
	"party-rental/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewCartHandler,
		api.NewAdminHandler,
		func(catalogH *api.CatalogHandler, cartH *api.CartHandler, adminH *api.AdminHandler) handler.Handlers {
			return handler.Handlers{
				Catalog: catalogH,
				Cart:    cartH,
				Admin:   adminH,
			}
		},
	),
	fx.Invoke(handler.NewRouter),
)
