package components

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"party-rental/internal/infra/db"
	"party-rental/internal/infra/docstore"
	"party-rental/internal/infra/kv"
	"party-rental/internal/infra/kvstore"
	"party-rental/internal/infra/pgstore"
	"party-rental/internal/pkg/config"
	"party-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewOrderStore,
	),
)

// NewOrderStore opens the backend selected by ORDER_STORE and registers its
// cleanup with the fx lifecycle.
func NewOrderStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.OrderStore, error) {
	store, cleanup, err := openOrderStore(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	logger.Info("order store ready", "driver", cfg.Store.Driver)
	return store, nil
}

func openOrderStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (shared.OrderStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return kvstore.NewOrderStore(kv.NewMemoryStore(), logger), nil, nil

	case config.StoreSQLite:
		sqlDB, cleanup, err := db.ConnectSQLite(cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		return newSQLiteOrderStore(sqlDB, logger), cleanup, nil

	case config.StorePostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to prepare orders schema: %w", err)
		}
		return pgstore.NewOrderStore(pool, logger), cleanup, nil

	case config.StoreFirestore:
		client, cleanup, err := docstore.Connect(ctx, cfg.Firestore)
		if err != nil {
			return nil, nil, err
		}
		return docstore.NewOrderStore(client, cfg.Firestore.Collection, logger), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("unknown ORDER_STORE %q", cfg.Store.Driver)
	}
}

func newSQLiteOrderStore(sqlDB *sql.DB, logger *slog.Logger) shared.OrderStore {
	return kvstore.NewOrderStore(kv.NewSQLiteStore(sqlDB), logger)
}
