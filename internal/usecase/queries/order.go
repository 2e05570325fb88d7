package queries

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"party-rental/internal/domain/order"
	"party-rental/internal/pkg/errs"
	"party-rental/internal/usecase/shared"
)

// SkippedRecord is a stored record that could not be decoded.
type SkippedRecord struct {
	Key string
	Err error
}

type OrderList struct {
	Orders  []*order.Order
	Skipped []SkippedRecord
}

type OrderQueries interface {
	// ListOrders returns every decodable order, newest first.
	ListOrders(ctx context.Context) (*OrderList, error)
	FindOrder(ctx context.Context, id string) (*order.Order, error)
}

type orderQueriesImpl struct {
	store  shared.OrderStore
	logger *slog.Logger
}

func NewOrderQueries(store shared.OrderStore, logger *slog.Logger) OrderQueries {
	if logger == nil {
		logger = slog.Default()
	}
	return &orderQueriesImpl{
		store:  store,
		logger: logger,
	}
}

func (q *orderQueriesImpl) ListOrders(ctx context.Context) (*OrderList, error) {
	records, err := q.store.ListAll(ctx)
	if err != nil {
		q.logger.Error("failed to list orders", "error", err)
		return nil, errs.Mark(errs.Wrap(err, "list orders"), errs.ErrPersistence)
	}

	list := &OrderList{Orders: make([]*order.Order, 0, len(records))}
	for _, rec := range records {
		if rec.Err != nil || rec.Order == nil {
			q.logger.Warn("skipping malformed order record",
				"key", rec.Key,
				"error", rec.Err)
			list.Skipped = append(list.Skipped, SkippedRecord{Key: rec.Key, Err: rec.Err})
			continue
		}
		list.Orders = append(list.Orders, rec.Order)
	}

	SortNewestFirst(list.Orders)
	return list, nil
}

func (q *orderQueriesImpl) FindOrder(ctx context.Context, id string) (*order.Order, error) {
	o, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreErr(q.logger, err, id)
	}
	return o, nil
}

// SortNewestFirst orders by creation time descending; equal instants fall
// back to id descending so the result is deterministic.
func SortNewestFirst(orders []*order.Order) {
	slices.SortStableFunc(orders, func(a, b *order.Order) int {
		if c := b.CreatedAt().Compare(a.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(b.ID(), a.ID())
	})
}
