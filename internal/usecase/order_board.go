package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"party-rental/internal/domain/order"
	"party-rental/internal/usecase/commands"
	"party-rental/internal/usecase/queries"
)

// BoardSnapshot is the operator's view of all orders at one point in time.
type BoardSnapshot struct {
	Orders  []*order.Order
	Skipped int
}

// OrderBoard holds the operator's in-memory order list. Writes go to the store
// first; the list only changes after the store confirms them.
type OrderBoard struct {
	mu      sync.RWMutex
	orders  []*order.Order
	skipped int

	queries  queries.OrderQueries
	commands commands.OrderCommands
	logger   *slog.Logger
}

func NewOrderBoard(q queries.OrderQueries, c commands.OrderCommands, logger *slog.Logger) *OrderBoard {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderBoard{
		queries:  q,
		commands: c,
		logger:   logger,
	}
}

// Refresh reloads the list from the store. On failure the previous list is kept.
func (b *OrderBoard) Refresh(ctx context.Context) (BoardSnapshot, error) {
	list, err := b.queries.ListOrders(ctx)
	if err != nil {
		return BoardSnapshot{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = list.Orders
	b.skipped = len(list.Skipped)
	return b.snapshotLocked(), nil
}

func (b *OrderBoard) Snapshot() BoardSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// SetStatus persists the status and then reflects it in the list. The returned
// order is nil only when the write succeeded but the order could not be read
// back for a list that never contained it.
func (b *OrderBoard) SetStatus(ctx context.Context, orderID, label string) (*order.Order, order.Status, error) {
	status, err := b.commands.SetStatus(ctx, orderID, label)
	if err != nil {
		return nil, "", err
	}

	if updated := b.apply(orderID, status); updated != nil {
		return updated, status, nil
	}

	o, err := b.queries.FindOrder(ctx, orderID)
	if err != nil {
		b.logger.Warn("status saved but order could not be reloaded",
			"order_id", orderID,
			"error", err)
		return nil, status, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if idx := b.indexLocked(orderID); idx >= 0 {
		b.orders[idx] = b.orders[idx].WithStatus(status)
		return b.orders[idx], status, nil
	}
	b.orders = append(b.orders, o)
	queries.SortNewestFirst(b.orders)
	return o, status, nil
}

func (b *OrderBoard) apply(orderID string, status order.Status) *order.Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(orderID)
	if idx < 0 {
		return nil
	}
	b.orders[idx] = b.orders[idx].WithStatus(status)
	return b.orders[idx]
}

func (b *OrderBoard) indexLocked(orderID string) int {
	return slices.IndexFunc(b.orders, func(o *order.Order) bool {
		return o.ID() == orderID
	})
}

func (b *OrderBoard) snapshotLocked() BoardSnapshot {
	return BoardSnapshot{
		Orders:  slices.Clone(b.orders),
		Skipped: b.skipped,
	}
}
