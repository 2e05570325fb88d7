package shared

import (
	"context"

	"party-rental/internal/domain/order"
)

// OrderRecord is one stored order as returned by a listing. Exactly one of
// Order and Err is set; Err means the record could not be decoded.
type OrderRecord struct {
	Key   string
	Order *order.Order
	Err   error
}

//go:generate mockgen -source=ports.go -destination=../../mock/storemock/order_store_mock.go -package=storemock

// OrderStore persists submitted orders. Implementations report failures as
// infra.RepositoryError so callers can tell not-found from other failures.
type OrderStore interface {
	Create(ctx context.Context, o *order.Order) (string, error)
	ListAll(ctx context.Context) ([]OrderRecord, error)
	UpdateStatus(ctx context.Context, id string, status order.Status) error
	FindByID(ctx context.Context, id string) (*order.Order, error)
}
