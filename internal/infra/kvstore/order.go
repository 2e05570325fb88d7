package kvstore

import (
	"context"
	"log/slog"
	"sync"

	"party-rental/internal/domain/order"
	"party-rental/internal/infra"
	"party-rental/internal/infra/converter"
	"party-rental/internal/infra/kv"
	"party-rental/internal/pkg/errs"
	"party-rental/internal/usecase/shared"
)

// KeyPrefix namespaces orders inside the key-value store.
const KeyPrefix = "order:"

func Key(id string) string {
	return KeyPrefix + id
}

// OrderStore keeps each order as one JSON value under order:<id>.
type OrderStore struct {
	kv     kv.Store
	logger *slog.Logger

	// serializes read-modify-write status updates within this process
	mu sync.Mutex
}

var _ shared.OrderStore = (*OrderStore)(nil)

func NewOrderStore(store kv.Store, logger *slog.Logger) *OrderStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderStore{kv: store, logger: logger}
}

func (s *OrderStore) Create(ctx context.Context, o *order.Order) (string, error) {
	data, err := converter.EncodeOrder(o)
	if err != nil {
		return "", infra.WrapRepoErr(s.logger, infra.KindMalformedRecord, "failed to encode order", err)
	}

	written, err := s.kv.SetIfAbsent(ctx, Key(o.ID()), data)
	if err != nil {
		return "", infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to store order", err)
	}
	if !written {
		return "", infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "order id already used: "+o.ID(), nil)
	}
	return o.ID(), nil
}

func (s *OrderStore) ListAll(ctx context.Context) ([]shared.OrderRecord, error) {
	entries, err := s.kv.List(ctx, KeyPrefix)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list orders", err)
	}

	records := make([]shared.OrderRecord, 0, len(entries))
	for _, e := range entries {
		o, err := converter.DecodeOrder(e.Value)
		if err == nil && Key(o.ID()) != e.Key {
			err = errs.Wrapf(converter.ErrMalformedOrder, "id %q does not match key", o.ID())
			o = nil
		}
		records = append(records, shared.OrderRecord{Key: e.Key, Order: o, Err: err})
	}
	return records, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (*order.Order, error) {
	data, err := s.kv.Get(ctx, Key(id))
	if errs.Is(err, kv.ErrKeyNotFound) {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "order not found: "+id, nil)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read order", err)
	}

	o, err := converter.DecodeOrder(data)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindMalformedRecord, "failed to decode order "+id, err)
	}
	return o, nil
}

// UpdateStatus rewrites the stored value with the new status. The key-value
// contract has no partial update, so the value is read, patched and written back.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	data, err := converter.EncodeOrder(current.WithStatus(status))
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindMalformedRecord, "failed to encode order", err)
	}
	if err := s.kv.Set(ctx, Key(id), data); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to update order status", err)
	}
	return nil
}
