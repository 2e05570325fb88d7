package docstore

import (
	"context"
	"log/slog"

	"party-rental/internal/domain/order"
	"party-rental/internal/infra"
	"party-rental/internal/infra/converter"
	"party-rental/internal/pkg/errs"
	"party-rental/internal/usecase/shared"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// OrderStore keeps one document per order, keyed by order id.
type OrderStore struct {
	orders *firestore.CollectionRef
	logger *slog.Logger
}

var _ shared.OrderStore = (*OrderStore)(nil)

func NewOrderStore(client *firestore.Client, collection string, logger *slog.Logger) *OrderStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderStore{
		orders: client.Collection(collection),
		logger: logger,
	}
}

func (s *OrderStore) Create(ctx context.Context, o *order.Order) (string, error) {
	_, err := s.orders.Doc(o.ID()).Create(ctx, toDocument(o))
	if status.Code(err) == codes.AlreadyExists {
		return "", infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "order id already used: "+o.ID(), err)
	}
	if err != nil {
		return "", infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to create order document", err)
	}
	return o.ID(), nil
}

func (s *OrderStore) ListAll(ctx context.Context) ([]shared.OrderRecord, error) {
	iter := s.orders.Documents(ctx)
	defer iter.Stop()

	var records []shared.OrderRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list order documents", err)
		}
		o, err := decode(snap)
		records = append(records, shared.OrderRecord{Key: snap.Ref.ID, Order: o, Err: err})
	}
	return records, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (*order.Order, error) {
	snap, err := s.orders.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "order not found: "+id, nil)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read order document", err)
	}

	o, err := decode(snap)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindMalformedRecord, "failed to decode order "+id, err)
	}
	return o, nil
}

// UpdateStatus touches only the status field; Update fails with NotFound for
// a missing document.
func (s *OrderStore) UpdateStatus(ctx context.Context, id string, st order.Status) error {
	_, err := s.orders.Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: st.String()},
	})
	if status.Code(err) == codes.NotFound {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "order not found: "+id, nil)
	}
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to update order status", err)
	}
	return nil
}

func decode(snap *firestore.DocumentSnapshot) (*order.Order, error) {
	var d orderDocument
	if err := snap.DataTo(&d); err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "document %s", snap.Ref.ID), converter.ErrMalformedOrder)
	}
	return fromDocument(snap.Ref.ID, d)
}
