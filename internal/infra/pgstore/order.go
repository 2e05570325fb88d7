package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"party-rental/internal/domain/money"
	"party-rental/internal/domain/order"
	"party-rental/internal/infra"
	"party-rental/internal/infra/converter"
	"party-rental/internal/pkg/errs"
	"party-rental/internal/pkg/pgconv"
	"party-rental/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const uniqueViolation = "23505"

const selectColumns = `id, name, email, phone, location, delivery_date, delivery_time,
       items, subtotal, deposit, total, status, created_at`

type OrderStore struct {
	db     DBTX
	logger *slog.Logger
}

var _ shared.OrderStore = (*OrderStore)(nil)

func NewOrderStore(db DBTX, logger *slog.Logger) *OrderStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderStore{db: db, logger: logger}
}

func (s *OrderStore) Create(ctx context.Context, o *order.Order) (string, error) {
	items, err := json.Marshal(converter.LinesToDocuments(o.Items()))
	if err != nil {
		return "", infra.WrapRepoErr(s.logger, infra.KindMalformedRecord, "failed to encode order items", err)
	}

	d := o.Details()
	t := o.Totals()
	_, err = s.db.Exec(ctx,
		`INSERT INTO orders (id, name, email, phone, location, delivery_date, delivery_time,
		                     items, subtotal, deposit, total, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		o.ID(), d.Name, d.Email, d.Phone, d.Location, d.DeliveryDate, d.DeliveryTime,
		items,
		pgconv.DecimalToNumeric(t.Subtotal.Decimal()),
		pgconv.DecimalToNumeric(t.Deposit.Decimal()),
		pgconv.DecimalToNumeric(t.Total.Decimal()),
		o.Status().String(),
		pgconv.TimeToPgtype(o.CreatedAt()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "order id already used: "+o.ID(), err)
		}
		return "", infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to insert order", err)
	}
	return o.ID(), nil
}

func (s *OrderStore) ListAll(ctx context.Context) ([]shared.OrderRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT `+selectColumns+` FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list orders", err)
	}
	defer rows.Close()

	var records []shared.OrderRecord
	for rows.Next() {
		var r orderRow
		if err := rows.Scan(r.dest()...); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan order row", err)
		}
		o, err := r.toOrder()
		records = append(records, shared.OrderRecord{Key: r.key(), Order: o, Err: err})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to list orders", err)
	}
	return records, nil
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var r orderRow
	err := s.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM orders WHERE id = $1`, id).Scan(r.dest()...)
	if pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "order not found: "+id, nil)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read order", err)
	}

	o, err := r.toOrder()
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindMalformedRecord, "failed to decode order "+id, err)
	}
	return o, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status.String(),
	)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "order not found: "+id, nil)
	}
	return nil
}

// orderRow scans every column into nullable types so one bad row never
// aborts the result set.
type orderRow struct {
	ID           pgtype.Text
	Name         pgtype.Text
	Email        pgtype.Text
	Phone        pgtype.Text
	Location     pgtype.Text
	DeliveryDate pgtype.Text
	DeliveryTime pgtype.Text
	Items        []byte
	Subtotal     pgtype.Numeric
	Deposit      pgtype.Numeric
	Total        pgtype.Numeric
	Status       pgtype.Text
	CreatedAt    pgtype.Timestamptz
}

func (r *orderRow) dest() []any {
	return []any{
		&r.ID, &r.Name, &r.Email, &r.Phone, &r.Location, &r.DeliveryDate, &r.DeliveryTime,
		&r.Items, &r.Subtotal, &r.Deposit, &r.Total, &r.Status, &r.CreatedAt,
	}
}

func (r *orderRow) key() string {
	return r.ID.String
}

func (r *orderRow) toOrder() (*order.Order, error) {
	createdAt, err := pgconv.TimeFromPgtype(r.CreatedAt)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "created_at"), converter.ErrMalformedOrder)
	}

	var items []converter.ItemDocument
	if err := json.Unmarshal(r.Items, &items); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "items"), converter.ErrMalformedOrder)
	}

	doc := converter.OrderDocument{
		ID:           r.ID.String,
		Name:         r.Name.String,
		Email:        r.Email.String,
		Phone:        r.Phone.String,
		Location:     r.Location.String,
		DeliveryDate: r.DeliveryDate.String,
		DeliveryTime: r.DeliveryTime.String,
		Items:        items,
		Status:       r.Status.String,
		Timestamp:    converter.FormatTimestamp(createdAt),
	}
	for _, col := range []struct {
		name string
		src  pgtype.Numeric
		dst  *money.Money
	}{
		{"subtotal", r.Subtotal, &doc.Subtotal},
		{"deposit", r.Deposit, &doc.Deposit},
		{"total", r.Total, &doc.Total},
	} {
		if *col.dst, err = numericToMoney(col.src); err != nil {
			return nil, errs.Mark(errs.Wrap(err, col.name), converter.ErrMalformedOrder)
		}
	}

	return converter.DocumentToOrder(doc)
}

func numericToMoney(n pgtype.Numeric) (money.Money, error) {
	d, err := pgconv.DecimalFromNumeric(n)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(d)
}

