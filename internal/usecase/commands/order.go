package commands

import (
	"context"
	"log/slog"

	"party-rental/internal/domain/cart"
	"party-rental/internal/domain/order"
	"party-rental/internal/infra"
	"party-rental/internal/pkg/errs"
	"party-rental/internal/usecase/shared"
)

//go:generate mockgen -source=order.go -destination=../../mock/commandsmock/order_commands_mock.go -package=commandsmock

type OrderCommands interface {
	// SubmitOrder validates details, materializes a Pending order from lines and
	// persists it. The caller owns the cart and clears it on success.
	SubmitOrder(ctx context.Context, details order.CheckoutDetails, lines []cart.Line) (*order.Order, error)
	// SetStatus persists a new status label for an existing order.
	SetStatus(ctx context.Context, orderID, label string) (order.Status, error)
}

type orderCommandsImpl struct {
	store   shared.OrderStore
	factory *order.Factory
	policy  order.TransitionPolicy
	logger  *slog.Logger
}

func NewOrderCommands(
	store shared.OrderStore,
	factory *order.Factory,
	policy order.TransitionPolicy,
	logger *slog.Logger,
) OrderCommands {
	if policy == nil {
		policy = order.PermissivePolicy{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &orderCommandsImpl{
		store:   store,
		factory: factory,
		policy:  policy,
		logger:  logger,
	}
}

func (u *orderCommandsImpl) SubmitOrder(
	ctx context.Context,
	details order.CheckoutDetails,
	lines []cart.Line,
) (*order.Order, error) {
	o, err := u.factory.CreateOrder(details, lines)
	if err != nil {
		return nil, err
	}

	if _, err := u.store.Create(ctx, o); err != nil {
		u.logger.Error("failed to persist order",
			"order_id", o.ID(),
			"error", err)
		return nil, errs.Mark(errs.Wrapf(err, "persist order %s", o.ID()), errs.ErrPersistence)
	}

	u.logger.Info("order submitted",
		"order_id", o.ID(),
		"items", o.ItemCount(),
		"total", o.Totals().Total.String())
	return o, nil
}

func (u *orderCommandsImpl) SetStatus(ctx context.Context, orderID, label string) (order.Status, error) {
	next, err := order.ParseStatus(label)
	if err != nil {
		return "", err
	}

	if u.policy.Enforced() {
		current, err := u.store.FindByID(ctx, orderID)
		if err != nil {
			return "", u.translateStoreErr(err, orderID)
		}
		if err := u.policy.Allow(current.Status(), next); err != nil {
			return "", err
		}
	}

	if err := u.store.UpdateStatus(ctx, orderID, next); err != nil {
		return "", u.translateStoreErr(err, orderID)
	}

	u.logger.Info("order status updated",
		"order_id", orderID,
		"status", next.String())
	return next, nil
}

func (u *orderCommandsImpl) translateStoreErr(err error, orderID string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Wrapf(errs.ErrNotFound, "order %s", orderID)
	}
	u.logger.Error("order store failure",
		"order_id", orderID,
		"error", err)
	return errs.Mark(errs.Wrapf(err, "order %s", orderID), errs.ErrPersistence)
}
