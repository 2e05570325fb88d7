package queries

import (
	"log/slog"

	"party-rental/internal/infra"
	"party-rental/internal/pkg/errs"
)

func translateStoreErr(logger *slog.Logger, err error, orderID string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Wrapf(errs.ErrNotFound, "order %s", orderID)
	}
	logger.Error("order store failure",
		"order_id", orderID,
		"error", err)
	return errs.Mark(errs.Wrapf(err, "order %s", orderID), errs.ErrPersistence)
}
