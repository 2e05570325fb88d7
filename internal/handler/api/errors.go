package api

import (
	"net/http"

	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/order"
	"party-rental/internal/handler/httperr"
	"party-rental/internal/pkg/errs"
	"party-rental/internal/usecase"

	"github.com/gin-gonic/gin"
)

type validationDetail struct {
	Fields []string `json:"fields,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

// abortWithOrderError maps engine error kinds to HTTP statuses.
func abortWithOrderError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		var verr *order.ValidationError
		if errs.As(err, &verr) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed",
				validationDetail{Fields: verr.Fields, Reason: verr.Reason})
			return
		}
		if errs.Is(err, order.ErrEmptyCart) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cart is empty", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errs.Is(err, errs.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid status",
			gin.H{"allowed": order.Statuses()})
	case errs.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
	case errs.Is(err, usecase.ErrCartNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cart not found", nil)
	case errs.Is(err, catalog.ErrItemNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
	case errs.Is(err, errs.ErrIllegalTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Status change not allowed", nil)
	case errs.Is(err, usecase.ErrCheckoutInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Checkout already in progress", nil)
	case errs.Is(err, errs.ErrPersistence):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Order storage unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
