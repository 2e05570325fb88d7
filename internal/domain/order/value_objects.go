package order

import (
	"strings"

	"party-rental/internal/pkg/errs"
)

// Field names as they appear on the wire.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldLocation     = "location"
	FieldDeliveryDate = "deliveryDate"
	FieldDeliveryTime = "deliveryTime"
)

var ErrEmptyCart = errs.New("cart is empty")

// CheckoutDetails are the customer and delivery fields captured at checkout.
// Only presence is checked here; formats belong to whoever collects them.
type CheckoutDetails struct {
	Name         string
	Email        string
	Phone        string
	Location     string
	DeliveryDate string
	DeliveryTime string
}

func (d CheckoutDetails) MissingFields() []string {
	fields := []struct {
		name  string
		value string
	}{
		{FieldName, d.Name},
		{FieldEmail, d.Email},
		{FieldPhone, d.Phone},
		{FieldLocation, d.Location},
		{FieldDeliveryDate, d.DeliveryDate},
		{FieldDeliveryTime, d.DeliveryTime},
	}
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (d CheckoutDetails) Validate() error {
	if missing := d.MissingFields(); len(missing) > 0 {
		return NewValidationError("missing required fields", missing...)
	}
	return nil
}

// ValidationError names the offending fields. It matches errs.ErrValidation.
type ValidationError struct {
	Reason string
	Fields []string
}

func NewValidationError(reason string, fields ...string) error {
	return errs.Mark(&ValidationError{Reason: reason, Fields: fields}, errs.ErrValidation)
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error: " + e.Reason
	}
	return "validation error: " + e.Reason + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == errs.ErrValidation
}
