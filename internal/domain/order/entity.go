package order

import (
	"slices"
	"time"

	"party-rental/internal/domain/cart"
)

// Order is a submitted reservation. Everything except the status is fixed at creation.
type Order struct {
	id        string
	details   CheckoutDetails
	items     []cart.Line
	totals    cart.Totals
	status    Status
	createdAt time.Time
}

// Reconstruct rebuilds an order read back from a store. Callers validate the
// status and timestamp before calling it.
func Reconstruct(
	id string,
	details CheckoutDetails,
	items []cart.Line,
	totals cart.Totals,
	status Status,
	createdAt time.Time,
) *Order {
	return &Order{
		id:        id,
		details:   details,
		items:     slices.Clone(items),
		totals:    totals,
		status:    status,
		createdAt: createdAt,
	}
}

// WithStatus returns a copy carrying the new status; the receiver is unchanged.
func (o *Order) WithStatus(s Status) *Order {
	next := *o
	next.items = slices.Clone(o.items)
	next.status = s
	return &next
}

func (o *Order) ID() string               { return o.id }
func (o *Order) Details() CheckoutDetails { return o.details }
func (o *Order) Items() []cart.Line       { return slices.Clone(o.items) }
func (o *Order) Totals() cart.Totals      { return o.totals }
func (o *Order) Status() Status           { return o.status }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }

func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.items {
		n += l.Quantity
	}
	return n
}
