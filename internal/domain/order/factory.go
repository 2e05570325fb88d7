package order

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"party-rental/internal/domain/cart"
	"party-rental/internal/pkg/clock"
	"party-rental/internal/pkg/errs"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID(now time.Time) string
}

// DefaultIDGenerator produces ids like ORD-1760693400000-9F2C41AB: creation
// millis plus 32 random bits.
type DefaultIDGenerator struct {
	Prefix string
}

func NewDefaultIDGenerator(prefix string) *DefaultIDGenerator {
	if prefix == "" {
		prefix = "ORD"
	}
	return &DefaultIDGenerator{Prefix: prefix}
}

func (g *DefaultIDGenerator) NewID(now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", g.Prefix, now.UnixMilli(), strings.ToUpper(random))
}

type Factory struct {
	Clock clock.Clock
	IDs   IDGenerator
}

func NewFactory(clock clock.Clock, ids IDGenerator) *Factory {
	return &Factory{
		Clock: clock,
		IDs:   ids,
	}
}

// CreateOrder validates checkout input and materializes a Pending order from a
// snapshot of the cart lines. The lines are copied so later cart edits never
// reach the order.
func (f *Factory) CreateOrder(details CheckoutDetails, lines []cart.Line) (*Order, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.Mark(ErrEmptyCart, errs.ErrValidation)
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	snapshot := slices.Clone(lines)
	// stored timestamps carry millisecond precision
	now := f.Clock.Now().UTC().Truncate(time.Millisecond)

	return &Order{
		id:        f.IDs.NewID(now),
		details:   trimDetails(details),
		items:     snapshot,
		totals:    cart.ComputeTotals(snapshot),
		status:    StatusPending,
		createdAt: now,
	}, nil
}

func validateLines(lines []cart.Line) error {
	seen := make(map[int]struct{}, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 {
			return NewValidationError(fmt.Sprintf("item %d has quantity %d", l.Item.ID, l.Quantity), "items")
		}
		if _, dup := seen[l.Item.ID]; dup {
			return NewValidationError(fmt.Sprintf("item %d appears twice", l.Item.ID), "items")
		}
		seen[l.Item.ID] = struct{}{}
	}
	return nil
}

func trimDetails(d CheckoutDetails) CheckoutDetails {
	return CheckoutDetails{
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.TrimSpace(d.Email),
		Phone:        strings.TrimSpace(d.Phone),
		Location:     strings.TrimSpace(d.Location),
		DeliveryDate: strings.TrimSpace(d.DeliveryDate),
		DeliveryTime: strings.TrimSpace(d.DeliveryTime),
	}
}
