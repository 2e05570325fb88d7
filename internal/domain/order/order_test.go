package order_test

import (
	"regexp"
	"testing"
	"time"

	"party-rental/internal/domain/cart"
	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/money"
	"party-rental/internal/domain/order"
	"party-rental/internal/pkg/clock"
	"party-rental/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

type fixedIDs struct{ id string }

func (f fixedIDs) NewID(time.Time) string { return f.id }

func validDetails() order.CheckoutDetails {
	return order.CheckoutDetails{
		Name:         "Dana Smith",
		Email:        "dana@example.com",
		Phone:        "555-0100",
		Location:     "12 Elm Street",
		DeliveryDate: "2026-11-01",
		DeliveryTime: "10:00",
	}
}

func sampleLines() []cart.Line {
	c := cart.New()
	def := catalog.Default()
	chair, _ := def.Find(1)
	tent, _ := def.Find(2)
	c.AddItem(chair)
	c.AddItem(chair)
	c.AddItem(tent)
	return c.Lines()
}

func newFactory() *order.Factory {
	return order.NewFactory(clock.NewMockClock(fixedNow), fixedIDs{id: "ORD-1"})
}

func TestCreateOrder(t *testing.T) {
	t.Run("builds a pending order with totals", func(t *testing.T) {
		o, err := newFactory().CreateOrder(validDetails(), sampleLines())
		require.NoError(t, err)

		assert.Equal(t, "ORD-1", o.ID())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, fixedNow, o.CreatedAt())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, 3, o.ItemCount())
		assert.Equal(t, "60.00", o.Totals().Subtotal.String())
		assert.Equal(t, "120.00", o.Totals().Deposit.String())
		assert.Equal(t, "180.00", o.Totals().Total.String())
	})

	t.Run("later cart edits do not reach the order", func(t *testing.T) {
		c := cart.New()
		chair, _ := catalog.Default().Find(1)
		c.AddItem(chair)

		o, err := newFactory().CreateOrder(validDetails(), c.Lines())
		require.NoError(t, err)

		c.ChangeQuantity(1, 5)
		c.Clear()

		items := o.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)

		items[0].Quantity = 40
		assert.Equal(t, 1, o.Items()[0].Quantity)
	})

	t.Run("missing fields are reported by name", func(t *testing.T) {
		d := validDetails()
		d.Email = "   "
		d.DeliveryTime = ""

		_, err := newFactory().CreateOrder(d, sampleLines())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))

		var verr *order.ValidationError
		require.True(t, errs.As(err, &verr))
		assert.Equal(t, []string{order.FieldEmail, order.FieldDeliveryTime}, verr.Fields)
	})

	t.Run("empty cart is a validation error", func(t *testing.T) {
		_, err := newFactory().CreateOrder(validDetails(), nil)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, errs.Is(err, order.ErrEmptyCart))
	})

	t.Run("bad lines are rejected", func(t *testing.T) {
		chair, _ := catalog.Default().Find(1)
		for name, lines := range map[string][]cart.Line{
			"zero quantity": {{Item: chair, Quantity: 0}},
			"duplicate id":  {{Item: chair, Quantity: 1}, {Item: chair, Quantity: 2}},
		} {
			_, err := newFactory().CreateOrder(validDetails(), lines)
			assert.True(t, errs.Is(err, errs.ErrValidation), name)
		}
	})

	t.Run("created at is truncated to milliseconds", func(t *testing.T) {
		now := time.Date(2026, 10, 17, 9, 30, 0, 495978421, time.FixedZone("EDT", -4*60*60))
		f := order.NewFactory(clock.NewMockClock(now), fixedIDs{id: "ORD-1"})

		o, err := f.CreateOrder(validDetails(), sampleLines())
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 10, 17, 13, 30, 0, 495000000, time.UTC), o.CreatedAt())
	})

	t.Run("details are trimmed", func(t *testing.T) {
		d := validDetails()
		d.Name = "  Dana Smith  "
		o, err := newFactory().CreateOrder(d, sampleLines())
		require.NoError(t, err)
		assert.Equal(t, "Dana Smith", o.Details().Name)
	})
}

func TestDefaultIDGenerator(t *testing.T) {
	gen := order.NewDefaultIDGenerator("")
	id := gen.NewID(fixedNow)

	assert.Regexp(t, regexp.MustCompile(`^ORD-1792229400000-[0-9A-F]{8}$`), id)
	assert.NotEqual(t, id, gen.NewID(fixedNow))
}

func TestWithStatus(t *testing.T) {
	o, err := newFactory().CreateOrder(validDetails(), sampleLines())
	require.NoError(t, err)

	confirmed := o.WithStatus(order.StatusConfirmed)
	assert.Equal(t, order.StatusConfirmed, confirmed.Status())
	assert.Equal(t, order.StatusPending, o.Status())
	assert.Equal(t, o.ID(), confirmed.ID())
	assert.True(t, o.Totals().Total.Equal(confirmed.Totals().Total))
}

func TestParseStatus(t *testing.T) {
	for _, s := range order.Statuses() {
		got, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, label := range []string{"", "pending", "Shipped", " Pending"} {
		_, err := order.ParseStatus(label)
		assert.True(t, errs.Is(err, errs.ErrInvalidStatus), label)
	}
}

func TestStatusTone(t *testing.T) {
	assert.Equal(t, order.ToneSuccess, order.StatusCompleted.Tone())
	assert.Equal(t, order.ToneDanger, order.StatusCancelled.Tone())
	assert.Equal(t, order.TonePending, order.StatusDelivered.Tone())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusReturned.IsTerminal())
}

func TestTransitionPolicies(t *testing.T) {
	t.Run("permissive allows any known status", func(t *testing.T) {
		p := order.PermissivePolicy{}
		assert.False(t, p.Enforced())
		assert.NoError(t, p.Allow(order.StatusCompleted, order.StatusPending))
		assert.True(t, errs.Is(p.Allow(order.StatusPending, "Lost"), errs.ErrInvalidStatus))
	})

	t.Run("workflow", func(t *testing.T) {
		p := order.NewWorkflowPolicy()
		assert.True(t, p.Enforced())

		testCases := []struct {
			from, to order.Status
			ok       bool
		}{
			{order.StatusPending, order.StatusConfirmed, true},
			{order.StatusConfirmed, order.StatusDelivered, true},
			{order.StatusDelivered, order.StatusReturned, true},
			{order.StatusReturned, order.StatusCompleted, true},
			{order.StatusDelivered, order.StatusCancelled, true},
			{order.StatusPending, order.StatusPending, true},
			{order.StatusPending, order.StatusDelivered, false},
			{order.StatusCompleted, order.StatusCancelled, false},
			{order.StatusCancelled, order.StatusPending, false},
		}
		for _, tc := range testCases {
			err := p.Allow(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
			} else {
				assert.True(t, errs.Is(err, errs.ErrIllegalTransition), "%s -> %s", tc.from, tc.to)
			}
		}
		assert.Equal(t, []order.Status{order.StatusConfirmed, order.StatusCancelled}, p.Next(order.StatusPending))
		assert.Empty(t, p.Next(order.StatusCompleted))
	})
}

func TestReceipt(t *testing.T) {
	o, err := newFactory().CreateOrder(validDetails(), sampleLines())
	require.NoError(t, err)

	assert.Equal(t,
		"Order confirmed! Order ID: ORD-1\n\nTotal: $180.00\nDeposit (Refundable): $120.00",
		order.Receipt(o),
	)
}

func TestReconstructCopiesItems(t *testing.T) {
	lines := sampleLines()
	o := order.Reconstruct("ORD-9", validDetails(), lines, cart.ComputeTotals(lines), order.StatusReturned, fixedNow)
	lines[0].Quantity = 77

	assert.Equal(t, 2, o.Items()[0].Quantity)
	assert.True(t, o.Totals().Deposit.Equal(money.MustParse("120")))
}
