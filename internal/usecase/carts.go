package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"party-rental/internal/domain/cart"
	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/order"
	"party-rental/internal/pkg/clock"
	"party-rental/internal/pkg/errs"
	"party-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound       = errs.New("cart not found")
	ErrCheckoutInProgress = errs.New("checkout already in progress")
)

// CartView is a read-only copy of a session's cart.
type CartView struct {
	ID     uuid.UUID
	Lines  []cart.Line
	Totals cart.Totals
}

type cartSession struct {
	mu          sync.Mutex
	cart        *cart.Cart
	checkingOut bool
	lastUsed    time.Time
}

// expired is called with mu held. A cart in checkout never expires.
func (s *cartSession) expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && !s.checkingOut && now.Sub(s.lastUsed) > ttl
}

func (s *cartSession) view(id uuid.UUID) CartView {
	return CartView{
		ID:     id,
		Lines:  s.cart.Lines(),
		Totals: s.cart.ComputeTotals(),
	}
}

// CartSessions owns one cart per customer session. Each cart is guarded by its
// own lock; while a checkout is in flight the cart is frozen so the submitted
// snapshot is exactly what gets cleared afterwards.
//
// Carts untouched for longer than the idle TTL are forgotten. Expired carts
// are rejected on access and swept from the map when new carts are opened.
type CartSessions struct {
	mu        sync.RWMutex
	sessions  map[uuid.UUID]*cartSession
	lastSweep time.Time

	catalog *catalog.Catalog
	orders  commands.OrderCommands
	clock   clock.Clock
	idleTTL time.Duration
	logger  *slog.Logger
}

// NewCartSessions keeps carts forever when idleTTL is zero.
func NewCartSessions(
	cat *catalog.Catalog,
	orders commands.OrderCommands,
	clk clock.Clock,
	idleTTL time.Duration,
	logger *slog.Logger,
) *CartSessions {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CartSessions{
		sessions: make(map[uuid.UUID]*cartSession),
		catalog:  cat,
		orders:   orders,
		clock:    clk,
		idleTTL:  idleTTL,
		logger:   logger,
	}
}

func (c *CartSessions) Open() CartView {
	id := uuid.New()
	now := c.clock.Now()
	s := &cartSession{cart: cart.New(), lastUsed: now}

	c.mu.Lock()
	c.sweepLocked(now)
	c.sessions[id] = s
	c.mu.Unlock()

	return s.view(id)
}

// Len reports the carts currently held, expired ones not yet swept included.
func (c *CartSessions) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

func (c *CartSessions) View(id uuid.UUID) (CartView, error) {
	s, err := c.session(id)
	if err != nil {
		return CartView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(id), nil
}

func (c *CartSessions) AddItem(id uuid.UUID, itemID int) (CartView, bool, error) {
	item, err := c.catalog.Find(itemID)
	if err != nil {
		return CartView{}, false, err
	}
	return c.mutate(id, func(ct *cart.Cart) bool {
		return ct.AddItem(item)
	})
}

func (c *CartSessions) ChangeQuantity(id uuid.UUID, itemID, delta int) (CartView, bool, error) {
	return c.mutate(id, func(ct *cart.Cart) bool {
		return ct.ChangeQuantity(itemID, delta)
	})
}

func (c *CartSessions) RemoveItem(id uuid.UUID, itemID int) (CartView, bool, error) {
	return c.mutate(id, func(ct *cart.Cart) bool {
		return ct.RemoveItem(itemID)
	})
}

func (c *CartSessions) Clear(id uuid.UUID) (CartView, bool, error) {
	return c.mutate(id, func(ct *cart.Cart) bool {
		return ct.Clear()
	})
}

// Checkout submits the cart as an order and clears it only when the order was
// persisted. A second checkout on the same cart while one is running fails
// with ErrCheckoutInProgress.
func (c *CartSessions) Checkout(ctx context.Context, id uuid.UUID, details order.CheckoutDetails) (*order.Order, error) {
	s, err := c.session(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.checkingOut {
		s.mu.Unlock()
		return nil, errs.Wrapf(ErrCheckoutInProgress, "cart %s", id)
	}
	s.checkingOut = true
	lines := s.cart.Lines()
	s.mu.Unlock()

	o, err := c.submit(ctx, s, details, lines)
	if err != nil {
		return nil, err
	}

	c.logger.Info("cart checked out",
		"cart_id", id.String(),
		"order_id", o.ID())
	return o, nil
}

// submit always unfreezes the cart, even when SubmitOrder panics, and clears
// it in the same critical section only when the order was stored.
func (c *CartSessions) submit(ctx context.Context, s *cartSession, details order.CheckoutDetails, lines []cart.Line) (o *order.Order, err error) {
	defer func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.checkingOut = false
		s.lastUsed = c.clock.Now()
		if err == nil && o != nil {
			s.cart.Clear()
		}
	}()
	return c.orders.SubmitOrder(ctx, details, lines)
}

func (c *CartSessions) mutate(id uuid.UUID, fn func(*cart.Cart) bool) (CartView, bool, error) {
	s, err := c.session(id)
	if err != nil {
		return CartView{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return CartView{}, false, errs.Wrapf(ErrCheckoutInProgress, "cart %s", id)
	}
	changed := fn(s.cart)
	return s.view(id), changed, nil
}

func (c *CartSessions) session(id uuid.UUID) (*cartSession, error) {
	c.mu.RLock()
	s, ok := c.sessions[id]
	c.mu.RUnlock()
	if !ok {
		return nil, errs.Wrapf(ErrCartNotFound, "cart %s", id)
	}

	now := c.clock.Now()
	s.mu.Lock()
	if s.expired(now, c.idleTTL) {
		s.mu.Unlock()
		c.evict(id, s)
		return nil, errs.Wrapf(ErrCartNotFound, "cart %s expired", id)
	}
	s.lastUsed = now
	s.mu.Unlock()
	return s, nil
}

func (c *CartSessions) evict(id uuid.UUID, s *cartSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessions[id] == s {
		delete(c.sessions, id)
	}
}

// sweepLocked drops expired carts at most once per idle TTL. c.mu must be held.
func (c *CartSessions) sweepLocked(now time.Time) {
	if c.idleTTL <= 0 || now.Sub(c.lastSweep) < c.idleTTL {
		return
	}
	c.lastSweep = now

	evicted := 0
	for id, s := range c.sessions {
		s.mu.Lock()
		expired := s.expired(now, c.idleTTL)
		s.mu.Unlock()
		if expired {
			delete(c.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		c.logger.Debug("idle carts evicted", "count", evicted, "remaining", len(c.sessions))
	}
}
