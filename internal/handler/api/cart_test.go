package api_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/order"
	"party-rental/internal/handler/api"
	reqdto "party-rental/internal/handler/dto/request"
	"party-rental/internal/infra/kv"
	"party-rental/internal/infra/kvstore"
	"party-rental/internal/mock/storemock"
	"party-rental/internal/pkg/clock"
	"party-rental/internal/testutil"
	"party-rental/internal/testutil/httptest"
	"party-rental/internal/usecase"
	"party-rental/internal/usecase/commands"
	"party-rental/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type cartBody struct {
	CartID string `json:"cartId"`
	Items  []struct {
		ID        int     `json:"id"`
		Name      string  `json:"name"`
		Quantity  int     `json:"quantity"`
		LineTotal float64 `json:"lineTotal"`
	} `json:"items"`
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Deposit   float64 `json:"deposit"`
	Total     float64 `json:"total"`
	Changed   *bool   `json:"changed"`
}

type checkoutBody struct {
	Order struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Status    string  `json:"status"`
		Tone      string  `json:"tone"`
		Total     float64 `json:"total"`
		Timestamp string  `json:"timestamp"`
		Items     []struct {
			ID       int `json:"id"`
			Quantity int `json:"quantity"`
		} `json:"items"`
	} `json:"order"`
	Message string `json:"message"`
}

var cartNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newCartRouter(store shared.OrderStore) (*gin.Engine, *usecase.CartSessions) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	factory := order.NewFactory(clock.NewMockClock(cartNow), order.NewDefaultIDGenerator("ORD"))
	cmds := commands.NewOrderCommands(store, factory, nil, nil)
	sessions := usecase.NewCartSessions(catalog.Default(), cmds, nil, 0, nil)
	h := api.NewCartHandler(sessions)

	router.POST("/carts", h.Create)
	router.GET("/carts/:id", h.Get)
	router.DELETE("/carts/:id", h.Clear)
	router.POST("/carts/:id/items", h.AddItem)
	router.PATCH("/carts/:id/items/:itemId", h.ChangeQuantity)
	router.DELETE("/carts/:id/items/:itemId", h.RemoveItem)
	router.POST("/carts/:id/checkout", h.Checkout)
	return router, sessions
}

type CartHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *kvstore.OrderStore
}

func (s *CartHandlerTestSuite) SetupTest() {
	s.store = kvstore.NewOrderStore(kv.NewMemoryStore(), nil)
	s.router, _ = newCartRouter(s.store)
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

func validCheckout() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		Name:         "Dana Whitfield",
		Email:        "dana@example.com",
		Phone:        "555-0100",
		Location:     "12 Orchard Lane",
		DeliveryDate: "2026-10-24",
		DeliveryTime: "14:00",
	}
}

func (s *CartHandlerTestSuite) openCart() string {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/carts", nil)
	var body cartBody
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
	s.Require().NotEmpty(body.CartID)
	return body.CartID
}

func (s *CartHandlerTestSuite) add(cartID string, itemID int) cartBody {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/carts/"+cartID+"/items",
		reqdto.AddItemRequest{ItemID: itemID})
	var body cartBody
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return body
}

// ================================================================================
// Cart editing
// ================================================================================

func (s *CartHandlerTestSuite) TestCartEditing() {
	s.Run("success: new cart is empty", func() {
		id := s.openCart()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/carts/"+id, nil)

		var body cartBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Zero(body.Total)
		s.Nil(body.Changed)
	})

	s.Run("success: two chairs and a tent total 180", func() {
		id := s.openCart()
		s.add(id, 1)
		s.add(id, 1)
		body := s.add(id, 2)

		s.Require().Len(body.Items, 2)
		s.Equal(1, body.Items[0].ID)
		s.Equal(2, body.Items[0].Quantity)
		s.Equal(3, body.ItemCount)
		s.InDelta(60.0, body.Subtotal, 0.001)
		s.InDelta(120.0, body.Deposit, 0.001)
		s.InDelta(180.0, body.Total, 0.001)
		s.Require().NotNil(body.Changed)
		s.True(*body.Changed)
	})

	s.Run("success: decrement to zero removes the line and increment does not resurrect it", func() {
		id := s.openCart()
		s.add(id, 3)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/carts/"+id+"/items/3", map[string]any{"delta": -1})
		var body cartBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/carts/"+id+"/items/3", map[string]any{"delta": 1})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Require().NotNil(body.Changed)
		s.False(*body.Changed)
	})

	s.Run("success: remove and clear", func() {
		id := s.openCart()
		s.add(id, 1)
		s.add(id, 4)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/carts/"+id+"/items/1", nil)
		var body cartBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal(4, body.Items[0].ID)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/carts/"+id, nil)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.True(*body.Changed)
	})

	s.Run("error: request validation", func() {
		id := s.openCart()
		testCases := []struct {
			name       string
			method     string
			path       string
			body       any
			expectCode int
			expectMsg  string
		}{
			{name: "malformed cart id", method: http.MethodGet, path: "/carts/not-a-uuid", expectCode: http.StatusBadRequest, expectMsg: "Invalid cart id"},
			{name: "unknown cart", method: http.MethodGet, path: "/carts/" + uuid.NewString(), expectCode: http.StatusNotFound, expectMsg: "Cart not found"},
			{name: "missing itemId", method: http.MethodPost, path: "/carts/" + id + "/items", body: map[string]any{}, expectCode: http.StatusBadRequest},
			{name: "itemId zero", method: http.MethodPost, path: "/carts/" + id + "/items", body: map[string]any{"itemId": 0}, expectCode: http.StatusBadRequest},
			{name: "unknown catalog item", method: http.MethodPost, path: "/carts/" + id + "/items", body: map[string]any{"itemId": 999}, expectCode: http.StatusNotFound, expectMsg: "Item not found"},
			{name: "missing delta", method: http.MethodPatch, path: "/carts/" + id + "/items/1", body: map[string]any{}, expectCode: http.StatusBadRequest},
			{name: "delta above bound", method: http.MethodPatch, path: "/carts/" + id + "/items/1", body: map[string]any{"delta": 10000}, expectCode: http.StatusBadRequest},
			{name: "delta below bound", method: http.MethodPatch, path: "/carts/" + id + "/items/1", body: map[string]any{"delta": -10000}, expectCode: http.StatusBadRequest},
			{name: "non numeric item path", method: http.MethodPatch, path: "/carts/" + id + "/items/abc", body: map[string]any{"delta": 1}, expectCode: http.StatusBadRequest, expectMsg: "Invalid item id"},
			{name: "negative item path", method: http.MethodDelete, path: "/carts/" + id + "/items/-2", expectCode: http.StatusBadRequest, expectMsg: "Invalid item id"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, tc.method, tc.path, tc.body)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})
}

// ================================================================================
// Checkout
// ================================================================================

func (s *CartHandlerTestSuite) TestCheckout() {
	s.Run("success: creates a pending order and clears the cart", func() {
		id := s.openCart()
		s.add(id, 1)
		s.add(id, 1)
		s.add(id, 2)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/carts/"+id+"/checkout", validCheckout())

		var body checkoutBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Regexp(regexp.MustCompile(`^ORD-\d+-[0-9A-F]{8}$`), body.Order.ID)
		s.Equal("Pending", body.Order.Status)
		s.Equal("Dana Whitfield", body.Order.Name)
		s.InDelta(180.0, body.Order.Total, 0.001)
		s.Equal("2026-10-17T09:30:00.000Z", body.Order.Timestamp)
		s.Len(body.Order.Items, 2)
		s.Equal("Order confirmed! Order ID: "+body.Order.ID+"\n\nTotal: $180.00\nDeposit (Refundable): $120.00", body.Message)

		stored, err := s.store.FindByID(context.Background(), body.Order.ID)
		s.Require().NoError(err)
		s.Equal(order.StatusPending, stored.Status())

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/carts/"+id, nil)
		var cart cartBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cart)
		s.Empty(cart.Items)
	})

	s.Run("error: missing fields are named in the detail", func() {
		id := s.openCart()
		s.add(id, 1)

		req := testutil.DtoMap(s.T(), validCheckout(), testutil.Field("name", nil), testutil.Field("deliveryTime", ""))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/carts/"+id+"/checkout", req)

		body := httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
		s.Contains(string(body.Detail), `"name"`)
		s.Contains(string(body.Detail), `"deliveryTime"`)

		rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/carts/"+id, nil)
		var cart cartBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &cart)
		s.Len(cart.Items, 1, "cart must survive a rejected checkout")
	})

	s.Run("error: malformed formats are rejected before the engine", func() {
		id := s.openCart()
		s.add(id, 1)

		testCases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "bad email", mutate: testutil.Field("email", "not-an-email")},
			{name: "bad date", mutate: testutil.Field("deliveryDate", "24/10/2026")},
			{name: "bad time", mutate: testutil.Field("deliveryTime", "2pm")},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				req := testutil.DtoMap(s.T(), validCheckout(), tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/carts/"+id+"/checkout", req)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: empty cart", func() {
		id := s.openCart()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/carts/"+id+"/checkout", validCheckout())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Cart is empty")
	})
}

func TestCheckoutStoreFailureKeepsCart(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemock.NewMockOrderStore(ctrl)
	router, sessions := newCartRouter(store)

	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused")).Times(1)

	view := sessions.Open()
	_, _, err := sessions.AddItem(view.ID, 2)
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.PerformRequest(t, router, http.MethodPost, "/carts/"+view.ID.String()+"/checkout", validCheckout())
	httptest.AssertErrorResponse(t, rec, http.StatusServiceUnavailable, "Order storage unavailable")

	after, err := sessions.View(view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(after.Lines) != 1 {
		t.Fatalf("cart lost its lines after a failed checkout: %+v", after.Lines)
	}
}
