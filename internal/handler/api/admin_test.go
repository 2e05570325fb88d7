package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"party-rental/internal/domain/cart"
	"party-rental/internal/domain/catalog"
	"party-rental/internal/domain/order"
	"party-rental/internal/handler/api"
	"party-rental/internal/infra"
	"party-rental/internal/mock/storemock"
	"party-rental/internal/testutil/httptest"
	"party-rental/internal/usecase"
	"party-rental/internal/usecase/commands"
	"party-rental/internal/usecase/queries"
	"party-rental/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type orderBody struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Tone      string  `json:"tone"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp"`
}

type orderListBody struct {
	Orders  []orderBody `json:"orders"`
	Skipped int         `json:"skipped"`
}

type statusChangeBody struct {
	ID     string     `json:"id"`
	Status string     `json:"status"`
	Order  *orderBody `json:"order"`
}

type statusBody struct {
	Label    string   `json:"label"`
	Terminal bool     `json:"terminal"`
	Tone     string   `json:"tone"`
	Next     []string `json:"next"`
}

var adminBase = time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

func adminOrder(id string, hour int, status order.Status) *order.Order {
	tent, _ := catalog.Default().Find(2)
	lines := []cart.Line{{Item: tent, Quantity: 1}}
	return order.Reconstruct(id, order.CheckoutDetails{Name: "Customer " + id}, lines, cart.ComputeTotals(lines), status,
		adminBase.Add(time.Duration(hour)*time.Hour))
}

func notFound(id string) error {
	return infra.WrapRepoErr(nil, infra.KindNotFound, "order "+id+" not found", nil)
}

type AdminHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockStore *storemock.MockOrderStore
}

func (s *AdminHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = storemock.NewMockOrderStore(s.mockCtrl)
	s.router = s.newRouter(order.PermissivePolicy{})
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) newRouter(policy order.TransitionPolicy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	q := queries.NewOrderQueries(s.mockStore, nil)
	c := commands.NewOrderCommands(s.mockStore, nil, policy, nil)
	h := api.NewAdminHandler(usecase.NewOrderBoard(q, c, nil), q, policy)

	router.GET("/admin/orders", h.ListOrders)
	router.GET("/admin/orders/:id", h.GetOrder)
	router.PATCH("/admin/orders/:id/status", h.UpdateStatus)
	router.GET("/admin/statuses", h.ListStatuses)
	return router
}

// ================================================================================
// TestListOrders
// ================================================================================

func (s *AdminHandlerTestSuite) TestListOrders() {
	s.Run("success: newest first with malformed records counted", func() {
		s.mockStore.EXPECT().ListAll(gomock.Any()).Return([]shared.OrderRecord{
			{Key: "order:ORD-A", Order: adminOrder("ORD-A", 1, order.StatusPending)},
			{Key: "order:ORD-BAD", Err: errors.New("invalid character")},
			{Key: "order:ORD-C", Order: adminOrder("ORD-C", 3, order.StatusCompleted)},
			{Key: "order:ORD-B", Order: adminOrder("ORD-B", 2, order.StatusCancelled)},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/orders", nil)

		var body orderListBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Orders, 3)
		s.Equal("ORD-C", body.Orders[0].ID)
		s.Equal("ORD-B", body.Orders[1].ID)
		s.Equal("ORD-A", body.Orders[2].ID)
		s.Equal(1, body.Skipped)

		s.Equal("Completed", body.Orders[0].Status)
		s.Equal(string(order.ToneSuccess), body.Orders[0].Tone)
		s.Equal(string(order.ToneDanger), body.Orders[1].Tone)
		s.Equal(string(order.TonePending), body.Orders[2].Tone)
		s.Equal("2026-10-17T11:00:00.000Z", body.Orders[0].Timestamp)
		s.InDelta(150.0, body.Orders[0].Total, 0.001)
	})

	s.Run("success: empty store", func() {
		s.mockStore.EXPECT().ListAll(gomock.Any()).Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/orders", nil)

		var body orderListBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Orders)
		s.Zero(body.Skipped)
	})

	s.Run("error: store failure is 503", func() {
		s.mockStore.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("dial tcp: timeout")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/orders", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Order storage unavailable")
	})
}

// ================================================================================
// TestGetOrder
// ================================================================================

func (s *AdminHandlerTestSuite) TestGetOrder() {
	s.Run("success: returns the order", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), "ORD-A").
			Return(adminOrder("ORD-A", 0, order.StatusDelivered), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/orders/ORD-A", nil)

		var body orderBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ORD-A", body.ID)
		s.Equal("Delivered", body.Status)
		s.Equal("Customer ORD-A", body.Name)
	})

	s.Run("error: unknown id is 404", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), "ORD-X").Return(nil, notFound("ORD-X")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/orders/ORD-X", nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *AdminHandlerTestSuite) TestUpdateStatus() {
	url := "/admin/orders/ORD-A/status"

	s.Run("success: listed order is updated in place", func() {
		s.mockStore.EXPECT().ListAll(gomock.Any()).Return([]shared.OrderRecord{
			{Key: "order:ORD-A", Order: adminOrder("ORD-A", 1, order.StatusPending)},
		}, nil).Times(1)
		httptest.AssertSuccessResponse(s.T(),
			httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/orders", nil), http.StatusOK, nil)

		s.mockStore.EXPECT().UpdateStatus(gomock.Any(), "ORD-A", order.StatusConfirmed).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "Confirmed"})

		var body statusChangeBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ORD-A", body.ID)
		s.Equal("Confirmed", body.Status)
		s.Require().NotNil(body.Order)
		s.Equal("Confirmed", body.Order.Status)
	})

	s.Run("success: order missing from the list is read back after the write", func() {
		s.mockStore.EXPECT().UpdateStatus(gomock.Any(), "ORD-A", order.StatusPending).Return(nil).Times(1)
		s.mockStore.EXPECT().FindByID(gomock.Any(), "ORD-A").
			Return(adminOrder("ORD-A", 0, order.StatusPending), nil).Times(1)

		router := s.newRouter(order.PermissivePolicy{})
		rec := httptest.PerformRequest(s.T(), router, http.MethodPatch, url, map[string]any{"status": "Pending"})

		var body statusChangeBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Pending", body.Status)
	})

	s.Run("error: request and status validation", func() {
		testCases := []struct {
			name       string
			body       any
			expectCode int
			expectMsg  string
		}{
			{name: "missing status", body: map[string]any{}, expectCode: http.StatusBadRequest, expectMsg: "Invalid request"},
			{name: "unknown label", body: map[string]any{"status": "Shipped"}, expectCode: http.StatusBadRequest, expectMsg: "Invalid status"},
			{name: "wrong case", body: map[string]any{"status": "pending"}, expectCode: http.StatusBadRequest, expectMsg: "Invalid status"},
			{name: "padded label", body: map[string]any{"status": " Pending"}, expectCode: http.StatusBadRequest, expectMsg: "Invalid status"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, tc.body)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
			})
		}
	})

	s.Run("error: maps store errors to proper statuses", func() {
		testCases := []struct {
			name           string
			storeErr       error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "missing order", storeErr: notFound("ORD-A"), expectedStatus: http.StatusNotFound, expectedMsg: "Order not found"},
			{name: "store unavailable", storeErr: errors.New("connection reset"), expectedStatus: http.StatusServiceUnavailable, expectedMsg: "Order storage unavailable"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockStore.EXPECT().UpdateStatus(gomock.Any(), "ORD-A", order.StatusReturned).Return(tc.storeErr).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "Returned"})
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AdminHandlerTestSuite) TestUpdateStatusWithWorkflow() {
	router := s.newRouter(order.NewWorkflowPolicy())
	url := "/admin/orders/ORD-A/status"

	s.Run("success: allowed move", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), "ORD-A").
			Return(adminOrder("ORD-A", 0, order.StatusPending), nil).Times(2)
		s.mockStore.EXPECT().UpdateStatus(gomock.Any(), "ORD-A", order.StatusConfirmed).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPatch, url, map[string]any{"status": "Confirmed"})
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: move out of a terminal status is 409", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), "ORD-A").
			Return(adminOrder("ORD-A", 0, order.StatusCompleted), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPatch, url, map[string]any{"status": "Pending"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Status change not allowed")
	})
}

// ================================================================================
// TestListStatuses
// ================================================================================

func (s *AdminHandlerTestSuite) TestListStatuses() {
	s.Run("permissive policy lists labels without next", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/statuses", nil)

		var body []statusBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 6)
		labels := make([]string, len(body))
		for i, st := range body {
			labels[i] = st.Label
			s.Empty(st.Next)
		}
		s.Equal([]string{"Pending", "Confirmed", "Delivered", "Returned", "Completed", "Cancelled"}, labels)
		s.True(body[4].Terminal)
		s.True(body[5].Terminal)
		s.False(body[0].Terminal)
	})

	s.Run("workflow policy includes next", func() {
		router := s.newRouter(order.NewWorkflowPolicy())
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, "/admin/statuses", nil)

		var body []statusBody
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 6)
		s.Equal([]string{"Confirmed", "Cancelled"}, body[0].Next)
		s.Empty(body[4].Next)
	})
}
