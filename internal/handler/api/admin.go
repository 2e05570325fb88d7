package api

import (
	"net/http"

	"party-rental/internal/domain/order"
	reqdto "party-rental/internal/handler/dto/request"
	resdto "party-rental/internal/handler/dto/response"
	"party-rental/internal/handler/httperr"
	"party-rental/internal/usecase"
	"party-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the operator view. It is not an authentication boundary.
type AdminHandler struct {
	board  *usecase.OrderBoard
	q      queries.OrderQueries
	policy order.TransitionPolicy
}

func NewAdminHandler(board *usecase.OrderBoard, q queries.OrderQueries, policy order.TransitionPolicy) *AdminHandler {
	return &AdminHandler{board: board, q: q, policy: policy}
}

// @Summary List orders
// @Description Reload all orders from the store, newest first; undecodable records are counted in skipped
// @Tags admin
// @Produce json
// @Success 200 {object} resdto.OrderListResponse
// @Failure 503 {object} httperr.Response
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	snap, err := h.board.Refresh(c.Request.Context())
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBoard(snap))
}

// @Summary Get order
// @Tags admin
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
	o, err := h.q.FindOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrder(o))
}

// @Summary Update order status
// @Description Set one of the six status labels; labels are matched exactly
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.UpdateStatusRequest true "New status"
// @Success 200 {object} resdto.StatusChangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req reqdto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id := c.Param("id")
	o, st, err := h.board.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatusChange(id, st, o))
}

// @Summary List statuses
// @Description The status labels in workflow order
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.StatusResponse
// @Router /admin/statuses [get]
func (h *AdminHandler) ListStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromStatuses(h.policy))
}
