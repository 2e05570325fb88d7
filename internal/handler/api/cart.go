package api

import (
	"net/http"
	"strconv"

	reqdto "party-rental/internal/handler/dto/request"
	resdto "party-rental/internal/handler/dto/response"
	"party-rental/internal/handler/httperr"
	"party-rental/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	sessions *usecase.CartSessions
}

func NewCartHandler(sessions *usecase.CartSessions) *CartHandler {
	return &CartHandler{sessions: sessions}
}

// @Summary Open cart
// @Description Start an empty cart session
// @Tags carts
// @Produce json
// @Success 201 {object} resdto.CartResponse
// @Router /carts [post]
func (h *CartHandler) Create(c *gin.Context) {
	c.JSON(http.StatusCreated, resdto.FromCartView(h.sessions.Open()))
}

// @Summary Get cart
// @Tags carts
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /carts/{id} [get]
func (h *CartHandler) Get(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	view, err := h.sessions.View(id)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Add item
// @Description Add one unit of a catalog item; stock is not checked
// @Tags carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param request body reqdto.AddItemRequest true "Item to add"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /carts/{id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	var req reqdto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, changed, err := h.sessions.AddItem(id, req.ItemID)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartChange(view, changed))
}

// @Summary Change quantity
// @Description Add delta to a line; a result of zero or less removes it
// @Tags carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param itemId path int true "Catalog item ID"
// @Param request body reqdto.ChangeQuantityRequest true "Quantity delta"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /carts/{id}/items/{itemId} [patch]
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	var req reqdto.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, changed, err := h.sessions.ChangeQuantity(id, itemID, *req.Delta)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartChange(view, changed))
}

// @Summary Remove item
// @Tags carts
// @Produce json
// @Param id path string true "Cart ID"
// @Param itemId path int true "Catalog item ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /carts/{id}/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	view, changed, err := h.sessions.RemoveItem(id, itemID)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartChange(view, changed))
}

// @Summary Clear cart
// @Tags carts
// @Produce json
// @Param id path string true "Cart ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /carts/{id} [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	view, changed, err := h.sessions.Clear(id)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartChange(view, changed))
}

// @Summary Checkout
// @Description Submit the cart as a Pending order; the cart is cleared only on success
// @Tags carts
// @Accept json
// @Produce json
// @Param id path string true "Cart ID"
// @Param request body reqdto.CheckoutRequest true "Customer and delivery details"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /carts/{id}/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	details, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	o, err := h.sessions.Checkout(c.Request.Context(), id, details)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCheckout(o))
}

func cartID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cart id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func itemIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("itemId"))
	if err != nil || id <= 0 {
		if err == nil {
			err = strconv.ErrRange
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid item id", nil)
		return 0, false
	}
	return id, true
}
