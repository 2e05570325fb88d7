package api

import (
	"net/http"

	"party-rental/internal/domain/catalog"
	resdto "party-rental/internal/handler/dto/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// @Summary List catalog
// @Description List every rentable item in display order
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.CatalogItemResponse
// @Router /catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalogItems(h.catalog.Items()))
}
