package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"khata/internal/service"
)

// CatalogHandler serves read access to the item catalog.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles GET /api/v1/items
// @Summary Search catalog items
// @Tags items
// @Produce json
// @Param q query string false "Name or HSN fragment"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.CatalogItem,meta=PagMeta} "Catalog items"
// @Router /items [get]
func (h *CatalogHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	items, total, err := h.catalogService.Search(c.Request.Context(), c.Query("q"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/items/:id
// @Summary Get a catalog item
// @Tags items
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=domain.CatalogItem} "Catalog item"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Router /items/{id} [get]
func (h *CatalogHandler) GetByID(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	item, err := h.catalogService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}
