package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/flash"
)

// CatalogHandler renders the product listing and product detail pages.
type CatalogHandler struct {
	facade   CatalogFacade
	messages *flash.Store
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade, messages *flash.Store) *CatalogHandler {
	return &CatalogHandler{facade: facade, messages: messages}
}

// Home handles GET /.
func (h *CatalogHandler) Home(c *gin.Context) {
	items, err := h.facade.Items(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	page := dto.HomePage{
		Messages: h.messages.Pop(c),
		Items:    make([]dto.ItemResponse, 0, len(items)),
	}
	for _, item := range items {
		page.Items = append(page.Items, toItemResponse(item))
	}
	c.JSON(http.StatusOK, page)
}

// Product handles GET /product/:slug.
func (h *CatalogHandler) Product(c *gin.Context) {
	item, err := h.facade.Product(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrItemNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.ProductPage{Messages: h.messages.Pop(c), Item: toItemResponse(*item)})
}
