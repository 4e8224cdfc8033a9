package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/flash"
)

// CartHandler manages the open order and renders order pages.
type CartHandler struct {
	facade   CartFacade
	messages *flash.Store
	logger   *slog.Logger
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade, messages *flash.Store, logger *slog.Logger) *CartHandler {
	return &CartHandler{facade: facade, messages: messages, logger: logger}
}

// Add handles POST /add-to-cart/:slug.
func (h *CartHandler) Add(c *gin.Context) {
	h.mutate(c, h.facade.AddToCart)
}

// Remove handles POST /remove-from-cart/:slug.
func (h *CartHandler) Remove(c *gin.Context) {
	h.mutate(c, h.facade.RemoveFromCart)
}

// RemoveSingle handles POST /remove-item-from-cart/:slug.
func (h *CartHandler) RemoveSingle(c *gin.Context) {
	h.mutate(c, h.facade.RemoveSingleItem)
}

type cartMutation func(ctx context.Context, userID int64, slug string) (*model.CartResult, error)

func (h *CartHandler) mutate(c *gin.Context, op cartMutation) {
	result, err := op(c.Request.Context(), CurrentUserID(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrItemNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("cart update failed", slog.String("slug", c.Param("slug")), slog.String("error", err.Error()))
		c.Status(http.StatusInternalServerError)
		return
	}

	title := result.Item.Title
	switch result.Outcome {
	case model.CartItemAdded:
		redirectWith(c, h.messages, orderSummaryPath, flash.Success, fmt.Sprintf("%s was added to your cart", title))
	case model.CartQuantityUpdated:
		redirectWith(c, h.messages, orderSummaryPath, flash.Success, fmt.Sprintf("%s's quantity was updated", title))
	case model.CartItemRemoved:
		redirectWith(c, h.messages, orderSummaryPath, flash.Success, fmt.Sprintf("%s was removed from your cart", title))
	case model.CartItemNotInCart:
		redirectWith(c, h.messages, orderSummaryPath, flash.Info, fmt.Sprintf("%s was not in your cart", title))
	case model.CartNoActiveOrder:
		redirectWith(c, h.messages, homePath, flash.Info, "You don't have an active order!")
	default:
		c.Status(http.StatusInternalServerError)
	}
}

// Summary handles GET /order-summary.
func (h *CartHandler) Summary(c *gin.Context) {
	order, err := h.facade.OrderSummary(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNoActiveOrder) {
			redirectWith(c, h.messages, homePath, flash.Success, "You dont have an active order")
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.OrderSummaryPage{Messages: h.messages.Pop(c), Order: toOrderResponse(order)})
}

// History handles GET /order-history.
func (h *CartHandler) History(c *gin.Context) {
	orders, err := h.facade.OrderHistory(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	page := dto.OrderHistoryPage{
		Messages: h.messages.Pop(c),
		Orders:   make([]dto.OrderResponse, 0, len(orders)),
	}
	for i := range orders {
		page.Orders = append(page.Orders, toOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, page)
}
