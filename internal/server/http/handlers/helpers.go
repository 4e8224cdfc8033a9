package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/flash"
	"github.com/polkiloo/storefront/internal/server/http/middleware"
)

const (
	homePath         = "/"
	orderSummaryPath = "/order-summary"
	checkoutPath     = "/checkout"
	paymentPathBase  = "/payment/"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// redirectWith flashes text and answers with 303 See Other.
func redirectWith(c *gin.Context, messages *flash.Store, path string, level flash.Level, text string) {
	messages.Add(c, level, text)
	c.Redirect(http.StatusSeeOther, path)
}

func toItemResponse(item model.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Slug:        item.Slug,
		Description: item.Description,
		Price:       item.Price.StringFixed(2),
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          order.ID,
		Ordered:     order.Ordered,
		StartDate:   order.StartDate,
		OrderedDate: order.OrderedDate,
		Items:       make([]dto.OrderItemResponse, 0, len(order.Items)),
		Subtotal:    order.Subtotal().StringFixed(2),
		Total:       order.Total().StringFixed(2),
	}
	for _, oi := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			Item:     toItemResponse(oi.Item),
			Quantity: oi.Quantity,
			Total:    oi.Total().StringFixed(2),
		})
	}
	if order.Coupon != nil {
		resp.Coupon = &dto.CouponResponse{Code: order.Coupon.Code, Amount: order.Coupon.Amount.StringFixed(2)}
	}
	if order.Address != nil {
		resp.Address = &dto.AddressResponse{
			StreetAddress:    order.Address.StreetAddress,
			ApartmentAddress: order.Address.ApartmentAddress,
			Country:          order.Address.Country,
			Zip:              order.Address.Zip,
			Default:          order.Address.Default,
		}
	}
	return resp
}
