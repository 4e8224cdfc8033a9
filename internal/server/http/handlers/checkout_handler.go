package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/flash"
)

// CheckoutHandler captures the shipping address and applies coupons.
type CheckoutHandler struct {
	facade   CheckoutFacade
	messages *flash.Store
	logger   *slog.Logger
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade, messages *flash.Store, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{facade: facade, messages: messages, logger: logger}
}

// Form handles GET /checkout.
func (h *CheckoutHandler) Form(c *gin.Context) {
	order, err := h.facade.CheckoutForm(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNoActiveOrder) {
			redirectWith(c, h.messages, homePath, flash.Info, "You don't have an active order")
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutPage{
		Messages:          h.messages.Pop(c),
		Order:             toOrderResponse(order),
		Form:              dto.AddressFormFields,
		CouponForm:        dto.CouponFormFields,
		DisplayCouponForm: true,
	})
}

// Submit handles POST /checkout.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	form := model.AddressForm{
		StreetAddress:    c.PostForm("street_address"),
		ApartmentAddress: c.PostForm("apartment_address"),
		Country:          c.PostForm("country"),
		Zip:              c.PostForm("zip"),
		SaveInfo:         checkbox(c.PostForm("save_info")),
		UseDefault:       checkbox(c.PostForm("use_default")),
		PaymentOption:    c.PostForm("payment_option"),
	}

	route, err := h.facade.SubmitCheckout(c.Request.Context(), CurrentUserID(c), form)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrIncompleteAddress):
			redirectWith(c, h.messages, checkoutPath, flash.Warning, "Please fill in the required fields")
		case errors.Is(err, domainErrors.ErrNoActiveOrder):
			redirectWith(c, h.messages, homePath, flash.Info, "You don't have an active order")
		case errors.Is(err, domainErrors.ErrNoDefaultAddress):
			redirectWith(c, h.messages, checkoutPath, flash.Info, "No default address available")
		case errors.Is(err, domainErrors.ErrInvalidPaymentOption):
			redirectWith(c, h.messages, checkoutPath, flash.Info, "Invalid payment option selected")
		default:
			h.logger.Error("checkout failed", slog.String("error", err.Error()))
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, paymentPathBase+route)
}

// ApplyCoupon handles POST /add-coupon.
func (h *CheckoutHandler) ApplyCoupon(c *gin.Context) {
	_, err := h.facade.ApplyCoupon(c.Request.Context(), CurrentUserID(c), c.PostForm("code"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCouponCode):
			redirectWith(c, h.messages, checkoutPath, flash.Warning, "Enter a valid coupon code")
		case errors.Is(err, domainErrors.ErrNoActiveOrder):
			redirectWith(c, h.messages, homePath, flash.Info, "You don't have an active order")
		case errors.Is(err, domainErrors.ErrCouponNotFound):
			redirectWith(c, h.messages, checkoutPath, flash.Info, "This coupon does not exist")
		default:
			h.logger.Error("apply coupon failed", slog.String("error", err.Error()))
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	redirectWith(c, h.messages, checkoutPath, flash.Success, "Successfully added coupon !")
}

// checkbox interprets an HTML checkbox value.
func checkbox(value string) bool {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "on") {
		return true
	}
	b, _ := strconv.ParseBool(value)
	return b
}
