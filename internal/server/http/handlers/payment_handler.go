package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/server/http/dto"
	"github.com/polkiloo/storefront/internal/server/http/flash"
)

const (
	maxWebhookBody  = 65536
	signatureHeader = "Stripe-Signature"
)

// PaymentHandler charges the open order and completes orders paid elsewhere.
type PaymentHandler struct {
	facade   PaymentFacade
	messages *flash.Store
	logger   *slog.Logger
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade, messages *flash.Store, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{facade: facade, messages: messages, logger: logger}
}

// Page handles GET /payment/:payment_option.
func (h *PaymentHandler) Page(c *gin.Context) {
	order, err := h.facade.PaymentPage(c.Request.Context(), CurrentUserID(c), c.Param("payment_option"))
	if err != nil {
		h.redirectOnOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PaymentPage{
		Messages:          h.messages.Pop(c),
		Order:             toOrderResponse(order),
		Total:             order.Total().StringFixed(2),
		DisplayCouponForm: false,
	})
}

// Pay handles POST /payment/:payment_option.
func (h *PaymentHandler) Pay(c *gin.Context) {
	token := c.PostForm("stripeToken")
	if token == "" {
		redirectWith(c, h.messages, homePath, flash.Warning, "Invalid request")
		return
	}

	_, err := h.facade.Pay(c.Request.Context(), CurrentUserID(c), c.Param("payment_option"), token)
	if err != nil {
		var payErr *domainErrors.PaymentError
		switch {
		case errors.As(err, &payErr):
			h.logger.Error("payment rejected", slog.String("kind", string(payErr.Kind)), slog.String("error", err.Error()))
			redirectWith(c, h.messages, homePath, flash.Warning, paymentErrorMessage(payErr))
		case errors.Is(err, domainErrors.ErrEmptyOrder):
			redirectWith(c, h.messages, homePath, flash.Info, "Your cart is empty")
		case errors.Is(err, domainErrors.ErrNothingToCharge):
			redirectWith(c, h.messages, checkoutPath, flash.Info, "Your order total is zero, there is nothing to charge")
		case errors.Is(err, domainErrors.ErrPaymentMismatch):
			redirectWith(c, h.messages, homePath, flash.Error, "Your cart changed during payment, we were notified")
		default:
			h.redirectOnOrderError(c, err)
		}
		return
	}

	redirectWith(c, h.messages, homePath, flash.Success, "Payment was successful")
}

// Complete handles POST /payment-complete.
func (h *PaymentHandler) Complete(c *gin.Context) {
	var req dto.PaymentCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	_, err := h.facade.CompletePayment(c.Request.Context(), CurrentUserID(c), int64(req.OrderID), req.PayID)
	if err != nil {
		var payErr *domainErrors.PaymentError
		switch {
		case errors.Is(err, domainErrors.ErrNoActiveOrder):
			redirectWith(c, h.messages, homePath, flash.Info, "You don't have an active order")
		case errors.Is(err, domainErrors.ErrPaymentMismatch):
			h.logger.Warn("payment could not be verified", slog.Int64("order_id", int64(req.OrderID)), slog.String("charge_id", req.PayID))
			redirectWith(c, h.messages, homePath, flash.Error, "We could not verify your payment")
		case errors.As(err, &payErr):
			redirectWith(c, h.messages, homePath, flash.Warning, paymentErrorMessage(payErr))
		default:
			h.logger.Error("payment complete failed", slog.String("error", err.Error()))
			redirectWith(c, h.messages, homePath, flash.Error, unknownPaymentError)
		}
		return
	}

	redirectWith(c, h.messages, homePath, flash.Success, "Payment was successful")
}

// Webhook handles POST /webhook/stripe.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		c.Status(http.StatusRequestEntityTooLarge)
		return
	}

	if err := h.facade.HandleGatewayEvent(c.Request.Context(), payload, c.GetHeader(signatureHeader)); err != nil {
		if errors.Is(err, domainErrors.ErrInvalidSignature) {
			c.Status(http.StatusBadRequest)
			return
		}
		h.logger.Error("webhook processing failed", slog.String("error", err.Error()))
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *PaymentHandler) redirectOnOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidPaymentOption):
		redirectWith(c, h.messages, checkoutPath, flash.Info, "Invalid payment option selected")
	case errors.Is(err, domainErrors.ErrAddressRequired):
		redirectWith(c, h.messages, checkoutPath, flash.Warning, "You have not added an address")
	case errors.Is(err, domainErrors.ErrNoActiveOrder):
		redirectWith(c, h.messages, homePath, flash.Info, "You don't have an active order")
	default:
		h.logger.Error("payment failed", slog.String("error", err.Error()))
		redirectWith(c, h.messages, homePath, flash.Error, unknownPaymentError)
	}
}

const unknownPaymentError = "A serious error occured we were notified"

func paymentErrorMessage(err *domainErrors.PaymentError) string {
	switch err.Kind {
	case domainErrors.PaymentErrorCard:
		if err.Message != "" {
			return err.Message
		}
		return "Your card was declined"
	case domainErrors.PaymentErrorInvalidRequest:
		return "Invalid request"
	case domainErrors.PaymentErrorAuthentication:
		return "Authentication error"
	case domainErrors.PaymentErrorConnection:
		return "Check your connection"
	case domainErrors.PaymentErrorGateway:
		return "There was an error please try again"
	default:
		return unknownPaymentError
	}
}
