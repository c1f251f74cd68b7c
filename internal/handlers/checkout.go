// internal/handlers/checkout.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/letmemugyou/backend/internal/services"
	"github.com/letmemugyou/backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	orderService    *services.OrderService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService, orderService *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
	}
}

// POST /api/paypal/create-order
func (h *CheckoutHandler) CreatePayPalOrder(c *gin.Context) {
	sessionID, ok := utils.GetCartSessionID(c)
	if !ok {
		utils.InternalErrorResponse(c, "Cart session unavailable")
		return
	}

	orderID, totals, err := h.checkoutService.CreateGatewayOrder(c.Request.Context(), sessionID)
	if err != nil {
		h.checkoutError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"paypal_order_id": orderID,
		"totals":          totals,
	})
}

type captureOrderRequest struct {
	PayPalOrderID string                `json:"paypal_order_id" validate:"required"`
	Customer      services.CustomerInfo `json:"customer" validate:"required"`
}

// POST /api/paypal/capture-order
func (h *CheckoutHandler) CapturePayPalOrder(c *gin.Context) {
	sessionID, ok := utils.GetCartSessionID(c)
	if !ok {
		utils.InternalErrorResponse(c, "Cart session unavailable")
		return
	}

	var req captureOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.checkoutService.CompleteCheckout(c.Request.Context(), sessionID, req.PayPalOrderID, &req.Customer)
	if err != nil {
		h.checkoutError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order_number": order.OrderNumber,
		"order":        order,
	})
}

// GET /api/orders/:number
func (h *CheckoutHandler) GetOrderConfirmation(c *gin.Context) {
	order, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order")
			return
		}
		utils.InternalErrorResponse(c, "Failed to fetch order")
		return
	}
	utils.SuccessResponse(c, order)
}

func (h *CheckoutHandler) checkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		utils.BadRequestResponse(c, "Cart is empty", nil)
	case errors.Is(err, services.ErrPaymentNotCompleted):
		utils.BadRequestResponse(c, "Payment was not completed", nil)
	case errors.Is(err, services.ErrPaymentService):
		utils.BadGatewayResponse(c, "Payment service is unavailable, please try again")
	case errors.Is(err, services.ErrOrderPersistence):
		utils.InternalErrorResponse(c, "Your payment was received but the order could not be recorded. Please contact support.")
	default:
		utils.InternalErrorResponse(c, "Checkout failed")
	}
}
