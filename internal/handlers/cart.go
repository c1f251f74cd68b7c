// internal/handlers/cart.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/letmemugyou/backend/internal/services"
	"github.com/letmemugyou/backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, ok := utils.GetCartSessionID(c)
	if !ok {
		utils.InternalErrorResponse(c, "Cart session unavailable")
		return
	}

	view, err := h.cartService.View(c.Request.Context(), sessionID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load cart")
		return
	}
	utils.SuccessResponse(c, view)
}

// POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := utils.GetCartSessionID(c)
	if !ok {
		utils.InternalErrorResponse(c, "Cart session unavailable")
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	view, err := h.cartService.Add(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.cartError(c, err)
		return
	}
	utils.SuccessResponse(c, view)
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// PUT /api/cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID, ok := utils.GetCartSessionID(c)
	if !ok {
		utils.InternalErrorResponse(c, "Cart session unavailable")
		return
	}

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid cart item ID", nil)
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	view, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, lineID, req.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	utils.SuccessResponse(c, view)
}

// DELETE /api/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID, ok := utils.GetCartSessionID(c)
	if !ok {
		utils.InternalErrorResponse(c, "Cart session unavailable")
		return
	}

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid cart item ID", nil)
		return
	}

	view, err := h.cartService.Remove(c.Request.Context(), sessionID, lineID)
	if err != nil {
		h.cartError(c, err)
		return
	}
	utils.SuccessResponse(c, view)
}

// DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID, ok := utils.GetCartSessionID(c)
	if !ok {
		utils.InternalErrorResponse(c, "Cart session unavailable")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		utils.InternalErrorResponse(c, "Failed to clear cart")
		return
	}

	view, err := h.cartService.View(c.Request.Context(), sessionID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load cart")
		return
	}
	utils.SuccessResponse(c, view)
}

func (h *CartHandler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, "Product")
	case errors.Is(err, services.ErrCartLineNotFound):
		utils.NotFoundResponse(c, "Cart item")
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.BadRequestResponse(c, "Quantity must be at least 1", nil)
	default:
		utils.InternalErrorResponse(c, "Cart operation failed")
	}
}
