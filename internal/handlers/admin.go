// internal/handlers/admin.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/letmemugyou/backend/internal/models"
	"github.com/letmemugyou/backend/internal/services"
	"github.com/letmemugyou/backend/internal/utils"
)

type AdminHandler struct {
	orderService    *services.OrderService
	productService  *services.ProductService
	settingsService *services.SettingsService
}

func NewAdminHandler(orderService *services.OrderService, productService *services.ProductService, settingsService *services.SettingsService) *AdminHandler {
	return &AdminHandler{
		orderService:    orderService,
		productService:  productService,
		settingsService: settingsService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.orderService.GetDashboardStats(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load dashboard")
		return
	}
	utils.SuccessResponse(c, stats)
}

// GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	filter := services.OrderFilter{
		PaginationParams: utils.GetPaginationParams(c),
	}

	if status := c.Query("status"); status != "" {
		orderStatus := models.OrderStatus(status)
		if !orderStatus.Valid() {
			utils.BadRequestResponse(c, "Unknown order status", nil)
			return
		}
		filter.Status = &orderStatus
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch orders")
		return
	}

	result := utils.CreatePaginationResult(orders, total, filter.PaginationParams)
	utils.PaginatedResponse(c, result)
}

// GET /admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
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

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending processing completed shipped"`
}

// PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "Order")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update order status")
		return
	}
	utils.SuccessResponse(c, order)
}

// GET /admin/products
func (h *AdminHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListAll(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to fetch products")
		return
	}
	utils.SuccessResponse(c, products)
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to create product")
		return
	}
	utils.CreatedResponse(c, product)
}

// PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to update product")
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to delete product")
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// POST /admin/products/:id/toggle
func (h *AdminHandler) ToggleProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.ToggleActive(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.InternalErrorResponse(c, "Failed to toggle product")
		return
	}
	utils.SuccessResponse(c, product)
}

// GET /admin/settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	ctx := c.Request.Context()
	utils.SuccessResponse(c, gin.H{
		models.SettingPayPalMode: h.settingsService.PayPalMode(ctx),
		models.SettingTaxRate:    h.settingsService.Get(ctx, models.SettingTaxRate, models.DefaultTaxRate),
		models.SettingAdminEmail: h.settingsService.Get(ctx, models.SettingAdminEmail, ""),
	})
}

type updateSettingsRequest struct {
	PayPalMode *string `json:"paypal_mode,omitempty"`
	TaxRate    *string `json:"tax_rate,omitempty"`
	AdminEmail *string `json:"admin_email,omitempty"`
}

// PUT /admin/settings
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	ctx := c.Request.Context()

	if req.PayPalMode != nil {
		if *req.PayPalMode != "sandbox" && *req.PayPalMode != "live" {
			utils.BadRequestResponse(c, "paypal_mode must be sandbox or live", nil)
			return
		}
		if err := h.settingsService.Set(ctx, models.SettingPayPalMode, *req.PayPalMode); err != nil {
			utils.InternalErrorResponse(c, "Failed to save settings")
			return
		}
	}

	if req.TaxRate != nil {
		rate, err := strconv.ParseFloat(*req.TaxRate, 64)
		if err != nil || rate < 0 || rate >= 1 {
			utils.BadRequestResponse(c, "tax_rate must be a decimal between 0 and 1", nil)
			return
		}
		if err := h.settingsService.Set(ctx, models.SettingTaxRate, *req.TaxRate); err != nil {
			utils.InternalErrorResponse(c, "Failed to save settings")
			return
		}
	}

	if req.AdminEmail != nil {
		if err := h.settingsService.Set(ctx, models.SettingAdminEmail, *req.AdminEmail); err != nil {
			utils.InternalErrorResponse(c, "Failed to save settings")
			return
		}
	}

	h.GetSettings(c)
}
