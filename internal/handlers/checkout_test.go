// internal/handlers/checkout_test.go
package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letmemugyou/backend/internal/models"
	"github.com/letmemugyou/backend/internal/services"
)

type stubGateway struct {
	failCapture bool
}

func (g *stubGateway) CreateOrder(ctx context.Context, totals services.Totals) (string, error) {
	return "PAYPAL-ORDER-9", nil
}

func (g *stubGateway) CaptureOrder(ctx context.Context, orderID string) (*services.CaptureResult, error) {
	if g.failCapture {
		return nil, services.ErrPaymentService
	}
	return &services.CaptureResult{OrderID: orderID, Status: "COMPLETED", Amount: "54.10", Currency: "USD"}, nil
}

type stubPlacer struct {
	placed int
}

func (p *stubPlacer) Place(ctx context.Context, order *models.Order) error {
	p.placed++
	order.OrderNumber = "LMM-HANDLER1"
	return nil
}

func newCheckoutTestRouter(gateway *stubGateway, placer *stubPlacer, products ...*models.Product) (*gin.Engine, *services.CartService) {
	gin.SetMode(gin.TestMode)

	finder := &stubFinder{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		finder.products[p.ID] = p
	}
	cartService := services.NewCartService(services.NewMemoryCartStore(), finder, stubRate(0.0825))
	checkoutService := services.NewCheckoutService(cartService, stubRate(0.0825), gateway, placer, nil)
	handler := NewCheckoutHandler(checkoutService, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("cart_session_id", "test-session")
		c.Next()
	})
	r.POST("/api/paypal/create-order", handler.CreatePayPalOrder)
	r.POST("/api/paypal/capture-order", handler.CapturePayPalOrder)
	return r, cartService
}

func TestCreatePayPalOrderEmptyCart(t *testing.T) {
	r, _ := newCheckoutTestRouter(&stubGateway{}, &stubPlacer{})

	w := doJSON(t, r, "POST", "/api/paypal/create-order", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePayPalOrderEndpoint(t *testing.T) {
	mug := catalogMug()
	r, carts := newCheckoutTestRouter(&stubGateway{}, &stubPlacer{}, mug)

	_, err := carts.Add(context.Background(), "test-session", &services.AddToCartRequest{
		ProductID: mug.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	w := doJSON(t, r, "POST", "/api/paypal/create-order", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataFromResponse(t, w)
	assert.Equal(t, "PAYPAL-ORDER-9", data["paypal_order_id"])
	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, 54.10, totals["total"])
}

func TestCapturePayPalOrderEndpoint(t *testing.T) {
	mug := catalogMug()
	placer := &stubPlacer{}
	r, carts := newCheckoutTestRouter(&stubGateway{}, placer, mug)

	_, err := carts.Add(context.Background(), "test-session", &services.AddToCartRequest{
		ProductID: mug.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	w := doJSON(t, r, "POST", "/api/paypal/capture-order", map[string]interface{}{
		"paypal_order_id": "PAYPAL-ORDER-9",
		"customer": map[string]string{
			"name":  "Jordan Tester",
			"email": "jordan@example.com",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataFromResponse(t, w)
	assert.Equal(t, "LMM-HANDLER1", data["order_number"])
	assert.Equal(t, 1, placer.placed)

	// Cart is now empty.
	view, err := carts.View(context.Background(), "test-session")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCapturePayPalOrderGatewayDown(t *testing.T) {
	mug := catalogMug()
	r, carts := newCheckoutTestRouter(&stubGateway{failCapture: true}, &stubPlacer{}, mug)

	_, err := carts.Add(context.Background(), "test-session", &services.AddToCartRequest{
		ProductID: mug.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	w := doJSON(t, r, "POST", "/api/paypal/capture-order", map[string]interface{}{
		"paypal_order_id": "PAYPAL-ORDER-9",
		"customer": map[string]string{
			"name":  "Jordan Tester",
			"email": "jordan@example.com",
		},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// Cart left intact for a retry.
	view, err := carts.View(context.Background(), "test-session")
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestCapturePayPalOrderMissingCustomer(t *testing.T) {
	mug := catalogMug()
	r, carts := newCheckoutTestRouter(&stubGateway{}, &stubPlacer{}, mug)

	_, err := carts.Add(context.Background(), "test-session", &services.AddToCartRequest{
		ProductID: mug.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	w := doJSON(t, r, "POST", "/api/paypal/capture-order", map[string]interface{}{
		"paypal_order_id": "PAYPAL-ORDER-9",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
