// internal/handlers/cart_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letmemugyou/backend/internal/models"
	"github.com/letmemugyou/backend/internal/services"
)

type stubFinder struct {
	products map[uuid.UUID]*models.Product
}

func (f *stubFinder) FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, services.ErrProductNotFound
}

type stubRate float64

func (r stubRate) TaxRate(ctx context.Context) float64 { return float64(r) }

func newCartTestRouter(products ...*models.Product) *gin.Engine {
	gin.SetMode(gin.TestMode)

	finder := &stubFinder{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		finder.products[p.ID] = p
	}
	cartService := services.NewCartService(services.NewMemoryCartStore(), finder, stubRate(0.0825))
	handler := NewCartHandler(cartService)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("cart_session_id", "test-session")
		c.Next()
	})
	cart := r.Group("/api/cart")
	{
		cart.GET("", handler.GetCart)
		cart.DELETE("", handler.ClearCart)
		cart.POST("/items", handler.AddItem)
		cart.PUT("/items/:id", handler.UpdateItem)
		cart.DELETE("/items/:id", handler.RemoveItem)
	}
	return r
}

func catalogMug() *models.Product {
	return &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Classic Mug",
		Category:  models.CategoryMug,
		BasePrice: 24.99,
		Active:    true,
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataFromResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func TestCartEndpointsFlow(t *testing.T) {
	mug := catalogMug()
	r := newCartTestRouter(mug)

	// Empty cart to start.
	w := doJSON(t, r, "GET", "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataFromResponse(t, w)
	assert.Equal(t, float64(0), data["count"])

	// Add two mugs.
	w = doJSON(t, r, "POST", "/api/cart/items", map[string]interface{}{
		"product_id": mug.ID.String(),
		"size":       "20oz",
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = dataFromResponse(t, w)
	lines := data["lines"].([]interface{})
	require.Len(t, lines, 1)
	lineID := lines[0].(map[string]interface{})["id"].(string)
	totals := data["totals"].(map[string]interface{})
	assert.Equal(t, 49.98, totals["subtotal"])
	assert.Equal(t, 4.12, totals["tax"])
	assert.Equal(t, 54.10, totals["total"])

	// Bump the quantity.
	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/cart/items/%s", lineID), map[string]interface{}{
		"quantity": 3,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data = dataFromResponse(t, w)
	totals = data["totals"].(map[string]interface{})
	assert.Equal(t, 74.97, totals["subtotal"])

	// Remove the line.
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/cart/items/%s", lineID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = dataFromResponse(t, w)
	assert.Equal(t, float64(0), data["count"])
}

func TestCartAddUnknownProductReturns404(t *testing.T) {
	r := newCartTestRouter()

	w := doJSON(t, r, "POST", "/api/cart/items", map[string]interface{}{
		"product_id": uuid.New().String(),
		"quantity":   1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartAddRejectsZeroQuantity(t *testing.T) {
	mug := catalogMug()
	r := newCartTestRouter(mug)

	w := doJSON(t, r, "POST", "/api/cart/items", map[string]interface{}{
		"product_id": mug.ID.String(),
		"quantity":   0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartUpdateUnknownLineReturns404(t *testing.T) {
	r := newCartTestRouter()

	w := doJSON(t, r, "PUT", fmt.Sprintf("/api/cart/items/%s", uuid.New()), map[string]interface{}{
		"quantity": 2,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartClearEndpoint(t *testing.T) {
	mug := catalogMug()
	r := newCartTestRouter(mug)

	w := doJSON(t, r, "POST", "/api/cart/items", map[string]interface{}{
		"product_id": mug.ID.String(),
		"quantity":   1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "DELETE", "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataFromResponse(t, w)
	assert.Equal(t, float64(0), data["count"])
}
