// internal/services/cart_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letmemugyou/backend/internal/models"
)

type fakeProductFinder struct {
	products map[uuid.UUID]*models.Product
}

func (f *fakeProductFinder) FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, ErrProductNotFound
}

type fixedTaxRate float64

func (r fixedTaxRate) TaxRate(ctx context.Context) float64 { return float64(r) }

func testProduct(name string, price float64) *models.Product {
	return &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      name,
		Category:  models.CategoryMug,
		BasePrice: price,
		Active:    true,
	}
}

func newTestCartService(products ...*models.Product) *CartService {
	finder := &fakeProductFinder{products: make(map[uuid.UUID]*models.Product)}
	for _, p := range products {
		finder.products[p.ID] = p
	}
	return NewCartService(NewMemoryCartStore(), finder, fixedTaxRate(0.0825))
}

func TestCartAdd(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	svc := newTestCartService(mug)
	ctx := context.Background()

	view, err := svc.Add(ctx, "session-1", &AddToCartRequest{
		ProductID: mug.ID,
		Size:      "20oz",
		Quantity:  2,
	})
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	line := view.Lines[0]
	assert.Equal(t, "Classic Mug", line.ProductName)
	assert.Equal(t, "20oz", line.Size)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 24.99, line.UnitPrice)
	assert.Equal(t, 49.98, line.LineTotal)
	assert.Equal(t, 54.10, view.Totals.Total)
	assert.Equal(t, 1, view.Count)
}

func TestCartAddSnapshotsPrice(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	svc := newTestCartService(mug)
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)

	// A later catalog price change must not touch existing lines.
	mug.BasePrice = 99.99

	view, err := svc.View(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 24.99, view.Lines[0].UnitPrice)
	assert.Equal(t, 24.99, view.Lines[0].LineTotal)
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.Add(context.Background(), "session-1", &AddToCartRequest{
		ProductID: uuid.New(),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartAddInvalidQuantity(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	svc := newTestCartService(mug)

	_, err := svc.Add(context.Background(), "session-1", &AddToCartRequest{
		ProductID: mug.ID,
		Quantity:  0,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartUpdateQuantity(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	svc := newTestCartService(mug)
	ctx := context.Background()

	view, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)
	lineID := view.Lines[0].ID

	view, err = svc.UpdateQuantity(ctx, "session-1", lineID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.Equal(t, 74.97, view.Lines[0].LineTotal)
}

func TestCartUpdateQuantityUnknownLine(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.UpdateQuantity(context.Background(), "session-1", uuid.New(), 2)
	assert.ErrorIs(t, err, ErrCartLineNotFound)
}

func TestCartRemove(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	glass := testProduct("Pint Glass", 14.99)
	svc := newTestCartService(mug, glass)
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)
	view, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: glass.ID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)

	view, err = svc.Remove(ctx, "session-1", view.Lines[0].ID)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Pint Glass", view.Lines[0].ProductName)
}

func TestCartSameProductTwiceMakesTwoLines(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	svc := newTestCartService(mug)
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)
	view, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: mug.ID, Quantity: 1, LogoFilename: "logo_bw.png"})
	require.NoError(t, err)

	// Each add is its own line; customizations differ per line.
	require.Len(t, view.Lines, 2)
	assert.NotEqual(t, view.Lines[0].ID, view.Lines[1].ID)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	svc := newTestCartService(mug)
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)

	view, err := svc.View(ctx, "session-2")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartClear(t *testing.T) {
	mug := testProduct("Classic Mug", 24.99)
	svc := newTestCartService(mug)
	ctx := context.Background()

	_, err := svc.Add(ctx, "session-1", &AddToCartRequest{ProductID: mug.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "session-1"))

	view, err := svc.View(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0.0, view.Totals.Total)
}
