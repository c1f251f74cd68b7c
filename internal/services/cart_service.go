// internal/services/cart_service.go
package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/letmemugyou/backend/internal/models"
)

// ProductFinder is the catalog lookup the cart needs when adding a line.
type ProductFinder interface {
	FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// TaxRateSource yields the tax rate in effect right now.
type TaxRateSource interface {
	TaxRate(ctx context.Context) float64
}

// CartService mutates session carts and always returns fresh totals so the
// client observes consistent numbers. Overlapping requests for one session
// are last-write-wins; session state is not shared across users, so no
// internal locking is done here.
type CartService struct {
	store    CartStore
	products ProductFinder
	rates    TaxRateSource
}

type CartView struct {
	Lines  []models.CartLine `json:"lines"`
	Totals Totals            `json:"totals"`
	Count  int               `json:"count"`
}

type AddToCartRequest struct {
	ProductID      uuid.UUID             `json:"product_id" validate:"required"`
	Size           string                `json:"size"`
	Quantity       int                   `json:"quantity" validate:"required,min=1"`
	LogoFilename   string                `json:"logo_filename,omitempty"`
	LogoPlacement  *models.LogoPlacement `json:"logo_placement,omitempty"`
	PreviewDataURL string                `json:"preview_data_url,omitempty"`
}

func NewCartService(store CartStore, products ProductFinder, rates TaxRateSource) *CartService {
	return &CartService{
		store:    store,
		products: products,
		rates:    rates,
	}
}

func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, lines), nil
}

// Add snapshots the product's name, price and image into a new line. The
// line never joins back to the live product row.
func (s *CartService) Add(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartView, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.FindActiveProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line := models.CartLine{
		ID:             uuid.New(),
		ProductID:      product.ID,
		ProductName:    product.Name,
		Category:       product.Category,
		ImageURL:       product.ImageURL,
		Size:           req.Size,
		Quantity:       req.Quantity,
		UnitPrice:      product.BasePrice,
		LineTotal:      Round2(product.BasePrice * float64(req.Quantity)),
		LogoFilename:   req.LogoFilename,
		LogoPlacement:  req.LogoPlacement,
		PreviewDataURL: req.PreviewDataURL,
	}

	lines = append(lines, line)
	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}

	return s.view(ctx, lines), nil
}

// UpdateQuantity recomputes the line total and leaves everything else on the
// line unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, lineID uuid.UUID, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ID == lineID {
			lines[i].Quantity = quantity
			lines[i].LineTotal = Round2(lines[i].UnitPrice * float64(quantity))
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartLineNotFound
	}

	if err := s.store.Save(ctx, sessionID, lines); err != nil {
		return nil, err
	}

	return s.view(ctx, lines), nil
}

func (s *CartService) Remove(ctx context.Context, sessionID string, lineID uuid.UUID) (*CartView, error) {
	lines, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}

	if err := s.store.Save(ctx, sessionID, kept); err != nil {
		return nil, err
	}

	return s.view(ctx, kept), nil
}

// Clear empties the cart. Called only after a fully committed order.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

func (s *CartService) Lines(ctx context.Context, sessionID string) ([]models.CartLine, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *CartService) view(ctx context.Context, lines []models.CartLine) *CartView {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return &CartView{
		Lines:  lines,
		Totals: CalculateTotals(lines, s.rates.TaxRate(ctx)),
		Count:  len(lines),
	}
}
