// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/letmemugyou/backend/internal/models"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string                 `json:"name" validate:"required,min=2,max=100"`
	Category    models.ProductCategory `json:"category" validate:"required,oneof=mug glass coaster keychain"`
	BasePrice   float64                `json:"base_price" validate:"required,min=0.01"`
	Description string                 `json:"description"`
	ImageURL    string                 `json:"image_url"`
	Sizes       []string               `json:"sizes,omitempty"`
	Active      bool                   `json:"active"`
}

type UpdateProductRequest struct {
	Name        string                 `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Category    models.ProductCategory `json:"category,omitempty" validate:"omitempty,oneof=mug glass coaster keychain"`
	BasePrice   float64                `json:"base_price,omitempty" validate:"omitempty,min=0.01"`
	Description *string                `json:"description,omitempty"`
	ImageURL    *string                `json:"image_url,omitempty"`
	Sizes       []string               `json:"sizes,omitempty"`
	Active      *bool                  `json:"active,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// ListActive returns the storefront catalog.
func (s *ProductService) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// ListAll is the admin view, inactive products included.
func (s *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// FindActiveProduct satisfies the cart's ProductFinder.
func (s *ProductService) FindActiveProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ? AND active = ?", id, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if !req.Category.Valid() {
		return nil, fmt.Errorf("invalid category %q", req.Category)
	}

	product := &models.Product{
		Name:        req.Name,
		Category:    req.Category,
		BasePrice:   Round2(req.BasePrice),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Sizes:       pq.StringArray(req.Sizes),
		Active:      req.Active,
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		if !req.Category.Valid() {
			return nil, fmt.Errorf("invalid category %q", req.Category)
		}
		updates["category"] = req.Category
	}
	if req.BasePrice > 0 {
		updates["base_price"] = Round2(req.BasePrice)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Sizes != nil {
		updates["sizes"] = pq.StringArray(req.Sizes)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := s.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct soft-deletes; order items hold denormalized snapshots, so
// history is unaffected.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *ProductService) ToggleActive(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Active = !product.Active
	if err := s.db.WithContext(ctx).Model(product).Update("active", product.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle product: %w", err)
	}
	return product, nil
}
