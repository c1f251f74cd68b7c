// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type ProductCategory string

const (
	CategoryMug      ProductCategory = "mug"
	CategoryGlass    ProductCategory = "glass"
	CategoryCoaster  ProductCategory = "coaster"
	CategoryKeychain ProductCategory = "keychain"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryMug, CategoryGlass, CategoryCoaster, CategoryKeychain:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusShipped    OrderStatus = "shipped"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusShipped:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type LogoMode string

const (
	LogoModeMonochrome        LogoMode = "monochrome"
	LogoModeTransparent       LogoMode = "transparent"
	LogoModeBackgroundRemoved LogoMode = "background_removed"
)

func (m LogoMode) Valid() bool {
	switch m {
	case LogoModeMonochrome, LogoModeTransparent, LogoModeBackgroundRemoved:
		return true
	}
	return false
}
