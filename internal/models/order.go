// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

// Order is frozen at checkout time: totals and item snapshots are never
// recomputed after the payment has been captured.
type Order struct {
	BaseModel
	OrderNumber string `json:"order_number" gorm:"size:20;uniqueIndex;not null"`

	// Customer info
	CustomerName string `json:"customer_name" gorm:"size:100;not null"`
	Email        string `json:"email" gorm:"size:120;not null;index"`
	Phone        string `json:"phone" gorm:"size:20"`
	BusinessName string `json:"business_name" gorm:"size:100"`

	// Shipping address
	AddressLine1 string `json:"address_line1" gorm:"size:200"`
	AddressLine2 string `json:"address_line2" gorm:"size:200"`
	City         string `json:"city" gorm:"size:100"`
	State        string `json:"state" gorm:"size:50"`
	ZipCode      string `json:"zip_code" gorm:"size:20"`

	// Totals, derived once at checkout
	Subtotal float64 `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Tax      float64 `json:"tax" gorm:"type:decimal(10,2);not null"`
	Total    float64 `json:"total" gorm:"type:decimal(10,2);not null"`

	Status        OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	PayPalOrderID string        `json:"paypal_order_id" gorm:"size:50"`

	Notes string `json:"notes" gorm:"type:text"`

	// Relationships
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots a cart line at purchase time. Product fields are
// denormalized so later catalog edits never alter order history.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`

	ProductName string  `json:"product_name" gorm:"size:100"`
	Size        string  `json:"size" gorm:"size:20"`
	Quantity    int     `json:"quantity" gorm:"default:1"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:decimal(10,2)"`
	LineTotal   float64 `json:"line_total" gorm:"type:decimal(10,2)"`

	// Logo personalization
	LogoFilename   string `json:"logo_filename" gorm:"size:255"`
	LogoPlacement  JSONB  `json:"logo_placement" gorm:"type:jsonb"`
	PreviewDataURL string `json:"preview_data_url" gorm:"type:text"`
}
