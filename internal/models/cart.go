// internal/models/cart.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// LogoPlacement positions a processed logo on the product preview.
type LogoPlacement struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Angle  float64 `json:"angle"`
}

// CartLine carries a product snapshot taken at add-time. It is never joined
// back to the live Product row.
type CartLine struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Category       ProductCategory `json:"category"`
	ImageURL       string          `json:"image_url"`
	Size           string          `json:"size"`
	Quantity       int             `json:"quantity"`
	UnitPrice      float64         `json:"unit_price"`
	LineTotal      float64         `json:"line_total"`
	LogoFilename   string          `json:"logo_filename,omitempty"`
	LogoPlacement  *LogoPlacement  `json:"logo_placement,omitempty"`
	PreviewDataURL string          `json:"preview_data_url,omitempty"`
}

// CartLines serializes to a JSONB column.
type CartLines []CartLine

func (l CartLines) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(CartLines{})
	}
	return json.Marshal(l)
}

func (l *CartLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// CartSession is the durable backing of a session-scoped cart.
type CartSession struct {
	BaseModel
	SessionID string    `json:"session_id" gorm:"size:64;uniqueIndex;not null"`
	Lines     CartLines `json:"lines" gorm:"type:jsonb"`
}
