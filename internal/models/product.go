// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:100;not null"`
	Category    ProductCategory `json:"category" gorm:"type:varchar(50);not null;index"`
	BasePrice   float64         `json:"base_price" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"type:text"`
	ImageURL    string          `json:"image_url" gorm:"size:255"`
	Sizes       pq.StringArray  `json:"sizes" gorm:"type:text[]"`
	Active      bool            `json:"active" gorm:"default:true;index"`
}
