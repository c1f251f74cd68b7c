// internal/models/settings.go
package models

// AdminSetting is a key-value blob with upsert-by-key semantics.
// Known keys: paypal_mode, tax_rate, admin_email.
type AdminSetting struct {
	BaseModel
	Key   string `json:"key" gorm:"size:50;uniqueIndex;not null"`
	Value string `json:"value" gorm:"type:text"`
}

const (
	SettingPayPalMode = "paypal_mode"
	SettingTaxRate    = "tax_rate"
	SettingAdminEmail = "admin_email"
)

const DefaultTaxRate = "0.0825"
