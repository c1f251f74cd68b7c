// internal/models/audit.go
package models

type AuditLog struct {
	BaseModel
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resource_type" gorm:"size:50;not null;index"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"type:text"`
	NewValues    JSONB  `json:"new_values" gorm:"type:jsonb"`
}
