package model

import "time"

// AuditLog records a mutation after it committed. OldValues is null for
// creations; NewValues holds a JSON snapshot of the key fields.
type AuditLog struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	RestaurantID uint      `gorm:"index;not null" json:"restaurant_id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Action       string    `gorm:"type:varchar(20);not null" json:"action"`
	ResourceType string    `gorm:"type:varchar(50);index;not null" json:"resource_type"`
	ResourceID   uint      `gorm:"index;not null" json:"resource_id"`
	OldValues    *string   `gorm:"type:text" json:"old_values"`
	NewValues    string    `gorm:"type:text" json:"new_values"`
	CreatedAt    time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
