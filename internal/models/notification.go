package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is a derived on/off record tied 1:1 to a bill and its
// recipient. The BillingID foreign key is unique: a bill has at most one
// outstanding notification, and toggling flips it between present and absent.
// Rows are removed outright on toggle-off, not soft-deleted.
type Notification struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	UserID    string `gorm:"type:char(36);not null;index"`
	BillingID string `gorm:"type:char(36);not null;uniqueIndex"`
	Details   string `gorm:"size:1024;not null"`
	DueDate   time.Time
	Amount    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
