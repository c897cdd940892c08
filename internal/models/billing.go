package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Billing status values. A bill starts pending and becomes paid through the
// tenant pay flow; soft deletion is orthogonal to status.
const (
	BillingStatusPending = "pending"
	BillingStatusPaid    = "paid"
)

// Billing is one payable charge on a lease.
type Billing struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	LeaseID     string `gorm:"type:char(36);not null;index"`
	Lease       Lease
	Amount      int       `gorm:"not null"`
	DueDate     time.Time `gorm:"not null;index"`
	Description string    `gorm:"size:1024;not null"`
	Status      string    `gorm:"size:16;not null;default:pending;index"`
	PaymentDate *time.Time
	Filepath    *string `gorm:"size:512"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (b *Billing) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Billing
func (Billing) TableName() string {
	return "billings"
}
