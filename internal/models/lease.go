package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lease binds exactly one tenant to a property and its rent terms.
// Amounts are integral currency units.
type Lease struct {
	ID             string `gorm:"type:char(36);primaryKey"`
	UserID         string `gorm:"type:char(36);not null;uniqueIndex"`
	User           User
	StartDate      time.Time `gorm:"not null"`
	EndDate        time.Time `gorm:"not null"`
	Rent           int       `gorm:"not null"`
	Deposit        int       `gorm:"not null;default:0"`
	MaintenanceFee int       `gorm:"not null;default:0"`
	Property       string    `gorm:"size:1024"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Lease
func (Lease) TableName() string {
	return "leases"
}
