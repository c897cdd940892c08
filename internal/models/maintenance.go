package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Maintenance status values. The intended workflow is
// pending -> inprogress -> completed, but admins may set any status.
const (
	MaintenanceStatusPending    = "pending"
	MaintenanceStatusInProgress = "inprogress"
	MaintenanceStatusCompleted  = "completed"
)

// MaintenanceStatuses is the set of accepted status values.
var MaintenanceStatuses = []string{
	MaintenanceStatusPending,
	MaintenanceStatusInProgress,
	MaintenanceStatusCompleted,
}

// Maintenance is a tenant-submitted repair or service ticket.
type Maintenance struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	UserID    string `gorm:"type:char(36);not null;index"`
	User      User
	Details   string `gorm:"type:text;not null"`
	Status    string `gorm:"size:16;not null;default:pending;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (m *Maintenance) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for Maintenance
func (Maintenance) TableName() string {
	return "maintenances"
}
