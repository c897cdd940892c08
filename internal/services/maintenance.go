package services

import (
	"errors"
	"strings"

	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/rentfolio/tenantportal/internal/types"
	"gorm.io/gorm"
)

// meaningfulDetails trims every line and drops blank ones; a submission is
// meaningful when at least one non-empty line remains.
func meaningfulDetails(details string) (string, bool) {
	var kept []string
	for _, line := range strings.Split(details, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "\n"), true
}

func validStatus(status string) bool {
	for _, s := range models.MaintenanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CreateMaintenance opens a ticket for the requesting tenant.
func CreateMaintenance(db *gorm.DB, userID, details string) (*models.Maintenance, error) {
	cleaned, ok := meaningfulDetails(details)
	if !ok {
		return nil, types.ValidationErrors{"details": "Details must not be empty"}
	}

	ticket := models.Maintenance{
		UserID:  userID,
		Details: cleaned,
		Status:  models.MaintenanceStatusPending,
	}
	if err := db.Create(&ticket).Error; err != nil {
		return nil, err
	}

	return &ticket, nil
}

// SetMaintenanceStatus applies an admin status change. Any status may follow
// any other; only the value itself is validated.
func SetMaintenanceStatus(db *gorm.DB, id, status string) (*models.Maintenance, error) {
	if !validStatus(status) {
		return nil, types.ValidationErrors{"status": "Status must be pending, inprogress, or completed"}
	}

	res := db.Model(&models.Maintenance{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &types.NotFoundError{Entity: "maintenance", ID: id}
	}

	return GetMaintenance(db, id)
}

// GetMaintenance loads an active ticket by id.
func GetMaintenance(db *gorm.DB, id string) (*models.Maintenance, error) {
	var ticket models.Maintenance
	if err := db.Where("id = ?", id).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "maintenance", ID: id}
		}
		return nil, err
	}
	return &ticket, nil
}

// ListMaintenanceForUser returns the requester's own tickets only. Ownership
// is part of the query, not a presentation concern: supplying another user's
// ticket id cannot widen the result.
func ListMaintenanceForUser(db *gorm.DB, userID string) ([]models.Maintenance, error) {
	var tickets []models.Maintenance
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListAllMaintenance returns every active ticket, optionally excluding one
// status (the admin dashboard hides completed work).
func ListAllMaintenance(db *gorm.DB, excludeStatus string) ([]models.Maintenance, error) {
	query := db.Preload("User")
	if excludeStatus != "" {
		query = query.Where("status <> ?", excludeStatus)
	}

	var tickets []models.Maintenance
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// SoftDeleteMaintenance removes the ticket from all further reads.
func SoftDeleteMaintenance(db *gorm.DB, id string) error {
	res := db.Where("id = ?", id).Delete(&models.Maintenance{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Entity: "maintenance", ID: id}
	}
	return nil
}
