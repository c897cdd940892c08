package services

import (
	"errors"
	"time"

	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/rentfolio/tenantportal/internal/types"
	"gorm.io/gorm"
)

// LeaseInput carries the admin-editable fields of a lease.
type LeaseInput struct {
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Rent           int       `json:"rent"`
	Deposit        int       `json:"deposit"`
	MaintenanceFee int       `json:"maintenanceFee"`
	Property       string    `json:"property"`
}

func validateLeaseInput(in LeaseInput) types.ValidationErrors {
	errs := types.ValidationErrors{}
	if in.StartDate.IsZero() {
		errs["startDate"] = "Start date is required"
	}
	if in.EndDate.IsZero() {
		errs["endDate"] = "End date is required"
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && !in.EndDate.After(in.StartDate) {
		errs["endDate"] = "End date must be after start date"
	}
	if in.Rent < 0 {
		errs["rent"] = "Rent must not be negative"
	}
	if in.Deposit < 0 {
		errs["deposit"] = "Deposit must not be negative"
	}
	if in.MaintenanceFee < 0 {
		errs["maintenanceFee"] = "Maintenance fee must not be negative"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UpsertLease creates or replaces the single lease owned by a tenant.
func UpsertLease(db *gorm.DB, userID string, in LeaseInput) (*models.Lease, error) {
	if errs := validateLeaseInput(in); errs != nil {
		return nil, errs
	}

	if _, err := GetUserByID(db, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "user", ID: userID}
		}
		return nil, err
	}

	var lease models.Lease
	err := db.Where("user_id = ?", userID).First(&lease).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		lease = models.Lease{
			UserID:         userID,
			StartDate:      in.StartDate,
			EndDate:        in.EndDate,
			Rent:           in.Rent,
			Deposit:        in.Deposit,
			MaintenanceFee: in.MaintenanceFee,
			Property:       in.Property,
		}
		if err := db.Create(&lease).Error; err != nil {
			return nil, err
		}
		return &lease, nil
	case err != nil:
		return nil, err
	}

	updates := map[string]interface{}{
		"start_date":      in.StartDate,
		"end_date":        in.EndDate,
		"rent":            in.Rent,
		"deposit":         in.Deposit,
		"maintenance_fee": in.MaintenanceFee,
		"property":        in.Property,
	}
	if err := db.Model(&lease).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetLeaseForUser(db, userID)
}

// GetLeaseForUser loads the tenant's lease.
func GetLeaseForUser(db *gorm.DB, userID string) (*models.Lease, error) {
	var lease models.Lease
	if err := db.Where("user_id = ?", userID).First(&lease).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "lease", ID: userID}
		}
		return nil, err
	}
	return &lease, nil
}

// GetLease loads a lease by id.
func GetLease(db *gorm.DB, leaseID string) (*models.Lease, error) {
	var lease models.Lease
	if err := db.Where("id = ?", leaseID).First(&lease).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "lease", ID: leaseID}
		}
		return nil, err
	}
	return &lease, nil
}
