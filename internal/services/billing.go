package services

import (
	"errors"
	"strings"
	"time"

	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/rentfolio/tenantportal/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// minDescriptionLen is the shortest accepted billing description.
const minDescriptionLen = 10

// BillingInput carries the admin-editable fields of a bill.
type BillingInput struct {
	LeaseID     string     `json:"leaseId"`
	Amount      int        `json:"amount"`
	DueDate     time.Time  `json:"dueDate"`
	Description string     `json:"description"`
	Status      string     `json:"status,omitempty"`
}

func validateBillingInput(in BillingInput) types.ValidationErrors {
	errs := types.ValidationErrors{}
	if in.LeaseID == "" {
		errs["leaseId"] = "Lease is required"
	}
	if in.Amount < 0 {
		errs["amount"] = "Amount must not be negative"
	}
	if in.DueDate.IsZero() {
		errs["dueDate"] = "Due date is required"
	}
	if len(strings.TrimSpace(in.Description)) < minDescriptionLen {
		errs["description"] = "Description must be at least 10 characters"
	}
	if in.Status != "" && in.Status != models.BillingStatusPending && in.Status != models.BillingStatusPaid {
		errs["status"] = "Status must be pending or paid"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CreateBilling records a new pending charge against a lease.
func CreateBilling(db *gorm.DB, in BillingInput) (*models.Billing, error) {
	if errs := validateBillingInput(in); errs != nil {
		return nil, errs
	}

	var lease models.Lease
	if err := db.Where("id = ?", in.LeaseID).First(&lease).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "lease", ID: in.LeaseID}
		}
		return nil, err
	}

	bill := models.Billing{
		LeaseID:     in.LeaseID,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Description: strings.TrimSpace(in.Description),
		Status:      models.BillingStatusPending,
	}
	if err := db.Create(&bill).Error; err != nil {
		return nil, err
	}

	return &bill, nil
}

// EditBilling is the administrative override: any field may change, including
// a forced status, distinct from the tenant-driven MarkPaid transition.
func EditBilling(db *gorm.DB, billID string, in BillingInput) (*models.Billing, error) {
	if errs := validateBillingInput(in); errs != nil {
		return nil, errs
	}

	bill, err := GetBilling(db, billID)
	if err != nil {
		return nil, err
	}

	if in.LeaseID != bill.LeaseID {
		var lease models.Lease
		if err := db.Where("id = ?", in.LeaseID).First(&lease).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &types.NotFoundError{Entity: "lease", ID: in.LeaseID}
			}
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"lease_id":    in.LeaseID,
		"amount":      in.Amount,
		"due_date":    in.DueDate,
		"description": strings.TrimSpace(in.Description),
	}
	if in.Status != "" {
		updates["status"] = in.Status
	}

	if err := db.Model(bill).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetBilling(db, billID)
}

// MarkPaid commits the tenant pay-now flow as a single conditional update:
// only a pending bill transitions, and the losing side of a concurrent
// double-pay gets a conflict instead of silently re-stamping the payment.
func MarkPaid(db *gorm.DB, billID string, proofPath *string) (*models.Billing, error) {
	if _, err := GetBilling(db, billID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":       models.BillingStatusPaid,
		"payment_date": time.Now(),
	}
	if proofPath != nil {
		updates["filepath"] = *proofPath
	}

	res := db.Model(&models.Billing{}).
		Where("id = ? AND status = ?", billID, models.BillingStatusPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &types.ConflictError{Message: "bill is already paid"}
	}

	return GetBilling(db, billID)
}

// SoftDeleteBilling removes the bill from all further reads.
func SoftDeleteBilling(db *gorm.DB, billID string) error {
	res := db.Where("id = ?", billID).Delete(&models.Billing{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &types.NotFoundError{Entity: "bill", ID: billID}
	}
	return nil
}

// GetBilling loads an active bill by id.
func GetBilling(db *gorm.DB, billID string) (*models.Billing, error) {
	var bill models.Billing
	if err := db.Where("id = ?", billID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Entity: "bill", ID: billID}
		}
		return nil, err
	}
	return &bill, nil
}

// ListDueBillings returns pending bills past due as of the given time, most
// recent first. Paid bills never appear here, even when overdue before
// payment.
func ListDueBillings(db *gorm.DB, asOf time.Time) ([]models.Billing, error) {
	var bills []models.Billing
	err := db.Clauses(hints.CommentBefore("select", "collections view")).
		Where("status = ? AND due_date < ?", models.BillingStatusPending, asOf).
		Order("due_date DESC, id DESC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}

// ListBillingsForLease returns a lease's active bills, optionally filtered by
// status.
func ListBillingsForLease(db *gorm.DB, leaseID, status string) ([]models.Billing, error) {
	query := db.Where("lease_id = ?", leaseID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bills []models.Billing
	if err := query.Order("due_date DESC, id DESC").Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// ListBillingsForUser returns the bills of the user's lease. Users without a
// lease see an empty list.
func ListBillingsForUser(db *gorm.DB, userID, status string) ([]models.Billing, error) {
	var lease models.Lease
	err := db.Where("user_id = ?", userID).First(&lease).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Billing{}, nil
		}
		return nil, err
	}
	return ListBillingsForLease(db, lease.ID, status)
}

// ListPaidBillings returns every collected payment, most recent first.
func ListPaidBillings(db *gorm.DB) ([]models.Billing, error) {
	var bills []models.Billing
	err := db.Where("status = ?", models.BillingStatusPaid).
		Order("payment_date DESC, id DESC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}
