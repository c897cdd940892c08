package services

import (
	"errors"

	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/rentfolio/tenantportal/internal/types"
	"gorm.io/gorm"
)

// Toggle outcomes.
const (
	NotificationCreated = "created"
	NotificationDeleted = "deleted"
)

// ToggleNotification flips the notification attached to a bill: delete it if
// present, create it otherwise. The find-and-flip runs inside one
// transaction keyed on the bill's unique notification row, so two concurrent
// toggles cannot both create or both delete.
func ToggleNotification(db *gorm.DB, billID string) (string, error) {
	var action string

	err := db.Transaction(func(tx *gorm.DB) error {
		var bill models.Billing
		err := tx.Preload("Lease").Where("id = ?", billID).First(&bill).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Entity: "bill", ID: billID}
			}
			return err
		}

		// Removes the row outright, freeing the unique billing_id index
		// for the next toggle-on.
		res := tx.Where("billing_id = ?", bill.ID).Delete(&models.Notification{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			action = NotificationDeleted
			return nil
		}

		notification := models.Notification{
			UserID:    bill.Lease.UserID,
			BillingID: bill.ID,
			Details:   bill.Description,
			DueDate:   bill.DueDate,
			Amount:    bill.Amount,
		}
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}
		action = NotificationCreated
		return nil
	})
	if err != nil {
		return "", err
	}

	return action, nil
}

// ListNotificationsForUser returns a user's active notifications.
func ListNotificationsForUser(db *gorm.DB, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
