package services_test

import (
	"testing"
	"time"

	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleNotificationInvolution(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)
	bill := createBill(t, db, lease.ID, "Rent payment for December 2024", time.Now())

	var before int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&before).Error)

	action, err := services.ToggleNotification(db, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, services.NotificationCreated, action)

	var notification models.Notification
	require.NoError(t, db.Where("billing_id = ?", bill.ID).First(&notification).Error)
	assert.Equal(t, user.ID, notification.UserID)
	assert.Equal(t, bill.Description, notification.Details)
	assert.Equal(t, bill.Amount, notification.Amount)

	action, err = services.ToggleNotification(db, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, services.NotificationDeleted, action)

	var after int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", user.ID).Count(&after).Error)
	assert.Equal(t, before, after)

	// Toggling back on must not trip the unique billing_id index.
	action, err = services.ToggleNotification(db, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, services.NotificationCreated, action)
}

func TestToggleNotificationSameDescriptionNoCollision(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)

	// Two distinct bills with identical descriptions: toggles stay
	// independent because the correlation is the billing id.
	first := createBill(t, db, lease.ID, "Rent payment for December 2024", time.Now())
	second := createBill(t, db, lease.ID, "Rent payment for December 2024", time.Now())

	action, err := services.ToggleNotification(db, first.ID)
	require.NoError(t, err)
	assert.Equal(t, services.NotificationCreated, action)

	action, err = services.ToggleNotification(db, second.ID)
	require.NoError(t, err)
	assert.Equal(t, services.NotificationCreated, action)

	action, err = services.ToggleNotification(db, first.ID)
	require.NoError(t, err)
	assert.Equal(t, services.NotificationDeleted, action)

	var remaining models.Notification
	require.NoError(t, db.Where("billing_id = ?", second.ID).First(&remaining).Error)
}

func TestToggleNotificationUnknownBill(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.ToggleNotification(db, "no-such-bill")
	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListNotificationsForUser(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)
	bill := createBill(t, db, lease.ID, "Rent payment for December 2024", time.Now())

	_, err := services.ToggleNotification(db, bill.ID)
	require.NoError(t, err)

	notifications, err := services.ListNotificationsForUser(db, user.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, bill.ID, notifications[0].BillingID)
}
