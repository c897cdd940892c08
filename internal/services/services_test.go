package services_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rentfolio/tenantportal/internal/database"
	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database with migrations and the
// baseline role seed applied.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")
	require.NoError(t, database.Seed(db), "failed to seed test database")

	return db
}

// createTenant inserts a user with the "user" role.
func createTenant(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", "user").First(&role).Error)

	user := models.User{
		Email:  email,
		Name:   "Test Tenant",
		Mobile: "7771234",
		RoleID: role.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createLease attaches a lease to the user.
func createLease(t *testing.T, db *gorm.DB, userID string) *models.Lease {
	t.Helper()

	lease := models.Lease{
		UserID:    userID,
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Rent:      1200,
		Property:  "Unit 4B, Seaview Residences",
	}
	require.NoError(t, db.Create(&lease).Error)
	return &lease
}

// createBill inserts a pending bill on the lease.
func createBill(t *testing.T, db *gorm.DB, leaseID, description string, due time.Time) *models.Billing {
	t.Helper()

	bill := models.Billing{
		LeaseID:     leaseID,
		Amount:      1200,
		DueDate:     due,
		Description: description,
		Status:      models.BillingStatusPending,
	}
	require.NoError(t, db.Create(&bill).Error)
	return &bill
}
