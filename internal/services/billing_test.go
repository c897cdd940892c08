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

func TestCreateBillingValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)

	_, err := services.CreateBilling(db, services.BillingInput{
		LeaseID:     lease.ID,
		Amount:      -5,
		DueDate:     time.Now(),
		Description: "short",
	})
	require.Error(t, err)

	var verrs types.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "amount")
	assert.Contains(t, verrs, "description")
}

func TestCreateBillingUnknownLease(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.CreateBilling(db, services.BillingInput{
		LeaseID:     "no-such-lease",
		Amount:      100,
		DueDate:     time.Now(),
		Description: "Rent payment for December 2024",
	})

	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreateBillingStartsPending(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)

	bill, err := services.CreateBilling(db, services.BillingInput{
		LeaseID:     lease.ID,
		Amount:      1200,
		DueDate:     time.Now().AddDate(0, 0, 7),
		Description: "Rent payment for December 2024",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BillingStatusPending, bill.Status)
	assert.Nil(t, bill.PaymentDate)
}

func TestMarkPaid(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)
	bill := createBill(t, db, lease.ID, "Rent payment for November 2024", time.Now().AddDate(0, 0, -1))

	proof := "public/uploads/proof.png"
	paid, err := services.MarkPaid(db, bill.ID, &proof)
	require.NoError(t, err)

	assert.Equal(t, models.BillingStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	require.NotNil(t, paid.Filepath)
	assert.Equal(t, proof, *paid.Filepath)
}

func TestMarkPaidTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)
	bill := createBill(t, db, lease.ID, "Rent payment for November 2024", time.Now())

	_, err := services.MarkPaid(db, bill.ID, nil)
	require.NoError(t, err)

	_, err = services.MarkPaid(db, bill.ID, nil)
	var conflict *types.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestMarkPaidUnknownBill(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.MarkPaid(db, "no-such-bill", nil)
	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListDueExcludesPaidAndDeleted(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)

	yesterday := time.Now().AddDate(0, 0, -1)
	overdue := createBill(t, db, lease.ID, "Rent payment for November 2024", yesterday)
	future := createBill(t, db, lease.ID, "Rent payment for December 2024", time.Now().AddDate(0, 0, 7))
	deleted := createBill(t, db, lease.ID, "Utility payment for October 2024", yesterday)
	require.NoError(t, services.SoftDeleteBilling(db, deleted.ID))

	due, err := services.ListDueBillings(db, time.Now())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, overdue.ID, due[0].ID)

	// Paying the overdue bill removes it from the collections view.
	_, err = services.MarkPaid(db, overdue.ID, nil)
	require.NoError(t, err)

	due, err = services.ListDueBillings(db, time.Now())
	require.NoError(t, err)
	assert.Empty(t, due)

	_ = future
}

func TestEditBillingRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)
	bill := createBill(t, db, lease.ID, "Rent payment for November 2024", time.Now())

	newDue := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	edited, err := services.EditBilling(db, bill.ID, services.BillingInput{
		LeaseID:     lease.ID,
		Amount:      1500,
		DueDate:     newDue,
		Description: "Rent payment for December 2024",
		Status:      models.BillingStatusPaid,
	})
	require.NoError(t, err)

	fetched, err := services.GetBilling(db, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, edited.Amount, fetched.Amount)
	assert.Equal(t, 1500, fetched.Amount)
	assert.Equal(t, "Rent payment for December 2024", fetched.Description)
	assert.Equal(t, models.BillingStatusPaid, fetched.Status)
	assert.True(t, newDue.Equal(fetched.DueDate))
}

func TestSoftDeleteBillingExcludesFromReads(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)
	bill := createBill(t, db, lease.ID, "Rent payment for November 2024", time.Now())

	require.NoError(t, services.SoftDeleteBilling(db, bill.ID))

	_, err := services.GetBilling(db, bill.ID)
	var notFound *types.NotFoundError
	require.ErrorAs(t, err, &notFound)

	bills, err := services.ListBillingsForLease(db, lease.ID, "")
	require.NoError(t, err)
	assert.Empty(t, bills)

	// Deleting again reports not found.
	err = services.SoftDeleteBilling(db, bill.ID)
	require.ErrorAs(t, err, &notFound)
}

func TestListBillingsForLeaseStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")
	lease := createLease(t, db, user.ID)

	pending := createBill(t, db, lease.ID, "Rent payment for December 2024", time.Now())
	paidBill := createBill(t, db, lease.ID, "Rent payment for November 2024", time.Now())
	_, err := services.MarkPaid(db, paidBill.ID, nil)
	require.NoError(t, err)

	bills, err := services.ListBillingsForLease(db, lease.ID, models.BillingStatusPending)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, pending.ID, bills[0].ID)

	bills, err = services.ListBillingsForLease(db, lease.ID, "")
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestListBillingsForUserWithoutLease(t *testing.T) {
	db := setupTestDB(t)
	user := createTenant(t, db, "tenant@example.com")

	bills, err := services.ListBillingsForUser(db, user.ID, "")
	require.NoError(t, err)
	assert.Empty(t, bills)
}
