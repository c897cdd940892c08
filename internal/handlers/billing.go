package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/storage"
	"github.com/rentfolio/tenantportal/internal/utils"
	"gorm.io/gorm"
)

// BillingHandler handles billing lifecycle routes
type BillingHandler struct {
	DB      *gorm.DB
	Uploads *storage.Uploads
}

type billingForm struct {
	LeaseID     string `json:"leaseId" form:"leaseId"`
	Amount      int    `json:"amount" form:"amount"`
	DueDate     string `json:"dueDate" form:"dueDate"`
	Description string `json:"description" form:"description"`
	Status      string `json:"status" form:"status"`
}

func (f billingForm) toInput(c *fiber.Ctx) (services.BillingInput, map[string]string) {
	in := services.BillingInput{
		LeaseID:     f.LeaseID,
		Amount:      f.Amount,
		Description: f.Description,
		Status:      f.Status,
	}
	if f.DueDate != "" {
		due, err := parseDate(f.DueDate)
		if err != nil {
			return in, map[string]string{"dueDate": "Invalid due date"}
		}
		in.DueDate = due
	}
	return in, nil
}

// ListOwn handles GET /billings
// @Summary List the tenant's bills
// @Description List bills attached to the requesting tenant's lease
// @Tags Billing
// @Produce json
// @Param status query string false "Filter by status (pending|paid)"
// @Success 200 {array} models.Billing
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /billings [get]
func (h *BillingHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "billing.authorization")
	}

	bills, err := services.ListBillingsForUser(h.DB, userID, c.Query("status"))
	if err != nil {
		return serviceErrorResponse(c, err, "listBillings")
	}

	return c.Status(fiber.StatusOK).JSON(bills)
}

// Pay handles POST /billings/:id/pay
// @Summary Pay a bill
// @Description Mark a pending bill paid, optionally attaching a proof file
// @Tags Billing
// @Accept mpfd
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} models.Billing
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /billings/{id}/pay [post]
func (h *BillingHandler) Pay(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "billing.authorization")
	}

	billID := c.Params("id")
	bill, err := services.GetBilling(h.DB, billID)
	if err != nil {
		return serviceErrorResponse(c, err, "payBilling")
	}

	// A tenant may only pay bills on their own lease.
	lease, err := services.GetLease(h.DB, bill.LeaseID)
	if err != nil {
		return serviceErrorResponse(c, err, "payBilling")
	}
	if lease.UserID != userID {
		return utils.NotFoundResponse(c, "bill '"+billID+"' not found")
	}

	var proofPath *string
	if file, err := c.FormFile("proof"); err == nil && file != nil {
		stored, err := h.Uploads.SaveProof(c, file)
		if err != nil {
			return utils.ValidationErrorResponse(c, map[string]string{"proof": err.Error()})
		}
		proofPath = &stored
	}

	paid, err := services.MarkPaid(h.DB, billID, proofPath)
	if err != nil {
		return serviceErrorResponse(c, err, "payBilling")
	}

	services.RecordAudit(h.DB, userID, "billing.paid", map[string]interface{}{"billId": billID})

	return c.Status(fiber.StatusOK).JSON(paid)
}

// Create handles POST /admin/billings
// @Summary Create a bill
// @Description Record a new pending charge against a lease
// @Tags Billing
// @Accept json
// @Produce json
// @Success 201 {object} models.Billing
// @Failure 400 {object} utils.ValidationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/billings [post]
func (h *BillingHandler) Create(c *fiber.Ctx) error {
	var form billingForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "billing.validation.input")
	}

	in, errs := form.toInput(c)
	if errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}
	in.Status = "" // status is not settable at creation

	bill, err := services.CreateBilling(h.DB, in)
	if err != nil {
		return serviceErrorResponse(c, err, "createBilling")
	}

	if adminID, err := currentUserID(c); err == nil {
		services.RecordAudit(h.DB, adminID, "billing.create", map[string]interface{}{"billId": bill.ID})
	}

	return c.Status(fiber.StatusCreated).JSON(bill)
}

// Edit handles PUT /admin/billings/:id
// @Summary Edit a bill
// @Description Administrative override of any bill field, including status
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} models.Billing
// @Failure 400 {object} utils.ValidationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/billings/{id} [put]
func (h *BillingHandler) Edit(c *fiber.Ctx) error {
	var form billingForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "billing.validation.input")
	}

	in, errs := form.toInput(c)
	if errs != nil {
		return utils.ValidationErrorResponse(c, errs)
	}

	bill, err := services.EditBilling(h.DB, c.Params("id"), in)
	if err != nil {
		return serviceErrorResponse(c, err, "editBilling")
	}

	return c.Status(fiber.StatusOK).JSON(bill)
}

// Delete handles DELETE /admin/billings/:id
// @Summary Soft-delete a bill
// @Description Exclude a bill from all further reads
// @Tags Billing
// @Produce json
// @Param id path string true "Bill ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/billings/{id} [delete]
func (h *BillingHandler) Delete(c *fiber.Ctx) error {
	if err := services.SoftDeleteBilling(h.DB, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "deleteBilling")
	}

	if adminID, err := currentUserID(c); err == nil {
		services.RecordAudit(h.DB, adminID, "billing.delete", map[string]interface{}{"billId": c.Params("id")})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListDue handles GET /admin/billings/due
// @Summary List overdue bills
// @Description List pending bills past their due date (collections view)
// @Tags Billing
// @Produce json
// @Success 200 {array} models.Billing
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/billings/due [get]
func (h *BillingHandler) ListDue(c *fiber.Ctx) error {
	bills, err := services.ListDueBillings(h.DB, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "listDueBillings")
	}
	return c.Status(fiber.StatusOK).JSON(bills)
}

// ListForLease handles GET /admin/leases/:leaseId/billings
// @Summary List a lease's bills
// @Description List active bills for a lease, optionally filtered by status
// @Tags Billing
// @Produce json
// @Param leaseId path string true "Lease ID"
// @Param status query string false "Filter by status (pending|paid)"
// @Success 200 {array} models.Billing
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/leases/{leaseId}/billings [get]
func (h *BillingHandler) ListForLease(c *fiber.Ctx) error {
	bills, err := services.ListBillingsForLease(h.DB, c.Params("leaseId"), c.Query("status"))
	if err != nil {
		return serviceErrorResponse(c, err, "listBillingsForLease")
	}
	return c.Status(fiber.StatusOK).JSON(bills)
}
