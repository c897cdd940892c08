package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/utils"
	"gorm.io/gorm"
)

// LeaseHandler handles lease routes
type LeaseHandler struct {
	DB *gorm.DB
}

type leaseForm struct {
	StartDate      string `json:"startDate" form:"startDate"`
	EndDate        string `json:"endDate" form:"endDate"`
	Rent           int    `json:"rent" form:"rent"`
	Deposit        int    `json:"deposit" form:"deposit"`
	MaintenanceFee int    `json:"maintenanceFee" form:"maintenanceFee"`
	Property       string `json:"property" form:"property"`
}

// GetOwn handles GET /lease
// @Summary Get the tenant's lease
// @Description Return the lease owned by the requesting tenant
// @Tags Lease
// @Produce json
// @Success 200 {object} models.Lease
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /lease [get]
func (h *LeaseHandler) GetOwn(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "lease.authorization")
	}

	lease, err := services.GetLeaseForUser(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "getLease")
	}

	return c.Status(fiber.StatusOK).JSON(lease)
}

// Upsert handles PUT /admin/leases/:userId
// @Summary Create or update a tenant's lease
// @Description Admin edit of the single lease owned by a tenant
// @Tags Lease
// @Accept json
// @Produce json
// @Param userId path string true "Tenant user ID"
// @Success 200 {object} models.Lease
// @Failure 400 {object} utils.ValidationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/leases/{userId} [put]
func (h *LeaseHandler) Upsert(c *fiber.Ctx) error {
	var form leaseForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "lease.validation.input")
	}

	in := services.LeaseInput{
		Rent:           form.Rent,
		Deposit:        form.Deposit,
		MaintenanceFee: form.MaintenanceFee,
		Property:       form.Property,
	}

	dateErrs := map[string]string{}
	if form.StartDate != "" {
		start, err := parseDate(form.StartDate)
		if err != nil {
			dateErrs["startDate"] = "Invalid start date"
		} else {
			in.StartDate = start
		}
	}
	if form.EndDate != "" {
		end, err := parseDate(form.EndDate)
		if err != nil {
			dateErrs["endDate"] = "Invalid end date"
		} else {
			in.EndDate = end
		}
	}
	if len(dateErrs) > 0 {
		return utils.ValidationErrorResponse(c, dateErrs)
	}

	lease, err := services.UpsertLease(h.DB, c.Params("userId"), in)
	if err != nil {
		return serviceErrorResponse(c, err, "upsertLease")
	}

	if adminID, err := currentUserID(c); err == nil {
		services.RecordAudit(h.DB, adminID, "lease.upsert", map[string]interface{}{
			"leaseId": lease.ID,
			"userId":  lease.UserID,
		})
	}

	return c.Status(fiber.StatusOK).JSON(lease)
}
