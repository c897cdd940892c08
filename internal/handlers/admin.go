package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler handles the admin dashboard and audit log
type AdminHandler struct {
	DB *gorm.DB
}

// Dashboard handles GET /admin/dashboard
// @Summary Admin dashboard data
// @Description Open maintenance, active tenants, due and collected payments
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	openTickets, err := services.ListAllMaintenance(h.DB, models.MaintenanceStatusCompleted)
	if err != nil {
		return serviceErrorResponse(c, err, "dashboard")
	}

	tenants, err := services.ListTenants(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "dashboard")
	}

	duePayments, err := services.ListDueBillings(h.DB, time.Now())
	if err != nil {
		return serviceErrorResponse(c, err, "dashboard")
	}

	collectedPayments, err := services.ListPaidBillings(h.DB)
	if err != nil {
		return serviceErrorResponse(c, err, "dashboard")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"maintenanceRequests": openTickets,
		"tenants":             tenants,
		"duePayments":         duePayments,
		"collectedPayments":   collectedPayments,
	})
}

// AuditLog handles GET /admin/audit-log
// @Summary Audit trail
// @Description One page of the audit log, newest first, with total count
// @Tags Admin
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/audit-log [get]
func (h *AdminHandler) AuditLog(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	logs, total, err := services.ListAuditLogs(h.DB, page)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "auditLog")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"logs":       logs,
		"totalCount": total,
		"page":       page,
	})
}
