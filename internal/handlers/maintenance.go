package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/utils"
	"gorm.io/gorm"
)

// MaintenanceHandler handles maintenance ticket routes
type MaintenanceHandler struct {
	DB *gorm.DB
}

// ListOwn handles GET /maintenance
// @Summary List the tenant's tickets
// @Description List the requesting tenant's own maintenance tickets
// @Tags Maintenance
// @Produce json
// @Success 200 {array} models.Maintenance
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /maintenance [get]
func (h *MaintenanceHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "maintenance.authorization")
	}

	tickets, err := services.ListMaintenanceForUser(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "listMaintenance")
	}

	return c.Status(fiber.StatusOK).JSON(tickets)
}

// Create handles POST /maintenance
// @Summary Submit a ticket
// @Description Open a maintenance request for the requesting tenant
// @Tags Maintenance
// @Accept json
// @Produce json
// @Success 201 {object} models.Maintenance
// @Failure 400 {object} utils.ValidationResponseStruct
// @Router /maintenance [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "maintenance.authorization")
	}

	var form struct {
		Details string `json:"details" form:"details"`
	}
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "maintenance.validation.input")
	}

	ticket, err := services.CreateMaintenance(h.DB, userID, form.Details)
	if err != nil {
		return serviceErrorResponse(c, err, "createMaintenance")
	}

	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// ListAll handles GET /admin/maintenance
// @Summary List all tickets
// @Description List every active ticket, optionally excluding one status
// @Tags Maintenance
// @Produce json
// @Param exclude query string false "Status to exclude (e.g. completed)"
// @Success 200 {array} models.Maintenance
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /admin/maintenance [get]
func (h *MaintenanceHandler) ListAll(c *fiber.Ctx) error {
	tickets, err := services.ListAllMaintenance(h.DB, c.Query("exclude"))
	if err != nil {
		return serviceErrorResponse(c, err, "listAllMaintenance")
	}
	return c.Status(fiber.StatusOK).JSON(tickets)
}

// SetStatus handles PUT /admin/maintenance/:id/status
// @Summary Set ticket status
// @Description Apply an admin status change to a ticket
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} models.Maintenance
// @Failure 400 {object} utils.ValidationResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/maintenance/{id}/status [put]
func (h *MaintenanceHandler) SetStatus(c *fiber.Ctx) error {
	var form struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "maintenance.validation.input")
	}

	ticket, err := services.SetMaintenanceStatus(h.DB, c.Params("id"), form.Status)
	if err != nil {
		return serviceErrorResponse(c, err, "setMaintenanceStatus")
	}

	if adminID, err := currentUserID(c); err == nil {
		services.RecordAudit(h.DB, adminID, "maintenance.status", map[string]interface{}{
			"ticketId": ticket.ID,
			"status":   ticket.Status,
		})
	}

	return c.Status(fiber.StatusOK).JSON(ticket)
}

// Delete handles DELETE /admin/maintenance/:id
// @Summary Soft-delete a ticket
// @Description Exclude a ticket from all further reads
// @Tags Maintenance
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/maintenance/{id} [delete]
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	if err := services.SoftDeleteMaintenance(h.DB, c.Params("id")); err != nil {
		return serviceErrorResponse(c, err, "deleteMaintenance")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
