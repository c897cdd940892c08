package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/utils"
	"gorm.io/gorm"
)

// NotificationHandler handles the per-bill notification toggle
type NotificationHandler struct {
	DB *gorm.DB
}

// Toggle handles POST /admin/billings/:id/notification
// @Summary Toggle a bill's notification
// @Description Create the bill's notification if absent, delete it if present
// @Tags Notification
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/billings/{id}/notification [post]
func (h *NotificationHandler) Toggle(c *fiber.Ctx) error {
	action, err := services.ToggleNotification(h.DB, c.Params("id"))
	if err != nil {
		return serviceErrorResponse(c, err, "toggleNotification")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"action":  action,
	})
}

// ListOwn handles GET /notifications
// @Summary List the tenant's notifications
// @Description List active notifications for the requesting tenant
// @Tags Notification
// @Produce json
// @Success 200 {array} models.Notification
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /notifications [get]
func (h *NotificationHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusForbidden, "notification.authorization")
	}

	notifications, err := services.ListNotificationsForUser(h.DB, userID)
	if err != nil {
		return serviceErrorResponse(c, err, "listNotifications")
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}
