package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/middleware"
	"github.com/rentfolio/tenantportal/internal/types"
	"github.com/rentfolio/tenantportal/internal/utils"
)

// currentUserID extracts the authenticated user id set by the gate.
func currentUserID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok || id == "" {
		return "", errors.New("user not found in context")
	}
	return id, nil
}

// serviceErrorResponse maps a service error onto the matching JSON envelope:
// validation -> 400 field map, not-found -> 404, conflict -> 409, everything
// else -> 500 tagged with the failing operation.
func serviceErrorResponse(c *fiber.Ctx, err error, opType string) error {
	var verrs types.ValidationErrors
	if errors.As(err, &verrs) {
		return utils.ValidationErrorResponse(c, verrs)
	}

	var notFound *types.NotFoundError
	if errors.As(err, &notFound) {
		return utils.NotFoundResponse(c, notFound.Error())
	}

	var conflict *types.ConflictError
	if errors.As(err, &conflict) {
		return utils.ConflictResponse(c, conflict.Message)
	}

	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, opType)
}

// parseDate accepts RFC3339 or a bare date, the two formats the portal's
// forms submit.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
