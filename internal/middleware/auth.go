package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/session"
	"github.com/rentfolio/tenantportal/internal/utils"
	"gorm.io/gorm"
)

// Locals keys set by the gate for downstream handlers.
const (
	LocalUserID   = "userId"
	LocalUserRole = "userRole"
)

// RequireUser gates a route on a valid session. Unauthenticated requests are
// redirected to the login page with the original path as redirectTo; no error
// payload is ever produced.
func RequireUser(sm *session.Manager, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, roleName, err := sm.User(c, db)
		if err != nil {
			return redirectToLogin(c)
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUserRole, roleName)

		return c.Next()
	}
}

// RequireRole gates a route on a valid session whose user holds the named
// role. The role is re-resolved from the store on every request, so a role
// change takes effect mid-session. Mismatches redirect exactly like missing
// sessions: resources are hidden, not explained.
func RequireRole(sm *session.Manager, db *gorm.DB, roleName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, actual, err := sm.User(c, db)
		if err != nil {
			return redirectToLogin(c)
		}

		if actual != roleName {
			return redirectToLogin(c)
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalUserRole, actual)

		return c.Next()
	}
}

func redirectToLogin(c *fiber.Ctx) error {
	target := utils.SafeRedirect(c.OriginalURL(), "/")
	return c.Redirect("/login?redirectTo="+utils.QueryEscape(target), fiber.StatusFound)
}
