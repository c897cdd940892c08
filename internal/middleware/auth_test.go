package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/database"
	"github.com/rentfolio/tenantportal/internal/middleware"
	"github.com/rentfolio/tenantportal/internal/models"
	"github.com/rentfolio/tenantportal/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.Seed(db))
	return db
}

func makeUser(t *testing.T, db *gorm.DB, roleName string) *models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, db.Where("name = ?", roleName).First(&role).Error)

	user := models.User{
		Email:  roleName + "@example.com",
		Name:   "Test " + roleName,
		Mobile: "5551234",
		RoleID: role.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func login(t *testing.T, m *session.Manager, userID, role string) *http.Cookie {
	t.Helper()

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		if err := m.Create(c, userID, role, true); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func gatedApp(db *gorm.DB, m *session.Manager) *fiber.App {
	app := fiber.New()
	app.Get("/billings", middleware.RequireUser(m, db), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LocalUserID).(string))
	})
	app.Get("/admin/dashboard", middleware.RequireRole(m, db, "admin"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LocalUserRole).(string))
	})
	return app
}

func TestRequireUserRedirectsAnonymous(t *testing.T) {
	db := testDB(t)
	m := session.NewManager("test-session-secret", false)
	app := gatedApp(db, m)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/billings?page=2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "/billings?page=2", loc.Query().Get("redirectTo"))
}

func TestRequireUserPassesSessionThrough(t *testing.T) {
	db := testDB(t)
	m := session.NewManager("test-session-secret", false)
	user := makeUser(t, db, "user")
	app := gatedApp(db, m)

	req := httptest.NewRequest(http.MethodGet, "/billings", nil)
	req.AddCookie(login(t, m, user.ID, "user"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleRedirectsOnMismatch(t *testing.T) {
	db := testDB(t)
	m := session.NewManager("test-session-secret", false)
	tenant := makeUser(t, db, "user")
	app := gatedApp(db, m)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(login(t, m, tenant.ID, "user"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login"))
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	db := testDB(t)
	m := session.NewManager("test-session-secret", false)
	admin := makeUser(t, db, "admin")
	app := gatedApp(db, m)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(login(t, m, admin.ID, "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleReresolvesRole(t *testing.T) {
	db := testDB(t)
	m := session.NewManager("test-session-secret", false)
	admin := makeUser(t, db, "admin")
	app := gatedApp(db, m)

	cookie := login(t, m, admin.ID, "admin")

	// Demote after the session was issued; the stale role claim in the
	// token must not grant access.
	var userRole models.Role
	require.NoError(t, db.Where("name = ?", "user").First(&userRole).Error)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).Update("role_id", userRole.ID).Error)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestRedirectTargetNeverProtocolRelative(t *testing.T) {
	db := testDB(t)
	m := session.NewManager("test-session-secret", false)
	app := fiber.New()
	app.Get("/*", middleware.RequireUser(m, db), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "//evil.example/phish", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	target := loc.Query().Get("redirectTo")
	assert.True(t, strings.HasPrefix(target, "/"))
	assert.False(t, strings.HasPrefix(target, "//"))
}
