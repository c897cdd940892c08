package handlers

import (
	"errors"
	"net/mail"

	"github.com/gofiber/fiber/v2"
	"github.com/rentfolio/tenantportal/internal/services"
	"github.com/rentfolio/tenantportal/internal/session"
	"github.com/rentfolio/tenantportal/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login, and logout
type AuthHandler struct {
	DB       *gorm.DB
	Sessions *session.Manager
}

type registerForm struct {
	Email      string `json:"email" form:"email"`
	Name       string `json:"name" form:"name"`
	Password   string `json:"password" form:"password"`
	Mobile     string `json:"mobile" form:"mobile"`
	RedirectTo string `json:"redirectTo" form:"redirectTo"`
}

type loginForm struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	Remember   string `json:"remember" form:"remember"`
	RedirectTo string `json:"redirectTo" form:"redirectTo"`
}

func validateRegisterForm(form registerForm) map[string]string {
	errs := map[string]string{}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		errs["email"] = "Invalid email address"
	}
	if len(form.Name) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if len(form.Password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	if len(form.Mobile) < 6 {
		errs["mobile"] = "Mobile must be at least 6 characters"
	}
	return errs
}

// Register handles POST /register
// @Summary Register a new account
// @Description Create a tenant account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Success 302
// @Failure 400 {object} utils.ValidationResponseStruct
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form registerForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	if errs := validateRegisterForm(form); len(errs) > 0 {
		return utils.ValidationErrorResponse(c, errs)
	}

	if existing, err := services.GetUserByEmail(h.DB, form.Email); err == nil && existing != nil {
		return utils.ValidationErrorResponse(c, map[string]string{
			"email": "A user already exists with this email",
		})
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}

	user, err := services.CreateUser(h.DB, form.Email, form.Name, form.Password, form.Mobile)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}

	role, err := services.GetRoleByID(h.DB, user.RoleID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}

	if err := h.Sessions.Create(c, user.ID, role.Name, false); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}

	services.RecordAudit(h.DB, user.ID, "user.register", map[string]interface{}{"email": user.Email})

	return c.Redirect(utils.SafeRedirect(form.RedirectTo, "/"), fiber.StatusFound)
}

// Login handles POST /login
// @Summary Log in
// @Description Verify credentials and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Success 302
// @Failure 400 {object} utils.ValidationResponseStruct
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "auth.validation.input")
	}

	errs := map[string]string{}
	if _, err := mail.ParseAddress(form.Email); err != nil {
		errs["email"] = "Invalid email address"
	}
	if form.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return utils.ValidationErrorResponse(c, errs)
	}

	user, err := services.VerifyLogin(h.DB, form.Email, form.Password)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}
	if user == nil {
		return utils.ValidationErrorResponse(c, map[string]string{"user": "User not found"})
	}

	role, err := services.GetRoleByID(h.DB, user.RoleID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	remember := form.Remember == "on" || form.Remember == "true"
	if err := h.Sessions.Create(c, user.ID, role.Name, remember); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}

	return c.Redirect(utils.SafeRedirect(form.RedirectTo, "/"), fiber.StatusFound)
}

// Logout handles POST /logout
// @Summary Log out
// @Description Destroy the session and return to the landing page
// @Tags Auth
// @Produce json
// @Success 302
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.Sessions.Destroy(c)
	return c.Redirect("/", fiber.StatusFound)
}
