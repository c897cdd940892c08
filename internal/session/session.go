package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rentfolio/tenantportal/internal/models"
	"gorm.io/gorm"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "__session"

// MaxAge is the cookie lifetime when the user asks to be remembered.
const MaxAge = 7 * 24 * time.Hour

// ErrNoSession reports the absence of a usable session. Any verification
// failure collapses into this value; callers decide whether to redirect.
var ErrNoSession = errors.New("no session")

// Claims is the signed session payload: the user id (Subject) plus a role
// snapshot taken at login. The snapshot is informational only; authorization
// re-resolves the role from the store.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues, verifies, and clears the session cookie.
type Manager struct {
	secret []byte
	secure bool
}

// NewManager creates a session manager signing with the given secret.
func NewManager(secret string, secure bool) *Manager {
	return &Manager{secret: []byte(secret), secure: secure}
}

// Create signs a session token for the user and sets it on the response.
// With remember the cookie lives 7 days; otherwise it is session-scoped
// (dropped when the browser closes). The token itself always expires.
func (m *Manager) Create(c *fiber.Ctx, userID, role string, remember bool) error {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(MaxAge)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	cookie := &fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = int(MaxAge.Seconds())
		cookie.Expires = now.Add(MaxAge)
	}
	c.Cookie(cookie)

	return nil
}

// UserID extracts and verifies the session cookie. It fails closed: an
// absent, malformed, expired, or badly signed token all read as no session.
func (m *Manager) UserID(c *fiber.Ctx) (string, bool) {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return "", false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// User resolves the session to a live user record and its role name. A
// session whose user no longer exists (or was soft-deleted after issue) is
// destroyed rather than returned stale.
func (m *Manager) User(c *fiber.Ctx, db *gorm.DB) (*models.User, string, error) {
	userID, ok := m.UserID(c)
	if !ok {
		return nil, "", ErrNoSession
	}

	var user models.User
	err := db.Preload("Role").Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m.Destroy(c)
			return nil, "", ErrNoSession
		}
		return nil, "", err
	}

	return &user, user.Role.Name, nil
}

// Destroy expires the session cookie on the response.
func (m *Manager) Destroy(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
