package services

import (
	"errors"
	"fmt"

	"github.com/rentfolio/tenantportal/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

// CreateUser registers a new account with the default "user" role.
func CreateUser(db *gorm.DB, email, name, password, mobile string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role, err := GetRoleByName(db, "user")
	if err != nil {
		return nil, fmt.Errorf("default role missing: %w", err)
	}

	hashStr := string(hash)
	user := models.User{
		Email:        email,
		Name:         name,
		Mobile:       mobile,
		PasswordHash: &hashStr,
		RoleID:       role.ID,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// VerifyLogin checks credentials against the stored bcrypt hash. A missing
// user, a passwordless (directory) account, and a wrong password all return
// nil without error, so the caller cannot distinguish which failed.
func VerifyLogin(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}

	return &user, nil
}

// GetUserByID loads an active user by id.
func GetUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads an active user by email.
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetRoleByName loads a role by its unique name.
func GetRoleByName(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetRoleByID loads a role with its permissions.
func GetRoleByID(db *gorm.DB, id string) (*models.Role, error) {
	var role models.Role
	if err := db.Preload("Permissions").Where("id = ?", id).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// Can reports whether the user's role holds any of the named permissions.
func Can(db *gorm.DB, userID string, permissions ...string) (bool, error) {
	user, err := GetUserByID(db, userID)
	if err != nil {
		return false, err
	}

	role, err := GetRoleByID(db, user.RoleID)
	if err != nil {
		return false, err
	}

	for _, held := range role.Permissions {
		for _, wanted := range permissions {
			if held.Name == wanted {
				return true, nil
			}
		}
	}
	return false, nil
}

// ListTenants returns all active users holding the "user" role.
func ListTenants(db *gorm.DB) ([]models.User, error) {
	var tenants []models.User
	err := db.Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", "user").
		Order("users.created_at DESC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}
