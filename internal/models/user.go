package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a portal account: a tenant or an administrator. Directory-backed
// accounts may carry no password hash.
type User struct {
	ID           string  `gorm:"type:char(36);primaryKey"`
	Email        string  `gorm:"size:255;not null;uniqueIndex"`
	Name         string  `gorm:"size:255;not null"`
	Mobile       string  `gorm:"size:32"`
	PasswordHash *string `gorm:"size:255"`
	RoleID       string  `gorm:"type:char(36);not null;index"`
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// Role names users by capability. Seeded once ("user", "admin") and looked up
// by name or id to authorize.
type Role struct {
	ID          string       `gorm:"type:char(36);primaryKey"`
	Name        string       `gorm:"size:64;not null;uniqueIndex"`
	Permissions []Permission `gorm:"many2many:role_permissions;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission is a single named capability attached to roles.
type Permission struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	Name      string `gorm:"size:128;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for Role
func (Role) TableName() string {
	return "roles"
}

// TableName overrides the table name for Permission
func (Permission) TableName() string {
	return "permissions"
}
