package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", NewValidationError("Invalid role", FieldError{Field: "role", Message: "must be user or admin"})
	}
}

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:140;not null" json:"name"`
	Email        string    `gorm:"size:160;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	Role         Role      `gorm:"type:varchar(10);not null;index" json:"role"`
	IsActive     bool      `gorm:"not null" json:"isActive"`
	Provider     string    `gorm:"size:20;not null" json:"provider"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Identity is the authenticated caller as carried by an access token.
type Identity struct {
	UserID uuid.UUID
	Name   string
	Role   Role
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
