package models

import (
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/aushadhi/pkg/auth"
)

// User account statuses.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User is the account model for both customers and back-office admins.
type User struct {
	gorm.Model
	FirstName      string    `gorm:"size:100;not null"       json:"firstName"`
	LastName       string    `gorm:"size:100;not null"       json:"lastName"`
	FullName       string    `gorm:"size:255"                json:"fullName"`
	Email          string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username       string    `gorm:"size:100;index"          json:"username"`
	Phone          string    `gorm:"size:30"                 json:"phone"`
	Password       string    `gorm:"size:255;not null"       json:"-"` // bcrypt hash, never serialised
	Role           auth.Role `gorm:"size:50;not null;default:customer" json:"role"`
	Status         string    `gorm:"size:20;not null;default:active"   json:"status"`
	ProfilePicture string    `gorm:"size:500"                json:"profilePicture"`
}

// BeforeSave keeps FullName derived from the name parts.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.FullName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	return nil
}

// IsBlocked reports whether the account is barred from logging in.
func (u *User) IsBlocked() bool { return u.Status == UserStatusBlocked }

// Identity converts the record into the request-scoped identity attached by
// the auth middleware.
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.FullName,
		Role:  u.Role,
	}
}
