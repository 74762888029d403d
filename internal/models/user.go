package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"askstack/internal/utils"
)

// Role controls what a user is allowed to do. Admin is modeled but currently
// grants no extra rights on content deletion (owner-only everywhere).
type Role string

const (
	RoleGuest Role = "Guest"
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleGuest || r == RoleUser || r == RoleAdmin
}

// NormalizeEmail lowercases and trims an email address. Uniqueness checks and
// lookups always go through this so "A@x.com" and "a@x.com" collide.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the registration fields before any hashing or
// persistence happens.
func ValidateRegistration(email, name, password string, role Role) error {
	if email == "" || name == "" || password == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "All fields are required", nil)
	}
	if !emailPattern.MatchString(NormalizeEmail(email)) {
		return utils.NewAppError(utils.ErrInvalidInput, "Please enter a valid email", nil)
	}
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 50 {
		return utils.NewAppError(utils.ErrInvalidInput, "Name must be between 2 and 50 characters", nil)
	}
	if len(password) < 6 {
		return utils.NewAppError(utils.ErrInvalidInput, "Password must be at least 6 characters", nil)
	}
	if role != "" && !ValidRole(role) {
		return utils.NewAppError(utils.ErrInvalidInput, "Role must be Guest, User or Admin", nil)
	}
	return nil
}
