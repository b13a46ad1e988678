package auth

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to CRM users.
const (
	RoleAdmin = "Admin"
	RoleBasic = "Basic"
)

// User represents a CRM user account.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
