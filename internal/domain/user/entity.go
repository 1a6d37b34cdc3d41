package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents a panel role (matches user_role enum)
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// User represents a panel user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`

	// Supervising manager. Weak reference: nulled when the manager is
	// deleted, never cascaded.
	ManagerID uuid.NullUUID `db:"manager_id"`

	Address     sql.NullString `db:"address"`
	PhoneNumber sql.NullString `db:"phone_number"`

	IsActive    bool `db:"is_active"`
	IsSuperuser bool `db:"is_superuser"`
	IsStaff     bool `db:"is_staff"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsManager returns true if user holds the manager role
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsStaffRole returns true if user holds the staff role
func (u *User) IsStaffRole() bool {
	return u.Role == RoleStaff
}

// Manages returns true if other is a direct report of u.
// Supervision is single-level: reports-of-reports are not included.
func (u *User) Manages(other *User) bool {
	return other.ManagerID.Valid && other.ManagerID.UUID == u.ID
}

// ValidRoles returns list of assignable roles
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleStaff}
}

// IsValidRole checks if role is one of the assignable roles
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if string(r) == role {
			return true
		}
	}
	return false
}
